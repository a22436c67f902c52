// Package catalog reads earthquake catalog files into raw records.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// columns maps lowercase header names to the RawRecord field they fill.
var columns = map[string]func(*domain.RawRecord, string){
	"date":      func(r *domain.RawRecord, v string) { r.Date = v },
	"time":      func(r *domain.RawRecord, v string) { r.Time = v },
	"latitude":  func(r *domain.RawRecord, v string) { r.Latitude = v },
	"longitude": func(r *domain.RawRecord, v string) { r.Longitude = v },
	"type":      func(r *domain.RawRecord, v string) { r.Type = v },
	"depth":     func(r *domain.RawRecord, v string) { r.Depth = v },
	"magnitude": func(r *domain.RawRecord, v string) { r.Magnitude = v },
	"source":    func(r *domain.RawRecord, v string) { r.Source = v },
}

// FileLoader reads the whole catalog file on every Load call. It implements
// pipeline.CatalogLoader.
type FileLoader struct {
	path   string
	logger *slog.Logger
}

// NewFileLoader creates a loader for path. Files ending in .xlsx are read as
// workbooks; anything else is read as CSV.
func NewFileLoader(path string, logger *slog.Logger) *FileLoader {
	return &FileLoader{path: path, logger: logger}
}

// Path returns the catalog file path.
func (l *FileLoader) Path() string {
	return l.path
}

// Load reads every row of the catalog. A missing file returns an error
// wrapping domain.ErrSourceNotFound.
func (l *FileLoader) Load(_ context.Context) ([]domain.RawRecord, error) {
	if _, err := os.Stat(l.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, l.path)
		}
		return nil, fmt.Errorf("stat catalog: %w", err)
	}

	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(l.path), ".xlsx") {
		rows, err = readXLSX(l.path)
	} else {
		rows, err = readCSV(l.path)
	}
	if err != nil {
		return nil, err
	}

	records := mapRows(rows)
	l.logger.Debug("catalog read", "path", l.path, "rows", len(records))
	return records, nil
}

// mapRows turns a header row plus data rows into records. Line numbers are
// 1-based file lines, so the first data row is line 2. Unknown columns are
// ignored and absent ones stay empty.
func mapRows(rows [][]string) []domain.RawRecord {
	if len(rows) == 0 {
		return []domain.RawRecord{}
	}

	setters := make([]func(*domain.RawRecord, string), len(rows[0]))
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		setters[i] = columns[name]
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec := domain.RawRecord{Line: i + 2}
		for j, v := range row {
			if j < len(setters) && setters[j] != nil {
				setters[j](&rec, v)
			}
		}
		records = append(records, rec)
	}
	return records
}
