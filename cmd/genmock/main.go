// Command genmock writes a synthetic earthquake catalog for local runs and
// tests. Output is deterministic for a given seed.
//
// Usage:
//
//	go run ./cmd/genmock -out data/earthquakes.csv
//	go run ./cmd/genmock -out data/earthquakes.xlsx -rows 20000 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/mockdata"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	def := mockdata.DefaultOptions()
	out := flag.String("out", "", "output path; .xlsx writes a workbook, anything else CSV")
	rows := flag.Int("rows", def.Rows, "background earthquakes")
	aftershocks := flag.Int("aftershocks", def.Aftershocks, "events inside the Tohoku aftershock window")
	nuclear := flag.Int("nuclear", def.Nuclear, "nuclear explosions")
	badDates := flag.Int("bad-dates", def.BadDates, "rows with unparseable dates")
	bValue := flag.Float64("b-value", def.BValue, "Gutenberg-Richter b-value for background magnitudes")
	seed := flag.Int64("seed", def.Seed, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	records := mockdata.Generate(mockdata.Options{
		Rows:        *rows,
		Aftershocks: *aftershocks,
		Nuclear:     *nuclear,
		BadDates:    *badDates,
		BValue:      *bValue,
		Seed:        *seed,
	})

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := write(*out, records); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	log.Printf("wrote %d rows to %s", len(records), *out)

	printStats(records)
	return nil
}

func write(path string, records []domain.RawRecord) error {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return mockdata.WriteXLSX(path, records)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mockdata.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(records []domain.RawRecord) {
	table, report := domain.Normalize(records)
	log.Printf("retained %d, dropped %d", report.Retained, report.Dropped)
	for _, dc := range domain.DecadeCounts(table) {
		log.Printf("  %ds: %d", dc.Decade, dc.Count)
	}
	for _, tc := range domain.TypeCounts(table) {
		log.Printf("  %s: %d", tc.Type, tc.Count)
	}
}
