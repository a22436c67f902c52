package mockdata

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// WriteCSV writes the header and one row per record.
func WriteCSV(w io.Writer, records []domain.RawRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(Row(rec)); err != nil {
			return fmt.Errorf("write line %d: %w", rec.Line, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX saves the records as a single-sheet workbook at path.
func WriteXLSX(path string, records []domain.RawRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Catalog"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	if err := sw.SetRow("A1", toCells(Header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, toCells(Row(rec))); err != nil {
			return fmt.Errorf("write line %d: %w", rec.Line, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush workbook: %w", err)
	}
	return f.SaveAs(path)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
