package catalog

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX returns the rows of the first sheet in the workbook.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("catalog workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
