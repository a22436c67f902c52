package catalog

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

const testCSV = `Date,Time,Latitude,Longitude,Type,Depth,Depth Error,Magnitude,ID,Source
01/02/1965,13:44:18,19.246,145.616,Earthquake,131.6,,6.0,ISCGEM860706,ISCGEM
1975-02-23T02:58:41.000Z,1975-02-23T02:58:41.000Z,-8.1,-71.3,Nuclear Explosion,0,,5.6,US1,US
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader_CSV(t *testing.T) {
	path := writeFile(t, "catalog.csv", testCSV)

	records, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.RawRecord{
		Line: 2, Date: "01/02/1965", Time: "13:44:18",
		Latitude: "19.246", Longitude: "145.616", Type: "Earthquake",
		Depth: "131.6", Magnitude: "6.0", Source: "ISCGEM",
	}, records[0])
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, domain.NuclearExplosionType, records[1].Type)
}

func TestFileLoader_HeadersAreCaseInsensitive(t *testing.T) {
	path := writeFile(t, "catalog.csv", "\ufeffDATE, magnitude ,Source\n01/01/2000,7.0,AK\n")

	records, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "01/01/2000", records[0].Date)
	assert.Equal(t, "7.0", records[0].Magnitude)
	assert.Equal(t, "AK", records[0].Source)
	assert.Empty(t, records[0].Depth)
}

func TestFileLoader_RaggedRows(t *testing.T) {
	path := writeFile(t, "catalog.csv", "Date,Time,Magnitude\n01/01/2000\n01/02/2000,10:00:00,6.1,extra\n")

	records, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Empty(t, records[0].Magnitude)
	assert.Equal(t, "6.1", records[1].Magnitude)
}

func TestFileLoader_HeaderOnly(t *testing.T) {
	path := writeFile(t, "catalog.csv", "Date,Time,Magnitude\n")

	records, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileLoader_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthquakes.csv")

	_, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceNotFound)
	assert.Contains(t, err.Error(), "earthquakes.csv")
}

func TestFileLoader_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Date", "Time", "Latitude", "Longitude", "Type", "Depth", "Magnitude", "Source"},
		{"03/11/2011", "05:46:24", "38.297", "142.373", "Earthquake", "29", "9.1", "OFFICIAL"},
		{"03/11/2011", "06:15:40", "36.2", "141.0", "Earthquake", "20", "7.9", "US"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	loader := NewFileLoader(path, slog.Default())
	assert.Equal(t, path, loader.Path())

	records, err := loader.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "9.1", records[0].Magnitude)
	assert.Equal(t, "OFFICIAL", records[0].Source)
	assert.Equal(t, 3, records[1].Line)
	assert.Equal(t, "06:15:40", records[1].Time)
}

func TestFileLoader_CorruptXLSX(t *testing.T) {
	path := writeFile(t, "catalog.xlsx", "not a workbook")

	_, err := NewFileLoader(path, slog.Default()).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSourceNotFound)
}
