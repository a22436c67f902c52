package mockdata

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/catalog"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

func smallOptions() Options {
	return Options{Rows: 300, Aftershocks: 50, Nuclear: 10, BadDates: 2, BValue: 1.0, Seed: 42}
}

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(smallOptions())
	b := Generate(smallOptions())
	assert.Equal(t, a, b)

	other := smallOptions()
	other.Seed = 43
	assert.NotEqual(t, a, Generate(other))
}

func TestGenerate_Shape(t *testing.T) {
	opts := smallOptions()
	records := Generate(opts)

	// Background rows, the mainshock, aftershocks, nuclear tests, bad dates.
	require.Len(t, records, opts.Rows+1+opts.Aftershocks+opts.Nuclear+opts.BadDates)
	for i, rec := range records {
		assert.Equal(t, i+2, rec.Line)
	}

	table, report := domain.Normalize(records)
	assert.Equal(t, opts.BadDates, report.Dropped)

	assert.Len(t, domain.NuclearExplosions(table), opts.Nuclear)

	view := domain.Aftershocks(table, domain.TohokuWindow())
	assert.GreaterOrEqual(t, len(view.Points), opts.Aftershocks*9/10)

	for _, e := range table {
		assert.GreaterOrEqual(t, e.Magnitude, 5.5)
		assert.LessOrEqual(t, e.Magnitude, 9.1)
	}
}

func TestGenerate_MagnitudesFollowGutenbergRichter(t *testing.T) {
	opts := DefaultOptions()
	opts.Aftershocks, opts.Nuclear, opts.BadDates = 0, 0, 0
	table, _ := domain.Normalize(Generate(opts))

	var low, high int
	for _, e := range table {
		switch {
		case e.Magnitude < 6.5:
			low++
		case e.Magnitude >= 6.5 && e.Magnitude < 7.5:
			high++
		}
	}
	assert.Greater(t, low, 3*high, "each magnitude unit should be roughly 10x rarer")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	records := Generate(smallOptions())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	path := filepath.Join(t.TempDir(), "catalog.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	loaded, err := catalog.NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestWriteXLSX_RoundTrip(t *testing.T) {
	records := Generate(smallOptions())[:25]
	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, WriteXLSX(path, records))

	loaded, err := catalog.NewFileLoader(path, slog.Default()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}
