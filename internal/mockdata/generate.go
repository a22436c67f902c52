// Package mockdata generates synthetic earthquake catalogs shaped like the
// 1965-2016 significant earthquake dataset.
package mockdata

import (
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// Header is the column layout written by WriteCSV and WriteXLSX.
var Header = []string{"Date", "Time", "Latitude", "Longitude", "Type", "Depth", "Magnitude", "Magnitude Type", "ID", "Source"}

var (
	catalogStart = time.Date(1965, time.January, 1, 0, 0, 0, 0, time.UTC)
	catalogEnd   = time.Date(2016, time.December, 31, 23, 59, 59, 0, time.UTC)

	sources        = []string{"US", "ISCGEM", "ISCGEMSUP", "CI", "GCMT", "NC", "AK", "OFFICIAL"}
	sourceWeights  = []float32{70, 12, 5, 3, 3, 3, 2, 2}
	magnitudeTypes = []string{"MW", "MWC", "MB", "MWB", "MWW", "MS"}
)

// testSite is a historical nuclear test ground.
type testSite struct {
	lat, lon float64
}

var testSites = []testSite{
	{37.1, -116.05}, // Nevada
	{49.8, 78.1},    // Semipalatinsk
	{73.4, 54.9},    // Novaya Zemlya
	{-21.8, -138.9}, // Mururoa
	{41.5, 88.7},    // Lop Nur
}

// Options controls catalog generation.
type Options struct {
	Rows        int     // background earthquakes
	Aftershocks int     // events placed inside the Tohoku window
	Nuclear     int     // nuclear explosions
	BadDates    int     // rows with unparseable dates
	BValue      float64 // Gutenberg-Richter slope for background magnitudes
	Seed        int64
}

// DefaultOptions produces a catalog of a few thousand rows.
func DefaultOptions() Options {
	return Options{Rows: 2000, Aftershocks: 120, Nuclear: 40, BadDates: 3, BValue: 1.0, Seed: 1965}
}

// Generate returns catalog rows in the order they should be written. The same
// options always produce the same rows.
func Generate(opts Options) []domain.RawRecord {
	f := gofakeit.New(opts.Seed)
	n := opts.Rows + opts.Aftershocks + opts.Nuclear + opts.BadDates
	out := make([]domain.RawRecord, 0, n)

	for range opts.Rows {
		ts := f.DateRange(catalogStart, catalogEnd).UTC()
		out = append(out, record(ts, f.Float64Range(-70, 80), f.Float64Range(-180, 180),
			"Earthquake", depth(f), grMagnitude(f, opts.BValue), source(f)))
	}

	window := domain.TohokuWindow()
	out = append(out, record(time.Date(2011, time.March, 11, 5, 46, 24, 0, time.UTC),
		38.297, 142.373, "Earthquake", 29, 9.1, "OFFICIAL"))
	for range opts.Aftershocks {
		ts := f.DateRange(time.Date(2011, time.March, 11, 6, 0, 0, 0, time.UTC), window.End()).UTC()
		out = append(out, record(ts,
			f.Float64Range(window.MinLat, window.MaxLat), f.Float64Range(window.MinLon, window.MaxLon),
			"Earthquake", f.Float64Range(5, 60), grMagnitude(f, 1.2), "US"))
	}

	for range opts.Nuclear {
		site := testSites[f.Number(0, len(testSites)-1)]
		ts := f.DateRange(catalogStart, time.Date(1998, time.December, 31, 0, 0, 0, 0, time.UTC)).UTC()
		out = append(out, record(ts,
			site.lat+f.Float64Range(-0.3, 0.3), site.lon+f.Float64Range(-0.3, 0.3),
			domain.NuclearExplosionType, 0, f.Float64Range(5.5, 6.9), "US"))
	}

	for range opts.BadDates {
		rec := record(f.DateRange(catalogStart, catalogEnd).UTC(), 0, 0, "Earthquake", 10, 5.6, "US")
		rec.Date = f.RandomString([]string{"", "unknown", "1975-13-45T99:00:00.000Z"})
		out = append(out, rec)
	}

	for i := range out {
		out[i].Line = i + 2
	}
	return out
}

func record(ts time.Time, lat, lon float64, typ string, depth, mag float64, src string) domain.RawRecord {
	return domain.RawRecord{
		Date:      ts.Format("01/02/2006"),
		Time:      ts.Format("15:04:05"),
		Latitude:  fmt.Sprintf("%.3f", lat),
		Longitude: fmt.Sprintf("%.3f", lon),
		Type:      typ,
		Depth:     fmt.Sprintf("%.1f", depth),
		Magnitude: fmt.Sprintf("%.1f", mag),
		Source:    src,
	}
}

// grMagnitude draws from a truncated Gutenberg-Richter distribution above
// 5.5, so counts fall by 10x per b units of magnitude.
func grMagnitude(f *gofakeit.Faker, b float64) float64 {
	if b <= 0 {
		b = 1
	}
	u := f.Float64Range(1e-9, 1)
	m := 5.5 - math.Log10(u)/b
	return math.Min(m, 9.1)
}

// depth favors shallow events the way subduction catalogs do.
func depth(f *gofakeit.Faker) float64 {
	switch r := f.Number(1, 100); {
	case r <= 75:
		return f.Float64Range(0, 69.9)
	case r <= 92:
		return f.Float64Range(70, 300)
	default:
		return f.Float64Range(300.1, 700)
	}
}

func source(f *gofakeit.Faker) string {
	options := make([]any, len(sources))
	for i, s := range sources {
		options[i] = s
	}
	v, err := f.Weighted(options, sourceWeights)
	if err != nil {
		return sources[0]
	}
	return v.(string)
}

// Row flattens a record into Header column order.
func Row(rec domain.RawRecord) []string {
	return []string{
		rec.Date, rec.Time, rec.Latitude, rec.Longitude, rec.Type, rec.Depth, rec.Magnitude,
		magnitudeTypes[rec.Line%len(magnitudeTypes)], fmt.Sprintf("SYN%06d", rec.Line), rec.Source,
	}
}
