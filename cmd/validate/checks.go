package main

import (
	"math"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// maxErrors caps how many problems one phase reports.
const maxErrors = 10

func validateRowAccounting(r domain.NormalizeReport, raw, retained int) *phase {
	p := &phase{name: "Row accounting"}
	if retained > raw {
		p.errorf("table has %d rows, more than the %d raw rows", retained, raw)
	}
	if r.RawRows != raw {
		p.errorf("report raw rows %d, loader returned %d", r.RawRows, raw)
	}
	if r.Retained+r.Dropped != r.RawRows {
		p.errorf("retained %d + dropped %d != raw %d", r.Retained, r.Dropped, r.RawRows)
	}
	return p
}

func validateDecades(decades []domain.DecadeCount, n int) *phase {
	p := &phase{name: "Decade counts"}
	sum := 0
	for i, dc := range decades {
		sum += dc.Count
		if dc.Count <= 0 {
			p.errorf("decade %d has count %d", dc.Decade, dc.Count)
		}
		if dc.Decade%10 != 0 {
			p.errorf("decade %d is not a multiple of 10", dc.Decade)
		}
		if i > 0 && decades[i-1].Decade >= dc.Decade {
			p.errorf("decades not strictly ascending at %d", dc.Decade)
		}
	}
	if sum != n {
		p.errorf("decade counts sum to %d, table has %d rows", sum, n)
	}
	return p
}

func validateEnergy(v domain.EnergyView, table domain.Table, landmarks int) *phase {
	p := &phase{name: "Cumulative energy"}
	if len(v.Series) != len(table) {
		p.errorf("series has %d points, table has %d rows", len(v.Series), len(table))
	}

	var total float64
	for _, e := range table {
		total += e.Energy
	}
	for i := 1; i < len(v.Series) && len(p.errors) < maxErrors; i++ {
		prev, cur := v.Series[i-1], v.Series[i]
		if cur.Timestamp.Before(prev.Timestamp) {
			p.errorf("series timestamps decrease at index %d", i)
		}
		if !math.IsNaN(cur.Cumulative) && cur.Cumulative < prev.Cumulative {
			p.errorf("cumulative energy decreases at index %d", i)
		}
	}
	if n := len(v.Series); n > 0 && !math.IsNaN(total) {
		final := v.Series[n-1].Cumulative
		if math.Abs(final-total) > 1e-9*math.Abs(total) {
			p.errorf("final cumulative %g != energy sum %g", final, total)
		}
	}

	if want := min(landmarks, len(table)); len(v.Landmarks) != want {
		p.errorf("got %d landmarks, want %d", len(v.Landmarks), want)
	}
	for i := 1; i < len(v.Landmarks); i++ {
		if v.Landmarks[i].Energy > v.Landmarks[i-1].Energy {
			p.errorf("landmarks not in descending energy at index %d", i)
		}
	}
	return p
}

func validateDepthCategories(table domain.Table) *phase {
	p := &phase{name: "Depth categories"}
	boundaries := []struct {
		depth float64
		want  domain.DepthCategory
	}{
		{69.99, domain.Shallow},
		{70, domain.Intermediate},
		{300, domain.Intermediate},
		{300.01, domain.Deep},
	}
	for _, b := range boundaries {
		if got := domain.ClassifyDepth(b.depth); got != b.want {
			p.errorf("depth %.2f classified %s, want %s", b.depth, got, b.want)
		}
	}
	for _, e := range table {
		if len(p.errors) >= maxErrors {
			break
		}
		if got := domain.ClassifyDepth(e.Depth); got != e.DepthCategory {
			p.errorf("line %d: depth %.2f has category %s, want %s", e.Line, e.Depth, e.DepthCategory, got)
		}
	}
	return p
}

func validateBuckets(buckets []domain.BucketCount, n int) *phase {
	p := &phase{name: "Magnitude x depth buckets"}
	sum := 0
	for _, b := range buckets {
		sum += b.Count
		if b.Count <= 0 {
			p.errorf("bucket %s/%s has count %d", b.Category, b.Bin.Label(), b.Count)
		}
	}
	if sum > n {
		p.errorf("bucket counts sum to %d, more than %d rows", sum, n)
	}
	return p
}

func validateTopSources(top []domain.SourceMagnitudes, table domain.Table, n int) *phase {
	p := &phase{name: "Top sources"}
	distinct := map[string]bool{}
	for _, e := range table {
		if e.Source != "" {
			distinct[e.Source] = true
		}
	}
	if want := min(n, len(distinct)); len(top) != want {
		p.errorf("got %d sources, want %d", len(top), want)
	}
	for i, s := range top {
		if s.Count != len(s.Magnitudes) {
			p.errorf("%s: count %d but %d magnitudes", s.Source, s.Count, len(s.Magnitudes))
		}
		if i > 0 && top[i-1].Count < s.Count {
			p.errorf("sources not in descending count at %s", s.Source)
		}
	}
	return p
}

func validateAftershocks(v domain.AftershockView) *phase {
	p := &phase{name: "Aftershock window"}
	w := v.Window
	for i, pt := range v.Points {
		if len(p.errors) >= maxErrors {
			break
		}
		if pt.Timestamp.Before(w.Mainshock) || !pt.Timestamp.Before(w.End()) {
			p.errorf("point %d at %s is outside the window", i, pt.Timestamp)
		}
		if !(pt.Magnitude < w.MaxMagnitude) {
			p.errorf("point %d has magnitude %.1f, not below %.1f", i, pt.Magnitude, w.MaxMagnitude)
		}
		if i > 0 && pt.Timestamp.Before(v.Points[i-1].Timestamp) {
			p.errorf("points not in time order at index %d", i)
		}
	}
	return p
}

func validateDeterminism(a, b domain.Views) *phase {
	p := &phase{name: "Deterministic re-run"}
	if diff := cmp.Diff(a, b, cmpopts.EquateNaNs()); diff != "" {
		p.errorf("views differ between runs (-first +second):\n%s", diff)
	}
	return p
}
