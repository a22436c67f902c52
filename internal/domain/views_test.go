package domain

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// event builds a normalized event the same way Normalize does.
func event(ts time.Time, magnitude, depth float64, source, typ string) Event {
	e := NewEvent(RawRecord{Source: source, Type: typ}, ts)
	e.Magnitude = magnitude
	e.Depth = depth
	e.Energy = Energy(magnitude)
	e.DepthCategory = ClassifyDepth(depth)
	e.MagnitudeBin, e.HasBin = ClassifyMagnitude(magnitude)
	return e
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestDecadeCounts(t *testing.T) {
	t.Run("scenario from three events", func(t *testing.T) {
		table := Table{
			event(at(1970, 1, 1), 5.0, 10, testSourceUS, testTypeEQ),
			event(at(1970, 6, 1), 6.0, 10, testSourceUS, testTypeEQ),
			event(at(1980, 1, 1), 7.0, 10, testSourceUS, testTypeEQ),
		}

		got := DecadeCounts(table)
		want := []DecadeCount{{Decade: 1970, Count: 2}, {Decade: 1980, Count: 1}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("decade counts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no zero decades and counts sum to rows", func(t *testing.T) {
		table := Table{
			event(at(2011, 3, 11), 9.1, 29, testSourceUS, testTypeEQ),
			event(at(1965, 1, 2), 6.0, 131, testSourceUS, testTypeEQ),
			event(at(1999, 1, 1), 6.0, 10, testSourceUS, testTypeEQ),
			event(at(2010, 1, 1), 6.0, 10, testSourceUS, testTypeEQ),
		}

		got := DecadeCounts(table)

		sum := 0
		for i, dc := range got {
			sum += dc.Count
			if i > 0 {
				assert.Greater(t, dc.Decade, got[i-1].Decade)
			}
		}
		assert.Equal(t, len(table), sum)
		assert.Equal(t, []DecadeCount{{1960, 1}, {1990, 1}, {2010, 2}}, got)
	})

	t.Run("empty table", func(t *testing.T) {
		assert.Empty(t, DecadeCounts(nil))
	})
}

func TestCumulativeEnergy(t *testing.T) {
	table := Table{
		event(at(2004, 12, 26), 9.1, 30, testSourceUS, testTypeEQ),
		event(at(1965, 2, 4), 8.7, 30, testSourceUS, testTypeEQ),
		event(at(2011, 3, 11), 9.1, 29, testSourceUS, testTypeEQ),
		event(at(1970, 1, 1), 6.0, 10, testSourceUS, testTypeEQ),
		event(at(2010, 2, 27), 8.8, 22, testSourceUS, testTypeEQ),
		event(at(1980, 1, 1), 5.5, 10, testSourceUS, testTypeEQ),
	}

	view := CumulativeEnergy(table, 4)

	t.Run("series is time ordered and non-decreasing", func(t *testing.T) {
		require.Len(t, view.Series, len(table))
		for i := 1; i < len(view.Series); i++ {
			assert.False(t, view.Series[i].Timestamp.Before(view.Series[i-1].Timestamp))
			assert.GreaterOrEqual(t, view.Series[i].Cumulative, view.Series[i-1].Cumulative)
		}
	})

	t.Run("final value is the total energy", func(t *testing.T) {
		var total float64
		for _, e := range table {
			total += e.Energy
		}
		assert.InEpsilon(t, total, view.Series[len(view.Series)-1].Cumulative, 1e-12)
	})

	t.Run("landmarks are the four largest, ties in time order", func(t *testing.T) {
		require.Len(t, view.Landmarks, 4)
		assert.Equal(t, at(2004, 12, 26), view.Landmarks[0].Timestamp)
		assert.Equal(t, at(2011, 3, 11), view.Landmarks[1].Timestamp)
		assert.Equal(t, at(2010, 2, 27), view.Landmarks[2].Timestamp)
		assert.Equal(t, at(1965, 2, 4), view.Landmarks[3].Timestamp)
		assert.Equal(t, 9.1, view.Landmarks[0].Magnitude)
	})

	t.Run("landmark carries cumulative at that point", func(t *testing.T) {
		for _, lm := range view.Landmarks {
			var want float64
			for _, p := range view.Series {
				if p.Timestamp.Equal(lm.Timestamp) {
					want = p.Cumulative
				}
			}
			assert.Equal(t, want, lm.Cumulative)
		}
	})

	t.Run("does not reorder the input table", func(t *testing.T) {
		assert.Equal(t, at(2004, 12, 26), table[0].Timestamp)
	})

	t.Run("fewer events than landmarks returns all", func(t *testing.T) {
		small := CumulativeEnergy(table[:2], 4)
		assert.Len(t, small.Landmarks, 2)
	})

	t.Run("NaN energies rank last", func(t *testing.T) {
		withNaN := Table{
			event(at(1970, 1, 1), math.NaN(), 10, "", ""),
			event(at(1971, 1, 1), 6.0, 10, "", ""),
		}
		v := CumulativeEnergy(withNaN, 1)
		require.Len(t, v.Landmarks, 1)
		assert.Equal(t, 6.0, v.Landmarks[0].Magnitude)
	})
}

func TestDepthMagnitudes(t *testing.T) {
	table := Table{
		event(at(1970, 1, 1), 6.0, 10, testSourceUS, testTypeEQ),
		event(at(1970, 1, 2), 7.0, 70, testSourceUS, testTypeEQ),
		event(at(1970, 1, 3), 5.6, 300, testSourceUS, testTypeEQ),
		event(at(1970, 1, 4), 5.8, 5, testSourceUS, testTypeEQ),
	}

	groups := DepthMagnitudes(table)

	require.Len(t, groups, 3)
	assert.Equal(t, Shallow, groups[0].Category)
	assert.Equal(t, Intermediate, groups[1].Category)
	assert.Equal(t, Deep, groups[2].Category)
	assert.Equal(t, []float64{6.0, 5.8}, groups[0].Magnitudes)
	assert.Equal(t, []float64{7.0, 5.6}, groups[1].Magnitudes)
	assert.Empty(t, groups[2].Magnitudes)
	assert.Equal(t, 2, groups[0].Summary.Count)
	assert.InDelta(t, 5.9, groups[0].Summary.Median, 1e-9)
	assert.Equal(t, 0, groups[2].Summary.Count)
}

func TestGutenbergRichter(t *testing.T) {
	table := Table{
		event(at(1970, 1, 1), 5.52, 10, "", ""),
		event(at(1970, 1, 1), 5.5, 10, "", ""),
		event(at(1970, 1, 1), 6.04, 10, "", ""),
		event(at(1970, 1, 1), 7.2, 10, "", ""),
		event(at(1970, 1, 1), math.NaN(), 10, "", ""),
	}

	got := GutenbergRichter(table)

	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Magnitude, got[i].Magnitude)
	}
	for _, mc := range got {
		assert.Positive(t, mc.Count)
	}
	assert.InDelta(t, 7.2, got[2].Magnitude, 1e-9)
	assert.Equal(t, 1, got[2].Count)
	assert.InDelta(t, 6.0, got[1].Magnitude, 1e-9)
}

func TestRoundMagnitude(t *testing.T) {
	assert.InDelta(t, 6.0, RoundMagnitude(6.04), 1e-9)
	assert.InDelta(t, 6.1, RoundMagnitude(6.06), 1e-9)
	assert.InDelta(t, 8.2, RoundMagnitude(8.25), 1e-9)
	assert.True(t, math.IsNaN(RoundMagnitude(math.NaN())))
}

func TestMagnitudeDepthBuckets(t *testing.T) {
	table := Table{
		event(at(1970, 1, 1), 5.6, 10, "", ""),
		event(at(1970, 1, 1), 5.7, 20, "", ""),
		event(at(1970, 1, 1), 9.1, 29, "", ""),
		event(at(1970, 1, 1), 6.2, 500, "", ""),
		event(at(1970, 1, 1), 9.6, 10, "", ""),
		event(at(1970, 1, 1), 5.4, 10, "", ""),
	}

	got := MagnitudeDepthBuckets(table)

	want := []BucketCount{
		{Category: Shallow, Bin: 0, Count: 2},
		{Category: Shallow, Bin: 6, Count: 1},
		{Category: Deep, Bin: 1, Count: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("buckets mismatch (-want +got):\n%s", diff)
	}
	for _, b := range got {
		assert.Positive(t, b.Count)
	}
}

func TestTopSourceMagnitudes(t *testing.T) {
	sources := []string{"US", "ISCGEM", "US", "GCMT", "NC", "US", "ISCGEM", "AK", "CI", "GCMT", ""}
	table := make(Table, 0, len(sources))
	for i, s := range sources {
		table = append(table, event(at(1970, 1, 1+i), 5.5+float64(i)/10, 10, s, testTypeEQ))
	}

	got := TopSourceMagnitudes(table, 5)

	require.Len(t, got, 5)
	names := make([]string, len(got))
	for i, g := range got {
		names[i] = g.Source
	}
	assert.Equal(t, []string{"US", "ISCGEM", "GCMT", "NC", "AK"}, names)
	assert.Equal(t, 3, got[0].Count)
	assert.Len(t, got[0].Magnitudes, 3)
	assert.Equal(t, 3, got[0].Summary.Count)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}

	t.Run("fewer distinct sources than n", func(t *testing.T) {
		few := TopSourceMagnitudes(table[:3], 5)
		assert.Len(t, few, 2)
	})

	t.Run("empty table", func(t *testing.T) {
		assert.Empty(t, TopSourceMagnitudes(nil, 5))
	})
}

func TestNuclearExplosions(t *testing.T) {
	table := Table{
		event(at(1965, 1, 10), 5.9, 0, "US", NuclearExplosionType),
		event(at(1966, 1, 10), 6.0, 10, "US", testTypeEQ),
		event(at(1967, 1, 10), 5.6, 0, "US", "nuclear explosion"),
		event(at(1968, 1, 10), 6.1, 0, "US", NuclearExplosionType),
	}
	table[0].Latitude, table[0].Longitude = 49.8, 78.1

	got := NuclearExplosions(table)

	require.Len(t, got, 2)
	assert.Equal(t, NuclearEvent{Latitude: 49.8, Longitude: 78.1, Magnitude: 5.9, Timestamp: at(1965, 1, 10)}, got[0])
	assert.Equal(t, at(1968, 1, 10), got[1].Timestamp)
}

func TestHourlyCounts(t *testing.T) {
	table := Table{
		event(time.Date(1970, 1, 1, 3, 0, 0, 0, time.UTC), 6, 10, "", ""),
		event(time.Date(1970, 1, 2, 3, 59, 0, 0, time.UTC), 6, 10, "", ""),
		event(time.Date(1970, 1, 3, 23, 0, 0, 0, time.UTC), 6, 10, "", ""),
	}

	got := HourlyCounts(table)

	assert.Equal(t, 2, got[3])
	assert.Equal(t, 1, got[23])
	assert.Equal(t, 0, got[0])
}

func TestTypeCounts(t *testing.T) {
	table := Table{
		event(at(1970, 1, 1), 6, 10, "", "Explosion"),
		event(at(1970, 1, 1), 6, 10, "", testTypeEQ),
		event(at(1970, 1, 1), 6, 10, "", testTypeEQ),
		event(at(1970, 1, 1), 6, 10, "", NuclearExplosionType),
	}

	got := TypeCounts(table)

	assert.Equal(t, []TypeCount{
		{Type: testTypeEQ, Count: 2},
		{Type: "Explosion", Count: 1},
		{Type: NuclearExplosionType, Count: 1},
	}, got)
}

func TestViewsLookup(t *testing.T) {
	v := &Views{Decades: []DecadeCount{{Decade: 1970, Count: 1}}}

	for _, name := range ViewNames {
		_, ok := v.Lookup(name)
		assert.True(t, ok, name)
	}

	got, ok := v.Lookup(ViewDecades)
	require.True(t, ok)
	assert.Equal(t, v.Decades, got)

	_, ok = v.Lookup("nope")
	assert.False(t, ok)
}
