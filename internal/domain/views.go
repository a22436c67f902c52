package domain

import (
	"math"
	"sort"
	"time"
)

// View names, used as chart identifiers, API path segments and message keys.
const (
	ViewDecades          = "decades"
	ViewEnergy           = "energy"
	ViewDepthMagnitudes  = "depth_magnitudes"
	ViewGutenbergRichter = "gutenberg_richter"
	ViewAftershocks      = "aftershocks"
	ViewBuckets          = "magnitude_depth_buckets"
	ViewTopSources       = "top_sources"
	ViewNuclear          = "nuclear_explosions"
	ViewHourly           = "hourly"
	ViewTypes            = "event_types"
)

// ViewNames lists every view in dashboard order.
var ViewNames = []string{
	ViewDecades,
	ViewEnergy,
	ViewDepthMagnitudes,
	ViewGutenbergRichter,
	ViewAftershocks,
	ViewBuckets,
	ViewTopSources,
	ViewNuclear,
	ViewHourly,
	ViewTypes,
}

// Views holds every derived view of one table. Each field is written by
// exactly one stage.
type Views struct {
	Decades          []DecadeCount        `json:"decades"`
	Energy           EnergyView           `json:"energy"`
	DepthMagnitudes  []CategoryMagnitudes `json:"depth_magnitudes"`
	GutenbergRichter []MagnitudeCount     `json:"gutenberg_richter"`
	Aftershocks      AftershockView       `json:"aftershocks"`
	Buckets          []BucketCount        `json:"magnitude_depth_buckets"`
	TopSources       []SourceMagnitudes   `json:"top_sources"`
	Nuclear          []NuclearEvent       `json:"nuclear_explosions"`
	Hourly           [24]int              `json:"hourly"`
	Types            []TypeCount          `json:"event_types"`
}

// Lookup returns the named view, or false if the name is unknown.
func (v *Views) Lookup(name string) (any, bool) {
	switch name {
	case ViewDecades:
		return v.Decades, true
	case ViewEnergy:
		return v.Energy, true
	case ViewDepthMagnitudes:
		return v.DepthMagnitudes, true
	case ViewGutenbergRichter:
		return v.GutenbergRichter, true
	case ViewAftershocks:
		return v.Aftershocks, true
	case ViewBuckets:
		return v.Buckets, true
	case ViewTopSources:
		return v.TopSources, true
	case ViewNuclear:
		return v.Nuclear, true
	case ViewHourly:
		return v.Hourly, true
	case ViewTypes:
		return v.Types, true
	default:
		return nil, false
	}
}

// DecadeCount is the number of events in one decade.
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// DecadeCounts counts events per decade, ascending. Only decades present in
// the table appear.
func DecadeCounts(table Table) []DecadeCount {
	counts := make(map[int]int)
	for _, e := range table {
		counts[e.Decade]++
	}

	out := make([]DecadeCount, 0, len(counts))
	for decade, n := range counts {
		out = append(out, DecadeCount{Decade: decade, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decade < out[j].Decade })
	return out
}

// EnergyPoint is the running energy total after one event.
type EnergyPoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Cumulative float64   `json:"cumulative"`
}

// EnergyLandmark marks one of the most energetic events on the cumulative curve.
type EnergyLandmark struct {
	Timestamp  time.Time `json:"timestamp"`
	Magnitude  float64   `json:"magnitude"`
	Energy     float64   `json:"energy"`
	Cumulative float64   `json:"cumulative"`
}

// EnergyView is the cumulative energy series and its annotated landmarks.
type EnergyView struct {
	Series    []EnergyPoint    `json:"series"`
	Landmarks []EnergyLandmark `json:"landmarks"`
}

// CumulativeEnergy orders events by time (stable) and accumulates their
// energy. Landmarks are the n highest raw energies, descending; ties keep
// time order and NaN energies rank last.
func CumulativeEnergy(table Table, n int) EnergyView {
	ordered := make(Table, len(table))
	copy(ordered, table)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	series := make([]EnergyPoint, len(ordered))
	marks := make([]EnergyLandmark, len(ordered))
	var total float64
	for i, e := range ordered {
		total += e.Energy
		series[i] = EnergyPoint{Timestamp: e.Timestamp, Cumulative: total}
		marks[i] = EnergyLandmark{Timestamp: e.Timestamp, Magnitude: e.Magnitude, Energy: e.Energy, Cumulative: total}
	}

	sort.SliceStable(marks, func(i, j int) bool {
		a, b := marks[i].Energy, marks[j].Energy
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	if n < 0 {
		n = 0
	}
	if len(marks) > n {
		marks = marks[:n]
	}

	return EnergyView{Series: series, Landmarks: marks}
}

// CategoryMagnitudes groups magnitudes of one depth category.
type CategoryMagnitudes struct {
	Category   DepthCategory `json:"category"`
	Magnitudes []float64     `json:"magnitudes"`
	Summary    BoxStats      `json:"summary"`
}

// DepthMagnitudes groups magnitudes by depth category in the fixed order
// Shallow, Intermediate, Deep. Empty categories are still present.
func DepthMagnitudes(table Table) []CategoryMagnitudes {
	groups := make([]CategoryMagnitudes, len(DepthCategories))
	for i, c := range DepthCategories {
		groups[i] = CategoryMagnitudes{Category: c, Magnitudes: []float64{}}
	}
	for _, e := range table {
		g := &groups[e.DepthCategory]
		g.Magnitudes = append(g.Magnitudes, e.Magnitude)
	}
	for i := range groups {
		groups[i].Summary = Summarize(groups[i].Magnitudes)
	}
	return groups
}

// MagnitudeCount is the number of events at one rounded magnitude.
type MagnitudeCount struct {
	Magnitude float64 `json:"magnitude"`
	Count     int     `json:"count"`
}

// RoundMagnitude rounds to one decimal place, half to even.
func RoundMagnitude(m float64) float64 {
	return math.RoundToEven(m*10) / 10
}

// GutenbergRichter counts events per magnitude rounded to 0.1, ascending.
// NaN magnitudes are skipped and no zero counts are synthesized.
func GutenbergRichter(table Table) []MagnitudeCount {
	counts := make(map[float64]int)
	for _, e := range table {
		if math.IsNaN(e.Magnitude) {
			continue
		}
		counts[RoundMagnitude(e.Magnitude)]++
	}

	out := make([]MagnitudeCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MagnitudeCount{Magnitude: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Magnitude < out[j].Magnitude })
	return out
}

// BucketCount is the number of events in one depth category and magnitude bin.
type BucketCount struct {
	Category DepthCategory `json:"category"`
	Bin      MagnitudeBin  `json:"bin"`
	Count    int           `json:"count"`
}

// MagnitudeDepthBuckets counts events per (depth category, magnitude bin),
// category-major. Events outside every bin are not counted and empty buckets
// are omitted.
func MagnitudeDepthBuckets(table Table) []BucketCount {
	var grid [3][MagnitudeBinCount]int
	for _, e := range table {
		if !e.HasBin {
			continue
		}
		grid[e.DepthCategory][e.MagnitudeBin]++
	}

	out := make([]BucketCount, 0)
	for _, c := range DepthCategories {
		for b := 0; b < MagnitudeBinCount; b++ {
			if n := grid[c][b]; n > 0 {
				out = append(out, BucketCount{Category: c, Bin: MagnitudeBin(b), Count: n})
			}
		}
	}
	return out
}

// SourceMagnitudes groups magnitudes reported by one source agency.
type SourceMagnitudes struct {
	Source     string    `json:"source"`
	Count      int       `json:"count"`
	Magnitudes []float64 `json:"magnitudes"`
	Summary    BoxStats  `json:"summary"`
}

// TopSourceMagnitudes ranks sources by event count, descending with ties in
// first-seen order, and returns the magnitudes of the top n. Blank sources
// are not ranked.
func TopSourceMagnitudes(table Table, n int) []SourceMagnitudes {
	index := make(map[string]int)
	var ranked []SourceMagnitudes
	for _, e := range table {
		if e.Source == "" {
			continue
		}
		i, ok := index[e.Source]
		if !ok {
			i = len(ranked)
			index[e.Source] = i
			ranked = append(ranked, SourceMagnitudes{Source: e.Source, Magnitudes: []float64{}})
		}
		ranked[i].Count++
		ranked[i].Magnitudes = append(ranked[i].Magnitudes, e.Magnitude)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })
	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	for i := range ranked {
		ranked[i].Summary = Summarize(ranked[i].Magnitudes)
	}
	if ranked == nil {
		ranked = []SourceMagnitudes{}
	}
	return ranked
}

// NuclearEvent is one nuclear test location for the map.
type NuclearEvent struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Magnitude float64   `json:"magnitude"`
	Timestamp time.Time `json:"timestamp"`
}

// NuclearExplosions returns events typed exactly "Nuclear Explosion", in
// table order.
func NuclearExplosions(table Table) []NuclearEvent {
	out := make([]NuclearEvent, 0)
	for _, e := range table {
		if e.Type != NuclearExplosionType {
			continue
		}
		out = append(out, NuclearEvent{
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			Magnitude: e.Magnitude,
			Timestamp: e.Timestamp,
		})
	}
	return out
}

// HourlyCounts counts events per UTC hour of day.
func HourlyCounts(table Table) [24]int {
	var counts [24]int
	for _, e := range table {
		counts[e.Hour]++
	}
	return counts
}

// TypeCount is the number of events of one catalog type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// TypeCounts counts events per type, descending with ties in first-seen order.
func TypeCounts(table Table) []TypeCount {
	index := make(map[string]int)
	out := make([]TypeCount, 0)
	for _, e := range table {
		i, ok := index[e.Type]
		if !ok {
			i = len(out)
			index[e.Type] = i
			out = append(out, TypeCount{Type: e.Type})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
