package domain

import (
	"errors"
	"time"
)

// ErrSourceNotFound is returned when the catalog source does not exist. It is
// the only condition that aborts a run.
var ErrSourceNotFound = errors.New("catalog source not found")

// NuclearExplosionType is the catalog Type value for underground nuclear tests.
const NuclearExplosionType = "Nuclear Explosion"

// RawRecord is one catalog row before parsing. All fields are kept as the
// strings found in the source file.
type RawRecord struct {
	Line      int    `json:"line"`
	Date      string `json:"Date"`
	Time      string `json:"Time"`
	Latitude  string `json:"Latitude"`
	Longitude string `json:"Longitude"`
	Type      string `json:"Type"`
	Depth     string `json:"Depth"`
	Magnitude string `json:"Magnitude"`
	Source    string `json:"Source"`
}

// DepthCategory classifies hypocenter depth.
type DepthCategory int

const (
	Shallow DepthCategory = iota
	Intermediate
	Deep
)

// DepthCategories lists every category in display order.
var DepthCategories = []DepthCategory{Shallow, Intermediate, Deep}

func (c DepthCategory) String() string {
	switch c {
	case Shallow:
		return "Shallow"
	case Intermediate:
		return "Intermediate"
	default:
		return "Deep"
	}
}

// MarshalText encodes the category by name so views serialize readably.
func (c DepthCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MagnitudeBin indexes one of the fixed magnitude ranges in MagnitudeBinEdges.
type MagnitudeBin int

// MagnitudeBinEdges are the left-inclusive bin boundaries. Bin i covers
// [MagnitudeBinEdges[i], MagnitudeBinEdges[i+1]).
var MagnitudeBinEdges = []float64{5.5, 6.0, 6.5, 7.0, 7.5, 8.0, 8.5, 9.5}

// MagnitudeBinCount is the number of magnitude bins.
const MagnitudeBinCount = 7

// Event is a normalized catalog row with its derived fields.
type Event struct {
	Line          int           `json:"line"`
	Timestamp     time.Time     `json:"timestamp"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Magnitude     float64       `json:"magnitude"`
	Depth         float64       `json:"depth"`
	Source        string        `json:"source"`
	Type          string        `json:"type"`
	Year          int           `json:"year"`
	Decade        int           `json:"decade"`
	Hour          int           `json:"hour"`
	Energy        float64       `json:"energy"`
	DepthCategory DepthCategory `json:"depth_category"`
	MagnitudeBin  MagnitudeBin  `json:"magnitude_bin"`
	HasBin        bool          `json:"has_bin"`
}

// Table is the normalized catalog in input order. It is built once per run.
type Table []Event

// NormalizeReport summarizes what normalization kept and dropped.
type NormalizeReport struct {
	RawRows      int   `json:"raw_rows"`
	Retained     int   `json:"retained"`
	Dropped      int   `json:"dropped"`
	DroppedLines []int `json:"dropped_lines,omitempty"`
}

// Dashboard is the result of one pipeline run: the derived views plus
// metadata about the run that produced them.
type Dashboard struct {
	RunID       string          `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Report      NormalizeReport `json:"report"`
	Views       Views           `json:"views"`

	// NuclearSiteLabels holds a place name per Views.Nuclear entry when
	// reverse geocoding is enabled. Empty strings mark lookups that failed.
	NuclearSiteLabels []string `json:"nuclear_site_labels,omitempty"`
}
