package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// maxDroppedLines caps how many offending line numbers a NormalizeReport keeps.
const maxDroppedLines = 20

// dateLayouts are tried in order. The first two carry a clock component.
var dateLayouts = []struct {
	layout   string
	hasClock bool
}{
	{"2006-01-02T15:04:05.000Z", true},
	{time.RFC3339, true},
	{"2006-01-02 15:04:05", true},
	{"01/02/2006", false},
	{"2006-01-02", false},
}

// Normalize parses raw catalog rows into a Table. Rows whose date cannot be
// parsed are excluded and recorded in the report; every other row is kept
// regardless of its numeric content.
func Normalize(records []RawRecord) (Table, NormalizeReport) {
	table := make(Table, 0, len(records))
	report := NormalizeReport{RawRows: len(records)}

	for _, rec := range records {
		ts, ok := parseTimestamp(rec.Date, rec.Time)
		if !ok {
			report.Dropped++
			if len(report.DroppedLines) < maxDroppedLines {
				report.DroppedLines = append(report.DroppedLines, rec.Line)
			}
			continue
		}
		table = append(table, NewEvent(rec, ts))
	}

	report.Retained = len(table)
	return table, report
}

// NewEvent builds an Event from a raw row and its already-parsed timestamp,
// computing every derived field.
func NewEvent(rec RawRecord, ts time.Time) Event {
	magnitude := parseFloatOrNaN(rec.Magnitude)
	depth := parseFloatOrNaN(rec.Depth)
	bin, hasBin := ClassifyMagnitude(magnitude)

	return Event{
		Line:          rec.Line,
		Timestamp:     ts,
		Latitude:      parseFloatOrNaN(rec.Latitude),
		Longitude:     parseFloatOrNaN(rec.Longitude),
		Magnitude:     magnitude,
		Depth:         depth,
		Source:        strings.TrimSpace(rec.Source),
		Type:          strings.TrimSpace(rec.Type),
		Year:          ts.Year(),
		Decade:        DecadeOf(ts.Year()),
		Hour:          ts.Hour(),
		Energy:        Energy(magnitude),
		DepthCategory: ClassifyDepth(depth),
		MagnitudeBin:  bin,
		HasBin:        hasBin,
	}
}

// parseTimestamp reads the Date column, borrowing the clock from the Time
// column when Date is date-only. All results are UTC.
func parseTimestamp(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}

	for _, l := range dateLayouts {
		ts, err := time.Parse(l.layout, date)
		if err != nil {
			continue
		}
		ts = ts.UTC()
		if !l.hasClock {
			ts = withClock(ts, clock)
		}
		return ts, true
	}
	return time.Time{}, false
}

// withClock applies an "HH:MM:SS" clock to a midnight timestamp. An invalid
// clock leaves the timestamp at midnight.
func withClock(day time.Time, clock string) time.Time {
	c, err := time.Parse("15:04:05", strings.TrimSpace(clock))
	if err != nil {
		return day
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC)
}

// parseFloatOrNaN parses a string as float64, returning NaN on failure.
func parseFloatOrNaN(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// DecadeOf floors a year to its decade, e.g. 1969 -> 1960, -5 -> -10.
func DecadeOf(year int) int {
	d := year / 10
	if year%10 != 0 && year < 0 {
		d--
	}
	return d * 10
}

// Energy returns the relative energy proxy 10^(1.5*magnitude).
func Energy(magnitude float64) float64 {
	return math.Pow(10, 1.5*magnitude)
}

// ClassifyDepth maps a depth in km to its category. Shallow is <70,
// Intermediate is [70, 300], anything else (including NaN) is Deep.
func ClassifyDepth(depth float64) DepthCategory {
	switch {
	case depth < 70:
		return Shallow
	case depth <= 300:
		return Intermediate
	default:
		return Deep
	}
}

// ClassifyMagnitude returns the bin containing magnitude. ok is false for
// magnitudes outside [5.5, 9.5) and for NaN.
func ClassifyMagnitude(magnitude float64) (bin MagnitudeBin, ok bool) {
	for i := 0; i < MagnitudeBinCount; i++ {
		if magnitude >= MagnitudeBinEdges[i] && magnitude < MagnitudeBinEdges[i+1] {
			return MagnitudeBin(i), true
		}
	}
	return 0, false
}

// Label renders the bin as "5.5 - 6.0".
func (b MagnitudeBin) Label() string {
	i := int(b)
	if i < 0 || i >= MagnitudeBinCount {
		return ""
	}
	return strconv.FormatFloat(MagnitudeBinEdges[i], 'f', 1, 64) + " - " +
		strconv.FormatFloat(MagnitudeBinEdges[i+1], 'f', 1, 64)
}

// MarshalText encodes the bin by its label.
func (b MagnitudeBin) MarshalText() ([]byte, error) {
	return []byte(b.Label()), nil
}

// MagnitudeBinLabels returns every bin label in order.
func MagnitudeBinLabels() []string {
	labels := make([]string, MagnitudeBinCount)
	for i := range labels {
		labels[i] = MagnitudeBin(i).Label()
	}
	return labels
}
