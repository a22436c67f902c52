package domain

import (
	"math"
	"sort"
)

// BoxStats is a five-number summary with Tukey whiskers, the shape a box or
// violin chart needs.
type BoxStats struct {
	Count        int       `json:"count"`
	Min          float64   `json:"min"`
	Q1           float64   `json:"q1"`
	Median       float64   `json:"median"`
	Q3           float64   `json:"q3"`
	Max          float64   `json:"max"`
	LowerWhisker float64   `json:"lower_whisker"`
	UpperWhisker float64   `json:"upper_whisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// Summarize computes BoxStats over values, ignoring NaN. Quantiles use linear
// interpolation between closest ranks. Whiskers extend to the most extreme
// values within 1.5 IQR of the quartiles; values beyond are outliers, in
// ascending order. An input with no finite values yields a zero BoxStats.
func Summarize(values []float64) BoxStats {
	sorted := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			sorted = append(sorted, v)
		}
	}
	if len(sorted) == 0 {
		return BoxStats{}
	}
	sort.Float64s(sorted)

	s := BoxStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}

	iqr := s.Q3 - s.Q1
	lowFence := s.Q1 - 1.5*iqr
	highFence := s.Q3 + 1.5*iqr

	s.LowerWhisker = s.Q1
	s.UpperWhisker = s.Q3
	for _, v := range sorted {
		if v >= lowFence {
			s.LowerWhisker = v
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= highFence {
			s.UpperWhisker = sorted[i]
			break
		}
	}
	for _, v := range sorted {
		if v < lowFence || v > highFence {
			s.Outliers = append(s.Outliers, v)
		}
	}
	return s
}

// quantile expects sorted, non-empty input.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
