package domain

import (
	"encoding/json"
	"math"
)

// jsonFloat encodes NaN and infinities as null, which encoding/json rejects.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func jsonFloats(values []float64) []jsonFloat {
	out := make([]jsonFloat, len(values))
	for i, v := range values {
		out[i] = jsonFloat(v)
	}
	return out
}

func (p EnergyPoint) MarshalJSON() ([]byte, error) {
	type alias EnergyPoint
	return json.Marshal(struct {
		alias
		Cumulative jsonFloat `json:"cumulative"`
	}{alias(p), jsonFloat(p.Cumulative)})
}

func (l EnergyLandmark) MarshalJSON() ([]byte, error) {
	type alias EnergyLandmark
	return json.Marshal(struct {
		alias
		Magnitude  jsonFloat `json:"magnitude"`
		Energy     jsonFloat `json:"energy"`
		Cumulative jsonFloat `json:"cumulative"`
	}{alias(l), jsonFloat(l.Magnitude), jsonFloat(l.Energy), jsonFloat(l.Cumulative)})
}

func (c CategoryMagnitudes) MarshalJSON() ([]byte, error) {
	type alias CategoryMagnitudes
	return json.Marshal(struct {
		alias
		Magnitudes []jsonFloat `json:"magnitudes"`
	}{alias(c), jsonFloats(c.Magnitudes)})
}

func (s SourceMagnitudes) MarshalJSON() ([]byte, error) {
	type alias SourceMagnitudes
	return json.Marshal(struct {
		alias
		Magnitudes []jsonFloat `json:"magnitudes"`
	}{alias(s), jsonFloats(s.Magnitudes)})
}

func (n NuclearEvent) MarshalJSON() ([]byte, error) {
	type alias NuclearEvent
	return json.Marshal(struct {
		alias
		Latitude  jsonFloat `json:"latitude"`
		Longitude jsonFloat `json:"longitude"`
		Magnitude jsonFloat `json:"magnitude"`
	}{alias(n), jsonFloat(n.Latitude), jsonFloat(n.Longitude), jsonFloat(n.Magnitude)})
}

func (m MagnitudeCount) MarshalJSON() ([]byte, error) {
	type alias MagnitudeCount
	return json.Marshal(struct {
		alias
		Magnitude jsonFloat `json:"magnitude"`
	}{alias(m), jsonFloat(m.Magnitude)})
}

func (p AftershockPoint) MarshalJSON() ([]byte, error) {
	type alias AftershockPoint
	return json.Marshal(struct {
		alias
		Magnitude jsonFloat `json:"magnitude"`
	}{alias(p), jsonFloat(p.Magnitude)})
}

func (s BoxStats) MarshalJSON() ([]byte, error) {
	type alias BoxStats
	return json.Marshal(struct {
		alias
		Min          jsonFloat   `json:"min"`
		Q1           jsonFloat   `json:"q1"`
		Median       jsonFloat   `json:"median"`
		Q3           jsonFloat   `json:"q3"`
		Max          jsonFloat   `json:"max"`
		LowerWhisker jsonFloat   `json:"lower_whisker"`
		UpperWhisker jsonFloat   `json:"upper_whisker"`
		Outliers     []jsonFloat `json:"outliers,omitempty"`
	}{
		alias(s),
		jsonFloat(s.Min), jsonFloat(s.Q1), jsonFloat(s.Median), jsonFloat(s.Q3), jsonFloat(s.Max),
		jsonFloat(s.LowerWhisker), jsonFloat(s.UpperWhisker),
		jsonFloats(s.Outliers),
	})
}
