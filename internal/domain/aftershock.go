package domain

import (
	"sort"
	"time"
)

// AftershockWindow selects the events following a mainshock: a half-open time
// window, a closed lat/lon box, and a strict magnitude ceiling that keeps the
// mainshock out of its own sequence.
type AftershockWindow struct {
	Name               string        `json:"name"`
	Mainshock          time.Time     `json:"mainshock"`
	MainshockMagnitude float64       `json:"mainshock_magnitude"`
	Duration           time.Duration `json:"duration"`
	MinLat             float64       `json:"min_lat"`
	MaxLat             float64       `json:"max_lat"`
	MinLon             float64       `json:"min_lon"`
	MaxLon             float64       `json:"max_lon"`
	MaxMagnitude       float64       `json:"max_magnitude"`
}

// NewAftershockWindow builds a window whose box extends radiusDeg degrees in
// each direction from the epicenter.
func NewAftershockWindow(name string, mainshock time.Time, mainshockMag float64, duration time.Duration,
	centerLat, centerLon, radiusDeg, maxMagnitude float64) AftershockWindow {
	return AftershockWindow{
		Name:               name,
		Mainshock:          mainshock.UTC(),
		MainshockMagnitude: mainshockMag,
		Duration:           duration,
		MinLat:             centerLat - radiusDeg,
		MaxLat:             centerLat + radiusDeg,
		MinLon:             centerLon - radiusDeg,
		MaxLon:             centerLon + radiusDeg,
		MaxMagnitude:       maxMagnitude,
	}
}

// TohokuWindow is the 30-day sequence after the 2011-03-11 M9.1 Tohoku
// earthquake, epicenter 38.322N 142.369E.
func TohokuWindow() AftershockWindow {
	return NewAftershockWindow(
		"2011 Tohoku",
		time.Date(2011, time.March, 11, 0, 0, 0, 0, time.UTC),
		9.1,
		30*24*time.Hour,
		38.322, 142.369, 5,
		9.0,
	)
}

// End is the exclusive end of the time window.
func (w AftershockWindow) End() time.Time {
	return w.Mainshock.Add(w.Duration)
}

// Contains reports whether e belongs to the sequence.
func (w AftershockWindow) Contains(e Event) bool {
	if e.Timestamp.Before(w.Mainshock) || !e.Timestamp.Before(w.End()) {
		return false
	}
	if !(e.Latitude >= w.MinLat && e.Latitude <= w.MaxLat) {
		return false
	}
	if !(e.Longitude >= w.MinLon && e.Longitude <= w.MaxLon) {
		return false
	}
	return e.Magnitude < w.MaxMagnitude
}

// AftershockPoint is one event in an aftershock scatter.
type AftershockPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Magnitude float64   `json:"magnitude"`
}

// AftershockView is the filtered sequence with the window that produced it.
type AftershockView struct {
	Window AftershockWindow  `json:"window"`
	Points []AftershockPoint `json:"points"`
}

// Aftershocks filters the table to the window, in time order (ties keep
// input order).
func Aftershocks(table Table, w AftershockWindow) AftershockView {
	points := make([]AftershockPoint, 0)
	for _, e := range table {
		if w.Contains(e) {
			points = append(points, AftershockPoint{Timestamp: e.Timestamp, Magnitude: e.Magnitude})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	return AftershockView{Window: w, Points: points}
}
