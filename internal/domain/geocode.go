package domain

import (
	"context"
	"log/slog"
	"math"
)

// LabelNuclearSites returns a place name for each nuclear event, in the same
// order. It returns nil when geocoder is nil. Failed or empty lookups yield an
// empty label so one bad coordinate never hides the rest of the map.
func LabelNuclearSites(ctx context.Context, events []NuclearEvent, geocoder Geocoder, logger *slog.Logger) []string {
	if geocoder == nil || len(events) == 0 {
		return nil
	}

	labels := make([]string, len(events))
	for i, e := range events {
		if math.IsNaN(e.Latitude) || math.IsNaN(e.Longitude) {
			continue
		}
		result, err := geocoder.ReverseGeocode(ctx, e.Latitude, e.Longitude)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"lat", e.Latitude,
				"lon", e.Longitude,
				"error", err,
			)
			continue
		}
		labels[i] = result.PlaceName
		if labels[i] == "" {
			labels[i] = result.FormattedAddress
		}
	}
	return labels
}
