package mapbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// CachedGeocoder wraps a Geocoder with an in-memory expiring cache. Dashboard
// runs repeat the same nuclear test coordinates, so after the first run
// lookups are served locally until the entries expire.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *ttlcache.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
func NewCachedGeocoder(inner domain.Geocoder, ttl time.Duration, metrics *observability.Metrics) *CachedGeocoder {
	cache := ttlcache.New[string, domain.GeocodingResult](
		ttlcache.WithTTL[string, domain.GeocodingResult](ttl),
		ttlcache.WithDisableTouchOnHit[string, domain.GeocodingResult](),
	)
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := fmt.Sprintf("rev:%.4f,%.4f", lat, lon)
	if item := c.cache.Get(key); item != nil {
		c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
		return item.Value(), nil
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	result, err := c.inner.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		return result, err
	}
	// Only cache non-empty results so transient "not found" responses can be retried.
	if result.FormattedAddress != "" {
		c.cache.Set(key, result, ttlcache.DefaultTTL)
	}
	return result, nil
}

// Len returns the number of cached results.
func (c *CachedGeocoder) Len() int {
	return c.cache.Len()
}
