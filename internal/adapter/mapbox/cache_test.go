package mapbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// --- mock for cache tests ---

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ReverseGeocode(_ context.Context, _, _ float64) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

var semipalatinsk = domain.GeocodingResult{
	FormattedAddress: "East Kazakhstan, Kazakhstan",
	PlaceName:        "East Kazakhstan",
	Confidence:       1,
}

// --- CachedGeocoder tests ---

func TestCachedGeocoder_CacheHit(t *testing.T) {
	inner := &countingGeocoder{result: semipalatinsk}
	metrics := testMetrics()
	cached := NewCachedGeocoder(inner, time.Hour, metrics)

	r1, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)
	r2, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)

	assert.Equal(t, semipalatinsk, r1)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.Equal(t, 1, cached.Len())
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.GeocodeCache.WithLabelValues("miss")), 0)
}

func TestCachedGeocoder_DifferentCoordinatesMiss(t *testing.T) {
	inner := &countingGeocoder{result: semipalatinsk}
	cached := NewCachedGeocoder(inner, time.Hour, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 37.1, -116.0)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, time.Hour, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, inner.calls, "empty results should not be cached")
	assert.Zero(t, cached.Len())
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("mapbox API error: status 429")}
	cached := NewCachedGeocoder(inner, time.Hour, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.Error(t, err)
	_, err = cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedGeocoder_Expiry(t *testing.T) {
	inner := &countingGeocoder{result: semipalatinsk}
	cached := NewCachedGeocoder(inner, 20*time.Millisecond, testMetrics())

	_, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	_, err = cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls, "expired entries should be refetched")
}
