//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_ReverseGeocode_Semipalatinsk(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)

	assert.Contains(t, result.FormattedAddress, "Kazakhstan")
	assert.NotEmpty(t, result.PlaceName)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestSmoke_ReverseGeocode_NevadaTestSite(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ReverseGeocode(context.Background(), 37.1, -116.05)
	require.NoError(t, err)
	assert.Contains(t, result.FormattedAddress, "Nevada")
}

func TestSmoke_ReverseGeocode_OpenOcean(t *testing.T) {
	c := smokeClient(t)

	// Mururoa-like open ocean coordinates may have no region; the client must
	// not treat an empty response as an error.
	_, err := c.ReverseGeocode(context.Background(), -21.8, -138.9)
	require.NoError(t, err)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, time.Minute, observability.NewMetricsForTesting())

	// First call: cache miss, real API call.
	r1, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)

	// Second call: cache hit, no API call.
	r2, err := cached.ReverseGeocode(context.Background(), 49.8, 78.1)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
