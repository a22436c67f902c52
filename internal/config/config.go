package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	CatalogPath     string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	PipelineWorkers int
	TopSources      int
	EnergyLandmarks int
	Aftershock      domain.AftershockWindow

	// Kafka view publishing configuration.
	KafkaEnabled    bool
	KafkaBrokers    []string
	KafkaViewsTopic string

	// Mapbox reverse geocoding configuration.
	MapboxToken    string
	MapboxEnabled  bool
	MapboxTimeout  time.Duration
	MapboxCacheTTL time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	workers, err := parseIntInRange("PIPELINE_WORKERS", 4, 1, 64)
	if err != nil {
		return nil, err
	}
	topSources, err := parseIntInRange("TOP_SOURCES", 5, 1, 100)
	if err != nil {
		return nil, err
	}
	landmarks, err := parseIntInRange("ENERGY_LANDMARKS", 4, 0, 100)
	if err != nil {
		return nil, err
	}

	window, err := loadAftershockWindow()
	if err != nil {
		return nil, err
	}

	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	mapboxCacheTTL, err := parsePositiveDuration("MAPBOX_CACHE_TTL", "24h")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		CatalogPath:     sharedcfg.EnvOrDefault("CATALOG_PATH", "earthquakes.csv"),
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PipelineWorkers: workers,
		TopSources:      topSources,
		EnergyLandmarks: landmarks,
		Aftershock:      window,

		KafkaEnabled:    os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:    sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaViewsTopic: sharedcfg.EnvOrDefault("KAFKA_VIEWS_TOPIC", "quake-dashboard-views"),

		MapboxToken:    mapboxToken,
		MapboxEnabled:  mapboxEnabled,
		MapboxTimeout:  mapboxTimeout,
		MapboxCacheTTL: mapboxCacheTTL,
	}

	if cfg.CatalogPath == "" {
		return nil, errors.New("CATALOG_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaViewsTopic == "" {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_VIEWS_TOPIC is empty")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// loadAftershockWindow reads the mainshock, time window and search box. The
// defaults reproduce the 2011 Tohoku sequence.
func loadAftershockWindow() (domain.AftershockWindow, error) {
	def := domain.TohokuWindow()

	mainshock, err := time.Parse(time.RFC3339, sharedcfg.EnvOrDefault("AFTERSHOCK_MAINSHOCK_TIME", def.Mainshock.Format(time.RFC3339)))
	if err != nil {
		return domain.AftershockWindow{}, errors.New("invalid AFTERSHOCK_MAINSHOCK_TIME")
	}
	window, err := parsePositiveDuration("AFTERSHOCK_WINDOW", "720h")
	if err != nil {
		return domain.AftershockWindow{}, err
	}

	mainshockMag, err := parseFloat("AFTERSHOCK_MAINSHOCK_MAGNITUDE", def.MainshockMagnitude)
	if err != nil {
		return domain.AftershockWindow{}, err
	}
	centerLat, err := parseFloat("AFTERSHOCK_CENTER_LAT", (def.MinLat+def.MaxLat)/2)
	if err != nil {
		return domain.AftershockWindow{}, err
	}
	centerLon, err := parseFloat("AFTERSHOCK_CENTER_LON", (def.MinLon+def.MaxLon)/2)
	if err != nil {
		return domain.AftershockWindow{}, err
	}
	radius, err := parseFloat("AFTERSHOCK_RADIUS_DEG", (def.MaxLat-def.MinLat)/2)
	if err != nil {
		return domain.AftershockWindow{}, err
	}
	if radius <= 0 {
		return domain.AftershockWindow{}, errors.New("AFTERSHOCK_RADIUS_DEG must be positive")
	}
	maxMag, err := parseFloat("AFTERSHOCK_MAX_MAGNITUDE", def.MaxMagnitude)
	if err != nil {
		return domain.AftershockWindow{}, err
	}

	return domain.NewAftershockWindow(
		sharedcfg.EnvOrDefault("AFTERSHOCK_NAME", def.Name),
		mainshock, mainshockMag, window,
		centerLat, centerLon, radius,
		maxMag,
	), nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be an integer in [%d, %d]", key, lo, hi)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
