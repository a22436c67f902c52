// Package cli implements the quakedash command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-dashboard/internal/adapter/catalog"
	kafkaadapter "github.com/couchcryptid/quake-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/quake-dashboard/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-dashboard/internal/config"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
	"github.com/couchcryptid/quake-dashboard/internal/pipeline"
)

type ExitCode int

const (
	exitCodeSuccess = 0
	exitCodeError   = 1
)

// Run executes the command line and returns the process exit code.
func Run() ExitCode {
	if err := NewRootCmd().Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

// NewRootCmd builds the quakedash command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quakedash",
		Short:         "Earthquake catalog dashboard.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, err := cmd.Flags().GetString("env-file")
			if err != nil {
				return err
			}
			return loadEnvFile(envFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringP("catalog", "c", "", "Catalog file (overrides CATALOG_PATH)")

	rootCmd.AddCommand(
		newServeCmd(),
		newSummarizeCmd(),
		newViewsCmd(),
	)
	return rootCmd
}

// loadEnvFile applies a dotenv file without overriding variables already set.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the environment and applies the --catalog override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	path, err := cmd.Flags().GetString("catalog")
	if err != nil {
		return nil, err
	}
	if path != "" {
		cfg.CatalogPath = path
	}
	return cfg, nil
}

// app is the wired pipeline plus the adapters that need closing.
type app struct {
	pipeline *pipeline.Pipeline
	writer   *kafkaadapter.Writer
	logger   *slog.Logger
}

func (a *app) Close() error {
	if a.writer == nil {
		return nil
	}
	return a.writer.Close()
}

func newApp(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *app {
	a := &app{logger: logger}
	opts := []pipeline.Option{
		pipeline.WithWorkers(cfg.PipelineWorkers),
		pipeline.WithTopSources(cfg.TopSources),
		pipeline.WithEnergyLandmarks(cfg.EnergyLandmarks),
		pipeline.WithAftershockWindow(cfg.Aftershock),
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		var geocoder domain.Geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheTTL, metrics)
		opts = append(opts, pipeline.WithGeocoder(geocoder))
		logger.Info("mapbox geocoding enabled", "cache_ttl", cfg.MapboxCacheTTL, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Debug("mapbox geocoding disabled")
	}

	if cfg.KafkaEnabled {
		a.writer = kafkaadapter.NewWriter(cfg, logger, metrics)
		opts = append(opts, pipeline.WithSink(a.writer))
		logger.Info("kafka view publishing enabled", "topic", cfg.KafkaViewsTopic, "brokers", cfg.KafkaBrokers)
	}

	loader := catalog.NewFileLoader(cfg.CatalogPath, logger)
	a.pipeline = pipeline.New(loader, logger, metrics, opts...)
	return a
}

// cliLogger logs to stderr so command output on stdout stays clean.
func cliLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return observability.NewLoggerTo(w, cfg.LogLevel, cfg.LogFormat)
}
