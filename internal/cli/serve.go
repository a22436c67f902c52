package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/quake-dashboard/internal/adapter/http"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			metrics := observability.NewMetrics()
			a := newApp(cfg, logger, metrics)

			srv := httpadapter.NewServer(cfg.HTTPAddr, a.pipeline, a.pipeline, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Start HTTP server.
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("http server error", "error", err)
					stop()
				}
			}()

			// Warm up readiness; a missing catalog only affects page requests.
			if _, err := a.pipeline.Run(ctx); err != nil {
				logger.Warn("initial pipeline run failed", "error", err, "catalog", cfg.CatalogPath)
			}

			<-ctx.Done()
			logger.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("http server shutdown error", "error", err)
			}
			if err := a.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}

			logger.Info("shutdown complete")
			return nil
		},
	}
}
