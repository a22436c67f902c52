package http

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	chartrender "github.com/couchcryptid/quake-dashboard/internal/render"
)

// DashboardSource builds a fresh dashboard for each request.
type DashboardSource interface {
	Run(ctx context.Context) (*domain.Dashboard, error)
}

// Server serves the dashboard page, the views API, and health, readiness and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	source     DashboardSource
	logger     *slog.Logger
}

// NewServer creates an HTTP server. ready is usually the same pipeline as source.
func NewServer(addr string, source DashboardSource, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source: source,
		logger: logger,
	}

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/views/{name}", s.handleView)
	r.Route("/api/views", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/", s.handleAPIDashboard)
		r.Get("/{name}", s.handleAPIView)
	})

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Handle("/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.dashboard(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chartrender.Page(&buf, d); err != nil {
		s.logger.Error("render dashboard failed", "error", err)
		writeErrorPage(w, http.StatusInternalServerError, "The dashboard could not be rendered.")
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownView(name) {
		writeErrorPage(w, http.StatusNotFound, "No view named "+name+".")
		return
	}

	d, ok := s.dashboard(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chartrender.View(&buf, name, d); err != nil {
		s.logger.Error("render view failed", "view", name, "error", err)
		writeErrorPage(w, http.StatusInternalServerError, "The view could not be rendered.")
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) handleAPIDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.source.Run(r.Context())
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}
	render.JSON(w, r, d)
}

func (s *Server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if !knownView(name) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"error": "unknown view: " + name})
		return
	}

	d, err := s.source.Run(r.Context())
	if err != nil {
		s.renderAPIError(w, r, err)
		return
	}

	v, _ := d.Views.Lookup(name)
	render.JSON(w, r, map[string]any{
		"name":         name,
		"run_id":       d.RunID,
		"generated_at": d.GeneratedAt,
		"view":         v,
	})
}

func knownView(name string) bool {
	var v domain.Views
	_, ok := v.Lookup(name)
	return ok
}

// dashboard runs the source and writes the error page on failure.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) (*domain.Dashboard, bool) {
	d, err := s.source.Run(r.Context())
	if err == nil {
		return d, true
	}
	if errors.Is(err, domain.ErrSourceNotFound) {
		writeErrorPage(w, http.StatusServiceUnavailable, sourceNotFoundMessage)
		return nil, false
	}
	s.logger.Error("dashboard run failed", "error", err)
	writeErrorPage(w, http.StatusInternalServerError, "The earthquake catalog could not be processed.")
	return nil, false
}

func (s *Server) renderAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "catalog could not be processed"
	if errors.Is(err, domain.ErrSourceNotFound) {
		status = http.StatusServiceUnavailable
		msg = "catalog source not found"
	} else {
		s.logger.Error("api run failed", "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Debug("request completed",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}
