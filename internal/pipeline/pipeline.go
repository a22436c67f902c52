package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// CatalogLoader reads every raw row of the earthquake catalog.
type CatalogLoader interface {
	Load(ctx context.Context) ([]domain.RawRecord, error)
}

// ViewSink receives each completed dashboard.
type ViewSink interface {
	PublishViews(ctx context.Context, d *domain.Dashboard) error
}

// Pipeline turns the catalog into a Dashboard: load, normalize, derive.
type Pipeline struct {
	loader   CatalogLoader
	geocoder domain.Geocoder
	sink     ViewSink
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool

	workers    int
	topSources int
	landmarks  int
	window     domain.AftershockWindow
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithGeocoder enables reverse geocoding of nuclear test sites.
func WithGeocoder(g domain.Geocoder) Option {
	return func(p *Pipeline) { p.geocoder = g }
}

// WithSink publishes every successful dashboard to s.
func WithSink(s ViewSink) Option {
	return func(p *Pipeline) { p.sink = s }
}

// WithWorkers sets the number of stages derived in parallel.
func WithWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithTopSources sets how many source agencies the ranking keeps.
func WithTopSources(n int) Option {
	return func(p *Pipeline) { p.topSources = n }
}

// WithEnergyLandmarks sets how many landmark events the energy view marks.
func WithEnergyLandmarks(n int) Option {
	return func(p *Pipeline) { p.landmarks = n }
}

// WithAftershockWindow replaces the default Tohoku window.
func WithAftershockWindow(w domain.AftershockWindow) Option {
	return func(p *Pipeline) { p.window = w }
}

// New creates a Pipeline reading from loader.
func New(loader CatalogLoader, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:     loader,
		logger:     logger,
		metrics:    metrics,
		workers:    4,
		topSources: 5,
		landmarks:  4,
		window:     domain.TohokuWindow(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once a run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// Run loads the catalog and derives every view. A missing catalog returns an
// error wrapping domain.ErrSourceNotFound and no dashboard.
func (p *Pipeline) Run(ctx context.Context) (*domain.Dashboard, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	records, err := p.loader.Load(ctx)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrSourceNotFound) {
			outcome = "source_not_found"
		}
		p.metrics.RunsTotal.WithLabelValues(outcome).Inc()
		logger.Error("catalog load failed", "error", err)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	table, report := domain.Normalize(records)
	p.metrics.RowsRead.Add(float64(report.RawRows))
	p.metrics.RowsDropped.Add(float64(report.Dropped))
	p.metrics.TableRows.Set(float64(len(table)))
	if report.Dropped > 0 {
		logger.Warn("dropped rows with unparseable dates",
			"dropped", report.Dropped,
			"first_lines", report.DroppedLines,
		)
	}

	views, err := p.derive(ctx, table)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	d := &domain.Dashboard{
		RunID:       runID,
		GeneratedAt: domain.Now(),
		Report:      report,
		Views:       views,
	}
	d.NuclearSiteLabels = domain.LabelNuclearSites(ctx, views.Nuclear, p.geocoder, logger)

	if p.sink != nil {
		if err := p.sink.PublishViews(ctx, d); err != nil {
			logger.Warn("view publish failed", "error", err)
		}
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	logger.Info("pipeline run complete",
		"rows", report.RawRows,
		"retained", report.Retained,
		"duration", time.Since(start),
	)
	return d, nil
}

// derive runs every view stage against the shared read-only table. Each stage
// writes a distinct field of Views.
func (p *Pipeline) derive(ctx context.Context, table domain.Table) (domain.Views, error) {
	var v domain.Views
	stages := []struct {
		name string
		run  func()
	}{
		{domain.ViewDecades, func() { v.Decades = domain.DecadeCounts(table) }},
		{domain.ViewEnergy, func() { v.Energy = domain.CumulativeEnergy(table, p.landmarks) }},
		{domain.ViewDepthMagnitudes, func() { v.DepthMagnitudes = domain.DepthMagnitudes(table) }},
		{domain.ViewGutenbergRichter, func() { v.GutenbergRichter = domain.GutenbergRichter(table) }},
		{domain.ViewAftershocks, func() { v.Aftershocks = domain.Aftershocks(table, p.window) }},
		{domain.ViewBuckets, func() { v.Buckets = domain.MagnitudeDepthBuckets(table) }},
		{domain.ViewTopSources, func() { v.TopSources = domain.TopSourceMagnitudes(table, p.topSources) }},
		{domain.ViewNuclear, func() { v.Nuclear = domain.NuclearExplosions(table) }},
		{domain.ViewHourly, func() { v.Hourly = domain.HourlyCounts(table) }},
		{domain.ViewTypes, func() { v.Types = domain.TypeCounts(table) }},
	}

	pool := pond.NewPool(p.workers)
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	for _, s := range stages {
		group.Submit(func() {
			start := time.Now()
			s.run()
			p.metrics.StageDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
		})
	}
	if err := group.Wait(); err != nil {
		return domain.Views{}, fmt.Errorf("derive views: %w", err)
	}
	return v, nil
}
