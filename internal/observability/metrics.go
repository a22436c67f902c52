package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard pipeline.
type Metrics struct {
	RunsTotal   *prometheus.CounterVec // labels: outcome={success,source_not_found,error}
	RowsRead    prometheus.Counter
	RowsDropped prometheus.Counter
	TableRows   prometheus.Gauge

	RunDuration   prometheus.Histogram
	StageDuration *prometheus.HistogramVec // labels: stage

	// Sink and enrichment metrics.
	ViewsPublished  prometheus.Counter
	PublishErrors   prometheus.Counter
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	return NewMetricsWith(prometheus.DefaultRegisterer)
}

// NewMetricsWith creates all pipeline metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetricsWith(reg prometheus.Registerer) *Metrics {
	m := newMetrics()
	if reg == nil {
		return m
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RowsRead,
		m.RowsDropped,
		m.TableRows,
		m.RunDuration,
		m.StageDuration,
		m.ViewsPublished,
		m.PublishErrors,
		m.GeocodeRequests,
		m.GeocodeCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewMetricsWith(nil)
}

func newMetrics() *Metrics {
	return &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "runs_total",
			Help:      "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		RowsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "rows_read_total",
			Help:      "Total catalog rows read from the source.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "rows_dropped_total",
			Help:      "Total catalog rows dropped for unparseable timestamps.",
		}),
		TableRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quake_dashboard",
			Name:      "table_rows",
			Help:      "Rows in the most recent normalized table.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete load-normalize-derive run.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quake_dashboard",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each view derivation stage.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"stage"}),
		ViewsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "views_published_total",
			Help:      "Total view messages written to the views topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "publish_errors_total",
			Help:      "Total failed view publish attempts.",
		}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_requests_total",
			Help:      "Reverse geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quake_dashboard",
			Name:      "geocode_cache_total",
			Help:      "Reverse geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
