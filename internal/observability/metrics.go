package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hurricane_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	// Dataset loading metrics.
	SourceFetches       *prometheus.CounterVec   // labels: document={hurricanes,summary,world}, outcome={success,error}
	SourceFetchDuration *prometheus.HistogramVec // labels: document
	DatasetLoaded       prometheus.Gauge
	HurricanesLoaded    prometheus.Gauge

	// Cross-filter metrics.
	Controls       *prometheus.CounterVec   // labels: control
	RenderDuration *prometheus.HistogramVec // labels: chart={map,timeline,category}
	VisibleStorms  prometheus.Gauge
	MapCache       *prometheus.CounterVec // labels: result={hit,miss}

	// Filter event sink metrics.
	EventsPublished     prometheus.Counter
	EventPublishErrors  prometheus.Counter
	EventSinkEnabled    prometheus.Gauge
	ChartExports        *prometheus.CounterVec // labels: chart, format
	ChartExportFailures prometheus.Counter
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(
		m.SourceFetches,
		m.SourceFetchDuration,
		m.DatasetLoaded,
		m.HurricanesLoaded,
		m.Controls,
		m.RenderDuration,
		m.VisibleStorms,
		m.MapCache,
		m.EventsPublished,
		m.EventPublishErrors,
		m.EventSinkEnabled,
		m.ChartExports,
		m.ChartExportFailures,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_fetches_total",
			Help:      help("Startup document fetches by document and outcome."),
		}, []string{"document", "outcome"}),
		SourceFetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      help("Duration of a single startup document fetch."),
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"document"}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_loaded",
			Help:      help("1 when the dataset loaded successfully, 0 otherwise."),
		}),
		HurricanesLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hurricanes_loaded",
			Help:      help("Number of storm records held in memory."),
		}),
		Controls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "controls_total",
			Help:      help("Filter control mutations by control."),
		}, []string{"control"}),
		RenderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      help("Time to aggregate and lay out one chart."),
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"chart"}),
		VisibleStorms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_storms",
			Help:      help("Storms matching the current filter."),
		}),
		MapCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "map_cache_total",
			Help:      help("Map view cache lookups by result."),
		}, []string{"result"}),
		EventsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_events_published_total",
			Help:      help("Filter events written to the event sink."),
		}),
		EventPublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filter_event_publish_errors_total",
			Help:      help("Filter events the sink failed to write."),
		}),
		EventSinkEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "event_sink_enabled",
			Help:      help("1 when filter events are published, 0 otherwise."),
		}),
		ChartExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_exports_total",
			Help:      help("Static chart exports by chart and format."),
		}, []string{"chart", "format"}),
		ChartExportFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_export_failures_total",
			Help:      help("Static chart exports that could not be rendered."),
		}),
	}
}

// ObserveMapCache records one map cache lookup.
func (m *Metrics) ObserveMapCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.MapCache.WithLabelValues(result).Inc()
}
