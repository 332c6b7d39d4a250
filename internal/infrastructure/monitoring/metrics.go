package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GriffinCanCode/AgentOS/uirender/internal/shared/types"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Render metrics
	NodesRendered  *prometheus.CounterVec
	Normalizations *prometheus.CounterVec
	RenderDuration prometheus.Histogram

	// Catalog metrics
	CatalogComponents prometheus.Gauge

	// Agent metrics
	AgentJobs     *prometheus.CounterVec
	AgentDuration prometheus.Histogram

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests   int64   `json:"total_requests"`
	TotalErrors     int64   `json:"total_errors"`
	NodesRendered   int64   `json:"nodes_rendered"`
	NodesFallback   int64   `json:"nodes_fallback"`
	NodesFailed     int64   `json:"nodes_failed"`
	AverageRenderMs float64 `json:"average_render_ms"`
	UptimeSeconds   float64 `json:"uptime_seconds"`

	renderSeconds float64
	renders       int64
}

// NewMetrics creates a metrics collector backed by its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uirender_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uirender_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uirender_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uirender_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		// Render metrics
		NodesRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uirender_nodes_rendered_total",
				Help: "Total number of spec nodes rendered, by outcome",
			},
			[]string{"identifier", "status"},
		),
		Normalizations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uirender_normalize_total",
				Help: "Total number of normalizations, by result",
			},
			[]string{"result"},
		),
		RenderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "uirender_render_duration_seconds",
				Help:    "Duration of whole-tree renders in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),

		// Catalog metrics
		CatalogComponents: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "uirender_catalog_components",
				Help: "Number of components in the catalog",
			},
		),

		// Agent metrics
		AgentJobs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uirender_agent_jobs_total",
				Help: "Total number of agent jobs, by final status",
			},
			[]string{"status"},
		),
		AgentDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "uirender_agent_job_duration_seconds",
				Help:    "Agent job duration in seconds, submission to completion",
				Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "uirender_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "uirender_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "uirender_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordNode records the outcome of rendering one node
func (m *Metrics) RecordNode(identifier string, status types.Status) {
	m.NodesRendered.WithLabelValues(identifier, string(status)).Inc()

	m.mu.Lock()
	switch status {
	case types.StatusRendered:
		m.snapshot.NodesRendered++
	case types.StatusFallback:
		m.snapshot.NodesFallback++
	case types.StatusError:
		m.snapshot.NodesFailed++
	}
	m.mu.Unlock()
}

// ObserveRender records the duration of a whole-tree render
func (m *Metrics) ObserveRender(duration time.Duration) {
	m.RenderDuration.Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.renderSeconds += duration.Seconds()
	m.snapshot.renders++
	m.mu.Unlock()
}

// RecordNormalize records a normalization result ("ok", "fallback" or "invalid")
func (m *Metrics) RecordNormalize(result string) {
	m.Normalizations.WithLabelValues(result).Inc()
}

// SetCatalogComponents sets the number of components in the catalog
func (m *Metrics) SetCatalogComponents(count int) {
	m.CatalogComponents.Set(float64(count))
}

// RecordAgentJob records a finished agent job
func (m *Metrics) RecordAgentJob(status string, duration time.Duration) {
	m.AgentJobs.WithLabelValues(status).Inc()
	m.AgentDuration.Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	snap := m.snapshot
	m.mu.RUnlock()

	if snap.renders > 0 {
		snap.AverageRenderMs = snap.renderSeconds / float64(snap.renders) * 1000
	}
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
