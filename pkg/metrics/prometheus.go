// Package metrics provides Prometheus metrics for the CoWIN dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Fetch outcome label values.
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// Session close reason label values.
const (
	SessionClosed  = "closed"
	SessionExpired = "expired"
	SessionEvicted = "evicted"
)

// defaultLatencyBuckets are expressed in milliseconds.
var defaultLatencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// Manager owns every Prometheus collector exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Upstream fetches
	fetches      *prometheus.CounterVec
	fetchLatency prometheus.Histogram

	// View sessions and their status controllers
	statusTransitions *prometheus.CounterVec
	viewRenders       *prometheus.CounterVec
	activeSessions    prometheus.Gauge
	sessionsOpened    prometheus.Counter
	sessionsClosed    *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level helpers

// customRegistry keeps the default Go collectors out of /metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cowin",
		subsystem:        "dashboard",
		histogramBuckets: defaultLatencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.fetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_fetches_total"),
		Help:        "Upstream vaccination data fetches by outcome",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("upstream_fetch_latency_milliseconds"),
		Help:        "Latency of upstream vaccination data fetches in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	})

	m.statusTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("status_transitions_total"),
		Help:        "Fetch status transitions of dashboard view sessions",
		ConstLabels: constLabels,
	}, []string{"from", "to"})

	m.viewRenders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("view_renders_total"),
		Help:        "Dashboard pages rendered, by fetch status",
		ConstLabels: constLabels,
	}, []string{"status"})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("active_sessions"),
		Help:        "Mounted dashboard view sessions",
		ConstLabels: constLabels,
	})

	m.sessionsOpened = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("sessions_opened_total"),
		Help:        "Dashboard view sessions mounted",
		ConstLabels: constLabels,
	})

	m.sessionsClosed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("sessions_closed_total"),
		Help:        "Dashboard view sessions unmounted, by reason",
		ConstLabels: constLabels,
	}, []string{"reason"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "HTTP error responses by endpoint",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Errors by type and severity",
		ConstLabels: constLabels,
	}, []string{"error_type", "severity"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("memory_usage_bytes"),
		Help:        "Heap bytes allocated",
		ConstLabels: constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("goroutines"),
		Help:        "Number of goroutines",
		ConstLabels: constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        m.name("gc_pause_milliseconds"),
		Help:        "Average GC pause time in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50},
		ConstLabels: constLabels,
	})
}

// RecordFetch records one upstream fetch with its outcome and latency.
func (m *Manager) RecordFetch(outcome string, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchLatency.Observe(latencyMs)
}

// RecordStatusTransition counts a controller status change.
func (m *Manager) RecordStatusTransition(from, to string) {
	if !m.enabled {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// RecordViewRender counts a rendered dashboard page.
func (m *Manager) RecordViewRender(status string) {
	if !m.enabled {
		return
	}
	m.viewRenders.WithLabelValues(status).Inc()
}

// RecordSessionOpened counts a mounted view session.
func (m *Manager) RecordSessionOpened() {
	if !m.enabled {
		return
	}
	m.sessionsOpened.Inc()
}

// RecordSessionClosed counts an unmounted view session.
func (m *Manager) RecordSessionClosed(reason string) {
	if !m.enabled {
		return
	}
	m.sessionsClosed.WithLabelValues(reason).Inc()
}

// UpdateActiveSessions sets the number of mounted sessions.
func (m *Manager) UpdateActiveSessions(count int) {
	if !m.enabled {
		return
	}
	m.activeSessions.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordHTTPError records an HTTP error response.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// Package-level helpers delegate to the global manager.

// RecordFetch records one upstream fetch.
func RecordFetch(outcome string, latencyMs float64) {
	globalManager.RecordFetch(outcome, latencyMs)
}

// RecordStatusTransition counts a controller status change.
func RecordStatusTransition(from, to string) {
	globalManager.RecordStatusTransition(from, to)
}

// RecordViewRender counts a rendered dashboard page.
func RecordViewRender(status string) {
	globalManager.RecordViewRender(status)
}

// RecordSessionOpened counts a mounted view session.
func RecordSessionOpened() {
	globalManager.RecordSessionOpened()
}

// RecordSessionClosed counts an unmounted view session.
func RecordSessionClosed(reason string) {
	globalManager.RecordSessionClosed(reason)
}

// UpdateActiveSessions sets the number of mounted sessions.
func UpdateActiveSessions(count int) {
	globalManager.UpdateActiveSessions(count)
}

// RecordHTTPRequest records an HTTP request and its duration in milliseconds.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordHTTPError records an HTTP error response.
func RecordHTTPError(endpoint, method, errorType, severity string) {
	globalManager.RecordHTTPError(endpoint, method, errorType, severity)
}

// UpdateSystemMemoryUsage updates the system memory usage metric.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the system goroutine count metric.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
