// Package metrics provides Prometheus metrics for the matchday service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager manages all Prometheus metrics for the matchday service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Matching metrics
	matchRequests       prometheus.Counter
	candidatesEvaluated prometheus.Counter
	rankDuration        prometheus.Histogram

	// Plagiarism metrics
	plagiarismChecks  prometheus.Counter
	plagiarismFlagged prometheus.Counter
	checkDuration     prometheus.Histogram

	// External lookup metrics
	lookupErrors   *prometheus.CounterVec
	lookupDuration prometheus.Histogram

	// Text generation metrics
	reasonGenerated prometheus.Counter
	reasonFallbacks prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorsByEndpoint *prometheus.CounterVec
	errorsByType     *prometheus.CounterVec
	errorLatency     *prometheus.HistogramVec

	// System metrics
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram
}

// Default histogram buckets in milliseconds.
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "matchday",
		histogramBuckets: defaultBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !m.enabled {
		return m
	}

	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}
	histogram := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
			Buckets: m.histogramBuckets,
		}
	}

	m.matchRequests = prometheus.NewCounter(factory("match_requests_total", "Team match requests processed"))
	m.candidatesEvaluated = prometheus.NewCounter(factory("candidates_evaluated_total", "Candidates scored across all match requests"))
	m.rankDuration = prometheus.NewHistogram(histogram("rank_duration_ms", "Ranking pipeline duration in milliseconds"))

	m.plagiarismChecks = prometheus.NewCounter(factory("plagiarism_checks_total", "Plagiarism checks processed"))
	m.plagiarismFlagged = prometheus.NewCounter(factory("plagiarism_flagged_total", "Checks that produced a plagiarized verdict"))
	m.checkDuration = prometheus.NewHistogram(histogram("plagiarism_check_duration_ms", "Plagiarism pipeline duration in milliseconds"))

	m.lookupErrors = prometheus.NewCounterVec(
		factory("lookup_errors_total", "External lookups that failed and degraded"),
		[]string{"source"},
	)
	m.lookupDuration = prometheus.NewHistogram(histogram("lookup_duration_ms", "External lookup duration in milliseconds"))

	m.reasonGenerated = prometheus.NewCounter(factory("reasons_generated_total", "Match reasons produced by a text generation provider"))
	m.reasonFallbacks = prometheus.NewCounter(factory("reason_fallbacks_total", "Match reasons that fell back to the template"))

	m.httpRequests = prometheus.NewCounterVec(
		factory("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(
		histogram("http_request_duration_ms", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status"},
	)

	m.errorsByEndpoint = prometheus.NewCounterVec(
		factory("errors_by_endpoint_total", "Errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorsByType = prometheus.NewCounterVec(
		factory("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorLatency = prometheus.NewHistogramVec(
		histogram("error_latency_ms", "Latency of requests that ended in an error"),
		[]string{"component", "error_type"},
	)

	gauge := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}
	m.systemMemory = prometheus.NewGauge(gauge("system_memory_bytes", "Allocated heap bytes"))
	m.systemGoroutines = prometheus.NewGauge(gauge("system_goroutines", "Number of live goroutines"))
	m.systemGCPause = prometheus.NewHistogram(histogram("system_gc_pause_ms", "Average GC pause time in milliseconds"))

	m.registry.MustRegister(
		m.matchRequests,
		m.candidatesEvaluated,
		m.rankDuration,
		m.plagiarismChecks,
		m.plagiarismFlagged,
		m.checkDuration,
		m.lookupErrors,
		m.lookupDuration,
		m.reasonGenerated,
		m.reasonFallbacks,
		m.httpRequests,
		m.httpRequestDuration,
		m.errorsByEndpoint,
		m.errorsByType,
		m.errorLatency,
		m.systemMemory,
		m.systemGoroutines,
		m.systemGCPause,
	)
	return m
}

// Registry exposes the manager's registry for HTTP serving.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Init installs the global metrics manager.
func Init(opts ...Option) {
	globalManager = NewManager(opts...)
}

// GetRegistry returns the global registry, initializing the manager on
// first use so tests without Init still work.
func GetRegistry() *prometheus.Registry {
	if globalManager == nil {
		Init()
	}
	return globalManager.registry
}

// Helper functions. Each is a no-op when the manager is uninitialized
// or disabled, so domain code can record unconditionally.

// RecordMatchRequest counts a ranking request and its pool size.
func RecordMatchRequest(candidates int) {
	if m := globalManager; m != nil && m.enabled {
		m.matchRequests.Inc()
		m.candidatesEvaluated.Add(float64(candidates))
	}
}

// ObserveRankDuration records the ranking pipeline duration.
func ObserveRankDuration(ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.rankDuration.Observe(ms)
	}
}

// RecordPlagiarismCheck counts a plagiarism check and its verdict.
func RecordPlagiarismCheck(flagged bool) {
	if m := globalManager; m != nil && m.enabled {
		m.plagiarismChecks.Inc()
		if flagged {
			m.plagiarismFlagged.Inc()
		}
	}
}

// ObserveCheckDuration records the plagiarism pipeline duration.
func ObserveCheckDuration(ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.checkDuration.Observe(ms)
	}
}

// RecordLookupError counts a degraded external lookup by source.
func RecordLookupError(source string) {
	if m := globalManager; m != nil && m.enabled {
		m.lookupErrors.WithLabelValues(source).Inc()
	}
}

// ObserveLookupDuration records an external lookup duration.
func ObserveLookupDuration(ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.lookupDuration.Observe(ms)
	}
}

// RecordReasonGenerated counts a provider-written match reason.
func RecordReasonGenerated() {
	if m := globalManager; m != nil && m.enabled {
		m.reasonGenerated.Inc()
	}
}

// RecordReasonFallback counts a template fallback for a match reason.
func RecordReasonFallback() {
	if m := globalManager; m != nil && m.enabled {
		m.reasonFallbacks.Inc()
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if m := globalManager; m != nil && m.enabled {
		m.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration records an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// RecordErrorByEndpoint counts an error for a specific endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m := globalManager; m != nil && m.enabled {
		m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	if m := globalManager; m != nil && m.enabled {
		m.errorsByType.WithLabelValues(errorType, severity).Inc()
	}
}

// RecordErrorLatency records the latency of a failed request.
func RecordErrorLatency(component, errorType string, ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.errorLatency.WithLabelValues(component, errorType).Observe(ms)
	}
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := globalManager; m != nil && m.enabled {
		m.systemMemory.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the live goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if m := globalManager; m != nil && m.enabled {
		m.systemGoroutines.Set(float64(n))
	}
}

// RecordSystemGCPauseTime records an average GC pause sample.
func RecordSystemGCPauseTime(ms float64) {
	if m := globalManager; m != nil && m.enabled {
		m.systemGCPause.Observe(ms)
	}
}
