// Package metrics provides Prometheus metrics for the callaudit QA service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the callaudit service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Business Metrics - analysis throughput and quality
	analysesCompleted prometheus.Counter
	analysesDegraded  prometheus.Counter
	analysesFailed    prometheus.Counter
	analysisDuration  prometheus.Histogram

	// External Call Metrics - transcription capability
	transcriptionCalls   prometheus.Counter
	transcriptionErrors  prometheus.Counter
	transcriptionLatency prometheus.Histogram

	// External Call Metrics - completion capability
	completionCalls   prometheus.Counter
	completionErrors  prometheus.Counter
	completionLatency prometheus.Histogram
	quotaExhaustions  prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Upload Metrics
	uploadBytes prometheus.Histogram

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "callaudit",
		subsystem:        "qa",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.analysesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_completed_total",
		Help:      "Total number of call analyses completed successfully",
	})

	m.analysesDegraded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_degraded_total",
		Help:      "Total number of analyses completed in degraded mode after quota exhaustion",
	})

	m.analysesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analyses_failed_total",
		Help:      "Total number of analyses aborted by a transcription failure",
	})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end duration of one call analysis in seconds",
		Buckets:   []float64{1, 2.5, 5, 10, 20, 40, 60, 120},
	})

	m.transcriptionCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transcription_calls_total",
		Help:      "Total number of transcription calls issued",
	})

	m.transcriptionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transcription_errors_total",
		Help:      "Total number of failed transcription calls",
	})

	m.transcriptionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "transcription_latency_milliseconds",
		Help:      "Transcription call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.completionCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completion_calls_total",
		Help:      "Total number of completion calls issued",
	})

	m.completionErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completion_errors_total",
		Help:      "Total number of failed completion calls",
	})

	m.completionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "completion_latency_milliseconds",
		Help:      "Completion call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.quotaExhaustions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "quota_exhaustions_total",
		Help:      "Total number of rate-limit responses from external services",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.uploadBytes = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upload_bytes",
		Help:      "Size of uploaded audio files in bytes",
		Buckets:   prometheus.ExponentialBuckets(64*1024, 4, 8),
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordAnalysisCompleted increments the completed analyses counter.
func RecordAnalysisCompleted() {
	globalManager.analysesCompleted.Inc()
}

// RecordAnalysisDegraded increments the degraded analyses counter.
func RecordAnalysisDegraded() {
	globalManager.analysesDegraded.Inc()
}

// RecordAnalysisFailed increments the failed analyses counter.
func RecordAnalysisFailed() {
	globalManager.analysesFailed.Inc()
}

// RecordAnalysisDuration records an end-to-end analysis duration in seconds.
func RecordAnalysisDuration(seconds float64) {
	globalManager.analysisDuration.Observe(seconds)
}

// RecordTranscriptionCall increments the transcription calls counter.
func RecordTranscriptionCall() {
	globalManager.transcriptionCalls.Inc()
}

// RecordTranscriptionError increments the transcription errors counter.
func RecordTranscriptionError() {
	globalManager.transcriptionErrors.Inc()
}

// RecordTranscriptionLatency records transcription latency in milliseconds.
func RecordTranscriptionLatency(latencyMs float64) {
	globalManager.transcriptionLatency.Observe(latencyMs)
}

// RecordCompletionCall increments the completion calls counter.
func RecordCompletionCall() {
	globalManager.completionCalls.Inc()
}

// RecordCompletionError increments the completion errors counter.
func RecordCompletionError() {
	globalManager.completionErrors.Inc()
}

// RecordCompletionLatency records completion latency in milliseconds.
func RecordCompletionLatency(latencyMs float64) {
	globalManager.completionLatency.Observe(latencyMs)
}

// RecordQuotaExhaustion increments the quota exhaustion counter.
func RecordQuotaExhaustion() {
	globalManager.quotaExhaustions.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordUploadBytes records the size of an uploaded audio file.
func RecordUploadBytes(size int64) {
	globalManager.uploadBytes.Observe(float64(size))
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
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
