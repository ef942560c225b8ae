// Package metrics provides Prometheus metrics for the match reporter and the
// mock event store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds every collector the reporter records to.
type Manager struct {
	namespace        string
	subsystem        string
	mockSubsystem    string
	histogramBuckets []float64
	reconcileBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Store client
	storeRequests        *prometheus.CounterVec
	storeRequestDuration *prometheus.HistogramVec
	storeRetries         *prometheus.CounterVec

	// Reconciliation
	reconcileSteps           *prometheus.CounterVec
	reconcilePartialFailures prometheus.Counter
	reconcileDuration        prometheus.Histogram

	// Result verification
	verifications *prometheus.CounterVec

	// Mock store HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	mockStoreEvents     *prometheus.GaugeVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fogis",
		subsystem:        "reporter",
		mockSubsystem:    "mockstore",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		reconcileBuckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.storeRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_requests_total",
		Help:      "Requests sent to the event store by operation and outcome",
	}, []string{"operation", "outcome"})

	m.storeRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_request_duration_milliseconds",
		Help:      "Event store round-trip latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.storeRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_retries_total",
		Help:      "Retried read requests against the event store",
	}, []string{"operation"})

	m.reconcileSteps = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_steps_total",
		Help:      "Reconciliation steps by control event type and action taken",
	}, []string{"event_type", "action"})

	m.reconcilePartialFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_partial_failures_total",
		Help:      "Reconciliations that left at least one step unresolved",
	})

	m.reconcileDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconcile_duration_milliseconds",
		Help:      "Wall time of a full reconciliation in milliseconds",
		Buckets:   m.reconcileBuckets,
	})

	m.verifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "result_verifications_total",
		Help:      "Result verifications by outcome (ok, mismatch, incomplete, error)",
	}, []string{"outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.mockSubsystem,
		Name:      "http_requests_total",
		Help:      "Mock store HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.mockSubsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Mock store HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.mockStoreEvents = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.mockSubsystem,
		Name:      "events",
		Help:      "Events currently held by the mock store per match",
	}, []string{"match_id"})
}

// RecordStoreRequest counts one event store request.
func RecordStoreRequest(operation, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeRequests.WithLabelValues(operation, outcome).Inc()
}

// RecordStoreLatency records the round-trip latency of a store request.
func RecordStoreLatency(operation string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeRequestDuration.WithLabelValues(operation).Observe(latencyMs)
}

// RecordStoreRetry counts a retried read.
func RecordStoreRetry(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeRetries.WithLabelValues(operation).Inc()
}

// RecordReconcileStep counts a reconciliation step outcome.
func RecordReconcileStep(eventType, action string) {
	if !globalManager.enabled {
		return
	}
	globalManager.reconcileSteps.WithLabelValues(eventType, action).Inc()
}

// RecordReconcilePartialFailure counts a reconciliation with failed steps.
func RecordReconcilePartialFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.reconcilePartialFailures.Inc()
}

// RecordReconcileDuration records how long a reconciliation took.
func RecordReconcileDuration(latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.reconcileDuration.Observe(latencyMs)
}

// RecordVerification counts a result verification outcome.
func RecordVerification(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.verifications.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records a mock store HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records mock store HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateMockStoreEvents sets the number of events the mock store holds for a match.
func UpdateMockStoreEvents(matchID string, count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.mockStoreEvents.WithLabelValues(matchID).Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
