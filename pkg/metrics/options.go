package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Manager. Empty values keep the default.
type Option func(*Manager)

// WithNamespace sets the namespace shared by every series.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem of the store client, reconciliation and
// verification series.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithMockStoreSubsystem sets the subsystem of the mock store HTTP series.
func WithMockStoreSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.mockSubsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets the buckets of single-request latency histograms.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithReconcileBuckets sets the buckets of the reconciliation duration
// histogram. A reconciliation spans up to three store round trips.
func WithReconcileBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.reconcileBuckets = buckets
		}
	}
}

// WithMetricsEnabled turns recording on or off.
func WithMetricsEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.enabled = enabled
	}
}

// WithPrometheusRegistry registers the collectors with registry instead of
// the default registerer.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
