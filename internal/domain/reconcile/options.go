package reconcile

import (
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// Option applies a configuration option to the Reconciler.
type Option func(*Reconciler)

// WithLogger sets a custom logger for the reconciler.
func WithLogger(l logger.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRunIDGenerator replaces the run id source. Tests use it for stable ids.
func WithRunIDGenerator(gen func() string) Option {
	return func(r *Reconciler) {
		if gen != nil {
			r.newRunID = gen
		}
	}
}
