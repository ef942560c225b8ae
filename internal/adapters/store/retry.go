package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

const (
	retryBackoffFactor = 1.5
	maxRetryDelay      = 5 * time.Second
)

// retryPolicy re-runs a read with growing delays. Client errors (4xx) and
// undecodable success bodies are final.
type retryPolicy struct {
	attempts     int
	initialDelay time.Duration
}

func (r retryPolicy) execute(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	delay := r.initialDelay

	for attempt := 1; attempt <= r.attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var se *statusError
		if errors.As(err, &se) && se.code < 500 {
			return err
		}
		if errors.Is(err, ErrDecodeResponse) {
			return err
		}
		if attempt == r.attempts {
			break
		}

		metrics.RecordStoreRetry(op)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * retryBackoffFactor)
		if delay > maxRetryDelay {
			delay = maxRetryDelay
		}
	}

	if r.attempts > 1 {
		return fmt.Errorf("failed after %d attempts: %w", r.attempts, lastErr)
	}
	return lastErr
}
