package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for reconciliation errors.
var (
	ErrNotControlEvent = errors.New("event is not a period or game boundary")
	ErrUnknownPeriod   = errors.New("period not part of the match")
	ErrStoreWrite      = errors.New("store write failed")
	ErrEmptySnapshot   = errors.New("store returned no events after write")
)

// PartialFailureError lists the steps of one reconciliation that did not
// reach the store. Steps that succeeded are already persisted.
type PartialFailureError struct {
	Failed []StepResult
}

func (e *PartialFailureError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, r := range e.Failed {
		parts = append(parts, fmt.Sprintf("%s period %d: %v", r.Step.Type, r.Step.Period, r.Err))
	}
	return fmt.Sprintf("%d reconcile step(s) failed: %s", len(e.Failed), strings.Join(parts, "; "))
}

func (e *PartialFailureError) Unwrap() error { return ErrStoreWrite }
