// Package reconcile brings a match timeline up to date with a requested
// period or game boundary.
//
// The remote store has no uniqueness constraint and answers every write with
// the full event list. The reconciler scans the caller's latest snapshot
// before each write so that at most one event exists per (type, period), and
// swaps in the returned snapshot only after a confirmed write. A stale
// snapshot can still lead to a duplicate; callers serialize work per match.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

// Store persists one event and returns the complete post-write timeline.
// An event with ID 0 is created; any other ID updates that record.
type Store interface {
	UpsertEvent(ctx context.Context, e model.MatchEvent) (model.Timeline, error)
}

// Action is what a step did.
type Action int

const (
	ActionFoundExisting Action = iota
	ActionCreated
	ActionUpdated
)

func (a Action) String() string {
	switch a {
	case ActionFoundExisting:
		return "found_existing"
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	}
	return "unknown"
}

// StepResult reports a single step. Err is set when the write did not land;
// Action then names the write that was attempted.
type StepResult struct {
	Step   Step
	Action Action
	Event  model.MatchEvent
	Err    error
}

// Outcome is the result of a full reconciliation.
type Outcome struct {
	RunID    string
	Timeline model.Timeline
	Steps    []StepResult
}

// Failed returns the steps that did not reach the store.
func (o Outcome) Failed() []StepResult {
	var out []StepResult
	for _, r := range o.Steps {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Err returns a *PartialFailureError when any step failed.
func (o Outcome) Err() error {
	if failed := o.Failed(); len(failed) > 0 {
		return &PartialFailureError{Failed: failed}
	}
	return nil
}

// Reconciler executes reconciliation plans against a Store.
type Reconciler struct {
	store    Store
	cfg      clock.MatchConfig
	logger   logger.Logger
	newRunID func() string
}

// New creates a reconciler for one match configuration.
func New(store Store, cfg clock.MatchConfig, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:    store,
		cfg:      cfg,
		logger:   logger.Nop(),
		newRunID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile plans req and applies every step in order. A failed step does
// not stop the ones after it; each step scans the best timeline known at
// that point. The returned error is a plan error, or the *PartialFailureError
// also available from Outcome.Err. The outcome is always usable.
func (r *Reconciler) Reconcile(ctx context.Context, req model.MatchEvent, timeline model.Timeline) (Outcome, error) {
	runID := r.newRunID()
	out := Outcome{RunID: runID, Timeline: timeline}

	steps, err := Plan(req, r.cfg)
	if err != nil {
		return out, err
	}

	log := r.logger.With(
		logger.String("run_id", runID),
		logger.Int("match_id", req.MatchID),
	)
	log.Info(ctx, "reconciling boundary",
		logger.String("event_type", req.TypeID.String()),
		logger.Int("period", req.Period),
		logger.Int("minute", req.Minute),
		logger.Int("steps", len(steps)))

	start := time.Now()
	for _, step := range steps {
		var res StepResult
		out.Timeline, res = r.apply(ctx, log, step, out.Timeline)
		out.Steps = append(out.Steps, res)
	}
	metrics.RecordReconcileDuration(float64(time.Since(start).Milliseconds()))

	if err := out.Err(); err != nil {
		metrics.RecordReconcilePartialFailure()
		log.Warn(ctx, "reconciliation incomplete", logger.Error(err))
		return out, err
	}
	log.Info(ctx, "reconciliation complete", logger.Int("events", len(out.Timeline)))
	return out, nil
}

// Apply executes one step against timeline and returns the timeline to use
// next: the store's snapshot on success, the input otherwise.
func (r *Reconciler) Apply(ctx context.Context, step Step, timeline model.Timeline) (model.Timeline, StepResult) {
	return r.apply(ctx, r.logger, step, timeline)
}

func (r *Reconciler) apply(ctx context.Context, log logger.Logger, step Step, timeline model.Timeline) (model.Timeline, StepResult) {
	log = log.With(
		logger.String("event_type", step.Type.String()),
		logger.Int("period", step.Period),
		logger.String("origin", step.Origin.String()),
	)

	event := step.Event
	existing, found := timeline.Find(step.Type, step.Period)

	var action Action
	switch {
	case found && step.Origin == Synthesized:
		log.Info(ctx, "found existing event", logger.Int("event_id", existing.ID))
		metrics.RecordReconcileStep(step.Type.Slug(), ActionFoundExisting.String())
		return timeline, StepResult{Step: step, Action: ActionFoundExisting, Event: existing}
	case found:
		event.ID = existing.ID
		action = ActionUpdated
	default:
		event.ID = 0
		action = ActionCreated
	}

	res := StepResult{Step: step, Action: action, Event: event}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrStoreWrite, err)
		log.Warn(ctx, "step skipped", logger.Error(err))
		return timeline, res
	}

	snapshot, err := r.store.UpsertEvent(ctx, event)
	if err == nil && len(snapshot) == 0 {
		err = ErrEmptySnapshot
	}
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrStoreWrite, err)
		log.Warn(ctx, "store write failed, keeping previous timeline",
			logger.String("action", action.String()),
			logger.Error(err))
		metrics.RecordReconcileStep(step.Type.Slug(), "failed")
		return timeline, res
	}

	log.Info(ctx, "event written",
		logger.String("action", action.String()),
		logger.Int("minute", event.Minute),
		logger.Int("events", len(snapshot)))
	metrics.RecordReconcileStep(step.Type.Slug(), action.String())
	return snapshot, res
}
