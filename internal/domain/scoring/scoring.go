// Package scoring derives running and halftime scores from a match timeline.
package scoring

import (
	"context"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// halftimePeriod is the period whose goals make up the halftime score.
const halftimePeriod = 1

// Option configures an Aggregate call.
type Option func(*aggregator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(a *aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// WithContext sets the context passed to the logger.
func WithContext(ctx context.Context) Option {
	return func(a *aggregator) {
		if ctx != nil {
			a.ctx = ctx
		}
	}
}

type aggregator struct {
	log logger.Logger
	ctx context.Context
}

// Aggregate counts goal events for the two teams. Every goal type, own goals
// included, is credited to the team recorded on the event. Events for other
// teams are ignored.
func Aggregate(events []model.MatchEvent, team1ID, team2ID int, opts ...Option) types.Scores {
	a := &aggregator{log: logger.Nop(), ctx: context.Background()}
	for _, opt := range opts {
		opt(a)
	}

	var s types.Scores
	if len(events) == 0 {
		a.log.Debug(a.ctx, "no events to aggregate")
		return s
	}
	if team1ID == 0 || team2ID == 0 {
		a.log.Debug(a.ctx, "team ids missing, scores left at zero",
			logger.Int("team1_id", team1ID),
			logger.Int("team2_id", team2ID))
		return s
	}

	for _, e := range events {
		if !e.TypeID.IsGoal() {
			continue
		}
		var regular, half *int
		switch e.TeamID {
		case team1ID:
			regular, half = &s.RegularTime.Home, &s.Halftime.Home
		case team2ID:
			regular, half = &s.RegularTime.Away, &s.Halftime.Away
		default:
			continue
		}
		*regular++
		if e.Period == halftimePeriod {
			*half++
		}
	}

	a.log.Debug(a.ctx, "scores aggregated",
		logger.String("regular_time", s.RegularTime.String()),
		logger.String("halftime", s.Halftime.String()))
	return s
}
