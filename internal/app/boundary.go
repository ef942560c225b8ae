package service

import (
	"context"
	"fmt"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/reconcile"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// ReportBoundary works out from a minute token whether it starts a period,
// ends one, or ends the game, and records that boundary with its
// prerequisites.
func (s *Service) ReportBoundary(ctx context.Context, matchID int, token string) (reconcile.Outcome, error) {
	st, err := s.acquire(matchID)
	if err != nil {
		return reconcile.Outcome{}, err
	}
	defer st.mu.Unlock()

	typeID, period, err := clock.ResolveBoundary(token, st.cfg)
	if err != nil {
		return reconcile.Outcome{Timeline: st.timeline.Clone()}, err
	}
	minute, _, err := clock.Resolve(token, st.cfg)
	if err != nil {
		return reconcile.Outcome{Timeline: st.timeline.Clone()}, err
	}
	return s.reconcileLocked(ctx, st, typeID, period, minute)
}

// ReportControl records a period end or game end at the given minute. The
// period is the one the minute falls in.
func (s *Service) ReportControl(ctx context.Context, matchID int, typeID model.EventType, token string) (reconcile.Outcome, error) {
	if typeID != model.PeriodEnd && typeID != model.GameEnd {
		return reconcile.Outcome{}, fmt.Errorf("%w: %s", ErrNotBoundaryType, typeID)
	}
	st, err := s.acquire(matchID)
	if err != nil {
		return reconcile.Outcome{}, err
	}
	defer st.mu.Unlock()

	minute, period, err := clock.Resolve(token, st.cfg)
	if err != nil {
		return reconcile.Outcome{Timeline: st.timeline.Clone()}, err
	}
	return s.reconcileLocked(ctx, st, typeID, period, minute)
}

func (s *Service) reconcileLocked(ctx context.Context, st *matchState, typeID model.EventType, period, minute int) (reconcile.Outcome, error) {
	scores := s.scoresLocked(ctx, st)
	req := model.NewControlEvent(st.match.ID, typeID, period, minute,
		scores.RegularTime.Home, scores.RegularTime.Away)

	r := reconcile.New(s.store, st.cfg, reconcile.WithLogger(s.logger.Named("reconcile")))
	out, err := r.Reconcile(ctx, req, st.timeline)
	st.timeline = out.Timeline
	out.Timeline = out.Timeline.Clone()
	if err != nil {
		s.logger.Warn(ctx, "boundary not fully recorded",
			logger.Int("match_id", st.match.ID),
			logger.String("event_type", typeID.String()),
			logger.Int("period", period),
			logger.Error(err))
	}
	return out, err
}
