package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// OfficialActionReport cautions or dismisses a team official.
type OfficialActionReport struct {
	MatchID int
	// Team is 1 for the home side, 2 for the away side.
	Team       int
	OfficialID int
	RoleID     int
	// Minute is required for dismissals and optional for cautions.
	Minute          string
	Cautioned       bool
	MinorDismissal  bool
	SevereDismissal bool
}

// ReportTeamOfficialAction records the action and then reloads the timeline,
// since the store does not answer official writes with the event list.
func (s *Service) ReportTeamOfficialAction(ctx context.Context, r OfficialActionReport) (model.Timeline, error) {
	if r.Team != 1 && r.Team != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeam, r.Team)
	}
	if r.OfficialID <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOfficial, r.OfficialID)
	}
	dismissed := r.MinorDismissal || r.SevereDismissal
	if !dismissed && !r.Cautioned {
		return nil, ErrNoOfficialAction
	}
	if dismissed && strings.TrimSpace(r.Minute) == "" {
		return nil, ErrDismissalMinute
	}

	st, err := s.acquire(r.MatchID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	var minute int
	if strings.TrimSpace(r.Minute) != "" {
		if minute, _, err = clock.Resolve(r.Minute, st.cfg); err != nil {
			return nil, err
		}
	}

	teamID := st.match.Team1ID
	if r.Team == 2 {
		teamID = st.match.Team2ID
	}
	a := model.OfficialAction{
		MatchID:         st.match.ID,
		OfficialID:      r.OfficialID,
		TeamID:          teamID,
		ActionTypeID:    model.DefaultOfficialActionType,
		Minute:          minute,
		RoleID:          r.RoleID,
		MinorDismissal:  r.MinorDismissal,
		SevereDismissal: r.SevereDismissal,
		Cautioned:       r.Cautioned,
	}
	if dismissed {
		a.DismissalMinute = minute
	}

	if err := s.store.UpsertTeamOfficialAction(ctx, a); err != nil {
		s.logger.Warn(ctx, "official action not recorded",
			logger.Int("match_id", st.match.ID),
			logger.Int("official_id", r.OfficialID),
			logger.Error(err))
		return nil, err
	}
	s.logger.Info(ctx, "official action recorded",
		logger.Int("match_id", st.match.ID),
		logger.Int("official_id", r.OfficialID),
		logger.Int("team_id", teamID),
		logger.Bool("cautioned", r.Cautioned),
		logger.Bool("dismissed", dismissed),
		logger.Int("minute", minute))

	timeline, err := s.store.FetchEvents(ctx, st.match.ID)
	if err != nil {
		return nil, fmt.Errorf("refresh after official action: %w", err)
	}
	st.timeline = timeline
	return timeline.Clone(), nil
}
