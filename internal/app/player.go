package service

import (
	"context"
	"fmt"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// PlayerEvent is a goal, card or substitution for one team.
type PlayerEvent struct {
	MatchID int
	// Team is 1 for the home side, 2 for the away side.
	Team   int
	TypeID model.EventType
	Jersey int
	// JerseyOut is the player leaving the pitch in a substitution.
	JerseyOut int
	Minute    string
}

// ReportPlayerEvent records a player event. Goals carry the score including
// themselves. Nothing is sent when the team, player or minute is invalid.
func (s *Service) ReportPlayerEvent(ctx context.Context, pe PlayerEvent) (model.Timeline, error) {
	if pe.TypeID.IsControl() || pe.TypeID == model.TeamOfficialAction {
		return nil, fmt.Errorf("%w: %s", ErrNotPlayerEvent, pe.TypeID)
	}
	if pe.Team != 1 && pe.Team != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTeam, pe.Team)
	}

	st, err := s.acquire(pe.MatchID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	minute, period, err := clock.Resolve(pe.Minute, st.cfg)
	if err != nil {
		return nil, err
	}

	teamID := st.match.Team1ID
	if pe.Team == 2 {
		teamID = st.match.Team2ID
	}
	roster, err := s.rosterLocked(ctx, st, teamID)
	if err != nil {
		return nil, err
	}
	player, ok := roster.ByJersey(pe.Jersey)
	if !ok {
		return nil, fmt.Errorf("%w: jersey %d", ErrPlayerNotFound, pe.Jersey)
	}

	scores := s.scoresLocked(ctx, st).RegularTime
	if pe.TypeID.IsGoal() {
		if pe.Team == 1 {
			scores.Home++
		} else {
			scores.Away++
		}
	}

	e := model.MatchEvent{
		MatchID:        st.match.ID,
		Period:         period,
		Minute:         minute,
		TypeID:         pe.TypeID,
		TeamID:         teamID,
		PlayerID:       player.PlayerID,
		ParticipantID:  player.ParticipantID,
		PositionX:      model.NoPitchPosition,
		PositionY:      model.NoPitchPosition,
		FootballTypeID: model.FootballTypeID,
		HomeGoals:      scores.Home,
		AwayGoals:      scores.Away,
	}
	if pe.TypeID == model.Substitution {
		out, ok := roster.ByJersey(pe.JerseyOut)
		if !ok {
			return nil, fmt.Errorf("%w: jersey %d", ErrPlayerNotFound, pe.JerseyOut)
		}
		e.PlayerID2 = out.PlayerID
		e.ParticipantID2 = out.ParticipantID
	}

	timeline, err := s.store.UpsertEvent(ctx, e)
	if err != nil {
		s.logger.Warn(ctx, "player event not recorded",
			logger.Int("match_id", st.match.ID),
			logger.String("event_type", pe.TypeID.String()),
			logger.Error(err))
		return nil, err
	}
	st.timeline = timeline

	s.logger.Info(ctx, "player event recorded",
		logger.Int("match_id", st.match.ID),
		logger.String("event_type", pe.TypeID.String()),
		logger.String("player", player.DisplayName()),
		logger.Int("minute", minute),
		logger.Int("period", period))
	return timeline.Clone(), nil
}

// rosterLocked caches rosters per team for the lifetime of the open match.
func (s *Service) rosterLocked(ctx context.Context, st *matchState, teamID int) (model.Roster, error) {
	if r, ok := st.rosters[teamID]; ok {
		return r, nil
	}
	r, err := s.store.FetchRoster(ctx, st.match.ID, teamID)
	if err != nil {
		return nil, err
	}
	st.rosters[teamID] = r
	return r, nil
}
