// Package service reports match events to the FOGIS event store.
//
// The service keeps the last confirmed timeline of every opened match and
// runs all work for one match under that match's lock, so a scan of the
// timeline and the write that depends on it are never interleaved with
// another request for the same match. Different matches proceed in parallel.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/timmybird/fogis-reporter/internal/domain/clock"
	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/internal/domain/scoring"
	"github.com/timmybird/fogis-reporter/internal/domain/types"
	"github.com/timmybird/fogis-reporter/pkg/logger"
)

// EventStore is the remote record keeper.
type EventStore interface {
	FetchMatches(ctx context.Context) ([]model.Match, error)
	FetchMatch(ctx context.Context, matchID int) (model.Match, error)
	FetchRoster(ctx context.Context, matchID, teamID int) (model.Roster, error)
	FetchEvents(ctx context.Context, matchID int) (model.Timeline, error)
	UpsertEvent(ctx context.Context, e model.MatchEvent) (model.Timeline, error)
	UpsertTeamOfficialAction(ctx context.Context, a model.OfficialAction) error
	ClearEvents(ctx context.Context, matchID int) error
	FetchResults(ctx context.Context, matchID int) ([]model.ResultRecord, error)
	UpsertResults(ctx context.Context, p model.ResultPayload) error
}

// matchState is owned by its mutex.
type matchState struct {
	mu       sync.Mutex
	match    model.Match
	cfg      clock.MatchConfig
	timeline model.Timeline
	rosters  map[int]model.Roster
	loaded   bool
}

// Service implements match reporting on top of an EventStore.
type Service struct {
	store  EventStore
	logger logger.Logger

	// matchLocks guards the map only; each state has its own lock.
	matchLocks sync.Mutex
	matches    map[int]*matchState
}

// New constructs a Service over store.
func New(store EventStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		logger:  logger.Nop(),
		matches: make(map[int]*matchState),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMatches returns the matches available to the logged in referee.
func (s *Service) ListMatches(ctx context.Context) ([]model.Match, error) {
	matches, err := s.store.FetchMatches(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "matches fetched", logger.Int("count", len(matches)))
	return matches, nil
}

// OpenMatch loads a match and its current timeline. Opening an already
// open match reloads both.
func (s *Service) OpenMatch(ctx context.Context, matchID int) (model.Match, error) {
	st := s.state(matchID, true)
	st.mu.Lock()
	defer st.mu.Unlock()

	match, err := s.store.FetchMatch(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}
	cfg := clock.FromMatch(match)
	if err := cfg.Validate(); err != nil {
		return model.Match{}, fmt.Errorf("match %d: %w", matchID, err)
	}
	timeline, err := s.store.FetchEvents(ctx, matchID)
	if err != nil {
		return model.Match{}, err
	}

	st.match = match
	st.cfg = cfg
	st.timeline = timeline
	st.rosters = make(map[int]model.Roster)
	st.loaded = true

	s.logger.Info(ctx, "match opened",
		logger.Int("match_id", matchID),
		logger.String("teams", match.Team1Name+" - "+match.Team2Name),
		logger.Int("periods", cfg.PeriodCount),
		logger.Int("period_length", cfg.PeriodLength),
		logger.Int("events", len(timeline)))
	return match, nil
}

// Refresh replaces the local timeline with the store's current one.
func (s *Service) Refresh(ctx context.Context, matchID int) (model.Timeline, error) {
	st, err := s.acquire(matchID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()

	timeline, err := s.store.FetchEvents(ctx, matchID)
	if err != nil {
		return nil, err
	}
	st.timeline = timeline
	return timeline.Clone(), nil
}

// Timeline returns a copy of the last confirmed timeline.
func (s *Service) Timeline(matchID int) (model.Timeline, error) {
	st, err := s.acquire(matchID)
	if err != nil {
		return nil, err
	}
	defer st.mu.Unlock()
	return st.timeline.Clone(), nil
}

// Scores derives the running and halftime scores from the timeline.
func (s *Service) Scores(ctx context.Context, matchID int) (types.Scores, error) {
	st, err := s.acquire(matchID)
	if err != nil {
		return types.Scores{}, err
	}
	defer st.mu.Unlock()
	return s.scoresLocked(ctx, st), nil
}

// ClearEvents deletes every event of the match in the store.
func (s *Service) ClearEvents(ctx context.Context, matchID int) error {
	st, err := s.acquire(matchID)
	if err != nil {
		return err
	}
	defer st.mu.Unlock()

	if err := s.store.ClearEvents(ctx, matchID); err != nil {
		return err
	}
	st.timeline = model.Timeline{}
	s.logger.Warn(ctx, "all match events cleared", logger.Int("match_id", matchID))
	return nil
}

func (s *Service) scoresLocked(ctx context.Context, st *matchState) types.Scores {
	return scoring.Aggregate(st.timeline, st.match.Team1ID, st.match.Team2ID,
		scoring.WithLogger(s.logger.Named("scoring")),
		scoring.WithContext(ctx))
}

func (s *Service) state(matchID int, create bool) *matchState {
	s.matchLocks.Lock()
	defer s.matchLocks.Unlock()
	st, ok := s.matches[matchID]
	if !ok && create {
		st = &matchState{}
		s.matches[matchID] = st
	}
	return st
}

// acquire returns the locked state of an opened match. Callers unlock.
func (s *Service) acquire(matchID int) (*matchState, error) {
	st := s.state(matchID, false)
	if st == nil {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotOpen, matchID)
	}
	st.mu.Lock()
	if !st.loaded {
		st.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", ErrMatchNotOpen, matchID)
	}
	return st, nil
}
