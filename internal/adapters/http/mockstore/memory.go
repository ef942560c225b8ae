// Package mockstore serves an in-memory implementation of the FOGIS event
// store API. It backs client tests and local development.
package mockstore

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/timmybird/fogis-reporter/internal/domain/model"
	"github.com/timmybird/fogis-reporter/pkg/metrics"
)

// Memory holds matches, rosters, events and results. Safe for concurrent use.
type Memory struct {
	mu          sync.Mutex
	matches     map[int]model.Match
	rosters     map[int]model.Roster
	events      map[int][]model.MatchEvent
	results     map[int]map[model.ResultType]model.ResultRecord
	officials   map[int][]model.OfficialAction
	nextEventID int
	failWrites  int
}

// NewMemory creates an empty store. Event ids start after firstEventID.
func NewMemory() *Memory {
	return &Memory{
		matches:     make(map[int]model.Match),
		rosters:     make(map[int]model.Roster),
		events:      make(map[int][]model.MatchEvent),
		results:     make(map[int]map[model.ResultType]model.ResultRecord),
		officials:   make(map[int][]model.OfficialAction),
		nextEventID: firstEventID,
	}
}

const firstEventID = 1000

// AddMatch registers a match and the rosters of its two teams.
func (m *Memory) AddMatch(match model.Match, team1, team2 model.Roster) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matches[match.ID] = match
	m.rosters[match.Team1ID] = team1
	m.rosters[match.Team2ID] = team2
}

// FailNextWrites makes the next n event writes fail.
func (m *Memory) FailNextWrites(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWrites = n
}

// Matches lists all matches ordered by id.
func (m *Memory) Matches() []model.Match {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Match, 0, len(m.matches))
	for _, v := range m.matches {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Match returns one match.
func (m *Memory) Match(id int) (model.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok {
		return model.Match{}, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	return match, nil
}

// Roster returns the players of a team taking part in a match.
func (m *Memory) Roster(matchID, teamID int) (model.Roster, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[matchID]
	if !ok || (teamID != match.Team1ID && teamID != match.Team2ID) {
		return nil, fmt.Errorf("%w: %d team %d", ErrMatchNotFound, matchID, teamID)
	}
	return append(model.Roster(nil), m.rosters[teamID]...), nil
}

// Events returns a copy of a match's events in arrival order.
func (m *Memory) Events(matchID int) (model.Timeline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	return m.snapshot(matchID), nil
}

// Upsert creates the event when its id is 0, otherwise replaces the event
// with that id. It returns the full post-write event list.
func (m *Memory) Upsert(e model.MatchEvent) (model.Timeline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWrites > 0 {
		m.failWrites--
		return nil, ErrInjected
	}
	if _, ok := m.matches[e.MatchID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, e.MatchID)
	}

	list := m.events[e.MatchID]
	if e.ID == 0 {
		m.nextEventID++
		e.ID = m.nextEventID
		list = append(list, e)
	} else {
		i := indexOf(list, e.ID)
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", ErrEventNotFound, e.ID)
		}
		list[i] = e
	}
	m.events[e.MatchID] = list
	metrics.UpdateMockStoreEvents(strconv.Itoa(e.MatchID), len(list))
	return m.snapshot(e.MatchID), nil
}

// Clear removes all events of a match.
func (m *Memory) Clear(matchID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; !ok {
		return fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	delete(m.events, matchID)
	metrics.UpdateMockStoreEvents(strconv.Itoa(matchID), 0)
	return nil
}

// Results returns the recorded results of a match, fulltime first.
func (m *Memory) Results(matchID int) ([]model.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	out := make([]model.ResultRecord, 0, 2)
	for _, t := range []model.ResultType{model.ResultFulltime, model.ResultHalftime} {
		if r, ok := m.results[matchID][t]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// SetResults stores every record, replacing earlier ones of the same type.
func (m *Memory) SetResults(p model.ResultPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range p.Results {
		if _, ok := m.matches[r.MatchID]; !ok {
			return fmt.Errorf("%w: %d", ErrMatchNotFound, r.MatchID)
		}
	}
	for _, r := range p.Results {
		if m.results[r.MatchID] == nil {
			m.results[r.MatchID] = make(map[model.ResultType]model.ResultRecord)
		}
		m.results[r.MatchID][r.TypeID] = r
	}
	return nil
}

// AddOfficialAction records an action against a team official of one of
// the match's teams.
func (m *Memory) AddOfficialAction(a model.OfficialAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[a.MatchID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrMatchNotFound, a.MatchID)
	}
	switch {
	case a.OfficialID <= 0:
		return fmt.Errorf("%w: missing official id", ErrInvalidAction)
	case a.TeamID != match.Team1ID && a.TeamID != match.Team2ID:
		return fmt.Errorf("%w: team %d does not play match %d", ErrInvalidAction, a.TeamID, a.MatchID)
	case a.Dismissed() && a.DismissalMinute <= 0:
		return fmt.Errorf("%w: dismissal without minute", ErrInvalidAction)
	}
	m.officials[a.MatchID] = append(m.officials[a.MatchID], a)
	return nil
}

// OfficialActions returns the official actions of a match in arrival order.
func (m *Memory) OfficialActions(matchID int) ([]model.OfficialAction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	return append([]model.OfficialAction{}, m.officials[matchID]...), nil
}

func (m *Memory) snapshot(matchID int) model.Timeline {
	list := m.events[matchID]
	out := make(model.Timeline, len(list))
	copy(out, list)
	return out
}

func indexOf(list []model.MatchEvent, id int) int {
	for i, e := range list {
		if e.ID == id {
			return i
		}
	}
	return -1
}
