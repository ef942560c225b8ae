// Package model contains the wire records exchanged with the FOGIS event store.
//
// JSON field names are defined by the store and must not change.
package model

import "strconv"

// EventType is the store's matchhandelsetypid.
type EventType int

// Known event types.
const (
	RegularGoal        EventType = 6
	HeaderGoal         EventType = 39
	CornerGoal         EventType = 28
	FreeKickGoal       EventType = 29
	OwnGoal            EventType = 15
	PenaltyGoal        EventType = 14
	YellowCard         EventType = 20
	SecondYellow       EventType = 21
	RedCardDenyingGoal EventType = 8
	RedCardOther       EventType = 9
	Substitution       EventType = 17
	TeamOfficialAction EventType = 30
	PeriodStart        EventType = 31
	PeriodEnd          EventType = 32
	GameEnd            EventType = 23
)

var eventTypeNames = map[EventType]string{
	RegularGoal:        "Regular Goal",
	HeaderGoal:         "Header Goal",
	CornerGoal:         "Corner Goal",
	FreeKickGoal:       "Free Kick Goal",
	OwnGoal:            "Own Goal",
	PenaltyGoal:        "Penalty Goal",
	YellowCard:         "Yellow Card",
	SecondYellow:       "Second Yellow Card",
	RedCardDenyingGoal: "Red Card (Denying Goal Opportunity)",
	RedCardOther:       "Red Card (Other Reasons)",
	Substitution:       "Substitution",
	TeamOfficialAction: "Team Official Action",
	PeriodStart:        "Period Start",
	PeriodEnd:          "Period End",
	GameEnd:            "Game End",
}

// String returns the human readable name of the type.
func (t EventType) String() string {
	if n, ok := eventTypeNames[t]; ok {
		return n
	}
	return "Event Type " + strconv.Itoa(int(t))
}

// Slug returns a lower_snake label suitable for metrics.
func (t EventType) Slug() string {
	switch t {
	case PeriodStart:
		return "period_start"
	case PeriodEnd:
		return "period_end"
	case GameEnd:
		return "game_end"
	}
	if t.IsGoal() {
		return "goal"
	}
	return "other"
}

// IsGoal reports whether the type counts towards the score.
func (t EventType) IsGoal() bool {
	switch t {
	case RegularGoal, HeaderGoal, CornerGoal, FreeKickGoal, OwnGoal, PenaltyGoal:
		return true
	}
	return false
}

// IsControl reports whether the type is a team-agnostic period/game boundary.
func (t EventType) IsControl() bool {
	return t == PeriodStart || t == PeriodEnd || t == GameEnd
}

// Store defaults for fields the reporter never sets explicitly.
const (
	NoPitchPosition = "-1"
	FootballTypeID  = 1
)

// MatchEvent is one record of a match timeline as stored remotely.
// ID 0 means the record has not been persisted yet.
type MatchEvent struct {
	ID             int       `json:"matchhandelseid"`
	MatchID        int       `json:"matchid"`
	Period         int       `json:"period"`
	Minute         int       `json:"matchminut"`
	Second         int       `json:"sekund"`
	TypeID         EventType `json:"matchhandelsetypid"`
	TeamID         int       `json:"matchlagid"`
	PlayerID       int       `json:"spelareid"`
	PlayerID2      int       `json:"spelareid2"`
	PositionX      string    `json:"planpositionx"`
	PositionY      string    `json:"planpositiony"`
	ParticipantID  int       `json:"matchdeltagareid"`
	ParticipantID2 int       `json:"matchdeltagareid2"`
	FootballTypeID int       `json:"fotbollstypId"`
	RelatedEventID int       `json:"relateradTillMatchhandelseID"`
	HomeGoals      int       `json:"hemmamal"`
	AwayGoals      int       `json:"bortamal"`
}

// NewControlEvent builds a team-agnostic boundary event with the score
// snapshot taken at the time of reporting.
func NewControlEvent(matchID int, typeID EventType, period, minute, homeGoals, awayGoals int) MatchEvent {
	return MatchEvent{
		MatchID:        matchID,
		Period:         period,
		Minute:         minute,
		TypeID:         typeID,
		PositionX:      NoPitchPosition,
		PositionY:      NoPitchPosition,
		FootballTypeID: FootballTypeID,
		HomeGoals:      homeGoals,
		AwayGoals:      awayGoals,
	}
}

// IsPersisted reports whether the event carries a store identifier.
func (e MatchEvent) IsPersisted() bool { return e.ID != 0 }
