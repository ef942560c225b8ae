package service

import "errors"

// Sentinel kinds for reporting errors.
var (
	ErrMatchNotOpen     = errors.New("match not opened")
	ErrInvalidTeam      = errors.New("team number must be 1 or 2")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotPlayerEvent   = errors.New("event type cannot be reported for a player")
	ErrNotBoundaryType  = errors.New("event type is not a period end or game end")
	ErrInvalidOfficial  = errors.New("team official id must be positive")
	ErrNoOfficialAction = errors.New("official action needs a caution or dismissal")
	ErrDismissalMinute  = errors.New("dismissal needs a minute")
)
