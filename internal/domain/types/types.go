// Package types contains common types used across the application
package types

import "fmt"

// Score is a home/away goal pair.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// String renders the score as "home-away".
func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Home, s.Away)
}

// Scores holds the running regular-time score and the score at halftime.
type Scores struct {
	RegularTime Score `json:"regular_time"`
	Halftime    Score `json:"halftime"`
}

// IsZero reports whether no goals have been counted.
func (s Scores) IsZero() bool {
	return s == Scores{}
}
