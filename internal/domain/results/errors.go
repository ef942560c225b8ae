package results

import (
	"errors"
	"fmt"
)

// Sentinel kinds for result verification.
var (
	ErrResultsIncomplete    = errors.New("store did not return both halftime and fulltime results")
	ErrVerificationMismatch = errors.New("reported results do not match store")
)

// MismatchError carries both sides of a failed comparison.
type MismatchError struct {
	Reported Scores
	Fetched  Scores
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%v: reported halftime %s fulltime %s, store has halftime %s fulltime %s",
		ErrVerificationMismatch,
		e.Reported.Halftime, e.Reported.RegularTime,
		e.Fetched.Halftime, e.Fetched.RegularTime)
}

func (e *MismatchError) Unwrap() error { return ErrVerificationMismatch }
