package clock

import (
	"errors"
	"fmt"
)

// Sentinel kinds for minute resolution. Every minute error wraps ErrInvalidMinute.
var (
	ErrInvalidMinute = errors.New("invalid minute")

	ErrStoppageOutsideRegularTime = fmt.Errorf("%w: stoppage time can only be added to the last minute of regular time", ErrInvalidMinute)
	ErrMinuteOutOfRange           = fmt.Errorf("%w: minute out of range", ErrInvalidMinute)
	ErrInvalidMinuteFormat        = fmt.Errorf("%w: invalid minute format", ErrInvalidMinute)

	ErrNoBoundaryMatch = errors.New("minute does not correspond to a period start or end")
	ErrInvalidConfig   = errors.New("invalid match config")
)
