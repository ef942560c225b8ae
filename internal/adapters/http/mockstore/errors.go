package mockstore

import "errors"

// Sentinel kinds for the in-memory store.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrEventNotFound = errors.New("event not found")
	ErrInjected      = errors.New("injected write failure")
	ErrInvalidAction = errors.New("invalid official action")
)
