package store

import "errors"

// Sentinel kinds for store client errors.
var (
	ErrUnexpectedStatus = errors.New("unexpected status from event store")
	ErrEmptySnapshot    = errors.New("event store returned an empty snapshot")
	ErrUnauthorized     = errors.New("event store rejected the session")
	ErrMissingBaseURL   = errors.New("event store base url is required")
	ErrDecodeResponse   = errors.New("decode response")
)
