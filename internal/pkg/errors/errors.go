package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict marks writes that collide with an existing unique value.
	ErrConflict = errors.New("conflict")
	// ErrRateLimited is returned when a caller exceeded an attempt budget.
	ErrRateLimited = errors.New("rate limited")
)
