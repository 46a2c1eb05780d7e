package domain

import "errors"

// Sentinel error kinds returned by services and repositories. Callers
// classify with errors.Is; the HTTP layer maps each kind to a status code.
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnavailable wraps transient persistence failures. The core never
	// retries; re-attempting is the caller's responsibility.
	ErrUnavailable = errors.New("storage unavailable")
)
