package services

import "errors"

var (
	// ErrForbidden reports a caller without the capability for the
	// operation. Deterministic, never retried.
	ErrForbidden = errors.New("operation not allowed")
	// ErrUnavailable reports an operation abandoned after the store kept
	// refusing it, or an unreachable backend.
	ErrUnavailable = errors.New("service unavailable")
)
