package common

import "errors"

// Sentinel errors shared by client layers. Callers should use errors.Is to
// match these values.
var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Validation errors raised before any backend call is made.
	ErrorValidation = errors.New("validation error")
)
