package api

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired is returned for HTTP 401 and for the backend's
	// stale-session code 434. Both force a logout; neither is retried.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnavailable is returned when the server cannot be reached at all.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNotFound is returned for HTTP 404.
	ErrNotFound = errors.New("not found")
)

// ServerError carries a backend-supplied error message for statuses that are
// not mapped to a sentinel. The message, when present, is preferred over a
// generic default in user-facing notices.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}

// BackendMessage extracts the backend-supplied message from err, if any.
func BackendMessage(err error) string {
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
