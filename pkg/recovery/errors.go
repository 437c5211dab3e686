package recovery

import "errors"

var (
	// ErrSessionNotFound is returned when a named session does not exist.
	ErrSessionNotFound = errors.New("recovery: session not found")

	// ErrSessionName is returned when saving a session without a name.
	ErrSessionName = errors.New("recovery: session name required")
)
