package deeplink

import "errors"

// Sentinel errors for deep-link parsing.
var (
	// ErrInvalidURI is returned when the incoming string cannot be parsed
	// as a URI at all.
	ErrInvalidURI = errors.New("deeplink: invalid uri")

	// ErrSchemeNotAllowed is returned when the URI scheme is not in the
	// configured allow-list.
	ErrSchemeNotAllowed = errors.New("deeplink: scheme not allowed")

	// ErrHostMismatch is returned when the URI host does not match the
	// expected host.
	ErrHostMismatch = errors.New("deeplink: host mismatch")

	// ErrNoMatch is returned when no pattern and no fallback produced a
	// route for the URI.
	ErrNoMatch = errors.New("deeplink: no matching pattern")

	// ErrEmptyPattern is returned when registering a pattern with no
	// segments.
	ErrEmptyPattern = errors.New("deeplink: empty pattern")
)
