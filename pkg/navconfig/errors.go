package navconfig

import "errors"

var (
	// ErrInvalidConfig is returned when the YAML document is malformed
	// or contains unknown fields.
	ErrInvalidConfig = errors.New("navconfig: invalid config")

	// ErrValidation is returned when a structurally valid config fails
	// semantic checks (empty patterns, duplicate tabs, bad modal style).
	ErrValidation = errors.New("navconfig: validation failed")
)
