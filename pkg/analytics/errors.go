package analytics

import "errors"

// ErrNoVariants is returned when assigning from an experiment with no
// variants or zero total weight.
var ErrNoVariants = errors.New("analytics: experiment has no variants")
