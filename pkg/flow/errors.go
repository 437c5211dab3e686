package flow

import "errors"

// ErrNoSteps is returned by New when constructing a flow with an empty
// step list.
var ErrNoSteps = errors.New("flow: at least one step is required")
