package flow

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/route"
)

type options struct {
	logger              *slog.Logger
	validators          map[string]Validator
	observer            Observer
	onValidationFailure func(step string, rej route.Rejection)
	allowSkipping       bool
	allowBack           bool
}

func defaultOptions() *options {
	return &options{
		logger:        logger.NewNope(),
		validators:    make(map[string]Validator),
		allowSkipping: true,
		allowBack:     true,
	}
}

// Option configures a Flow.
type Option func(*options)

// WithValidator gates forward movement out of the named step.
func WithValidator(step string, v Validator) Option {
	return func(o *options) {
		if v != nil {
			o.validators[step] = v
		}
	}
}

// WithoutSkipping rejects jumps more than one step ahead of the current
// step.
func WithoutSkipping() Option {
	return func(o *options) { o.allowSkipping = false }
}

// WithoutBack disables Previous and backward jumps.
func WithoutBack() Option {
	return func(o *options) { o.allowBack = false }
}

// WithObserver installs a callback notified on step changes and terminal
// transitions.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithValidationFailureHandler installs a callback invoked when a
// validator rejects or errors. The rejection carries
// route.ReasonValidationFailed; its message is empty for plain
// rejections and holds the error text otherwise.
func WithValidationFailureHandler(fn func(step string, rej route.Rejection)) Option {
	return func(o *options) { o.onValidationFailure = fn }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
