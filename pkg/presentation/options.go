package presentation

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/logger"
)

type options struct {
	logger       *slog.Logger
	observer     Observer
	dequeueDelay time.Duration
	queueing     bool
}

func defaultOptions() *options {
	return &options{
		logger:   logger.NewNope(),
		queueing: true,
	}
}

// Option configures a State.
type Option func(*options)

// WithDequeueDelay sets the pause between a dismissal and the activation
// of the next queued presentation, standing in for the outgoing dismiss
// animation. Defaults to zero (immediate).
func WithDequeueDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.dequeueDelay = d
		}
	}
}

// WithoutQueueing makes Present a no-op (returning false) while another
// presentation is active, instead of enqueueing.
func WithoutQueueing() Option {
	return func(o *options) { o.queueing = false }
}

// WithObserver installs a callback notified on activation and dismissal.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
