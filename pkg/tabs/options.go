package tabs

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

const (
	defaultDoubleTapWindow = 300 * time.Millisecond
	defaultHistoryLimit    = 50
)

type options[T comparable] struct {
	logger          *slog.Logger
	observer        Observer[T]
	onRejection     func(tab T, rej route.Rejection)
	now             func() time.Time
	stackOptions    []stack.Option
	doubleTapWindow time.Duration
	historyLimit    int
}

func defaultOptions[T comparable]() *options[T] {
	return &options[T]{
		logger:          logger.NewNope(),
		now:             time.Now,
		doubleTapWindow: defaultDoubleTapWindow,
		historyLimit:    defaultHistoryLimit,
	}
}

// Option configures a State.
type Option[T comparable] func(*options[T])

// WithDoubleTapWindow sets how quickly the current tab must be
// re-selected to count as a double tap. Defaults to 300ms.
func WithDoubleTapWindow[T comparable](d time.Duration) Option[T] {
	return func(o *options[T]) {
		if d > 0 {
			o.doubleTapWindow = d
		}
	}
}

// WithStackOptions applies options to every lazily created tab stack.
func WithStackOptions[T comparable](opts ...stack.Option) Option[T] {
	return func(o *options[T]) { o.stackOptions = opts }
}

// WithHistoryLimit caps the selection history. Defaults to 50.
func WithHistoryLimit[T comparable](n int) Option[T] {
	return func(o *options[T]) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithRejectionHandler installs a callback invoked when Select refuses
// a locked or hidden tab.
func WithRejectionHandler[T comparable](fn func(tab T, rej route.Rejection)) Option[T] {
	return func(o *options[T]) { o.onRejection = fn }
}

// WithObserver installs a callback notified on selections and
// double-tap pops.
func WithObserver[T comparable](fn Observer[T]) Option[T] {
	return func(o *options[T]) { o.observer = fn }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger[T comparable](l *slog.Logger) Option[T] {
	return func(o *options[T]) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the time source, used by tests to drive the
// double-tap window deterministically.
func WithClock[T comparable](now func() time.Time) Option[T] {
	return func(o *options[T]) {
		if now != nil {
			o.now = now
		}
	}
}
