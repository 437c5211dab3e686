package stack

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/route"
)

type options struct {
	logger          *slog.Logger
	onReject        func(route.Rejection)
	observer        Observer
	maxDepth        int
	historyLimit    int
	breadcrumbLimit int
	allowDuplicates bool
}

func defaultOptions() *options {
	return &options{
		logger:          logger.NewNope(),
		historyLimit:    defaultHistoryLimit,
		breadcrumbLimit: defaultBreadcrumbLimit,
		allowDuplicates: true,
	}
}

// Option configures a Stack.
type Option func(*options)

// WithMaxDepth limits stack depth. A push that would exceed the limit is
// rejected with ReasonMaxDepth. Zero (the default) means unbounded.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithoutDuplicates rejects pushing a route whose path equals the current
// top with ReasonBlocked.
func WithoutDuplicates() Option {
	return func(o *options) { o.allowDuplicates = false }
}

// WithHistoryLimit caps the mutation history log. Oldest entries are
// truncated on overflow. Defaults to 100.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.historyLimit = n
		}
	}
}

// WithBreadcrumbLimit caps the breadcrumb trail. Defaults to 50.
func WithBreadcrumbLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.breadcrumbLimit = n
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRejectionHandler installs a callback invoked with the typed reason
// every time an operation declines to mutate the stack.
func WithRejectionHandler(fn func(route.Rejection)) Option {
	return func(o *options) { o.onReject = fn }
}

// WithObserver installs a callback invoked after every successful
// mutation with the source tag, affected route, and resulting depth.
func WithObserver(fn Observer) Option {
	return func(o *options) { o.observer = fn }
}
