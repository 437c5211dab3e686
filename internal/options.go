package internal

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/pkg/analytics"
	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/presentation"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/stack"
	"github.com/dmitrymomot/waypoint/pkg/tabs"
)

// Option configures the navigator.
type Option func(*Navigator)

// WithLogger sets the logger shared by the navigator and the state
// machines it constructs. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithStackOptions applies options to the root stack, every tab stack,
// and every coordinator stack.
func WithStackOptions(opts ...stack.Option) Option {
	return func(n *Navigator) {
		n.stackOpts = append(n.stackOpts, opts...)
	}
}

// WithPresentationOptions configures the modal presentation state.
func WithPresentationOptions(opts ...presentation.Option) Option {
	return func(n *Navigator) {
		n.presOpts = append(n.presOpts, opts...)
	}
}

// WithTabs enables tab coordination with the given initially selected
// tab. Without this option the navigator drives a single root stack.
func WithTabs(initial string, opts ...tabs.Option[string]) Option {
	return func(n *Navigator) {
		n.tabsEnabled = true
		n.tabsInitial = initial
		n.tabsOpts = append(n.tabsOpts, opts...)
	}
}

// WithDeepLinks installs the deep-link parser behind HandleURL.
func WithDeepLinks(parser *deeplink.Parser) Option {
	return func(n *Navigator) {
		n.parser = parser
	}
}

// WithRecovery installs the crash-recovery manager. Every qualifying
// mutation schedules a snapshot save through it.
func WithRecovery(mgr *recovery.Manager) Option {
	return func(n *Navigator) {
		n.recovery = mgr
	}
}

// WithAnalytics subscribes the recorder to the navigator's events.
func WithAnalytics(rec *analytics.Recorder) Option {
	return func(n *Navigator) {
		n.recorder = rec
	}
}

// WithSinks registers event sinks at construction time.
func WithSinks(sinks ...Sink) Option {
	return func(n *Navigator) {
		for _, s := range sinks {
			if s != nil {
				n.sinks = append(n.sinks, s)
			}
		}
	}
}
