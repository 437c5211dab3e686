package waypoint

import (
	"log/slog"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/analytics"
	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/kv"
	"github.com/dmitrymomot/waypoint/pkg/presentation"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
	"github.com/dmitrymomot/waypoint/pkg/tabs"
)

// Navigator options

// WithLogger sets the logger shared by the navigator and the state
// machines it constructs.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithStackOptions applies options to the root stack, every tab stack,
// and every coordinator stack.
//
// Example:
//
//	waypoint.New(
//	    waypoint.WithStackOptions(
//	        waypoint.WithMaxDepth(20),
//	        waypoint.WithoutDuplicates(),
//	    ),
//	)
func WithStackOptions(opts ...StackOption) Option {
	return internal.WithStackOptions(opts...)
}

// WithPresentationOptions configures the modal presentation state.
func WithPresentationOptions(opts ...presentation.Option) Option {
	return internal.WithPresentationOptions(opts...)
}

// WithTabs enables tab coordination with the given initially selected
// tab.
func WithTabs(initial string, opts ...tabs.Option[string]) Option {
	return internal.WithTabs(initial, opts...)
}

// WithDeepLinks installs the deep-link parser behind HandleURL.
func WithDeepLinks(parser *Parser) Option {
	return internal.WithDeepLinks(parser)
}

// WithRecovery installs the crash-recovery manager.
func WithRecovery(mgr *RecoveryManager) Option {
	return internal.WithRecovery(mgr)
}

// WithAnalytics subscribes the recorder to the navigator's events.
func WithAnalytics(rec *Recorder) Option {
	return internal.WithAnalytics(rec)
}

// WithSinks registers event sinks at construction time.
func WithSinks(sinks ...Sink) Option {
	return internal.WithSinks(sinks...)
}

// Route options

// WithTitle sets the route's human-readable title.
func WithTitle(title string) RouteOption {
	return route.WithTitle(title)
}

// WithParam attaches a single payload parameter to the route.
func WithParam(key, value string) RouteOption {
	return route.WithParam(key, value)
}

// WithParams attaches a payload parameter map to the route.
func WithParams(params map[string]string) RouteOption {
	return route.WithParams(params)
}

// AsModal marks the route as a modal destination with the given style.
func AsModal(style Style) RouteOption {
	return route.AsModal(style)
}

// Stack options

// WithMaxDepth rejects pushes beyond the given depth.
func WithMaxDepth(n int) StackOption {
	return stack.WithMaxDepth(n)
}

// WithoutDuplicates rejects pushing a route equal to the current top.
func WithoutDuplicates() StackOption {
	return stack.WithoutDuplicates()
}

// WithHistoryLimit caps the stack's mutation history log.
func WithHistoryLimit(n int) StackOption {
	return stack.WithHistoryLimit(n)
}

// WithBreadcrumbLimit caps the stack's breadcrumb trail.
func WithBreadcrumbLimit(n int) StackOption {
	return stack.WithBreadcrumbLimit(n)
}

// WithRejectionHandler installs a callback invoked whenever a stack
// operation is declined.
func WithRejectionHandler(fn func(Rejection)) StackOption {
	return stack.WithRejectionHandler(fn)
}

// Deep-link options

// WithSchemes sets the deep-link scheme allow-list.
func WithSchemes(schemes ...string) deeplink.Option {
	return deeplink.WithSchemes(schemes...)
}

// WithHost sets the expected deep-link host.
func WithHost(host string) deeplink.Option {
	return deeplink.WithHost(host)
}

// NewParser creates a deep-link parser.
//
// Example:
//
//	parser := waypoint.NewParser(waypoint.WithSchemes("myapp"))
//	parser.Register("/profile/:userId", func(params map[string]string) (waypoint.Route, bool) {
//	    return waypoint.NewRoute("/profile", waypoint.WithParams(params)), true
//	})
func NewParser(opts ...deeplink.Option) *Parser {
	return deeplink.New(opts...)
}

// Recovery constructors

// NewRecoveryManager creates a crash-recovery manager over a byte
// store. The factory maps persisted paths back to routes on restore.
func NewRecoveryManager(store kv.Store, factory recovery.Factory, opts ...recovery.Option) *RecoveryManager {
	return recovery.NewManager(store, factory, opts...)
}

// Analytics constructors

// NewRecorder creates an analytics recorder with a fresh session id.
func NewRecorder(opts ...analytics.Option) *Recorder {
	return analytics.NewRecorder(opts...)
}
