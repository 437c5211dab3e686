package waypoint

import (
	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/analytics"
	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// Type aliases - public API
type (
	// Navigator wires the navigation state machines behind one dispatch
	// surface. It is immutable after New.
	Navigator = internal.Navigator

	// State is one coherent snapshot of the navigation engine, the
	// single stream a rendering layer re-renders from.
	State = internal.State

	// Event is a discrete description of one navigation mutation.
	Event = internal.Event

	// EventKind names a navigation event.
	EventKind = internal.EventKind

	// Sink receives navigation events from the Navigator.
	Sink = internal.Sink

	// SinkFunc adapts a function to the Sink interface.
	SinkFunc = internal.SinkFunc

	// Handle addresses a coordinator in the navigator's arena.
	Handle = internal.Handle

	// Coordinator is a named navigation scope with its own stack.
	Coordinator = internal.Coordinator

	// Option configures the navigator.
	Option = internal.Option

	// Route is a navigable destination, identified by its path.
	Route = route.Route

	// RouteOption configures a route during construction.
	RouteOption = route.Option

	// Style describes how a route prefers to be presented.
	Style = route.Style

	// Rejection explains a declined navigation operation.
	Rejection = route.Rejection

	// Reason classifies a navigation rejection.
	Reason = route.Reason

	// Stack is an ordered, mutable sequence of routes.
	Stack = stack.Stack

	// StackOption configures a stack.
	StackOption = stack.Option

	// Guard may veto a pending push before it mutates state.
	Guard = stack.Guard

	// Transformer may rewrite or cancel a route before it is pushed.
	Transformer = stack.Transformer

	// Hooks are lifecycle callbacks fired around stack mutations.
	Hooks = stack.Hooks

	// Parser matches incoming URIs against registered patterns.
	Parser = deeplink.Parser

	// Factory turns captured deep-link parameters into a route.
	Factory = deeplink.Factory

	// AsyncGuard may suspend before a deep-linked route is allowed
	// through.
	AsyncGuard = deeplink.AsyncGuard

	// RecoveryManager persists and restores navigation snapshots.
	RecoveryManager = recovery.Manager

	// RecoveryResult describes the outcome of a recovery attempt.
	RecoveryResult = recovery.Result

	// Recorder accumulates navigation events for analytics.
	Recorder = analytics.Recorder

	// Variant is one arm of an experiment with a relative weight.
	Variant = analytics.Variant

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger construction to add navigation-scoped values.
	ContextExtractor = logger.ContextExtractor
)

// Navigation event kinds.
const (
	EventPush          = internal.EventPush
	EventPop           = internal.EventPop
	EventPresent       = internal.EventPresent
	EventDismiss       = internal.EventDismiss
	EventScreenView    = internal.EventScreenView
	EventFlowStep      = internal.EventFlowStep
	EventFlowComplete  = internal.EventFlowComplete
	EventFlowAbandoned = internal.EventFlowAbandoned
	EventTabSelected   = internal.EventTabSelected
)

// Presentation styles.
const (
	StylePush       = route.StylePush
	StyleSheet      = route.StyleSheet
	StyleFullScreen = route.StyleFullScreen
)

// New creates a navigator with the given options.
// The Navigator is immutable after creation.
//
// Example:
//
//	nav := waypoint.New(
//	    waypoint.WithTabs("home"),
//	    waypoint.WithDeepLinks(parser),
//	    waypoint.WithRecovery(manager),
//	)
//	defer nav.Close()
func New(opts ...Option) *Navigator {
	return internal.New(opts...)
}

// NewRoute creates a route for the given path.
//
// Example:
//
//	profile := waypoint.NewRoute("/profile",
//	    waypoint.WithTitle("Profile"),
//	    waypoint.WithParam("userId", "42"),
//	)
func NewRoute(path string, opts ...RouteOption) Route {
	return route.New(path, opts...)
}
