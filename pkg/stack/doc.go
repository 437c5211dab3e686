// Package stack implements the route stack: an ordered sequence of routes
// with push/pop/replace/pop-to semantics, a guard/transformer pipeline,
// lifecycle hooks, breadcrumbs, and a bounded history log with a redo
// cursor.
//
// The stack is the core navigation state machine. The top of the stack is
// the last element; the conceptual root screen lives outside the stack, so
// an empty stack is a valid state (depth zero renders the landing view).
//
// All operations are synchronous and side-effect-free on failure: a
// declined operation leaves the stack unchanged and reports a typed
// [route.Rejection] through the configured rejection handler. Nothing in
// this package panics or returns errors for steady-state navigation.
//
//	s := stack.New(
//	    stack.WithMaxDepth(10),
//	    stack.WithRejectionHandler(func(rej route.Rejection) {
//	        log.Warn("push rejected", "reason", rej.Reason)
//	    }),
//	)
//	s.Push(route.New("/profile"))
//
// Depth-limit policy: when a maximum depth is configured, Push rejects
// with ReasonMaxDepth. The history log and breadcrumbs instead truncate
// their oldest entries on overflow; they are observability aids, not
// navigation state.
package stack
