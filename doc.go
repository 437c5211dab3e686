// Package waypoint is a navigation state engine: route stacks with a
// guard/transformer pipeline, tab coordination, deep-link parsing,
// modal presentation, wizard flows, crash recovery, and navigation
// analytics — thin state containers a rendering layer of any kind
// (mobile, desktop, web SPA) can subscribe to and re-render from.
//
// The root package is a facade over internal and the pkg/ packages.
// Construct a Navigator with options, dispatch navigation intents at
// it, and observe the resulting events or pull coherent State
// snapshots:
//
//	nav := waypoint.New(
//	    waypoint.WithTabs("home"),
//	    waypoint.WithStackOptions(waypoint.WithMaxDepth(20)),
//	)
//	defer nav.Close()
//
//	nav.Push(waypoint.NewRoute("/profile", waypoint.WithTitle("Profile")))
//	st := nav.State() // {StackPaths:[/profile] SelectedTab:home ...}
//
// Every pkg/ package (stack, deeplink, presentation, tabs, flow,
// recovery, analytics, kv) is also usable on its own without the
// Navigator.
package waypoint
