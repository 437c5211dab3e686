// Package internal wires the navigation state machines into a single
// Navigator: one dispatch surface for pushes, pops, presentations, tab
// selection, and deep links, with event fan-out to subscribers and
// debounced crash-recovery saves on every qualifying mutation.
//
// This package is internal; the public API is the root waypoint
// package, which re-exports the Navigator and its options.
package internal
