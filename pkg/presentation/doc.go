// Package presentation tracks modal presentation state: at most one
// active sheet or full-screen cover, plus a FIFO queue of pending
// presentations.
//
// Presenting while something is already active enqueues the request
// (or drops it when queueing is disabled). Dismissing fires the active
// presentation's dismiss callback exactly once, then activates the next
// queued presentation after a configurable delay that stands in for the
// outgoing dismiss animation.
//
//	ps := presentation.NewState(presentation.WithDequeueDelay(300 * time.Millisecond))
//	ps.Present(route.New("/paywall"), route.StyleSheet, func() { log.Info("paywall closed") })
//	ps.Dismiss()
package presentation
