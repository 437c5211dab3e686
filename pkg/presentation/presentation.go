package presentation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Presentation is one modal request: the route, how it wants to be
// shown, and an optional callback fired when it is dismissed.
type Presentation struct {
	onDismiss func()
	Route     route.Route
	Style     route.Style
}

// Observer is notified after a presentation activates or is dismissed.
type Observer func(event string, r route.Route)

// Observer event names.
const (
	EventPresented = "presented"
	EventDismissed = "dismissed"
)

// State holds the single active presentation and the pending queue.
type State struct {
	active   *Presentation
	timer    *time.Timer
	logger   *slog.Logger
	opts     *options
	queue    []Presentation
	mu       sync.Mutex
	closed   bool
	draining bool
}

// NewState creates an empty presentation state.
func NewState(opts ...Option) *State {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &State{opts: o, logger: o.logger}
}

// Present activates the route immediately when nothing is active.
// Otherwise the request is enqueued in FIFO order, or dropped (returning
// false) when queueing is disabled. The dismiss callback, if any, fires
// exactly once and only through Dismiss.
func (s *State) Present(r route.Route, style route.Style, onDismiss func()) bool {
	s.mu.Lock()

	if s.closed {
		s.mu.Unlock()
		return false
	}

	p := Presentation{Route: r, Style: style, onDismiss: onDismiss}

	if s.active == nil && !s.draining {
		s.active = &p
		s.mu.Unlock()
		s.notify(EventPresented, p.Route)
		return true
	}

	if !s.opts.queueing {
		s.logger.Debug("presentation dropped, queueing disabled",
			slog.String("path", r.Path))
		s.mu.Unlock()
		return false
	}

	s.queue = append(s.queue, p)
	s.mu.Unlock()
	return true
}

// Dismiss clears the active presentation and fires its callback.
// After the configured delay the next queued presentation, if any,
// becomes active. Returns false when nothing was active.
func (s *State) Dismiss() bool {
	s.mu.Lock()

	if s.active == nil {
		s.mu.Unlock()
		return false
	}

	dismissed := *s.active
	s.active = nil

	hasPending := len(s.queue) > 0
	if hasPending {
		// Block immediate activation until the delay elapses so the
		// outgoing dismiss animation can finish.
		s.draining = true
		delay := s.opts.dequeueDelay
		s.timer = time.AfterFunc(delay, s.dequeue)
	}

	s.mu.Unlock()

	s.notify(EventDismissed, dismissed.Route)
	if dismissed.onDismiss != nil {
		dismissed.onDismiss()
	}
	return true
}

// Active returns the currently presented route and style.
func (s *State) Active() (route.Route, route.Style, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return route.Route{}, route.StylePush, false
	}
	return s.active.Route, s.active.Style, true
}

// QueueLen returns the number of pending presentations.
func (s *State) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Clear drops the queue and the active presentation without firing any
// dismiss callbacks. Used by crash recovery when rebuilding state.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
	s.active = nil
	s.queue = nil
	s.draining = false
}

// Close stops the dequeue timer and rejects further presentations.
// Close is idempotent.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopTimer()
	s.queue = nil
	s.draining = false
}

// dequeue activates the oldest pending presentation after the delay.
func (s *State) dequeue() {
	s.mu.Lock()

	s.draining = false
	if s.closed || s.active != nil || len(s.queue) == 0 {
		s.mu.Unlock()
		return
	}

	next := s.queue[0]
	s.queue = s.queue[1:]
	s.active = &next
	s.mu.Unlock()

	s.notify(EventPresented, next.Route)
}

// stopTimer cancels a pending dequeue. Caller must hold the mutex.
func (s *State) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// notify invokes the observer. Called with the mutex released so the
// observer may read the state back (Active, QueueLen) without
// deadlocking.
func (s *State) notify(event string, r route.Route) {
	s.logger.Debug("presentation "+event, slog.String("path", r.Path))
	if s.opts.observer != nil {
		s.opts.observer(event, r)
	}
}
