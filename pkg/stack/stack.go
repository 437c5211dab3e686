package stack

import (
	"log/slog"
	"sync"

	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Guard is a predicate that may veto a pending push before it mutates
// state. All registered guards must pass.
type Guard func(next route.Route) bool

// Transformer may rewrite a route before it is pushed, or cancel the push
// by returning ok=false. Transformers run in registration order and
// short-circuit on the first cancellation.
type Transformer func(next route.Route) (route.Route, bool)

// Hooks are lifecycle callbacks fired around a mutation. The new screen's
// DidAppear fires before the old screen's DidDisappear: the incoming
// screen must be ready before the outgoing one's teardown runs.
type Hooks struct {
	WillAppear    func(route.Route)
	DidAppear     func(route.Route)
	WillDisappear func(route.Route)
	DidDisappear  func(route.Route)
}

// Observer receives a notification after every successful mutation.
type Observer func(source Source, r route.Route, depth int)

// Stack is an ordered, mutable sequence of routes.
// It is safe for concurrent use, though navigation is expected to be
// driven from a single logical thread.
type Stack struct {
	onReject     func(route.Rejection)
	observer     Observer
	logger       *slog.Logger
	history      *History
	routes       []route.Route
	breadcrumbs  []Breadcrumb
	guards       []Guard
	transformers []Transformer
	hooks        Hooks
	opts         *options
	mu           sync.Mutex
}

// New creates an empty stack.
func New(opts ...Option) *Stack {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Stack{
		opts:     o,
		logger:   o.logger,
		onReject: o.onReject,
		observer: o.observer,
		history:  newHistory(o.historyLimit),
	}
}

// AddGuard appends a guard to the pre-push pipeline.
func (s *Stack) AddGuard(g Guard) {
	if g == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guards = append(s.guards, g)
}

// AddTransformer appends a transformer to the pre-push pipeline.
func (s *Stack) AddTransformer(t Transformer) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transformers = append(s.transformers, t)
}

// SetHooks installs lifecycle hooks. Nil fields are simply not called.
func (s *Stack) SetHooks(h Hooks) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = h
}

// Push runs the guard/transformer pipeline and appends the route.
// Returns false (stack unchanged) when a guard vetoes, a transformer
// cancels, the depth limit is reached, or duplicates are disabled and the
// route equals the current top.
func (s *Stack) Push(r route.Route) bool {
	return s.push(r, SourcePush)
}

// PushFrom is Push with an explicit history source tag, used by callers
// that feed the stack from deep links or recovery.
func (s *Stack) PushFrom(r route.Route, src Source) bool {
	return s.push(r, src)
}

func (s *Stack) push(r route.Route, src Source) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushLocked(r, src)
}

// pushLocked runs the pipeline and appends. Caller must hold the mutex.
func (s *Stack) pushLocked(r route.Route, src Source) bool {
	for _, g := range s.guards {
		if !g(r) {
			s.reject(route.Reject(route.ReasonGuardFailed))
			return false
		}
	}

	for _, t := range s.transformers {
		next, ok := t(r)
		if !ok {
			s.reject(route.Reject(route.ReasonTransformerCancelled))
			return false
		}
		r = next
	}

	if s.opts.maxDepth > 0 && len(s.routes) >= s.opts.maxDepth {
		s.reject(route.Reject(route.ReasonMaxDepth))
		return false
	}

	if !s.opts.allowDuplicates {
		if top, ok := s.top(); ok && top.Equal(r) {
			s.reject(route.Reject(route.ReasonBlocked))
			return false
		}
	}

	old, hadOld := s.top()

	if hadOld && s.hooks.WillDisappear != nil {
		s.hooks.WillDisappear(old)
	}
	if s.hooks.WillAppear != nil {
		s.hooks.WillAppear(r)
	}

	s.routes = append(s.routes, r)
	s.recordBreadcrumb(r)
	s.history.record(r.Path, src)

	if s.hooks.DidAppear != nil {
		s.hooks.DidAppear(r)
	}
	if hadOld && s.hooks.DidDisappear != nil {
		s.hooks.DidDisappear(old)
	}

	s.notify(src, r)
	return true
}

// Pop removes and returns the top route. Popping an empty stack is a
// no-op and returns ok=false; it never fails louder than that.
func (s *Stack) Pop() (route.Route, bool) {
	return s.popFrom(SourcePop)
}

// PopFrom is Pop with an explicit history source tag (e.g. back gesture).
func (s *Stack) PopFrom(src Source) (route.Route, bool) {
	return s.popFrom(src)
}

func (s *Stack) popFrom(src Source) (route.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.routes) == 0 {
		return route.Route{}, false
	}

	removed := s.routes[len(s.routes)-1]
	exposed, hasExposed := route.Route{}, false
	if len(s.routes) > 1 {
		exposed, hasExposed = s.routes[len(s.routes)-2], true
	}

	if s.hooks.WillDisappear != nil {
		s.hooks.WillDisappear(removed)
	}
	if hasExposed && s.hooks.WillAppear != nil {
		s.hooks.WillAppear(exposed)
	}

	s.routes = s.routes[:len(s.routes)-1]
	s.history.record(removed.Path, src)

	if hasExposed && s.hooks.DidAppear != nil {
		s.hooks.DidAppear(exposed)
	}
	if s.hooks.DidDisappear != nil {
		s.hooks.DidDisappear(removed)
	}

	s.notify(src, removed)
	return removed, true
}

// PopN removes exactly n routes from the top. The operation is atomic:
// unless 0 < n <= depth nothing is removed and PopN returns false.
func (s *Stack) PopN(n int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n <= 0 || n > len(s.routes) {
		return false
	}

	top := s.routes[len(s.routes)-1]
	s.routes = s.routes[:len(s.routes)-n]
	s.history.record(top.Path, SourcePop)
	s.notify(SourcePop, top)
	return true
}

// PopToRoot removes every route. The root screen lives outside the stack,
// so the result is a valid empty state.
func (s *Stack) PopToRoot() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.routes) == 0 {
		return
	}

	top := s.routes[len(s.routes)-1]
	s.routes = s.routes[:0]
	s.history.record(top.Path, SourcePopToRoot)
	s.notify(SourcePopToRoot, top)
}

// PopTo pops everything above the last (topmost) occurrence of the route
// with the given path. Returns false without mutation when the path is
// not on the stack.
func (s *Stack) PopTo(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := len(s.routes) - 1; i >= 0; i-- {
		if s.routes[i].Path == path {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}
	if idx == len(s.routes)-1 {
		// Already on top; nothing above it to pop.
		return true
	}

	s.routes = s.routes[:idx+1]
	s.history.record(path, SourcePopTo)
	s.notify(SourcePopTo, s.routes[idx])
	return true
}

// Replace atomically swaps the top route for a new one, the transition
// used for no-back-button screens. On an empty stack it behaves like
// Push. The pre-push pipeline applies to the incoming route.
func (s *Stack) Replace(r route.Route) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.routes) == 0 {
		return s.pushLocked(r, SourceReplace)
	}

	for _, g := range s.guards {
		if !g(r) {
			s.reject(route.Reject(route.ReasonGuardFailed))
			return false
		}
	}
	for _, t := range s.transformers {
		next, ok := t(r)
		if !ok {
			s.reject(route.Reject(route.ReasonTransformerCancelled))
			return false
		}
		r = next
	}

	old := s.routes[len(s.routes)-1]

	if s.hooks.WillDisappear != nil {
		s.hooks.WillDisappear(old)
	}
	if s.hooks.WillAppear != nil {
		s.hooks.WillAppear(r)
	}

	s.routes[len(s.routes)-1] = r
	s.recordBreadcrumb(r)
	s.history.record(r.Path, SourceReplace)

	if s.hooks.DidAppear != nil {
		s.hooks.DidAppear(r)
	}
	if s.hooks.DidDisappear != nil {
		s.hooks.DidDisappear(old)
	}

	s.notify(SourceReplace, r)
	return true
}

// SetRoutes replaces the whole stack contents, bypassing the pipeline.
// This is the single sanctioned splice, used by crash recovery and tests.
func (s *Stack) SetRoutes(routes []route.Route) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes = make([]route.Route, len(routes))
	copy(s.routes, routes)

	if len(routes) > 0 {
		top := routes[len(routes)-1]
		s.history.record(top.Path, SourceRestore)
		s.notify(SourceRestore, top)
	}
}

// Depth returns the number of routes currently pushed.
func (s *Stack) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.routes)
}

// Top returns the current top route, ok=false when the stack is empty.
func (s *Stack) Top() (route.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top()
}

// Root returns the bottom route, ok=false when the stack is empty.
func (s *Stack) Root() (route.Route, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.routes) == 0 {
		return route.Route{}, false
	}
	return s.routes[0], true
}

// Routes returns a copy of the stack, bottom to top.
func (s *Stack) Routes() []route.Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]route.Route, len(s.routes))
	copy(out, s.routes)
	return out
}

// Paths returns the stacked route paths, bottom to top.
func (s *Stack) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.routes))
	for i, r := range s.routes {
		out[i] = r.Path
	}
	return out
}

// Contains reports whether a route with the given path is on the stack.
func (s *Stack) Contains(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.routes {
		if r.Path == path {
			return true
		}
	}
	return false
}

// History returns the mutation history log.
func (s *Stack) History() *History {
	return s.history
}

// Breadcrumbs returns a copy of the breadcrumb trail, oldest first.
func (s *Stack) Breadcrumbs() []Breadcrumb {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Breadcrumb, len(s.breadcrumbs))
	copy(out, s.breadcrumbs)
	return out
}

// top returns the last route. Caller must hold the mutex.
func (s *Stack) top() (route.Route, bool) {
	if len(s.routes) == 0 {
		return route.Route{}, false
	}
	return s.routes[len(s.routes)-1], true
}

// reject reports a declined operation. Caller must hold the mutex.
func (s *Stack) reject(rej route.Rejection) {
	s.logger.Debug("navigation rejected",
		slog.String("reason", rej.Reason.String()),
		slog.String("message", rej.Message),
	)
	if s.onReject != nil {
		s.onReject(rej)
	}
}

// notify invokes the mutation observer. Caller must hold the mutex.
func (s *Stack) notify(src Source, r route.Route) {
	s.logger.Debug("stack mutated",
		slog.String("source", string(src)),
		slog.String("path", r.Path),
		slog.Int("depth", len(s.routes)),
	)
	if s.observer != nil {
		s.observer(src, r, len(s.routes))
	}
}
