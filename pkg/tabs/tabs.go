package tabs

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// Observer is notified after a tab selection or double-tap pop-to-root.
type Observer[T comparable] func(event string, tab T)

// Observer event names.
const (
	EventSelected     = "selected"
	EventPoppedToRoot = "popped_to_root"
)

// State coordinates tab selection and the per-tab route stacks.
type State[T comparable] struct {
	stacks      map[T]*stack.Stack
	badges      map[T]string
	locked      map[T]struct{}
	hidden      map[T]struct{}
	logger      *slog.Logger
	opts        *options[T]
	history     []T
	selected    T
	previous    T
	lastSelect  time.Time
	hasPrevious bool
	mu          sync.Mutex
}

// New creates a tab state with the given initially selected tab.
func New[T comparable](initial T, opts ...Option[T]) *State[T] {
	o := defaultOptions[T]()
	for _, opt := range opts {
		opt(o)
	}

	return &State[T]{
		stacks:   make(map[T]*stack.Stack),
		badges:   make(map[T]string),
		locked:   make(map[T]struct{}),
		hidden:   make(map[T]struct{}),
		opts:     o,
		logger:   o.logger,
		selected: initial,
		history:  []T{initial},
	}
}

// Select switches to the given tab. Locked and hidden tabs are refused,
// reported through the rejection handler when one is installed.
// Re-selecting the current tab within the double-tap window pops that
// tab's stack to root instead. Returns true when anything happened.
func (s *State[T]) Select(tab T) bool {
	s.mu.Lock()

	if _, isLocked := s.locked[tab]; isLocked {
		s.logger.Debug("tab selection ignored, tab locked")
		s.mu.Unlock()
		s.reject(tab, route.Reject(route.ReasonLocked))
		return false
	}
	if _, isHidden := s.hidden[tab]; isHidden {
		s.logger.Debug("tab selection ignored, tab hidden")
		s.mu.Unlock()
		s.reject(tab, route.Reject(route.ReasonBlocked))
		return false
	}

	now := s.opts.now()

	if tab == s.selected {
		// Double tap pops the current tab to root; a slower re-select
		// does nothing.
		if !s.lastSelect.IsZero() && now.Sub(s.lastSelect) <= s.opts.doubleTapWindow {
			s.lastSelect = now
			s.stackFor(tab).PopToRoot()
			s.mu.Unlock()
			s.notify(EventPoppedToRoot, tab)
			return true
		}
		s.lastSelect = now
		s.mu.Unlock()
		return false
	}

	s.previous = s.selected
	s.hasPrevious = true
	s.selected = tab
	s.lastSelect = now
	s.recordSelection(tab)
	s.mu.Unlock()

	s.notify(EventSelected, tab)
	return true
}

// Selected returns the currently selected tab.
func (s *State[T]) Selected() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Previous returns the previously selected tab, ok=false before the
// first switch.
func (s *State[T]) Previous() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previous, s.hasPrevious
}

// Stack returns the tab's route stack, creating it on first access.
func (s *State[T]) Stack(tab T) *stack.Stack {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stackFor(tab)
}

// Push pushes a route onto the tab's stack.
func (s *State[T]) Push(tab T, r route.Route) bool {
	return s.Stack(tab).PushFrom(r, stack.SourceTab)
}

// Pop pops the tab's stack.
func (s *State[T]) Pop(tab T) (route.Route, bool) {
	return s.Stack(tab).Pop()
}

// PopToRoot empties the tab's stack.
func (s *State[T]) PopToRoot(tab T) {
	s.Stack(tab).PopToRoot()
}

// SetBadge sets a badge label on a tab; an empty value clears it.
func (s *State[T]) SetBadge(tab T, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == "" {
		delete(s.badges, tab)
		return
	}
	s.badges[tab] = value
}

// SetBadgeCount sets a numeric badge. Counts of zero or less clear it.
func (s *State[T]) SetBadgeCount(tab T, count int) {
	if count <= 0 {
		s.SetBadge(tab, "")
		return
	}
	s.SetBadge(tab, strconv.Itoa(count))
}

// Badge returns the tab's badge label, ok=false when unset.
func (s *State[T]) Badge(tab T) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.badges[tab]
	return v, ok
}

// Lock makes a tab unselectable. The tab stays visible unless hidden.
func (s *State[T]) Lock(tab T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked[tab] = struct{}{}
}

// Unlock makes a tab selectable again.
func (s *State[T]) Unlock(tab T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locked, tab)
}

// IsLocked reports whether the tab is locked.
func (s *State[T]) IsLocked(tab T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.locked[tab]
	return ok
}

// Hide removes a tab from selection.
func (s *State[T]) Hide(tab T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden[tab] = struct{}{}
}

// Show makes a hidden tab selectable again.
func (s *State[T]) Show(tab T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hidden, tab)
}

// IsHidden reports whether the tab is hidden.
func (s *State[T]) IsHidden(tab T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.hidden[tab]
	return ok
}

// History returns the selection history, oldest first, starting with the
// initial tab.
func (s *State[T]) History() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.history))
	copy(out, s.history)
	return out
}

// stackFor lazily creates the tab's stack. Caller must hold the mutex.
func (s *State[T]) stackFor(tab T) *stack.Stack {
	st, ok := s.stacks[tab]
	if !ok {
		st = stack.New(s.opts.stackOptions...)
		s.stacks[tab] = st
	}
	return st
}

// recordSelection appends to the bounded selection history. Caller must
// hold the mutex.
func (s *State[T]) recordSelection(tab T) {
	s.history = append(s.history, tab)
	if len(s.history) > s.opts.historyLimit {
		s.history = s.history[len(s.history)-s.opts.historyLimit:]
	}
}

// notify invokes the observer. Called with the mutex released so the
// observer may read the state back without deadlocking.
func (s *State[T]) notify(event string, tab T) {
	if s.opts.observer != nil {
		s.opts.observer(event, tab)
	}
}

// reject reports a refused selection. Called with the mutex released.
func (s *State[T]) reject(tab T, rej route.Rejection) {
	if s.opts.onRejection != nil {
		s.opts.onRejection(tab, rej)
	}
}
