package internal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/analytics"
	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/flow"
	"github.com/dmitrymomot/waypoint/pkg/logger"
	"github.com/dmitrymomot/waypoint/pkg/presentation"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
	"github.com/dmitrymomot/waypoint/pkg/tabs"
)

// State is one coherent snapshot of the navigation engine, the single
// stream a rendering layer re-renders from. Mutating operations emit
// events; State is for pull-based reads.
type State struct {
	StackPaths     []string
	SelectedTab    string
	Presented      *route.Route
	PresentedStyle route.Style
	QueueLen       int
}

// Navigator wires the navigation state machines behind one dispatch
// surface. It is immutable after New: all configuration happens through
// options.
type Navigator struct {
	stack    *stack.Stack
	pres     *presentation.State
	tabs     *tabs.State[string]
	parser   *deeplink.Parser
	recovery *recovery.Manager
	recorder *analytics.Recorder
	arena    *Arena
	logger   *slog.Logger

	stackOpts   []stack.Option
	presOpts    []presentation.Option
	tabsOpts    []tabs.Option[string]
	tabsInitial string
	tabsEnabled bool

	mu    sync.Mutex
	sinks []Sink
}

// New creates a navigator.
func New(opts ...Option) *Navigator {
	n := &Navigator{
		logger: logger.NewNope(),
		arena:  NewArena(),
	}
	for _, opt := range opts {
		opt(n)
	}

	n.stack = stack.New(append([]stack.Option{stack.WithLogger(n.logger)}, n.stackOpts...)...)
	if n.tabsEnabled {
		n.tabs = tabs.New(n.tabsInitial, append([]tabs.Option[string]{
			tabs.WithLogger[string](n.logger),
			tabs.WithStackOptions[string](n.stackOpts...),
		}, n.tabsOpts...)...)
	}
	n.pres = presentation.NewState(append(
		append([]presentation.Option{presentation.WithLogger(n.logger)}, n.presOpts...),
		presentation.WithObserver(n.onPresentation),
	)...)

	if n.recorder != nil {
		n.sinks = append(n.sinks, recorderSink{rec: n.recorder})
	}
	return n
}

// Subscribe registers an event sink. Sinks are invoked synchronously in
// registration order on every emitted event.
func (n *Navigator) Subscribe(sink Sink) {
	if sink == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, sink)
}

// Push pushes a route onto the active stack.
func (n *Navigator) Push(r route.Route) bool {
	if !n.activeStack().Push(r) {
		return false
	}
	n.emit(Event{Kind: EventPush, Path: r.Path, Tab: n.selectedTab(), Time: time.Now()})
	n.emit(Event{Kind: EventScreenView, Path: r.Path, Tab: n.selectedTab(), Time: time.Now()})
	n.scheduleSave()
	return true
}

// Pop pops the active stack. No-op on an empty stack.
func (n *Navigator) Pop() (route.Route, bool) {
	r, ok := n.activeStack().Pop()
	if !ok {
		return route.Route{}, false
	}
	n.emit(Event{Kind: EventPop, Path: r.Path, Tab: n.selectedTab(), Time: time.Now()})
	n.scheduleSave()
	return r, true
}

// PopN pops exactly count routes atomically.
func (n *Navigator) PopN(count int) bool {
	if !n.activeStack().PopN(count) {
		return false
	}
	n.emit(Event{Kind: EventPop, Tab: n.selectedTab(), Time: time.Now()})
	n.scheduleSave()
	return true
}

// PopTo pops everything above the topmost occurrence of path.
func (n *Navigator) PopTo(path string) bool {
	if !n.activeStack().PopTo(path) {
		return false
	}
	n.emit(Event{Kind: EventPop, Path: path, Tab: n.selectedTab(), Time: time.Now(),
		Props: map[string]string{"target": path}})
	n.scheduleSave()
	return true
}

// PopToRoot empties the active stack.
func (n *Navigator) PopToRoot() {
	n.activeStack().PopToRoot()
	n.emit(Event{Kind: EventPop, Tab: n.selectedTab(), Time: time.Now(),
		Props: map[string]string{"to_root": "true"}})
	n.scheduleSave()
}

// Replace swaps the top of the active stack for the given route.
func (n *Navigator) Replace(r route.Route) bool {
	if !n.activeStack().Replace(r) {
		return false
	}
	n.emit(Event{Kind: EventPush, Path: r.Path, Tab: n.selectedTab(), Time: time.Now(),
		Props: map[string]string{"replace": "true"}})
	n.emit(Event{Kind: EventScreenView, Path: r.Path, Tab: n.selectedTab(), Time: time.Now()})
	n.scheduleSave()
	return true
}

// Present shows a modal, or queues it when one is already active.
func (n *Navigator) Present(r route.Route, style route.Style, onDismiss func()) bool {
	return n.pres.Present(r, style, onDismiss)
}

// Dismiss dismisses the active modal.
func (n *Navigator) Dismiss() bool {
	return n.pres.Dismiss()
}

// SelectTab switches tabs. Returns false when tabs are not configured,
// the tab is locked or hidden, or the selection did nothing.
func (n *Navigator) SelectTab(tab string) bool {
	if n.tabs == nil {
		return false
	}
	if !n.tabs.Select(tab) {
		return false
	}
	n.emit(Event{Kind: EventTabSelected, Tab: tab, Time: time.Now()})
	n.scheduleSave()
	return true
}

// HandleURL parses a deep link and pushes the resolved route onto the
// active stack. Returns false when no parser is configured, parsing
// failed, or the push was rejected.
func (n *Navigator) HandleURL(raw string) bool {
	if n.parser == nil {
		return false
	}
	if !n.parser.Handle(raw, n.activeStack()) {
		return false
	}
	n.emitDeepLink(raw)
	return true
}

// HandleURLWithGuard is HandleURL with an asynchronous pre-push guard.
func (n *Navigator) HandleURLWithGuard(ctx context.Context, raw string, guard deeplink.AsyncGuard) (bool, error) {
	if n.parser == nil {
		return false, nil
	}
	ok, err := n.parser.HandleWithGuard(ctx, raw, n.activeStack(), guard)
	if err != nil || !ok {
		return false, err
	}
	n.emitDeepLink(raw)
	return true, nil
}

// FlowObserver returns an observer that forwards flow transitions into
// the navigator's event stream. Attach it when constructing a flow:
//
//	f, err := flow.New(steps, flow.WithObserver(nav.FlowObserver()))
func (n *Navigator) FlowObserver() flow.Observer {
	return func(event string, step string) {
		n.emit(Event{
			Kind:  EventKind(event),
			Time:  time.Now(),
			Props: map[string]string{"step": step},
		})
	}
}

// State returns a coherent snapshot of the engine for rendering.
func (n *Navigator) State() State {
	st := State{
		StackPaths:  n.activeStack().Paths(),
		SelectedTab: n.selectedTab(),
		QueueLen:    n.pres.QueueLen(),
	}
	if r, style, ok := n.pres.Active(); ok {
		st.Presented = &r
		st.PresentedStyle = style
	}
	return st
}

// Stack returns the root stack (the active one when tabs are not
// configured).
func (n *Navigator) Stack() *stack.Stack {
	return n.stack
}

// Tabs returns the tab state, nil when tabs are not configured.
func (n *Navigator) Tabs() *tabs.State[string] {
	return n.tabs
}

// NewCoordinator registers a named coordination scope with its own
// stack. A zero parent handle creates a root scope.
func (n *Navigator) NewCoordinator(name string, parent Handle) Handle {
	return n.arena.Add(name, parent, n.stackOpts...)
}

// Coordinator resolves a coordinator handle.
func (n *Navigator) Coordinator(h Handle) (*Coordinator, bool) {
	return n.arena.Get(h)
}

// RetireCoordinator tears down a coordinator and its whole subtree.
func (n *Navigator) RetireCoordinator(h Handle) {
	n.arena.Retire(h)
}

// Restore attempts crash recovery and applies the restored state to the
// engine. Without a recovery manager it reports a disabled result.
func (n *Navigator) Restore(ctx context.Context) recovery.Result {
	if n.recovery == nil {
		return recovery.Result{Kind: recovery.KindDisabled}
	}
	res := n.recovery.Attempt(ctx)
	n.apply(res)
	return res
}

// ConfirmRestore completes a recovery stashed behind the confirmation
// policy.
func (n *Navigator) ConfirmRestore(ctx context.Context) recovery.Result {
	if n.recovery == nil {
		return recovery.Result{Kind: recovery.KindDisabled}
	}
	res := n.recovery.Confirm(ctx)
	n.apply(res)
	return res
}

// SaveNow persists the current navigation state immediately, bypassing
// the debounce window.
func (n *Navigator) SaveNow(ctx context.Context) error {
	if n.recovery == nil {
		return nil
	}
	if err := n.recovery.Save(ctx, n.snapshot()); err != nil {
		return err
	}
	return n.recovery.Flush(ctx)
}

// Close releases timers and flushes any pending recovery snapshot.
func (n *Navigator) Close() error {
	n.pres.Close()
	if n.recovery != nil {
		return n.recovery.Close()
	}
	return nil
}

// apply pushes a successful recovery result into the state machines.
func (n *Navigator) apply(res recovery.Result) {
	if !res.Restored() {
		return
	}

	if res.ActiveTab != "" && n.tabs != nil {
		n.tabs.Select(res.ActiveTab)
	}
	n.activeStack().SetRoutes(res.Routes)

	if res.Presented != nil {
		n.pres.Clear()
		n.pres.Present(*res.Presented, res.PresentedStyle, nil)
	}

	if len(res.Routes) > 0 {
		top := res.Routes[len(res.Routes)-1]
		n.emit(Event{Kind: EventScreenView, Path: top.Path, Tab: n.selectedTab(), Time: time.Now(),
			Props: map[string]string{"restored": "true"}})
	}
}

// activeStack returns the selected tab's stack, or the root stack when
// tabs are not configured.
func (n *Navigator) activeStack() *stack.Stack {
	if n.tabs != nil {
		return n.tabs.Stack(n.tabs.Selected())
	}
	return n.stack
}

func (n *Navigator) selectedTab() string {
	if n.tabs == nil {
		return ""
	}
	return n.tabs.Selected()
}

// onPresentation bridges presentation observer callbacks into events.
// It also covers delayed dequeue activations, which never pass through
// Present directly.
func (n *Navigator) onPresentation(event string, r route.Route) {
	kind := EventPresent
	if event == presentation.EventDismissed {
		kind = EventDismiss
	}
	n.emit(Event{Kind: kind, Path: r.Path, Tab: n.selectedTab(), Time: time.Now()})
	n.scheduleSave()
}

func (n *Navigator) emitDeepLink(raw string) {
	if top, ok := n.activeStack().Top(); ok {
		props := map[string]string{"source": "deep_link", "uri": raw}
		n.emit(Event{Kind: EventPush, Path: top.Path, Tab: n.selectedTab(), Time: time.Now(), Props: props})
		n.emit(Event{Kind: EventScreenView, Path: top.Path, Tab: n.selectedTab(), Time: time.Now()})
	}
	n.scheduleSave()
}

// emit fans an event out to all sinks, outside the navigator lock.
func (n *Navigator) emit(ev Event) {
	n.mu.Lock()
	sinks := make([]Sink, len(n.sinks))
	copy(sinks, n.sinks)
	n.mu.Unlock()

	for _, sink := range sinks {
		sink.HandleNavigationEvent(ev)
	}
}

// scheduleSave hands the current state to the recovery manager, which
// debounces the actual write.
func (n *Navigator) scheduleSave() {
	if n.recovery == nil {
		return
	}
	if err := n.recovery.Save(context.Background(), n.snapshot()); err != nil {
		n.logger.Warn("recovery save failed", slog.String("error", err.Error()))
	}
}

func (n *Navigator) snapshot() recovery.Snapshot {
	snap := recovery.Snapshot{
		RoutePaths: n.activeStack().Paths(),
		ActiveTab:  n.selectedTab(),
	}
	if r, style, ok := n.pres.Active(); ok {
		snap.PresentedPath = r.Path
		snap.PresentedStyle = style.String()
	}
	return snap
}

// recorderSink feeds events into the analytics recorder.
type recorderSink struct {
	rec *analytics.Recorder
}

func (s recorderSink) HandleNavigationEvent(ev Event) {
	props := ev.Props
	if ev.Tab != "" {
		props = make(map[string]string, len(ev.Props)+1)
		for k, v := range ev.Props {
			props[k] = v
		}
		props["tab"] = ev.Tab
	}
	s.rec.Record(string(ev.Kind), ev.Path, props)
}
