package internal_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/internal"
	"github.com/dmitrymomot/waypoint/pkg/analytics"
	"github.com/dmitrymomot/waypoint/pkg/deeplink"
	"github.com/dmitrymomot/waypoint/pkg/flow"
	"github.com/dmitrymomot/waypoint/pkg/kv"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

// eventLog collects emitted events for assertions.
type eventLog struct {
	mu     sync.Mutex
	events []internal.Event
}

func (l *eventLog) HandleNavigationEvent(ev internal.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) kinds() []internal.EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]internal.EventKind, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Kind
	}
	return out
}

func TestNavigatorStackOps(t *testing.T) {
	t.Parallel()

	t.Run("push pop events", func(t *testing.T) {
		t.Parallel()

		log := &eventLog{}
		nav := internal.New(internal.WithSinks(log))
		defer nav.Close()

		require.True(t, nav.Push(route.New("/a")))
		require.True(t, nav.Push(route.New("/b")))

		popped, ok := nav.Pop()
		require.True(t, ok)
		assert.Equal(t, "/b", popped.Path)

		assert.Equal(t, []internal.EventKind{
			internal.EventPush, internal.EventScreenView,
			internal.EventPush, internal.EventScreenView,
			internal.EventPop,
		}, log.kinds())

		assert.Equal(t, []string{"/a"}, nav.State().StackPaths)
	})

	t.Run("rejected push emits nothing", func(t *testing.T) {
		t.Parallel()

		log := &eventLog{}
		nav := internal.New(
			internal.WithSinks(log),
			internal.WithStackOptions(stack.WithMaxDepth(1)),
		)
		defer nav.Close()

		require.True(t, nav.Push(route.New("/a")))
		require.False(t, nav.Push(route.New("/b")))

		assert.Len(t, log.kinds(), 2, "only the accepted push and its screen view")
	})

	t.Run("pop to and pop to root", func(t *testing.T) {
		t.Parallel()

		nav := internal.New()
		defer nav.Close()

		for _, p := range []string{"/a", "/b", "/c", "/d"} {
			require.True(t, nav.Push(route.New(p)))
		}

		require.True(t, nav.PopTo("/b"))
		assert.Equal(t, []string{"/a", "/b"}, nav.State().StackPaths)

		nav.PopToRoot()
		assert.Empty(t, nav.State().StackPaths)
	})

	t.Run("replace preserves depth", func(t *testing.T) {
		t.Parallel()

		nav := internal.New()
		defer nav.Close()

		require.True(t, nav.Push(route.New("/login")))
		require.True(t, nav.Replace(route.New("/home")))
		assert.Equal(t, []string{"/home"}, nav.State().StackPaths)
	})
}

func TestNavigatorPresentation(t *testing.T) {
	t.Parallel()

	log := &eventLog{}
	nav := internal.New(internal.WithSinks(log))
	defer nav.Close()

	require.True(t, nav.Present(route.New("/paywall"), route.StyleSheet, nil))

	st := nav.State()
	require.NotNil(t, st.Presented)
	assert.Equal(t, "/paywall", st.Presented.Path)
	assert.Equal(t, route.StyleSheet, st.PresentedStyle)

	require.True(t, nav.Dismiss())
	assert.Nil(t, nav.State().Presented)

	assert.Equal(t, []internal.EventKind{internal.EventPresent, internal.EventDismiss}, log.kinds())
}

func TestNavigatorTabs(t *testing.T) {
	t.Parallel()

	t.Run("per tab stacks are independent", func(t *testing.T) {
		t.Parallel()

		nav := internal.New(internal.WithTabs("home"))
		defer nav.Close()

		require.True(t, nav.Push(route.New("/feed")))
		require.True(t, nav.SelectTab("search"))
		require.True(t, nav.Push(route.New("/results")))

		assert.Equal(t, []string{"/results"}, nav.State().StackPaths)
		assert.Equal(t, "search", nav.State().SelectedTab)

		require.True(t, nav.SelectTab("home"))
		assert.Equal(t, []string{"/feed"}, nav.State().StackPaths)
	})

	t.Run("select without tabs configured", func(t *testing.T) {
		t.Parallel()

		nav := internal.New()
		defer nav.Close()
		assert.False(t, nav.SelectTab("anything"))
	})

	t.Run("tab selection emits event", func(t *testing.T) {
		t.Parallel()

		log := &eventLog{}
		nav := internal.New(internal.WithTabs("home"), internal.WithSinks(log))
		defer nav.Close()

		require.True(t, nav.SelectTab("profile"))
		kinds := log.kinds()
		require.Len(t, kinds, 1)
		assert.Equal(t, internal.EventTabSelected, kinds[0])
	})
}

func TestNavigatorDeepLinks(t *testing.T) {
	t.Parallel()

	newParser := func(t *testing.T) *deeplink.Parser {
		t.Helper()
		p := deeplink.New(deeplink.WithSchemes("myapp"))
		require.NoError(t, p.Register("/profile/:id", func(params map[string]string) (route.Route, bool) {
			return route.New("/profile", route.WithParams(params)), true
		}))
		return p
	}

	t.Run("handled url pushes and emits", func(t *testing.T) {
		t.Parallel()

		log := &eventLog{}
		nav := internal.New(
			internal.WithDeepLinks(newParser(t)),
			internal.WithSinks(log),
		)
		defer nav.Close()

		require.True(t, nav.HandleURL("myapp://host/profile/42"))
		assert.Equal(t, []string{"/profile"}, nav.State().StackPaths)

		require.Len(t, log.kinds(), 2)
		assert.Equal(t, "deep_link", log.events[0].Props["source"])
	})

	t.Run("unparseable url", func(t *testing.T) {
		t.Parallel()

		nav := internal.New(internal.WithDeepLinks(newParser(t)))
		defer nav.Close()
		assert.False(t, nav.HandleURL("https://host/profile/42"))
	})

	t.Run("no parser configured", func(t *testing.T) {
		t.Parallel()

		nav := internal.New()
		defer nav.Close()
		assert.False(t, nav.HandleURL("myapp://host/profile/42"))
	})

	t.Run("async guard veto", func(t *testing.T) {
		t.Parallel()

		nav := internal.New(internal.WithDeepLinks(newParser(t)))
		defer nav.Close()

		ok, err := nav.HandleURLWithGuard(context.Background(), "myapp://host/profile/42",
			func(ctx context.Context, r route.Route) (bool, error) { return false, nil })
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, nav.State().StackPaths)
	})
}

func TestNavigatorFlowObserver(t *testing.T) {
	t.Parallel()

	log := &eventLog{}
	nav := internal.New(internal.WithSinks(log))
	defer nav.Close()

	f, err := flow.New([]string{"welcome", "profile", "done"},
		flow.WithObserver(nav.FlowObserver()))
	require.NoError(t, err)

	ctx := context.Background()
	require.True(t, f.Next(ctx))
	require.True(t, f.Complete())

	kinds := log.kinds()
	require.Len(t, kinds, 2)
	assert.Equal(t, internal.EventFlowStep, kinds[0])
	assert.Equal(t, internal.EventFlowComplete, kinds[1])
	assert.Equal(t, "profile", log.events[0].Props["step"])
}

func TestNavigatorAnalytics(t *testing.T) {
	t.Parallel()

	rec := analytics.NewRecorder()
	nav := internal.New(internal.WithAnalytics(rec))
	defer nav.Close()

	require.True(t, nav.Push(route.New("/a")))
	require.True(t, nav.Push(route.New("/b")))
	nav.Pop()

	assert.Equal(t, 2, rec.Count("push"))
	assert.Equal(t, 2, rec.Count("screen_view"))
	assert.Equal(t, 1, rec.Count("pop"))
}

func TestNavigatorRecovery(t *testing.T) {
	t.Parallel()

	factory := func(path string) (route.Route, bool) {
		return route.New(path), true
	}

	t.Run("round trip through restart", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		first := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
		)
		require.True(t, first.Push(route.New("/inbox")))
		require.True(t, first.Push(route.New("/thread/7")))
		require.NoError(t, first.SaveNow(context.Background()))
		require.NoError(t, first.Close())

		second := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
		)
		defer second.Close()

		res := second.Restore(context.Background())
		require.Equal(t, recovery.KindSuccess, res.Kind)
		assert.Equal(t, []string{"/inbox", "/thread/7"}, second.State().StackPaths)
	})

	t.Run("restore without manager is disabled", func(t *testing.T) {
		t.Parallel()

		nav := internal.New()
		defer nav.Close()
		assert.Equal(t, recovery.KindDisabled, nav.Restore(context.Background()).Kind)
	})

	t.Run("confirmation flow", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		saver := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
		)
		require.True(t, saver.Push(route.New("/deep")))
		require.NoError(t, saver.SaveNow(context.Background()))
		require.NoError(t, saver.Close())

		nav := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory, recovery.WithConfirmation())),
		)
		defer nav.Close()

		require.Equal(t, recovery.KindCancelled, nav.Restore(context.Background()).Kind)
		assert.Empty(t, nav.State().StackPaths, "nothing applied before confirmation")

		res := nav.ConfirmRestore(context.Background())
		require.Equal(t, recovery.KindSuccess, res.Kind)
		assert.Equal(t, []string{"/deep"}, nav.State().StackPaths)
	})

	t.Run("present and dismiss with recovery configured", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		log := &eventLog{}
		nav := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
			internal.WithSinks(log),
		)
		defer nav.Close()

		require.True(t, nav.Push(route.New("/home")))
		require.True(t, nav.Present(route.New("/paywall"), route.StyleSheet, nil))
		require.True(t, nav.Dismiss())

		assert.Equal(t, []internal.EventKind{
			internal.EventPush, internal.EventScreenView,
			internal.EventPresent, internal.EventDismiss,
		}, log.kinds())

		require.NoError(t, nav.SaveNow(context.Background()))
		_, err := store.Get(context.Background(), "recovery:snapshot")
		assert.NoError(t, err)
	})

	t.Run("restore brings back a presented modal", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		first := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
		)
		require.True(t, first.Push(route.New("/home")))
		require.True(t, first.Present(route.New("/paywall"), route.StyleFullScreen, nil))
		require.NoError(t, first.SaveNow(context.Background()))
		require.NoError(t, first.Close())

		second := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory)),
		)
		defer second.Close()

		res := second.Restore(context.Background())
		require.Equal(t, recovery.KindSuccess, res.Kind)

		st := second.State()
		assert.Equal(t, []string{"/home"}, st.StackPaths)
		require.NotNil(t, st.Presented)
		assert.Equal(t, "/paywall", st.Presented.Path)
		assert.Equal(t, route.StyleFullScreen, st.PresentedStyle)
	})

	t.Run("debounced saves happen on mutation", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		nav := internal.New(
			internal.WithRecovery(recovery.NewManager(store, factory,
				recovery.WithDebounce(20*time.Millisecond))),
		)
		defer nav.Close()

		require.True(t, nav.Push(route.New("/a")))

		require.Eventually(t, func() bool {
			_, err := store.Get(context.Background(), "recovery:snapshot")
			return err == nil
		}, time.Second, 5*time.Millisecond)
	})
}
