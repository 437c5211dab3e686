package stack_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/route"
	"github.com/dmitrymomot/waypoint/pkg/stack"
)

func TestPushPop(t *testing.T) {
	t.Parallel()

	s := stack.New()
	require.Equal(t, 0, s.Depth())

	require.True(t, s.Push(route.New("/a")))
	require.True(t, s.Push(route.New("/b")))

	removed, ok := s.Pop()
	require.True(t, ok)
	assert.Equal(t, "/b", removed.Path)
	assert.Equal(t, 1, s.Depth())

	top, ok := s.Top()
	require.True(t, ok)
	assert.Equal(t, "/a", top.Path)
}

func TestPopEmptyIsNoOp(t *testing.T) {
	t.Parallel()

	s := stack.New()
	removed, ok := s.Pop()
	assert.False(t, ok)
	assert.True(t, removed.IsZero())
	assert.Equal(t, 0, s.Depth())

	_, ok = s.Top()
	assert.False(t, ok)
}

func TestPopN(t *testing.T) {
	t.Parallel()

	s := stack.New()
	for _, p := range []string{"/a", "/b", "/c", "/d"} {
		s.Push(route.New(p))
	}

	t.Run("rejects out-of-range counts atomically", func(t *testing.T) {
		assert.False(t, s.PopN(0))
		assert.False(t, s.PopN(-1))
		assert.False(t, s.PopN(5))
		assert.Equal(t, 4, s.Depth())
	})

	t.Run("pops exactly n", func(t *testing.T) {
		require.True(t, s.PopN(2))
		assert.Equal(t, 2, s.Depth())
		top, _ := s.Top()
		assert.Equal(t, "/b", top.Path)
	})
}

func TestPopToRoot(t *testing.T) {
	t.Parallel()

	s := stack.New()
	s.PopToRoot() // empty stack: nothing to do
	assert.Equal(t, 0, s.Depth())

	s.Push(route.New("/a"))
	s.Push(route.New("/b"))
	s.PopToRoot()
	assert.Equal(t, 0, s.Depth())
}

func TestPopTo(t *testing.T) {
	t.Parallel()

	t.Run("pops everything above the match", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		for _, p := range []string{"/a", "/b", "/c", "/d"} {
			s.Push(route.New(p))
		}

		require.True(t, s.PopTo("/b"))
		assert.Equal(t, []string{"/a", "/b"}, s.Paths())
	})

	t.Run("targets the topmost occurrence", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		for _, p := range []string{"/a", "/b", "/a", "/c"} {
			s.Push(route.New(p))
		}

		require.True(t, s.PopTo("/a"))
		assert.Equal(t, []string{"/a", "/b", "/a"}, s.Paths())
	})

	t.Run("absent path is a no-op", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		s.Push(route.New("/a"))
		before := s.Depth()

		assert.False(t, s.PopTo("/missing"))
		assert.Equal(t, before, s.Depth())
	})

	t.Run("match already on top", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		s.Push(route.New("/a"))
		assert.True(t, s.PopTo("/a"))
		assert.Equal(t, 1, s.Depth())
	})
}

func TestReplace(t *testing.T) {
	t.Parallel()

	t.Run("preserves depth on non-empty stack", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		s.Push(route.New("/login"))
		s.Push(route.New("/otp"))

		require.True(t, s.Replace(route.New("/home")))
		assert.Equal(t, 2, s.Depth())
		top, _ := s.Top()
		assert.Equal(t, "/home", top.Path)
	})

	t.Run("behaves like push on empty stack", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		require.True(t, s.Replace(route.New("/home")))
		assert.Equal(t, 1, s.Depth())
	})
}

func TestMaxDepth(t *testing.T) {
	t.Parallel()

	var rejections []route.Rejection
	s := stack.New(
		stack.WithMaxDepth(2),
		stack.WithRejectionHandler(func(rej route.Rejection) {
			rejections = append(rejections, rej)
		}),
	)

	require.True(t, s.Push(route.New("/a")))
	require.True(t, s.Push(route.New("/b")))
	require.False(t, s.Push(route.New("/c")))

	assert.Equal(t, 2, s.Depth())
	require.Len(t, rejections, 1)
	assert.Equal(t, route.ReasonMaxDepth, rejections[0].Reason)
}

func TestGuardVeto(t *testing.T) {
	t.Parallel()

	var got route.Rejection
	s := stack.New(stack.WithRejectionHandler(func(rej route.Rejection) { got = rej }))
	s.AddGuard(func(route.Route) bool { return false })

	for i := 0; i < 3; i++ {
		assert.False(t, s.Push(route.New("/blocked")))
	}
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, route.ReasonGuardFailed, got.Reason)
}

func TestTransformers(t *testing.T) {
	t.Parallel()

	t.Run("rewrite", func(t *testing.T) {
		t.Parallel()

		s := stack.New()
		s.AddTransformer(func(r route.Route) (route.Route, bool) {
			return route.New(strings.ToLower(r.Path)), true
		})

		require.True(t, s.Push(route.New("/Profile")))
		top, _ := s.Top()
		assert.Equal(t, "/profile", top.Path)
	})

	t.Run("cancel short-circuits", func(t *testing.T) {
		t.Parallel()

		var secondRan bool
		s := stack.New()
		s.AddTransformer(func(route.Route) (route.Route, bool) { return route.Route{}, false })
		s.AddTransformer(func(r route.Route) (route.Route, bool) {
			secondRan = true
			return r, true
		})

		assert.False(t, s.Push(route.New("/x")))
		assert.False(t, secondRan)
		assert.Equal(t, 0, s.Depth())
	})
}

func TestWithoutDuplicates(t *testing.T) {
	t.Parallel()

	s := stack.New(stack.WithoutDuplicates())
	require.True(t, s.Push(route.New("/a")))
	assert.False(t, s.Push(route.New("/a")))
	require.True(t, s.Push(route.New("/b")))
	// Same path deeper in the stack is fine; only the top is checked.
	require.True(t, s.Push(route.New("/a")))
	assert.Equal(t, 3, s.Depth())
}

func TestHookOrdering(t *testing.T) {
	t.Parallel()

	var calls []string
	s := stack.New()
	s.SetHooks(stack.Hooks{
		WillAppear:    func(r route.Route) { calls = append(calls, "willAppear:"+r.Path) },
		DidAppear:     func(r route.Route) { calls = append(calls, "didAppear:"+r.Path) },
		WillDisappear: func(r route.Route) { calls = append(calls, "willDisappear:"+r.Path) },
		DidDisappear:  func(r route.Route) { calls = append(calls, "didDisappear:"+r.Path) },
	})

	s.Push(route.New("/a"))
	calls = nil
	s.Push(route.New("/b"))

	// The incoming screen's didAppear fires before the outgoing screen's
	// didDisappear.
	assert.Equal(t, []string{
		"willDisappear:/a",
		"willAppear:/b",
		"didAppear:/b",
		"didDisappear:/a",
	}, calls)
}

func TestObserver(t *testing.T) {
	t.Parallel()

	type mutation struct {
		src   stack.Source
		path  string
		depth int
	}
	var seen []mutation

	s := stack.New(stack.WithObserver(func(src stack.Source, r route.Route, depth int) {
		seen = append(seen, mutation{src, r.Path, depth})
	}))

	s.Push(route.New("/a"))
	s.Push(route.New("/b"))
	s.Pop()
	s.PopToRoot()

	require.Len(t, seen, 4)
	assert.Equal(t, mutation{stack.SourcePush, "/a", 1}, seen[0])
	assert.Equal(t, mutation{stack.SourcePop, "/b", 1}, seen[2])
	assert.Equal(t, mutation{stack.SourcePopToRoot, "/a", 0}, seen[3])
}

func TestDepthNeverNegative(t *testing.T) {
	t.Parallel()

	s := stack.New()
	ops := []func(){
		func() { s.Push(route.New("/a")) },
		func() { s.Pop() },
		func() { s.Pop() },
		func() { s.PopToRoot() },
		func() { s.PopTo("/a") },
		func() { s.Push(route.New("/b")) },
		func() { s.PopN(3) },
		func() { s.Pop() },
		func() { s.Pop() },
	}
	for _, op := range ops {
		op()
		depth := s.Depth()
		assert.GreaterOrEqual(t, depth, 0)

		top, ok := s.Top()
		if depth > 0 {
			routes := s.Routes()
			require.True(t, ok)
			assert.Equal(t, routes[len(routes)-1].Path, top.Path)
		} else {
			assert.False(t, ok)
		}
	}
}

func TestSetRoutes(t *testing.T) {
	t.Parallel()

	s := stack.New()
	s.AddGuard(func(route.Route) bool { return false })

	// SetRoutes bypasses the pipeline; recovery depends on this.
	s.SetRoutes([]route.Route{route.New("/a"), route.New("/b")})
	assert.Equal(t, []string{"/a", "/b"}, s.Paths())
	assert.True(t, s.Contains("/a"))
	assert.False(t, s.Contains("/z"))

	root, ok := s.Root()
	require.True(t, ok)
	assert.Equal(t, "/a", root.Path)
}

func TestBreadcrumbs(t *testing.T) {
	t.Parallel()

	s := stack.New(stack.WithBreadcrumbLimit(2))
	s.Push(route.New("/a", route.WithTitle("A")))
	s.Push(route.New("/b", route.WithTitle("B")))
	s.Push(route.New("/c", route.WithTitle("C")))

	crumbs := s.Breadcrumbs()
	require.Len(t, crumbs, 2, "oldest breadcrumb truncated")
	assert.Equal(t, "/b", crumbs[0].Path)
	assert.Equal(t, "C", crumbs[1].Title)
	assert.False(t, crumbs[0].Time.IsZero())
}
