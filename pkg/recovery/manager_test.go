package recovery_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/waypoint/pkg/kv"
	"github.com/dmitrymomot/waypoint/pkg/recovery"
	"github.com/dmitrymomot/waypoint/pkg/route"
)

func knownFactory(paths ...string) recovery.Factory {
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	return func(path string) (route.Route, bool) {
		if _, ok := known[path]; !ok {
			return route.Route{}, false
		}
		return route.New(path), true
	}
}

func writeSnapshot(t *testing.T, store kv.Store, key string, snap recovery.Snapshot) {
	t.Helper()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), key, data))
}

func TestManagerSaveAndAttempt(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home", "/profile", "/settings"))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{
			RoutePaths:  []string{"/home", "/profile"},
			ActiveTab:   "main",
			CustomState: map[string]string{"scroll": "120"},
		}))

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindSuccess, res.Kind)
		assert.True(t, res.Restored())
		require.Len(t, res.Routes, 2)
		assert.Equal(t, "/home", res.Routes[0].Path)
		assert.Equal(t, "/profile", res.Routes[1].Path)
		assert.Equal(t, "main", res.ActiveTab)
		assert.Equal(t, "120", res.CustomState["scroll"])
	})

	t.Run("no state", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()

		m := recovery.NewManager(store, knownFactory())
		res := m.Attempt(context.Background())
		assert.Equal(t, recovery.KindNoState, res.Kind)
		assert.False(t, res.Restored())
	})

	t.Run("corrupt blob is no state", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()
		require.NoError(t, store.Set(ctx, "recovery:snapshot", []byte("{not json")))

		m := recovery.NewManager(store, knownFactory())
		res := m.Attempt(ctx)
		assert.Equal(t, recovery.KindNoState, res.Kind)

		// Corrupt blob is cleared so the next attempt starts clean.
		_, err := store.Get(ctx, "recovery:snapshot")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("storage cleared after success", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home"))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/home"}}))

		require.Equal(t, recovery.KindSuccess, m.Attempt(ctx).Kind)
		assert.Equal(t, recovery.KindNoState, m.Attempt(ctx).Kind)
	})

	t.Run("excluded paths filtered", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home", "/checkout"),
			recovery.WithExcludedPaths("/checkout"))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{
			RoutePaths:    []string{"/home", "/checkout"},
			PresentedPath: "/checkout",
		}))

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindSuccess, res.Kind)
		require.Len(t, res.Routes, 1)
		assert.Equal(t, "/home", res.Routes[0].Path)
		assert.Nil(t, res.Presented)
	})

	t.Run("presented route restored", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home", "/paywall"))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{
			RoutePaths:     []string{"/home"},
			PresentedPath:  "/paywall",
			PresentedStyle: route.StyleSheet.String(),
		}))

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindSuccess, res.Kind)
		require.NotNil(t, res.Presented)
		assert.Equal(t, "/paywall", res.Presented.Path)
		assert.Equal(t, route.StyleSheet, res.PresentedStyle)
	})
}

func TestManagerStaleness(t *testing.T) {
	t.Parallel()

	store := kv.NewMemory()
	defer store.Close()
	ctx := context.Background()

	writeSnapshot(t, store, "recovery:snapshot", recovery.Snapshot{
		RoutePaths: []string{"/home"},
		Timestamp:  time.Now().Add(-2 * time.Hour),
	})

	m := recovery.NewManager(store, knownFactory("/home"),
		recovery.WithMaxAge(30*time.Minute))

	res := m.Attempt(ctx)
	assert.Equal(t, recovery.KindStale, res.Kind)
	assert.Greater(t, res.Age, 30*time.Minute)

	// Stale snapshot is cleared.
	_, err := store.Get(ctx, "recovery:snapshot")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestManagerCompatibility(t *testing.T) {
	t.Parallel()

	t.Run("hash mismatch invalid", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		writeSnapshot(t, store, "recovery:snapshot", recovery.Snapshot{
			RoutePaths:    []string{"/home"},
			Timestamp:     time.Now(),
			RouteTypeHash: recovery.TypeHash("/old", "/routes"),
		})

		m := recovery.NewManager(store, knownFactory("/home"),
			recovery.WithTypeHash(recovery.TypeHash("/home")))

		res := m.Attempt(ctx)
		assert.Equal(t, recovery.KindInvalid, res.Kind)

		_, err := store.Get(ctx, "recovery:snapshot")
		assert.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("type hash is order insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t,
			recovery.TypeHash("/a", "/b", "/c"),
			recovery.TypeHash("/c", "/a", "/b"))
		assert.NotEqual(t,
			recovery.TypeHash("/a", "/b"),
			recovery.TypeHash("/a", "/b", "/c"))
	})
}

func TestManagerValidation(t *testing.T) {
	t.Parallel()

	t.Run("unknown paths dropped by default", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home"))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{
			RoutePaths: []string{"/home", "/removed-screen"},
		}))

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindSuccess, res.Kind)
		require.Len(t, res.Routes, 1)
		assert.Equal(t, "/home", res.Routes[0].Path)
	})

	t.Run("strict validation aborts whole recovery", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home"),
			recovery.WithStrictValidation())
		require.NoError(t, m.Save(ctx, recovery.Snapshot{
			RoutePaths: []string{"/home", "/removed-screen"},
		}))

		res := m.Attempt(ctx)
		assert.Equal(t, recovery.KindInvalid, res.Kind)
		assert.Empty(t, res.Routes)
	})
}

func TestManagerConfirmation(t *testing.T) {
	t.Parallel()

	t.Run("attempt stashes and confirm restores", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home"),
			recovery.WithConfirmation())
		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/home"}}))

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindCancelled, res.Kind)

		confirmed := m.Confirm(ctx)
		require.Equal(t, recovery.KindSuccess, confirmed.Kind)
		require.Len(t, confirmed.Routes, 1)
	})

	t.Run("confirm without stash is no state", func(t *testing.T) {
		t.Parallel()

		m := recovery.NewManager(kv.NewMemory(), knownFactory())
		assert.Equal(t, recovery.KindNoState, m.Confirm(context.Background()).Kind)
	})

	t.Run("decline clears storage", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/home"),
			recovery.WithConfirmation())
		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/home"}}))
		require.Equal(t, recovery.KindCancelled, m.Attempt(ctx).Kind)

		require.NoError(t, m.Decline(ctx))
		assert.Equal(t, recovery.KindNoState, m.Confirm(ctx).Kind)
		assert.Equal(t, recovery.KindNoState, m.Attempt(ctx).Kind)
	})
}

func TestManagerDisabled(t *testing.T) {
	t.Parallel()

	store := kv.NewMemory()
	defer store.Close()
	ctx := context.Background()

	m := recovery.NewManager(store, knownFactory("/home"), recovery.WithDisabled())
	require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/home"}}))

	assert.Equal(t, recovery.KindDisabled, m.Attempt(ctx).Kind)

	// Disabled Save never touched storage.
	_, err := store.Get(ctx, "recovery:snapshot")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestManagerDebounce(t *testing.T) {
	t.Parallel()

	t.Run("last write wins", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/a", "/b", "/c"),
			recovery.WithDebounce(40*time.Millisecond))

		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/a"}}))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/a", "/b"}}))
		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/a", "/b", "/c"}}))

		// Nothing written before the window elapses.
		_, err := store.Get(ctx, "recovery:snapshot")
		assert.ErrorIs(t, err, kv.ErrNotFound)

		require.Eventually(t, func() bool {
			_, err := store.Get(ctx, "recovery:snapshot")
			return err == nil
		}, time.Second, 10*time.Millisecond)

		res := m.Attempt(ctx)
		require.Equal(t, recovery.KindSuccess, res.Kind)
		assert.Len(t, res.Routes, 3)
	})

	t.Run("flush writes immediately", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/a"),
			recovery.WithDebounce(time.Hour))

		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/a"}}))
		require.NoError(t, m.Flush(ctx))

		res := m.Attempt(ctx)
		assert.Equal(t, recovery.KindSuccess, res.Kind)
	})

	t.Run("close flushes pending", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		m := recovery.NewManager(store, knownFactory("/a"),
			recovery.WithDebounce(time.Hour))

		require.NoError(t, m.Save(ctx, recovery.Snapshot{RoutePaths: []string{"/a"}}))
		require.NoError(t, m.Close())
		require.NoError(t, m.Close()) // idempotent

		_, err := store.Get(ctx, "recovery:snapshot")
		assert.NoError(t, err)
	})
}

func TestSessions(t *testing.T) {
	t.Parallel()

	t.Run("save list load delete", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		sessions := recovery.NewSessions(store, "")

		require.NoError(t, sessions.Save(ctx, recovery.SavedSession{
			Name:       "work",
			RoutePaths: []string{"/inbox", "/thread/1"},
			ActiveTab:  "mail",
		}))
		require.NoError(t, sessions.Save(ctx, recovery.SavedSession{
			Name:       "browsing",
			RoutePaths: []string{"/feed"},
		}))

		names, err := sessions.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"browsing", "work"}, names)

		loaded, err := sessions.Load(ctx, "work")
		require.NoError(t, err)
		assert.Equal(t, []string{"/inbox", "/thread/1"}, loaded.RoutePaths)
		assert.Equal(t, "mail", loaded.ActiveTab)
		assert.False(t, loaded.SavedAt.IsZero())

		require.NoError(t, sessions.Delete(ctx, "work"))
		_, err = sessions.Load(ctx, "work")
		assert.ErrorIs(t, err, recovery.ErrSessionNotFound)

		names, err = sessions.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"browsing"}, names)
	})

	t.Run("save requires name", func(t *testing.T) {
		t.Parallel()

		sessions := recovery.NewSessions(kv.NewMemory(), "")
		err := sessions.Save(context.Background(), recovery.SavedSession{})
		assert.ErrorIs(t, err, recovery.ErrSessionName)
	})

	t.Run("overwrite keeps single index entry", func(t *testing.T) {
		t.Parallel()

		store := kv.NewMemory()
		defer store.Close()
		ctx := context.Background()

		sessions := recovery.NewSessions(store, "")
		require.NoError(t, sessions.Save(ctx, recovery.SavedSession{Name: "w", RoutePaths: []string{"/a"}}))
		require.NoError(t, sessions.Save(ctx, recovery.SavedSession{Name: "w", RoutePaths: []string{"/b"}}))

		names, err := sessions.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"w"}, names)

		loaded, err := sessions.Load(ctx, "w")
		require.NoError(t, err)
		assert.Equal(t, []string{"/b"}, loaded.RoutePaths)
	})

	t.Run("routes helper drops unknown paths", func(t *testing.T) {
		t.Parallel()

		session := recovery.SavedSession{RoutePaths: []string{"/known", "/gone"}}
		routes := session.Routes(knownFactory("/known"))
		require.Len(t, routes, 1)
		assert.Equal(t, "/known", routes[0].Path)
	})
}
