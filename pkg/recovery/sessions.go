package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/kv"
	"github.com/dmitrymomot/waypoint/pkg/route"
)

// SavedSession is a named, user-initiated capture of navigation state,
// distinct from crash-recovery snapshots: sessions survive successful
// restores and are removed only when the user deletes them.
type SavedSession struct {
	Name        string            `json:"name"`
	RoutePaths  []string          `json:"route_paths"`
	ActiveTab   string            `json:"active_tab,omitempty"`
	CustomState map[string]string `json:"custom_state,omitempty"`
	SavedAt     time.Time         `json:"saved_at"`
}

// Routes maps the session's persisted paths back to routes via the
// factory, dropping paths unknown to the current build.
func (s SavedSession) Routes(factory Factory) []route.Route {
	routes := make([]route.Route, 0, len(s.RoutePaths))
	for _, path := range s.RoutePaths {
		if r, ok := factory(path); ok {
			routes = append(routes, r)
		}
	}
	return routes
}

// Sessions stores named navigation sessions in a kv.Store. A session
// index is kept under a dedicated key so sessions can be listed without
// scanning the backend.
type Sessions struct {
	store  kv.Store
	prefix string
	mu     sync.Mutex
}

// NewSessions creates a session store. An empty prefix defaults to
// "session".
func NewSessions(store kv.Store, prefix string) *Sessions {
	if prefix == "" {
		prefix = "session"
	}
	return &Sessions{store: store, prefix: prefix}
}

// Save persists a session under its name, overwriting any session with
// the same name. The save timestamp is stamped here.
func (s *Sessions) Save(ctx context.Context, session SavedSession) error {
	if session.Name == "" {
		return ErrSessionName
	}
	session.SavedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("recovery: marshal session %q: %w", session.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, s.sessionKey(session.Name), data); err != nil {
		return fmt.Errorf("recovery: persist session %q: %w", session.Name, err)
	}
	return s.updateIndex(ctx, func(names []string) []string {
		if slices.Contains(names, session.Name) {
			return names
		}
		names = append(names, session.Name)
		slices.Sort(names)
		return names
	})
}

// List returns the saved session names in sorted order.
func (s *Sessions) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadIndex(ctx)
}

// Load retrieves a session by name.
// Returns ErrSessionNotFound if no session with that name exists.
func (s *Sessions) Load(ctx context.Context, name string) (SavedSession, error) {
	data, err := s.store.Get(ctx, s.sessionKey(name))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return SavedSession{}, ErrSessionNotFound
		}
		return SavedSession{}, fmt.Errorf("recovery: load session %q: %w", name, err)
	}

	var session SavedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return SavedSession{}, fmt.Errorf("recovery: decode session %q: %w", name, err)
	}
	return session, nil
}

// Delete removes a session by name. Deleting a missing session is a
// no-op.
func (s *Sessions) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, s.sessionKey(name)); err != nil {
		return fmt.Errorf("recovery: delete session %q: %w", name, err)
	}
	return s.updateIndex(ctx, func(names []string) []string {
		return slices.DeleteFunc(names, func(n string) bool { return n == name })
	})
}

func (s *Sessions) sessionKey(name string) string {
	return s.prefix + ":" + name
}

func (s *Sessions) indexKey() string {
	return s.prefix + ":index"
}

// loadIndex reads the session-name index. Caller must hold the mutex.
func (s *Sessions) loadIndex(ctx context.Context) ([]string, error) {
	data, err := s.store.Get(ctx, s.indexKey())
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("recovery: load session index: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		// Corrupt index: treat as empty rather than failing every list.
		return nil, nil
	}
	return names, nil
}

// updateIndex applies fn to the session-name index and writes it back.
// Caller must hold the mutex.
func (s *Sessions) updateIndex(ctx context.Context, fn func([]string) []string) error {
	names, err := s.loadIndex(ctx)
	if err != nil {
		return err
	}
	names = fn(names)

	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("recovery: marshal session index: %w", err)
	}
	if err := s.store.Set(ctx, s.indexKey(), data); err != nil {
		return fmt.Errorf("recovery: persist session index: %w", err)
	}
	return nil
}
