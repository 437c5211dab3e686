package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/waypoint/pkg/kv"
	"github.com/dmitrymomot/waypoint/pkg/route"
)

// Factory maps a persisted route path back to a Route. Returning false
// marks the path as unknown to the current build.
type Factory func(path string) (route.Route, bool)

// Manager persists and restores navigation snapshots through a
// kv.Store. Saves may be debounced; restores are gated by staleness,
// compatibility, and confirmation policies.
type Manager struct {
	store   kv.Store
	factory Factory
	opts    *options

	mu      sync.Mutex
	pending *Snapshot
	timer   *time.Timer
	stashed *Snapshot
	closed  bool
}

// NewManager creates a recovery manager. The factory is consulted on
// restore to turn persisted paths back into routes.
func NewManager(store kv.Store, factory Factory, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Manager{store: store, factory: factory, opts: o}
}

// Save captures a snapshot. Excluded paths are filtered out, the
// timestamp and compatibility tags are stamped, and the blob is written
// immediately or after the debounce window (last write wins).
func (m *Manager) Save(ctx context.Context, snap Snapshot) error {
	if m.opts.disabled {
		return nil
	}

	snap.Timestamp = time.Now()
	snap.AppVersion = m.opts.appVersion
	snap.RouteTypeHash = m.opts.typeHash
	snap.RoutePaths = m.filterExcluded(snap.RoutePaths)
	if _, excluded := m.opts.excludedPaths[snap.PresentedPath]; excluded {
		snap.PresentedPath = ""
		snap.PresentedStyle = ""
	}

	if m.opts.debounce <= 0 {
		return m.write(ctx, snap)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	m.pending = &snap
	if m.timer == nil {
		m.timer = time.AfterFunc(m.opts.debounce, m.flushPending)
	}
	return nil
}

// Flush writes any debounced snapshot immediately.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	snap := m.pending
	m.pending = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()

	if snap == nil {
		return nil
	}
	return m.write(ctx, *snap)
}

// Attempt tries to restore navigation state from storage. The outcome
// is always communicated through Result, never an error: absence and
// corruption map to NoState, policy rejections to their own kinds.
func (m *Manager) Attempt(ctx context.Context) Result {
	if m.opts.disabled {
		return Result{Kind: KindDisabled}
	}

	data, err := m.store.Get(ctx, m.opts.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			m.opts.log.WarnContext(ctx, "failed to load recovery snapshot", slog.String("error", err.Error()))
		}
		return Result{Kind: KindNoState}
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt blob: clear it so the next launch starts clean.
		_ = m.store.Delete(ctx, m.opts.key)
		m.opts.log.WarnContext(ctx, "corrupt recovery snapshot discarded", slog.String("error", err.Error()))
		return Result{Kind: KindNoState}
	}

	if m.opts.maxAge > 0 {
		if age := snap.Age(); age > m.opts.maxAge {
			_ = m.store.Delete(ctx, m.opts.key)
			return Result{
				Kind:   KindStale,
				Age:    age,
				Reason: fmt.Sprintf("snapshot is %s old, max age %s", age.Round(time.Second), m.opts.maxAge),
			}
		}
	}

	if m.opts.typeHash != "" && snap.RouteTypeHash != m.opts.typeHash {
		_ = m.store.Delete(ctx, m.opts.key)
		return Result{
			Kind:   KindInvalid,
			Reason: "snapshot was written by an incompatible build",
		}
	}

	if m.opts.confirmation {
		m.mu.Lock()
		m.stashed = &snap
		m.mu.Unlock()
		return Result{Kind: KindCancelled}
	}

	return m.execute(ctx, snap)
}

// Confirm completes a recovery that Attempt stashed behind the
// confirmation policy. Returns NoState when nothing is stashed.
func (m *Manager) Confirm(ctx context.Context) Result {
	m.mu.Lock()
	snap := m.stashed
	m.stashed = nil
	m.mu.Unlock()

	if snap == nil {
		return Result{Kind: KindNoState}
	}
	return m.execute(ctx, *snap)
}

// Decline discards a stashed snapshot and clears storage.
func (m *Manager) Decline(ctx context.Context) error {
	m.mu.Lock()
	m.stashed = nil
	m.mu.Unlock()
	return m.store.Delete(ctx, m.opts.key)
}

// Clear removes the persisted snapshot and any pending debounced write.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.pending = nil
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.mu.Unlock()
	return m.store.Delete(ctx, m.opts.key)
}

// Close flushes any pending snapshot and stops the debounce timer.
// Close is idempotent.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	m.mu.Unlock()

	return m.Flush(context.Background())
}

// execute maps persisted paths back to routes. Unknown paths are
// dropped, or abort the whole recovery under strict validation.
// Storage is cleared on every terminal outcome so a crash loop cannot
// replay the same snapshot forever.
func (m *Manager) execute(ctx context.Context, snap Snapshot) Result {
	routes := make([]route.Route, 0, len(snap.RoutePaths))
	for _, path := range snap.RoutePaths {
		r, ok := m.factory(path)
		if !ok {
			if m.opts.strict {
				_ = m.store.Delete(ctx, m.opts.key)
				return Result{
					Kind:   KindInvalid,
					Reason: fmt.Sprintf("unknown route path %q", path),
				}
			}
			continue
		}
		routes = append(routes, r)
	}

	res := Result{
		Kind:        KindSuccess,
		Routes:      routes,
		ActiveTab:   snap.ActiveTab,
		CustomState: snap.CustomState,
	}

	if snap.PresentedPath != "" {
		if r, ok := m.factory(snap.PresentedPath); ok {
			res.Presented = &r
			res.PresentedStyle = route.StyleFromString(snap.PresentedStyle)
		} else if m.opts.strict {
			_ = m.store.Delete(ctx, m.opts.key)
			return Result{
				Kind:   KindInvalid,
				Reason: fmt.Sprintf("unknown presented route path %q", snap.PresentedPath),
			}
		}
	}

	_ = m.store.Delete(ctx, m.opts.key)
	return res
}

func (m *Manager) write(ctx context.Context, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("recovery: marshal snapshot: %w", err)
	}
	if err := m.store.Set(ctx, m.opts.key, data); err != nil {
		return fmt.Errorf("recovery: persist snapshot: %w", err)
	}
	return nil
}

// flushPending runs on the debounce timer.
func (m *Manager) flushPending() {
	m.mu.Lock()
	snap := m.pending
	m.pending = nil
	m.timer = nil
	m.mu.Unlock()

	if snap == nil {
		return
	}
	if err := m.write(context.Background(), *snap); err != nil {
		m.opts.log.Warn("debounced snapshot write failed", slog.String("error", err.Error()))
	}
}

func (m *Manager) filterExcluded(paths []string) []string {
	if len(m.opts.excludedPaths) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, excluded := m.opts.excludedPaths[p]; excluded {
			continue
		}
		out = append(out, p)
	}
	return out
}
