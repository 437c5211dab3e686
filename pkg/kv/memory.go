package kv

import (
	"context"
	"sync"
)

// Memory is an in-memory store. Values are copied on both write and
// read so callers cannot alias the internal buffers.
type Memory struct {
	items  map[string][]byte
	mu     sync.Mutex
	closed bool
}

// NewMemory creates an in-memory store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	v, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Set stores a value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	v := make([]byte, len(value))
	copy(v, value)
	m.items[key] = v
	return nil
}

// Delete removes a key. Deleting a missing key is a no-op.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	delete(m.items, key)
	return nil
}

// Close marks the store as closed. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.items = nil
	return nil
}

var _ Store = (*Memory)(nil)
