package kv

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Store is a byte-oriented key-value store.
type Store interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources. Close is idempotent.
	Close() error
}

var sfGroup singleflight.Group

// GetOrSet retrieves a value from the store, or calls fn to compute it
// on a miss. Uses singleflight to deduplicate concurrent misses: if
// multiple goroutines call GetOrSet with the same key at once, fn runs
// only once and all callers receive its result.
//
// If fn returns an error, nothing is stored and the error is returned.
func GetOrSet(ctx context.Context, s Store, key string, fn func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	// Fast path: value already stored.
	if v, err := s.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := sfGroup.Do(key, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		// Best-effort persist; the computed value is still returned
		// even if the write fails.
		_ = s.Set(ctx, key, val)
		return val, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]byte), nil
}
