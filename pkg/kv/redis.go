package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a store backed by Redis. The client lifecycle is managed by
// the caller; Close on the store does not close the client.
type Redis struct {
	client redis.UniversalClient
	opts   *redisOptions
}

// NewRedis creates a Redis-backed store.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: addr})
//	store := kv.NewRedis(client, kv.WithPrefix("nav"))
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Redis{client: client, opts: o}
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.prefixedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Set stores a value under key without expiration.
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.prefixedKey(key), value, 0).Err()
}

// Delete removes a key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefixedKey(key)).Err()
}

// Close is a no-op for Redis; the client is owned by the caller.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) prefixedKey(key string) string {
	if r.opts.prefix == "" {
		return key
	}
	return r.opts.prefix + ":" + key
}

var _ Store = (*Redis)(nil)
