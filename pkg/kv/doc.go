// Package kv provides a small byte-oriented key-value store used for
// persisting navigation state: recovery snapshots, saved sessions, and
// experiment assignments.
//
// Three backends are provided: Memory for tests and ephemeral apps,
// SQLite for durable on-device storage, and Redis for server-backed
// session continuity. All backends satisfy the Store interface, so
// callers configure one at construction and stay backend-agnostic.
//
//	store, err := kv.NewSQLite("nav.db")
//	if err != nil { ... }
//	defer store.Close()
//
// GetOrSet deduplicates concurrent loads of the same key with
// singleflight, which keeps expensive computations (such as experiment
// variant assignment) from racing.
package kv
