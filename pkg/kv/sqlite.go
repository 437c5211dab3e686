package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLite is a store backed by a local SQLite database. It is the
// default durable backend for recovery snapshots and saved sessions.
type SQLite struct {
	db     *sql.DB
	table  string
	mu     sync.Mutex
	closed bool
}

// NewSQLite opens (or creates) a SQLite database at path and prepares
// the storage table. Use ":memory:" for an ephemeral database.
func NewSQLite(path string, opts ...SQLiteOption) (*SQLite, error) {
	o := defaultSQLiteOptions()
	for _, opt := range opts {
		opt(o)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kv: open sqlite: %w", err)
	}

	// The driver serializes access per connection; a single connection
	// avoids SQLITE_BUSY on concurrent writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: set journal mode: %w", err)
	}

	schema := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`, o.table)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("kv: create table: %w", err)
	}

	return &SQLite{db: db, table: o.table}, nil
}

// Get retrieves a value by key.
// Returns ErrNotFound if the key does not exist.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	query := fmt.Sprintf("SELECT value FROM %s WHERE key = ?", s.table)
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("kv: get %q: %w", key, err)
	}
	return value, nil
}

// Set stores a value under key, overwriting any existing value.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	query := fmt.Sprintf(`INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.table)
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("kv: set %q: %w", key, err)
	}
	return nil
}

// Delete removes a key. Deleting a missing key is a no-op.
func (s *SQLite) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE key = ?", s.table)
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("kv: delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database. Close is idempotent.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

var _ Store = (*SQLite)(nil)
