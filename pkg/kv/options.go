package kv

// RedisOption configures the Redis store.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix string
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{}
}

// WithPrefix namespaces all keys under the given prefix, so multiple
// stores can share one Redis database.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// SQLiteOption configures the SQLite store.
type SQLiteOption func(*sqliteOptions)

type sqliteOptions struct {
	table string
}

func defaultSQLiteOptions() *sqliteOptions {
	return &sqliteOptions{table: "kv"}
}

// WithTable overrides the table name used for storage.
func WithTable(table string) SQLiteOption {
	return func(o *sqliteOptions) {
		if table != "" {
			o.table = table
		}
	}
}
