package db

import (
	"context"
	"fmt"

	"newtab-go/pkg/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the Postgres storage backend.
type DB struct {
	Pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	api_key    TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS profile_items (
	profile_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (profile_id, key)
);
`

// New connects to Postgres and makes sure the schema exists
func New(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close releases the connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Open returns the storage backend selected by driver.
func Open(ctx context.Context, driver, url string) (storage.Backend, error) {
	switch driver {
	case "postgres":
		return New(ctx, url)
	case "sqlite":
		return NewSQLite(ctx, url)
	case "memory":
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
