package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"newtab-go/pkg/models"
	"newtab-go/pkg/storage"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is a single-file storage backend.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	api_key    TEXT NOT NULL UNIQUE,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS profile_items (
	profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (profile_id, key)
);
`

// NewSQLite opens (creating if needed) the database file at path.
// ":memory:" keeps the database in memory.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path != ":memory:" {
		if strings.HasPrefix(path, "~") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			path = strings.Replace(path, "~", homeDir, 1)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() {
	s.db.Close()
}

func (s *SQLite) CreateProfile(ctx context.Context, name, apiKey string) (*models.Profile, error) {
	now := time.Now().UTC().Truncate(time.Second)
	p := &models.Profile{
		ID:        uuid.New(),
		Name:      name,
		APIKey:    apiKey,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, api_key, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID.String(), p.Name, p.APIKey, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

func (s *SQLite) GetProfileByAPIKey(ctx context.Context, apiKey string) (*models.Profile, error) {
	var (
		p                models.Profile
		id               string
		created, updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, api_key, created_at, updated_at
		 FROM profiles WHERE api_key = ?`,
		apiKey,
	).Scan(&id, &p.Name, &p.APIKey, &created, &updated)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile id: %w", err)
	}
	p.CreatedAt = time.Unix(created, 0).UTC()
	p.UpdatedAt = time.Unix(updated, 0).UTC()
	return &p, nil
}

func (s *SQLite) Items(profileID uuid.UUID) storage.KeyValue {
	return &sqliteItems{db: s.db, q: s.db, profileID: profileID.String()}
}

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteItems is a profile key space; db is nil when bound to a transaction.
type sqliteItems struct {
	db        *sql.DB
	q         sqlQuerier
	profileID string
}

func (s *sqliteItems) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRowContext(ctx,
		`SELECT value FROM profile_items WHERE profile_id = ? AND key = ?`,
		s.profileID, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item: %w", err)
	}
	return value, true, nil
}

func (s *sqliteItems) SetItem(ctx context.Context, key, value string) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO profile_items (profile_id, key, value, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (profile_id, key)
		 DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.profileID, key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *sqliteItems) RemoveItem(ctx context.Context, key string) error {
	_, err := s.q.ExecContext(ctx,
		`DELETE FROM profile_items WHERE profile_id = ? AND key = ?`,
		s.profileID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (s *sqliteItems) Update(ctx context.Context, fn func(kv storage.KeyValue) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(&sqliteItems{q: tx, profileID: s.profileID}); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
