package db

import (
	"context"
	"errors"
	"fmt"

	"newtab-go/pkg/models"
	"newtab-go/pkg/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GetProfileByAPIKey retrieves a profile by its API key
func (db *DB) GetProfileByAPIKey(ctx context.Context, apiKey string) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, api_key, created_at, updated_at
		 FROM profiles WHERE api_key = $1`,
		apiKey,
	).Scan(
		&p.ID,
		&p.Name,
		&p.APIKey,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// CreateProfile creates a new profile
func (db *DB) CreateProfile(ctx context.Context, name, apiKey string) (*models.Profile, error) {
	var p models.Profile
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO profiles (id, name, api_key)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, api_key, created_at, updated_at`,
		uuid.New(), name, apiKey,
	).Scan(
		&p.ID,
		&p.Name,
		&p.APIKey,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return &p, nil
}

// Items returns the key space of one profile
func (db *DB) Items(profileID uuid.UUID) storage.KeyValue {
	return &pgItems{pool: db.Pool, q: db.Pool, profileID: profileID}
}

// querier is the subset shared by the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// pgItems is a profile key space. pool is nil when the value is bound to
// a transaction.
type pgItems struct {
	pool      *pgxpool.Pool
	q         querier
	profileID uuid.UUID
}

func (s *pgItems) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.q.QueryRow(ctx,
		`SELECT value FROM profile_items WHERE profile_id = $1 AND key = $2`,
		s.profileID, key,
	).Scan(&value)

	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get item: %w", err)
	}
	return value, true, nil
}

func (s *pgItems) SetItem(ctx context.Context, key, value string) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO profile_items (profile_id, key, value)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (profile_id, key)
		 DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		s.profileID, key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *pgItems) RemoveItem(ctx context.Context, key string) error {
	_, err := s.q.Exec(ctx,
		`DELETE FROM profile_items WHERE profile_id = $1 AND key = $2`,
		s.profileID, key,
	)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// Update runs fn in a single transaction
func (s *pgItems) Update(ctx context.Context, fn func(kv storage.KeyValue) error) error {
	if s.pool == nil {
		return fn(s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(&pgItems{q: tx, profileID: s.profileID})
	})
}
