package storage

import (
	"context"
	"errors"

	"newtab-go/pkg/models"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a profile or key does not exist
var ErrNotFound = errors.New("not found")

// KeyValue is a flat string key space, the server-side equivalent of a
// browser's local storage.
type KeyValue interface {
	// GetItem returns the value and whether the key exists.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	// RemoveItem deletes a key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error
}

// Atomic is implemented by key spaces that can apply several writes as
// one unit. fn receives a KeyValue bound to the transaction.
type Atomic interface {
	Update(ctx context.Context, fn func(kv KeyValue) error) error
}

// Backend stores profiles and the key space owned by each of them.
type Backend interface {
	CreateProfile(ctx context.Context, name, apiKey string) (*models.Profile, error)
	GetProfileByAPIKey(ctx context.Context, apiKey string) (*models.Profile, error)
	Items(profileID uuid.UUID) KeyValue
	Close()
}

// Update runs fn inside a transaction when kv supports one, otherwise
// directly against kv.
func Update(ctx context.Context, kv KeyValue, fn func(kv KeyValue) error) error {
	if a, ok := kv.(Atomic); ok {
		return a.Update(ctx, fn)
	}
	return fn(kv)
}
