package storage

import (
	"context"
	"maps"
	"sync"
	"time"

	"newtab-go/pkg/models"

	"github.com/google/uuid"
)

// Memory is a Backend that keeps everything in process memory.
type Memory struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile // keyed by API key
	items    map[uuid.UUID]map[string]string
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{
		profiles: make(map[string]*models.Profile),
		items:    make(map[uuid.UUID]map[string]string),
	}
}

func (m *Memory) CreateProfile(_ context.Context, name, apiKey string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	p := &models.Profile{
		ID:        uuid.New(),
		Name:      name,
		APIKey:    apiKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.profiles[apiKey] = p
	cp := *p
	return &cp, nil
}

func (m *Memory) GetProfileByAPIKey(_ context.Context, apiKey string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[apiKey]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// Items returns the key space of a profile. The returned value supports
// Atomic by applying writes to a copy and swapping it in on success.
func (m *Memory) Items(profileID uuid.UUID) KeyValue {
	return &memoryItems{m: m, id: profileID}
}

func (m *Memory) Close() {}

type memoryItems struct {
	m  *Memory
	id uuid.UUID
}

func (s *memoryItems) GetItem(_ context.Context, key string) (string, bool, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	v, ok := s.m.items[s.id][key]
	return v, ok, nil
}

func (s *memoryItems) SetItem(_ context.Context, key, value string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	space, ok := s.m.items[s.id]
	if !ok {
		space = make(map[string]string)
		s.m.items[s.id] = space
	}
	space[key] = value
	return nil
}

func (s *memoryItems) RemoveItem(_ context.Context, key string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	delete(s.m.items[s.id], key)
	return nil
}

func (s *memoryItems) Update(ctx context.Context, fn func(kv KeyValue) error) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	tx := &MapKV{Data: maps.Clone(s.m.items[s.id])}
	if tx.Data == nil {
		tx.Data = make(map[string]string)
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.m.items[s.id] = tx.Data
	return nil
}

// MapKV is an unsynchronised KeyValue over a plain map. Tests use it as a
// stand-in for a browser's local storage.
type MapKV struct {
	Data map[string]string
}

// NewMapKV returns an empty MapKV
func NewMapKV() *MapKV {
	return &MapKV{Data: make(map[string]string)}
}

func (kv *MapKV) GetItem(_ context.Context, key string) (string, bool, error) {
	v, ok := kv.Data[key]
	return v, ok, nil
}

func (kv *MapKV) SetItem(_ context.Context, key, value string) error {
	kv.Data[key] = value
	return nil
}

func (kv *MapKV) RemoveItem(_ context.Context, key string) error {
	delete(kv.Data, key)
	return nil
}
