package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"newtab-go/pkg/icons"
	"newtab-go/pkg/models"
	"newtab-go/pkg/render"
	"newtab-go/pkg/shortcuts"
	"newtab-go/pkg/storage"

	"github.com/google/uuid"
)

// ShortcutService handles business logic for a profile's shortcuts and
// display preferences
type ShortcutService struct {
	backend  storage.Backend
	presets  []shortcuts.Preset
	resolver *icons.Resolver
	renderer *render.Renderer

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewShortcutService creates a new shortcut service. A nil presets slice
// uses the built-in preset table.
func NewShortcutService(backend storage.Backend, presets []shortcuts.Preset, opts icons.Options) *ShortcutService {
	if presets == nil {
		presets = shortcuts.DefaultPresets()
	}
	resolver := icons.NewResolver(presets, opts)
	return &ShortcutService{
		backend:  backend,
		presets:  presets,
		resolver: resolver,
		renderer: render.New(resolver),
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// CreateProfile registers a new profile and issues its API key
func (s *ShortcutService) CreateProfile(ctx context.Context, name string) (*models.Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	apiKey, err := generateAPIKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	return s.backend.CreateProfile(ctx, name, apiKey)
}

// Authenticate looks up the profile owning apiKey
func (s *ShortcutService) Authenticate(ctx context.Context, apiKey string) (*models.Profile, error) {
	if apiKey == "" {
		return nil, storage.ErrNotFound
	}
	return s.backend.GetProfileByAPIKey(ctx, apiKey)
}

// View renders the full page view for a profile, materialising the presets
// on first use
func (s *ShortcutService) View(ctx context.Context, profileID uuid.UUID) (render.View, error) {
	var view render.View
	err := s.withProfile(profileID, func(store *shortcuts.Store, kv storage.KeyValue) error {
		list, err := store.Load(ctx)
		if err != nil {
			return err
		}
		prefs, err := shortcuts.LoadPreferences(ctx, kv)
		if err != nil {
			return err
		}
		view = s.renderer.Build(list, prefs)
		return nil
	})
	return view, err
}

// ListShortcuts returns every shortcut of a profile with its control state
func (s *ShortcutService) ListShortcuts(ctx context.Context, profileID uuid.UUID) (models.ShortcutList, error) {
	view, err := s.View(ctx, profileID)
	if err != nil {
		return models.ShortcutList{}, err
	}
	return view.List(), nil
}

// CreateShortcut appends a placeholder shortcut
func (s *ShortcutService) CreateShortcut(ctx context.Context, profileID uuid.UUID) (models.ShortcutView, error) {
	var out models.ShortcutView
	err := s.withProfile(profileID, func(store *shortcuts.Store, _ storage.KeyValue) error {
		sc, err := store.Create(ctx)
		if err != nil {
			return err
		}
		out = s.renderer.Tile(*sc).ShortcutView(sc.URL)
		return nil
	})
	return out, err
}

// CommitShortcut saves an edited settings entry and returns its re-rendered
// tile
func (s *ShortcutService) CommitShortcut(ctx context.Context, profileID uuid.UUID, index int, update models.ShortcutUpdate) (models.ShortcutView, error) {
	var out models.ShortcutView
	err := s.withProfile(profileID, func(store *shortcuts.Store, _ storage.KeyValue) error {
		sc, err := store.Commit(ctx, index, update.Name, update.URL)
		if err != nil {
			return err
		}
		out = s.renderer.Tile(*sc).ShortcutView(sc.URL)
		return nil
	})
	return out, err
}

// DeleteShortcut removes the shortcut at index and renumbers the rest
func (s *ShortcutService) DeleteShortcut(ctx context.Context, profileID uuid.UUID, index int) error {
	return s.withProfile(profileID, func(store *shortcuts.Store, _ storage.KeyValue) error {
		return store.Delete(ctx, index)
	})
}

// ResetShortcuts restores the preset table
func (s *ShortcutService) ResetShortcuts(ctx context.Context, profileID uuid.UUID) (models.ShortcutList, error) {
	var out models.ShortcutList
	err := s.withProfile(profileID, func(store *shortcuts.Store, kv storage.KeyValue) error {
		list, err := store.Reset(ctx)
		if err != nil {
			return err
		}
		prefs, err := shortcuts.LoadPreferences(ctx, kv)
		if err != nil {
			return err
		}
		out = s.renderer.Build(list, prefs).List()
		return nil
	})
	return out, err
}

// ShortcutIcon resolves the icon of the shortcut at index
func (s *ShortcutService) ShortcutIcon(ctx context.Context, profileID uuid.UUID, index int) (icons.Icon, error) {
	var icon icons.Icon
	err := s.withProfile(profileID, func(store *shortcuts.Store, _ storage.KeyValue) error {
		list, err := store.Load(ctx)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(list) {
			return shortcuts.ErrIndexOutOfRange
		}
		icon = s.resolver.Resolve(list[index].URL)
		return nil
	})
	return icon, err
}

// GetPreferences returns the display toggles of a profile
func (s *ShortcutService) GetPreferences(ctx context.Context, profileID uuid.UUID) (models.Preferences, error) {
	var prefs models.Preferences
	err := s.withProfile(profileID, func(_ *shortcuts.Store, kv storage.KeyValue) error {
		var err error
		prefs, err = shortcuts.LoadPreferences(ctx, kv)
		return err
	})
	return prefs, err
}

// UpdatePreferences applies a partial preferences change
func (s *ShortcutService) UpdatePreferences(ctx context.Context, profileID uuid.UUID, update models.PreferencesUpdate) (models.Preferences, error) {
	var prefs models.Preferences
	err := s.withProfile(profileID, func(_ *shortcuts.Store, kv storage.KeyValue) error {
		var err error
		prefs, err = shortcuts.SavePreferences(ctx, kv, update)
		return err
	})
	return prefs, err
}

// withProfile runs fn with the profile's key space while holding its lock,
// so operations on one profile never interleave.
func (s *ShortcutService) withProfile(profileID uuid.UUID, fn func(store *shortcuts.Store, kv storage.KeyValue) error) error {
	lock := s.profileLock(profileID)
	lock.Lock()
	defer lock.Unlock()

	kv := s.backend.Items(profileID)
	return fn(shortcuts.NewStore(kv, s.presets), kv)
}

func (s *ShortcutService) profileLock(profileID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[profileID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[profileID] = lock
	}
	return lock
}

// generateAPIKey generates a random 32-byte hex string
func generateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
