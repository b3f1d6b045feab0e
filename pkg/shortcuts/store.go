package shortcuts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"newtab-go/pkg/storage"
)

const (
	MaxShortcutsAllowed = 50
	MinShortcutsAllowed = 1

	// PlaceholderName and PlaceholderURL fill newly created shortcuts and
	// user-created slots whose values were cleared.
	PlaceholderName = "New shortcut"
	PlaceholderURL  = "https://example.com"
)

// Persisted key names. They match the keys the page used in the browser so
// exported local storage can be imported as-is.
const (
	amountKey  = "shortcutAmount"
	namePrefix = "shortcutName"
	urlPrefix  = "shortcutURL"
)

var (
	ErrMaxShortcuts    = fmt.Errorf("cannot have more than %d shortcuts", MaxShortcutsAllowed)
	ErrMinShortcuts    = fmt.Errorf("cannot have fewer than %d shortcut", MinShortcutsAllowed)
	ErrIndexOutOfRange = errors.New("shortcut index out of range")
)

// Shortcut is one launcher tile. Index is both its position and the suffix
// of its persisted keys.
type Shortcut struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

func nameKey(i int) string { return namePrefix + strconv.Itoa(i) }
func urlKey(i int) string  { return urlPrefix + strconv.Itoa(i) }

// Store keeps an ordered list of shortcuts in a flat key space. Every
// operation reads the list, changes it in memory and writes back only the
// keys that moved.
type Store struct {
	kv      storage.KeyValue
	presets []Preset
}

// NewStore creates a store over kv. A nil presets slice uses the built-in
// preset table.
func NewStore(kv storage.KeyValue, presets []Preset) *Store {
	if presets == nil {
		presets = DefaultPresets()
	}
	return &Store{kv: kv, presets: presets}
}

// Load returns every live shortcut in index order, materialising the
// presets on first use.
func (s *Store) Load(ctx context.Context) ([]Shortcut, error) {
	var list []Shortcut
	err := storage.Update(ctx, s.kv, func(kv storage.KeyValue) error {
		var err error
		list, err = s.load(ctx, kv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Create appends a placeholder shortcut at the end of the list.
// At MaxShortcutsAllowed it changes nothing and returns ErrMaxShortcuts.
func (s *Store) Create(ctx context.Context) (*Shortcut, error) {
	var created *Shortcut
	err := storage.Update(ctx, s.kv, func(kv storage.KeyValue) error {
		list, err := s.load(ctx, kv)
		if err != nil {
			return err
		}
		if len(list)+1 > MaxShortcutsAllowed {
			return ErrMaxShortcuts
		}

		sc := Shortcut{Index: len(list), Name: PlaceholderName, URL: PlaceholderURL}
		if err := writeShortcut(ctx, kv, sc); err != nil {
			return err
		}
		if err := writeAmount(ctx, kv, len(list)+1); err != nil {
			return err
		}
		created = &sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Commit stores the edited name and URL of the shortcut at index. The URL
// is normalised first. The returned shortcut is what Load would report.
func (s *Store) Commit(ctx context.Context, index int, name, rawURL string) (*Shortcut, error) {
	var committed *Shortcut
	err := storage.Update(ctx, s.kv, func(kv storage.KeyValue) error {
		list, err := s.load(ctx, kv)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(list) {
			return ErrIndexOutOfRange
		}

		sc := Shortcut{Index: index, Name: name, URL: NormalizeURL(rawURL)}
		if err := writeShortcut(ctx, kv, sc); err != nil {
			return err
		}
		sc.Name, sc.URL = s.fallback(index, sc.Name, sc.URL)
		committed = &sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return committed, nil
}

// Delete removes the shortcut at index and shifts every later shortcut down
// by one. It changes nothing and returns ErrMinShortcuts when the list would
// drop below MinShortcutsAllowed.
func (s *Store) Delete(ctx context.Context, index int) error {
	return storage.Update(ctx, s.kv, func(kv storage.KeyValue) error {
		list, err := s.load(ctx, kv)
		if err != nil {
			return err
		}
		newAmount := len(list) - 1
		if newAmount < MinShortcutsAllowed {
			return ErrMinShortcuts
		}
		if index < 0 || index >= len(list) {
			return ErrIndexOutOfRange
		}

		list = append(list[:index], list[index+1:]...)
		for j := index; j < newAmount; j++ {
			list[j].Index = j
			if err := writeShortcut(ctx, kv, list[j]); err != nil {
				return err
			}
		}

		// the last slot has moved down
		if err := removeShortcut(ctx, kv, newAmount); err != nil {
			return err
		}
		return writeAmount(ctx, kv, newAmount)
	})
}

// Reset removes every shortcut key and the count, then reloads, which
// restores exactly the preset set.
func (s *Store) Reset(ctx context.Context) ([]Shortcut, error) {
	var list []Shortcut
	err := storage.Update(ctx, s.kv, func(kv storage.KeyValue) error {
		n, _, err := readAmount(ctx, kv)
		if err != nil {
			return err
		}
		// also sweep slots past a corrupt or clamped count
		limit := max(n, MaxShortcutsAllowed)
		for i := 0; i < limit; i++ {
			if err := removeShortcut(ctx, kv, i); err != nil {
				return err
			}
		}
		if err := kv.RemoveItem(ctx, amountKey); err != nil {
			return fmt.Errorf("failed to remove shortcut amount: %w", err)
		}

		list, err = s.load(ctx, kv)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (s *Store) load(ctx context.Context, kv storage.KeyValue) ([]Shortcut, error) {
	amount, ok, err := readAmount(ctx, kv)
	if err != nil {
		return nil, err
	}

	if !ok {
		// first run: persist the presets that are not already stored
		amount = len(s.presets)
		if err := writeAmount(ctx, kv, amount); err != nil {
			return nil, err
		}
		for i, p := range s.presets {
			if err := setIfMissing(ctx, kv, nameKey(i), p.Name); err != nil {
				return nil, err
			}
			if err := setIfMissing(ctx, kv, urlKey(i), NormalizeURL(p.URL)); err != nil {
				return nil, err
			}
		}
	} else if clamped := clampAmount(amount); clamped != amount {
		amount = clamped
		if err := writeAmount(ctx, kv, amount); err != nil {
			return nil, err
		}
	}

	list := make([]Shortcut, amount)
	for i := range list {
		name, _, err := kv.GetItem(ctx, nameKey(i))
		if err != nil {
			return nil, fmt.Errorf("failed to read shortcut %d name: %w", i, err)
		}
		u, _, err := kv.GetItem(ctx, urlKey(i))
		if err != nil {
			return nil, fmt.Errorf("failed to read shortcut %d url: %w", i, err)
		}
		name, u = s.fallback(i, name, u)
		list[i] = Shortcut{Index: i, Name: name, URL: u}
	}
	return list, nil
}

// fallback substitutes preset values inside the preset range and
// placeholders outside it for blank fields.
func (s *Store) fallback(i int, name, u string) (string, string) {
	if strings.TrimSpace(name) == "" {
		if i < len(s.presets) {
			name = s.presets[i].Name
		} else {
			name = PlaceholderName
		}
	}
	if strings.TrimSpace(u) == "" {
		if i < len(s.presets) {
			u = NormalizeURL(s.presets[i].URL)
		} else {
			u = PlaceholderURL
		}
	}
	return name, u
}

// readAmount reports ok=false when the count is absent or not a decimal
// integer; both are treated as a first run.
func readAmount(ctx context.Context, kv storage.KeyValue) (int, bool, error) {
	raw, ok, err := kv.GetItem(ctx, amountKey)
	if err != nil {
		return 0, false, fmt.Errorf("failed to read shortcut amount: %w", err)
	}
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

func writeAmount(ctx context.Context, kv storage.KeyValue, n int) error {
	if err := kv.SetItem(ctx, amountKey, strconv.Itoa(n)); err != nil {
		return fmt.Errorf("failed to save shortcut amount: %w", err)
	}
	return nil
}

func clampAmount(n int) int {
	return min(max(n, MinShortcutsAllowed), MaxShortcutsAllowed)
}

func writeShortcut(ctx context.Context, kv storage.KeyValue, sc Shortcut) error {
	if err := kv.SetItem(ctx, nameKey(sc.Index), sc.Name); err != nil {
		return fmt.Errorf("failed to save shortcut %d: %w", sc.Index, err)
	}
	if err := kv.SetItem(ctx, urlKey(sc.Index), sc.URL); err != nil {
		return fmt.Errorf("failed to save shortcut %d: %w", sc.Index, err)
	}
	return nil
}

func removeShortcut(ctx context.Context, kv storage.KeyValue, i int) error {
	if err := kv.RemoveItem(ctx, nameKey(i)); err != nil {
		return fmt.Errorf("failed to remove shortcut %d: %w", i, err)
	}
	if err := kv.RemoveItem(ctx, urlKey(i)); err != nil {
		return fmt.Errorf("failed to remove shortcut %d: %w", i, err)
	}
	return nil
}

func setIfMissing(ctx context.Context, kv storage.KeyValue, key, value string) error {
	_, ok, err := kv.GetItem(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if ok {
		return nil
	}
	if err := kv.SetItem(ctx, key, value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Controls reports which list controls are enabled for a given count.
type Controls struct {
	CanCreate bool `json:"can_create"`
	CanDelete bool `json:"can_delete"`
}

// ControlsFor returns the control state for amount shortcuts
func ControlsFor(amount int) Controls {
	return Controls{
		CanCreate: amount < MaxShortcutsAllowed,
		CanDelete: amount > MinShortcutsAllowed,
	}
}
