package shortcuts

import (
	"context"
	"fmt"

	"newtab-go/pkg/models"
	"newtab-go/pkg/storage"
)

const (
	showShortcutsKey = "shortcutsCheckboxState"
	adaptiveIconsKey = "adaptiveIconToggle"

	checked   = "checked"
	unchecked = "unchecked"
)

// LoadPreferences reads the display toggles. Shortcuts are shown unless the
// profile turned them off; adaptive icons are off unless turned on.
func LoadPreferences(ctx context.Context, kv storage.KeyValue) (models.Preferences, error) {
	show, ok, err := kv.GetItem(ctx, showShortcutsKey)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}
	adaptive, _, err := kv.GetItem(ctx, adaptiveIconsKey)
	if err != nil {
		return models.Preferences{}, fmt.Errorf("failed to read preferences: %w", err)
	}

	return models.Preferences{
		ShowShortcuts: !ok || show == checked,
		AdaptiveIcons: adaptive == checked,
	}, nil
}

// SavePreferences applies the fields set in update and returns the result.
func SavePreferences(ctx context.Context, kv storage.KeyValue, update models.PreferencesUpdate) (models.Preferences, error) {
	if update.ShowShortcuts != nil {
		if err := kv.SetItem(ctx, showShortcutsKey, checkboxState(*update.ShowShortcuts)); err != nil {
			return models.Preferences{}, fmt.Errorf("failed to save preferences: %w", err)
		}
	}
	if update.AdaptiveIcons != nil {
		if err := kv.SetItem(ctx, adaptiveIconsKey, checkboxState(*update.AdaptiveIcons)); err != nil {
			return models.Preferences{}, fmt.Errorf("failed to save preferences: %w", err)
		}
	}
	return LoadPreferences(ctx, kv)
}

func checkboxState(on bool) string {
	if on {
		return checked
	}
	return unchecked
}
