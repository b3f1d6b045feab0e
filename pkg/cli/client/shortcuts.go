package client

import (
	"fmt"
	"net/http"

	"newtab-go/pkg/models"
)

// ListShortcuts retrieves every shortcut of the profile
func (c *Client) ListShortcuts() (*models.ShortcutList, error) {
	var list models.ShortcutList
	if err := c.do(http.MethodGet, "/api/v1/shortcuts", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CreateShortcut appends a placeholder shortcut
func (c *Client) CreateShortcut() (*models.ShortcutView, error) {
	var created models.ShortcutView
	if err := c.do(http.MethodPost, "/api/v1/shortcuts", nil, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateShortcut commits the name and URL of the shortcut at index
func (c *Client) UpdateShortcut(index int, update models.ShortcutUpdate) (*models.ShortcutView, error) {
	var updated models.ShortcutView
	path := fmt.Sprintf("/api/v1/shortcuts/%d", index)
	if err := c.do(http.MethodPut, path, update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteShortcut deletes the shortcut at index; later shortcuts move down
func (c *Client) DeleteShortcut(index int) error {
	path := fmt.Sprintf("/api/v1/shortcuts/%d", index)
	return c.do(http.MethodDelete, path, nil, nil)
}

// ResetShortcuts restores the preset shortcuts
func (c *Client) ResetShortcuts() (*models.ShortcutList, error) {
	var list models.ShortcutList
	if err := c.do(http.MethodPost, "/api/v1/shortcuts/reset", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetShortcutIcon returns how the launcher draws the icon at index
func (c *Client) GetShortcutIcon(index int) (*models.IconView, error) {
	var icon models.IconView
	path := fmt.Sprintf("/api/v1/shortcuts/%d/icon", index)
	if err := c.do(http.MethodGet, path, nil, &icon); err != nil {
		return nil, err
	}
	return &icon, nil
}

func (c *Client) GetPreferences() (*models.Preferences, error) {
	var prefs models.Preferences
	if err := c.do(http.MethodGet, "/api/v1/preferences", nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (c *Client) UpdatePreferences(update models.PreferencesUpdate) (*models.Preferences, error) {
	var prefs models.Preferences
	if err := c.do(http.MethodPut, "/api/v1/preferences", update, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}
