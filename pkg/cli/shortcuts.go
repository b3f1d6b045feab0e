package cli

import (
	"fmt"

	"newtab-go/pkg/cli/format"
	"newtab-go/pkg/models"
	"newtab-go/pkg/utils"
)

// ListShortcuts prints the profile's shortcuts as a table
func (a *App) ListShortcuts() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	list, err := apiClient.ListShortcuts()
	if err != nil {
		return fmt.Errorf("failed to fetch shortcuts: %w", err)
	}

	fmt.Fprint(a.out, format.FormatTableOutput(list))
	return nil
}

// AddShortcut appends a shortcut. The server always creates a placeholder;
// a name or URL given here is committed to it right away.
func (a *App) AddShortcut(name, rawURL string) error {
	if _, err := utils.ValidateURL(rawURL); err != nil {
		return err
	}

	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	sc, err := apiClient.CreateShortcut()
	if err != nil {
		return fmt.Errorf("failed to create shortcut: %w", err)
	}

	if name != "" || rawURL != "" {
		update := models.ShortcutUpdate{Name: sc.Name, URL: sc.URL}
		if name != "" {
			update.Name = name
		}
		if rawURL != "" {
			update.URL = rawURL
		}
		index := sc.Index
		sc, err = apiClient.UpdateShortcut(index, update)
		if err != nil {
			return fmt.Errorf("failed to save shortcut %d: %w", index, err)
		}
	}

	fmt.Fprint(a.out, format.FormatSuccessMessage("created", sc))
	return nil
}

// DeleteShortcut removes the shortcut at index
func (a *App) DeleteShortcut(index int) error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	if err := apiClient.DeleteShortcut(index); err != nil {
		return fmt.Errorf("failed to delete shortcut %d: %w", index, err)
	}

	fmt.Fprintf(a.out, "✓ Deleted shortcut %d\n", index)
	return nil
}

// ResetShortcuts restores the default shortcuts
func (a *App) ResetShortcuts() error {
	apiClient, err := a.getClient()
	if err != nil {
		return err
	}

	list, err := apiClient.ResetShortcuts()
	if err != nil {
		return fmt.Errorf("failed to reset shortcuts: %w", err)
	}

	fmt.Fprintln(a.out, "✓ Restored default shortcuts")
	fmt.Fprint(a.out, format.FormatTableOutput(list))
	return nil
}
