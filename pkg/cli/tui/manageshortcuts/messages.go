package manageshortcuts

import "newtab-go/pkg/models"

// ShortcutsLoadedMsg is emitted when the shortcut list has been fetched
type ShortcutsLoadedMsg struct {
	List *models.ShortcutList
	Err  error
}

// CreatedMsg is emitted after a placeholder shortcut was appended
type CreatedMsg struct {
	Shortcut *models.ShortcutView
	Err      error
}

// CommittedMsg is emitted after an edit was saved. Leave reports whether
// the edit form should close.
type CommittedMsg struct {
	Shortcut *models.ShortcutView
	Leave    bool
	Err      error
}

// DeletedMsg is emitted when a delete request finished
type DeletedMsg struct {
	Index int
	Err   error
}

// ResetMsg is emitted after the presets were restored
type ResetMsg struct {
	List *models.ShortcutList
	Err  error
}

// PreferencesLoadedMsg carries the profile's display toggles
type PreferencesLoadedMsg struct {
	Preferences *models.Preferences
	Err         error
}
