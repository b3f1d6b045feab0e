package models

// ShortcutUpdate is the payload committed when a settings entry loses focus.
type ShortcutUpdate struct {
	Name string `json:"name" form:"name" binding:"max=200"`
	URL  string `json:"url" form:"url" binding:"max=2048"`
}

// ShortcutView is the JSON shape of one rendered shortcut.
type ShortcutView struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	URL   string   `json:"url"`
	Href  string   `json:"href"`
	Icon  IconView `json:"icon"`
}

// IconView describes how a launcher tile icon should be drawn.
type IconView struct {
	Kind        string `json:"kind"`
	SVG         string `json:"svg,omitempty"`
	Src         string `json:"src,omitempty"`
	FallbackSrc string `json:"fallback_src,omitempty"`
}

// ShortcutList is the response for listing a profile's shortcuts
type ShortcutList struct {
	Amount    int            `json:"amount"`
	CanCreate bool           `json:"can_create"`
	CanDelete bool           `json:"can_delete"`
	Shortcuts []ShortcutView `json:"shortcuts"`
}

// Preferences are the per-profile display toggles for the launcher grid.
type Preferences struct {
	ShowShortcuts bool `json:"show_shortcuts"`
	AdaptiveIcons bool `json:"adaptive_icons"`
}

// PreferencesUpdate represents a partial preferences change
type PreferencesUpdate struct {
	ShowShortcuts *bool `json:"show_shortcuts,omitempty"`
	AdaptiveIcons *bool `json:"adaptive_icons,omitempty"`
}
