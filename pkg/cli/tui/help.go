package tui

import (
	"fmt"
	"strings"
)

// HelpItem represents a single keyboard shortcut and its description
type HelpItem struct {
	Key         string
	Description string
}

// RootMenuHelpContent returns help for root menu
func RootMenuHelpContent() string {
	items := []HelpItem{
		{"1-2", "Select menu option (Shortcuts / Preferences)"},
		{"q / Esc", "Quit"},
	}
	return renderHelpItems(items)
}

// ManageShortcutsHelpContent returns help for the shortcut list
func ManageShortcutsHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate shortcuts"},
		{"Enter / e", "Edit name and URL"},
		{"Tab / Shift+Tab", "Switch field (saves the field you leave)"},
		{"n", "New shortcut"},
		{"d", "Delete shortcut"},
		{"r", "Reset to defaults"},
		{"PgUp / PgDn", "Scroll"},
		{"m", "Return to menu"},
		{"q", "Quit"},
		{"?", "Show this help"},
	}
	return renderHelpItems(items)
}

// PreferencesHelpContent returns help for the preferences screen
func PreferencesHelpContent() string {
	items := []HelpItem{
		{"↑ / ↓ / j / k", "Navigate options"},
		{"Space / Enter", "Toggle option"},
		{"m", "Return to menu"},
		{"q", "Quit"},
	}
	return renderHelpItems(items)
}

// renderHelpItems formats help items into a readable string
func renderHelpItems(items []HelpItem) string {
	var b strings.Builder
	keyStyle := accentStyle
	for _, item := range items {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(item.Key),
			item.Description))
	}
	return b.String()
}
