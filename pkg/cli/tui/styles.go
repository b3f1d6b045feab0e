package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 palette shared by the menu, shortcut and preference screens.
var (
	colorAccent = lipgloss.Color("62")
	colorDim    = lipgloss.Color("242")
	colorTile   = lipgloss.Color("252")
	colorOK     = lipgloss.Color("42")
	colorBad    = lipgloss.Color("196")
	colorWarn   = lipgloss.Color("214")
)

var (
	boldStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(colorDim)

	// accentStyle marks the selected row and its arrow.
	accentStyle     = boldStyle.Foreground(colorAccent)
	titleStyle      = accentStyle.MarginBottom(1)
	fieldLabelStyle = accentStyle.Width(6)

	tileNameStyle = boldStyle.Foreground(colorTile)
	hintStyle     = mutedStyle.Italic(true)

	okStyle   = boldStyle.Foreground(colorOK)
	badStyle  = boldStyle.Foreground(colorBad)
	warnStyle = lipgloss.NewStyle().Foreground(colorWarn)
)

func renderTitle(title string) string {
	return "\n" + titleStyle.Render(title) + "\n"
}

func renderSuccess(msg string) string { return okStyle.Render("✓ " + msg) }
func renderError(msg string) string   { return badStyle.Render("❌ " + msg) }
func renderWarning(msg string) string { return warnStyle.Render("⚠ " + msg) }

func renderDivider(length int) string {
	return mutedStyle.Render(strings.Repeat("─", length))
}
