package tui

import (
	"fmt"
	"strings"

	"newtab-go/pkg/cli/client"
	"newtab-go/pkg/cli/format"
	"newtab-go/pkg/models"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// ShortcutClient is the part of the API client the TUI needs
type ShortcutClient interface {
	ListShortcuts() (*models.ShortcutList, error)
	CreateShortcut() (*models.ShortcutView, error)
	UpdateShortcut(index int, update models.ShortcutUpdate) (*models.ShortcutView, error)
	DeleteShortcut(index int) error
	ResetShortcuts() (*models.ShortcutList, error)
	GetPreferences() (*models.Preferences, error)
	UpdatePreferences(update models.PreferencesUpdate) (*models.Preferences, error)
}

var _ ShortcutClient = (*client.Client)(nil)

// renderErrorView renders a standard error view with exit message
func renderErrorView(err error) string {
	return "\n" + renderError(fmt.Sprintf("Error: %v", err)) + "\n\n" +
		hintStyle.Render("Press 'm' for menu or 'q' to quit") + "\n"
}

// renderLoadingState renders a standard loading message
func renderLoadingState(message string) string {
	return "\n" + mutedStyle.Render(message) + "\n"
}

// renderShortcutList renders the selectable list; each shortcut takes
// two lines (name, then URL).
func renderShortcutList(list []models.ShortcutView, selected, width int) string {
	if len(list) == 0 {
		return mutedStyle.Render("No shortcuts.") + "\n"
	}

	nameWidth := max(width-8, 20)
	var b strings.Builder
	for i, sc := range list {
		marker := " "
		nameStyle := tileNameStyle
		if i == selected {
			marker = accentStyle.Render("→")
			nameStyle = accentStyle
		}

		b.WriteString(fmt.Sprintf("%s %s %s\n",
			marker,
			mutedStyle.Render(fmt.Sprintf("%2d", sc.Index)),
			nameStyle.Render(format.Truncate(sc.Name, nameWidth)),
		))
		b.WriteString(fmt.Sprintf("     %s\n", hintStyle.Render(format.Truncate(format.DisplayURL(sc.URL), nameWidth))))
	}
	return b.String()
}

// renderShortcutSummary renders one shortcut for confirmation screens
func renderShortcutSummary(sc models.ShortcutView, width int) string {
	var b strings.Builder
	b.WriteString(fieldLabelStyle.Render("Name"))
	b.WriteString(" " + format.Truncate(sc.Name, width-8) + "\n")
	b.WriteString(fieldLabelStyle.Render("URL"))
	b.WriteString(" " + format.Truncate(sc.URL, width-8) + "\n")
	return b.String()
}

// Status kinds for the one-line result of the last action
const (
	statusOK = iota
	statusWarning
	statusError
)

func renderStatus(status string, kind int) string {
	switch {
	case status == "":
		return ""
	case kind == statusError:
		return renderError(status)
	case kind == statusWarning:
		return renderWarning(status)
	}
	return renderSuccess(status)
}

// newInput returns a text input with a steady cursor
func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 50
	in.Cursor.SetMode(cursor.CursorStatic)
	return in
}

// handleListNavigation handles common navigation keys for list views (up/down/j/k)
// Returns the new selected index and whether navigation occurred
func handleListNavigation(key string, selected int, total int) (newSelected int, handled bool) {
	switch key {
	case "up", "k":
		if selected > 0 {
			return selected - 1, true
		}
		return selected, true
	case "down", "j":
		if selected < total-1 {
			return selected + 1, true
		}
		return selected, true
	}
	return selected, false
}

// clampSelection keeps selected inside a list of n items
func clampSelection(selected, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(selected, 0), n-1)
}
