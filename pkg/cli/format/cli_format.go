package format

import (
	"fmt"
	"os"
	"strings"

	"newtab-go/pkg/models"
)

const (
	nameWidth = 24
	urlWidth  = 48
)

// FormatTableOutput formats shortcuts as a table for CLI output
func FormatTableOutput(list *models.ShortcutList) string {
	if list == nil || len(list.Shortcuts) == 0 {
		return "No shortcuts found."
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("Your Shortcuts\n")
	b.WriteString("\n")

	// tabwriter counts bytes, so columns are padded by display width instead
	fmt.Fprintf(&b, "%-3s  %s  %s  %s\n", "#", Pad("Name", nameWidth), Pad("URL", urlWidth), "Icon")
	fmt.Fprintf(&b, "%s  %s  %s  %s\n",
		strings.Repeat("─", 3), strings.Repeat("─", nameWidth), strings.Repeat("─", urlWidth), strings.Repeat("─", 7))

	for _, sc := range list.Shortcuts {
		fmt.Fprintf(&b, "%-3d  %s  %s  %s\n",
			sc.Index,
			Pad(Truncate(sc.Name, nameWidth), nameWidth),
			Pad(Truncate(DisplayURL(sc.URL), urlWidth), urlWidth),
			sc.Icon.Kind,
		)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %d shortcut(s)", list.Amount)
	switch {
	case !list.CanCreate:
		b.WriteString(" (maximum reached)")
	case !list.CanDelete:
		b.WriteString(" (minimum reached)")
	}
	b.WriteString("\n")

	return b.String()
}

// FormatSuccessMessage formats the result of a create or update
func FormatSuccessMessage(action string, sc *models.ShortcutView) string {
	var b strings.Builder

	b.WriteString("\n")
	fmt.Fprintf(&b, "✓ Shortcut %s!\n", action)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Index: %d\n", sc.Index)
	fmt.Fprintf(&b, "  Name:  %s\n", sc.Name)
	fmt.Fprintf(&b, "  URL:   %s\n", sc.URL)
	b.WriteString("\n")

	return b.String()
}

// FormatErrorMessage formats an error message consistently
func FormatErrorMessage(err error) string {
	return fmt.Sprintf("❌ Error: %v\n", err)
}

// WriteToStdout writes formatted output to stdout
func WriteToStdout(content string) {
	fmt.Fprint(os.Stdout, content)
}

// WriteToStderr writes formatted output to stderr
func WriteToStderr(content string) {
	fmt.Fprint(os.Stderr, content)
}
