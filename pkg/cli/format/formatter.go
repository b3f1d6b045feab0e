package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to at most width terminal cells, marking the cut with
// an ellipsis. Wide runes (CJK, emoji) count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// Pad right-pads s with spaces to width cells
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// DisplayURL drops the scheme for compact display
func DisplayURL(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	return strings.TrimSuffix(u, "/")
}
