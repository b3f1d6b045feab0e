package tui

import (
	"strings"
	"testing"
)

func TestStatusRenderersKeepText(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{renderSuccess("Saved"), "✓ Saved"},
		{renderError("Shortcut not saved"), "❌ Shortcut not saved"},
		{renderWarning("Delete shortcut 3?"), "⚠ Delete shortcut 3?"},
		{renderDivider(4), "────"},
		{renderTitle("New Tab"), "New Tab"},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.got, tt.want) {
			t.Errorf("rendered %q, want it to contain %q", tt.got, tt.want)
		}
	}
}
