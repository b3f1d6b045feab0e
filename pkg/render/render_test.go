package render

import (
	"testing"

	"newtab-go/pkg/icons"
	"newtab-go/pkg/models"
	"newtab-go/pkg/shortcuts"
)

func newRenderer() *Renderer {
	return New(icons.NewResolver(shortcuts.DefaultPresets(), icons.Options{}))
}

func TestBuildMirrorsBothPresentations(t *testing.T) {
	list := []shortcuts.Shortcut{
		{Index: 0, Name: "Youtube", URL: "https://youtube.com"},
		{Index: 1, Name: "Go", URL: "go.dev"},
	}
	v := newRenderer().Build(list, models.Preferences{ShowShortcuts: true})

	if len(v.Entries) != 2 || len(v.Tiles) != 2 {
		t.Fatalf("got %d entries, %d tiles", len(v.Entries), len(v.Tiles))
	}
	for i := range list {
		if v.Entries[i].Index != i || v.Tiles[i].Index != i {
			t.Fatalf("position %d out of sync: %+v %+v", i, v.Entries[i], v.Tiles[i])
		}
	}
	if v.Tiles[0].Icon.Kind != icons.KindPreset {
		t.Fatalf("tile 0 icon = %+v", v.Tiles[0].Icon)
	}
	if v.Tiles[1].Href != "https://go.dev" || v.Tiles[1].Icon.Kind != icons.KindRemote {
		t.Fatalf("tile 1 = %+v", v.Tiles[1])
	}
	if v.Entries[1].URL != "go.dev" {
		t.Fatalf("settings entry should keep the stored value, got %q", v.Entries[1].URL)
	}
	if !v.Controls.CanCreate || !v.Controls.CanDelete {
		t.Fatalf("controls = %+v", v.Controls)
	}
}

func TestBuildDisablesDeleteAtMinimum(t *testing.T) {
	v := newRenderer().Build([]shortcuts.Shortcut{{Index: 0, Name: "Only", URL: "only.example"}}, models.Preferences{})

	if v.Controls.CanDelete || !v.Entries[0].DeleteDisabled {
		t.Fatalf("delete must be disabled at the minimum: %+v", v)
	}
}

func TestListResponse(t *testing.T) {
	v := newRenderer().Build([]shortcuts.Shortcut{
		{Index: 0, Name: "Hub", URL: "github.com"},
	}, models.Preferences{})

	out := v.List()
	if out.Amount != 1 || out.CanDelete || !out.CanCreate {
		t.Fatalf("list = %+v", out)
	}
	sv := out.Shortcuts[0]
	if sv.Href != "https://github.com" || sv.URL != "github.com" || sv.Icon.Kind != "bundled" || sv.Icon.Src != icons.GitHubIconPath {
		t.Fatalf("shortcut view = %+v", sv)
	}
}
