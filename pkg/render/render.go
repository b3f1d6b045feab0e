package render

import (
	"newtab-go/pkg/icons"
	"newtab-go/pkg/models"
	"newtab-go/pkg/shortcuts"
)

// SettingsEntry is the editable form of a shortcut in the settings panel.
type SettingsEntry struct {
	Index          int
	Name           string
	URL            string
	DeleteDisabled bool
}

// Tile is a clickable launcher tile on the page.
type Tile struct {
	Index int
	Name  string
	Href  string
	Icon  icons.Icon
}

// View holds both presentations of one shortcut list. Entries[i] and
// Tiles[i] always describe the shortcut with index i.
type View struct {
	Entries     []SettingsEntry
	Tiles       []Tile
	Controls    shortcuts.Controls
	Preferences models.Preferences
}

// Renderer turns shortcut records into page views.
type Renderer struct {
	resolver *icons.Resolver
}

// New creates a renderer using resolver for tile icons
func New(resolver *icons.Resolver) *Renderer {
	return &Renderer{resolver: resolver}
}

// Build renders the full view for list.
func (r *Renderer) Build(list []shortcuts.Shortcut, prefs models.Preferences) View {
	controls := shortcuts.ControlsFor(len(list))
	v := View{
		Entries:     make([]SettingsEntry, len(list)),
		Tiles:       make([]Tile, len(list)),
		Controls:    controls,
		Preferences: prefs,
	}
	for i, sc := range list {
		v.Entries[i] = SettingsEntry{
			Index:          sc.Index,
			Name:           sc.Name,
			URL:            sc.URL,
			DeleteDisabled: !controls.CanDelete,
		}
		v.Tiles[i] = r.Tile(sc)
	}
	return v
}

// Tile renders the launcher tile for a single shortcut
func (r *Renderer) Tile(sc shortcuts.Shortcut) Tile {
	return Tile{
		Index: sc.Index,
		Name:  sc.Name,
		Href:  shortcuts.NormalizeURL(sc.URL),
		Icon:  r.resolver.Resolve(sc.URL),
	}
}

// ShortcutView converts a tile to its JSON shape
func (t Tile) ShortcutView(url string) models.ShortcutView {
	return models.ShortcutView{
		Index: t.Index,
		Name:  t.Name,
		URL:   url,
		Href:  t.Href,
		Icon:  t.Icon.View(),
	}
}

// List converts the view to the API response.
func (v View) List() models.ShortcutList {
	out := models.ShortcutList{
		Amount:    len(v.Tiles),
		CanCreate: v.Controls.CanCreate,
		CanDelete: v.Controls.CanDelete,
		Shortcuts: make([]models.ShortcutView, len(v.Tiles)),
	}
	for i, t := range v.Tiles {
		out.Shortcuts[i] = t.ShortcutView(v.Entries[i].URL)
	}
	return out
}
