package shortcuts

import (
	"embed"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/afero"
)

//go:embed icons/*.svg
var presetIcons embed.FS

// Preset is one of the shortcuts seeded on first use.
type Preset struct {
	Name string `yaml:"name"`
	// URL is stored without a scheme; it doubles as the icon lookup key.
	URL  string `yaml:"url"`
	Icon string `yaml:"icon,omitempty"`
}

var defaultPresets = []Preset{
	{Name: "Youtube", URL: "youtube.com"},
	{Name: "Gmail", URL: "mail.google.com"},
	{Name: "Telegram", URL: "web.telegram.org"},
	{Name: "WhatsApp", URL: "web.whatsapp.com"},
	{Name: "Instagram", URL: "instagram.com"},
	{Name: "Twitter", URL: "x.com"},
}

// DefaultPresets returns the built-in preset table with embedded icons.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	for i, p := range defaultPresets {
		svg, err := presetIcons.ReadFile("icons/" + p.URL + ".svg")
		if err == nil {
			p.Icon = strings.TrimSpace(string(svg))
		}
		out[i] = p
	}
	return out
}

// PresetIcons maps each preset's scheme-less URL to its SVG markup.
func PresetIcons(presets []Preset) map[string]string {
	icons := make(map[string]string, len(presets))
	for _, p := range presets {
		if p.Icon != "" {
			icons[StripScheme(p.URL)] = p.Icon
		}
	}
	return icons
}

// LoadPresetsFile reads a YAML list of presets. An empty path returns the
// built-in table. Presets without an icon borrow the built-in icon for the
// same URL when one exists.
func LoadPresetsFile(fs afero.Fs, path string) ([]Preset, error) {
	if path == "" {
		return DefaultPresets(), nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}
	if len(presets) < MinShortcutsAllowed || len(presets) > MaxShortcutsAllowed {
		return nil, fmt.Errorf("presets file must define between %d and %d shortcuts, got %d",
			MinShortcutsAllowed, MaxShortcutsAllowed, len(presets))
	}

	builtin := PresetIcons(DefaultPresets())
	for i := range presets {
		presets[i].Name = strings.TrimSpace(presets[i].Name)
		presets[i].URL = StripScheme(strings.TrimSpace(presets[i].URL))
		if presets[i].Name == "" || presets[i].URL == "" {
			return nil, fmt.Errorf("preset %d: name and url are required", i)
		}
		if presets[i].Icon == "" {
			presets[i].Icon = builtin[presets[i].URL]
		}
	}
	return presets, nil
}
