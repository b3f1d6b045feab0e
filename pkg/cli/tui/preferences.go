package tui

import (
	"fmt"
	"strings"

	"newtab-go/pkg/cli/logger"
	"newtab-go/pkg/cli/tui/manageshortcuts"
	"newtab-go/pkg/models"

	tea "github.com/charmbracelet/bubbletea"
)

type preferenceOption struct {
	label string
	help  string
	get   func(models.Preferences) bool
	set   func(*models.PreferencesUpdate, bool)
}

var preferenceOptions = []preferenceOption{
	{
		label: "Show shortcuts",
		help:  "Show the launcher grid on the new-tab page",
		get:   func(p models.Preferences) bool { return p.ShowShortcuts },
		set:   func(u *models.PreferencesUpdate, v bool) { u.ShowShortcuts = &v },
	},
	{
		label: "Adaptive icons",
		help:  "Draw icons smaller so they fit round tiles",
		get:   func(p models.Preferences) bool { return p.AdaptiveIcons },
		set:   func(u *models.PreferencesUpdate, v bool) { u.AdaptiveIcons = &v },
	},
}

// preferencesModel toggles the profile's display preferences; every toggle
// is saved immediately.
type preferencesModel struct {
	client   ShortcutClient
	prefs    models.Preferences
	selected int
	ready    bool
	err      error
	status   string
}

func newPreferencesModel(c ShortcutClient) *preferencesModel {
	return &preferencesModel{client: c}
}

// NewPreferencesModel creates the preferences flow
func NewPreferencesModel(c ShortcutClient) tea.Model {
	return NewViewportWrapper(newPreferencesModel(c), ViewportConfig{
		Title:       "Preferences",
		ShowHeader:  true,
		ShowFooter:  true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: PreferencesHelpContent,
	})
}

func (m *preferencesModel) Init() tea.Cmd {
	return func() tea.Msg {
		prefs, err := m.client.GetPreferences()
		return manageshortcuts.PreferencesLoadedMsg{Preferences: prefs, Err: err}
	}
}

func (m *preferencesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case manageshortcuts.PreferencesLoadedMsg:
		m.ready = true
		if msg.Err != nil {
			logger.LogError(msg.Err, "preferences")
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.prefs = *msg.Preferences
		return m, nil

	case tea.KeyMsg:
		if !m.ready || m.err != nil {
			return m, nil
		}
		if newSelected, handled := handleListNavigation(msg.String(), m.selected, len(preferenceOptions)); handled {
			m.selected = newSelected
			return m, nil
		}
		switch msg.String() {
		case " ", "enter":
			return m, m.toggle(m.selected)
		}
	}
	return m, nil
}

func (m *preferencesModel) toggle(i int) tea.Cmd {
	opt := preferenceOptions[i]
	var update models.PreferencesUpdate
	opt.set(&update, !opt.get(m.prefs))
	m.status = fmt.Sprintf("Saved %s", strings.ToLower(opt.label))

	return func() tea.Msg {
		prefs, err := m.client.UpdatePreferences(update)
		return manageshortcuts.PreferencesLoadedMsg{Preferences: prefs, Err: err}
	}
}

func (m *preferencesModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading preferences...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}

	var b strings.Builder
	for i, opt := range preferenceOptions {
		marker := " "
		label := opt.label
		if i == m.selected {
			marker = accentStyle.Render("→")
			label = accentStyle.Render(label)
		}
		box := "[ ]"
		if opt.get(m.prefs) {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, box, label))
		b.WriteString(fmt.Sprintf("      %s\n", mutedStyle.Render(opt.help)))
	}
	if m.status != "" {
		b.WriteString("\n" + renderSuccess(m.status) + "\n")
	}
	b.WriteString("\n" + hintStyle.Render("(Space/Enter toggle • ↑/↓ navigate)") + "\n")
	return b.String()
}
