package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// MenuNavigationMsg asks the root model to leave the current flow and show
// the main menu again.
type MenuNavigationMsg struct{}

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	client ShortcutClient

	// Current active flow (when nil, we are in the main menu)
	current tea.Model

	// last window size, replayed to flows started later
	size *tea.WindowSizeMsg

	showHelp bool
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(c ShortcutClient) tea.Model {
	return &rootModel{client: c}
}

func (m *rootModel) Init() tea.Cmd {
	return nil
}

// IsDelegating reports whether a flow is active
func (m *rootModel) IsDelegating() bool {
	return m.current != nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNavigationMsg:
		m.current = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.size = &msg
	}

	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "1":
			return m.start(NewManageShortcutsModel(m.client))
		case "2":
			return m.start(NewPreferencesModel(m.client))
		}
	}

	return m, nil
}

func (m *rootModel) start(flow tea.Model) (tea.Model, tea.Cmd) {
	m.current = flow
	cmd := flow.Init()
	if m.size != nil {
		var sizeCmd tea.Cmd
		m.current, sizeCmd = m.current.Update(*m.size)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return m, cmd
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderTitle("New Tab"))
	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + accentStyle.Render("1)") + " Manage shortcuts (edit, add, delete, reset)\n")
	b.WriteString("  " + accentStyle.Render("2)") + " Preferences\n")
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(RootMenuHelpContent() + "\n")
	}
	b.WriteString(hintStyle.Render("Press the number of an option, '?' for help, or 'q' / Esc to quit.") + "\n")

	return b.String()
}
