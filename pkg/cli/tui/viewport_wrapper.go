package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"newtab-go/pkg/cli/logger"
	"newtab-go/pkg/cli/tui/manageshortcuts"
)

// inputCapturer is implemented by models that own the keyboard while a text
// field is focused. The wrapper forwards every key except ctrl+c to them.
type inputCapturer interface {
	CapturingInput() bool
}

// selectable is implemented by models that highlight one line of their
// content; the wrapper keeps that line inside the viewport.
type selectable interface {
	SelectedLine() int
}

// ViewportWrapper wraps a model with viewport and common command support
type ViewportWrapper struct {
	model    tea.Model
	viewport viewport.Model
	width    int
	height   int
	config   ViewportConfig

	showHelp    bool
	helpContent string
}

// ViewportConfig configures the wrapper behavior
type ViewportConfig struct {
	Title        string
	ShowHeader   bool
	ShowFooter   bool
	HeaderHeight int            // Fixed header height (0 = auto)
	FooterHeight int            // Fixed footer height (0 = auto)
	UseViewport  bool           // Enable scrolling (false = simple responsive)
	MinWidth     int            // Minimum terminal width
	MinHeight    int            // Minimum terminal height
	EnableHelp   bool           // Enable '?' for help
	EnableMenu   bool           // Enable 'm' to return to menu
	HelpContent  func() string  // Function to generate help text
	OnMenu       func() tea.Cmd // Callback for menu command
}

// NewViewportWrapper creates a new wrapper around a model
func NewViewportWrapper(model tea.Model, config ViewportConfig) *ViewportWrapper {
	return &ViewportWrapper{
		model:    model,
		viewport: viewport.New(0, 0),
		config:   config,
		width:    manageshortcuts.DefaultWidth,
		height:   24,
	}
}

func (w *ViewportWrapper) Init() tea.Cmd {
	if w.model == nil {
		return nil
	}
	return w.model.Init()
}

func (w *ViewportWrapper) capturing() bool {
	c, ok := w.model.(inputCapturer)
	return ok && c.CapturingInput()
}

func (w *ViewportWrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = max(msg.Width, w.config.MinWidth)
		w.height = max(msg.Height, w.config.MinHeight)
		w.calculateLayout()
		logger.Log("viewport resized: %dx%d (content %dx%d)", w.width, w.height, w.viewport.Width, w.viewport.Height)
		return w, w.forward(msg)

	case tea.KeyMsg:
		key := msg.String()
		if key == "ctrl+c" {
			return w, tea.Quit
		}

		if w.showHelp {
			switch key {
			case "?", "esc", "q":
				w.showHelp = false
			}
			return w, nil
		}

		if w.capturing() {
			return w, w.forward(msg)
		}

		switch key {
		case "?":
			if w.config.EnableHelp {
				w.showHelp = true
				if w.config.HelpContent != nil {
					w.helpContent = w.config.HelpContent()
				}
				return w, nil
			}
		case "m":
			if w.config.EnableMenu {
				if w.config.OnMenu != nil {
					return w, w.config.OnMenu()
				}
				return w, func() tea.Msg { return MenuNavigationMsg{} }
			}
		case "q", "esc":
			return w, tea.Quit
		case "pgup":
			if w.config.UseViewport {
				w.viewport.SetYOffset(w.viewport.YOffset - w.viewport.Height)
				return w, nil
			}
		case "pgdown":
			if w.config.UseViewport {
				w.viewport.SetYOffset(w.viewport.YOffset + w.viewport.Height)
				return w, nil
			}
		}
	}

	return w, w.forward(msg)
}

func (w *ViewportWrapper) forward(msg tea.Msg) tea.Cmd {
	if w.model == nil {
		return nil
	}
	var cmd tea.Cmd
	w.model, cmd = w.model.Update(msg)
	return cmd
}

func (w *ViewportWrapper) View() string {
	if w.showHelp {
		return w.renderHelpOverlay()
	}

	content := ""
	if w.model != nil {
		content = w.model.View()
		if w.isDelegatingToWrappedModel() {
			return content
		}
	}

	if w.config.UseViewport {
		w.calculateLayout()
		w.viewport.SetContent(content)
		w.followSelection()
		content = w.viewport.View()
	}

	var parts []string
	if w.config.ShowHeader {
		parts = append(parts, w.renderHeader())
	}
	parts = append(parts, content)
	if w.config.ShowFooter {
		parts = append(parts, w.renderFooter())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// followSelection scrolls just far enough to show the selected line
func (w *ViewportWrapper) followSelection() {
	s, ok := w.model.(selectable)
	if !ok {
		return
	}
	line := s.SelectedLine()
	switch {
	case line < 0:
	case line < w.viewport.YOffset:
		w.viewport.SetYOffset(line)
	case line >= w.viewport.YOffset+w.viewport.Height-1:
		w.viewport.SetYOffset(line - w.viewport.Height + 2)
	}
}

func (w *ViewportWrapper) calculateLayout() {
	headerH := w.config.HeaderHeight
	if headerH == 0 && w.config.ShowHeader {
		headerH = 3
	}
	footerH := w.config.FooterHeight
	if footerH == 0 && w.config.ShowFooter {
		footerH = 1
	}

	if w.width <= 0 {
		w.width = manageshortcuts.DefaultWidth
	}
	if w.height <= 0 {
		w.height = 24
	}
	w.viewport.Width = w.width
	w.viewport.Height = max(w.height-headerH-footerH, 1)
}

func (w *ViewportWrapper) renderHeader() string {
	var b strings.Builder

	if w.config.Title != "" {
		b.WriteString(renderTitle(w.config.Title))
	}

	switch {
	case w.config.EnableMenu && w.config.EnableHelp:
		b.WriteString(hintStyle.Render("Press 'm' for menu, '?' for help") + "\n")
	case w.config.EnableHelp:
		b.WriteString(hintStyle.Render("Press '?' for help") + "\n")
	case w.config.EnableMenu:
		b.WriteString(hintStyle.Render("Press 'm' for menu") + "\n")
	}

	return b.String()
}

func (w *ViewportWrapper) renderFooter() string {
	var keys []string
	if w.config.EnableHelp {
		keys = append(keys, "? help")
	}
	if w.config.EnableMenu {
		keys = append(keys, "m menu")
	}
	if w.config.UseViewport {
		keys = append(keys, "pgup/pgdn scroll")
	}
	keys = append(keys, "q quit")

	return hintStyle.Render(strings.Join(keys, " • "))
}

// isDelegatingToWrappedModel reports whether the wrapped model is the root
// shell with an active flow, which renders its own chrome.
func (w *ViewportWrapper) isDelegatingToWrappedModel() bool {
	if root, ok := w.model.(*rootModel); ok {
		return root.IsDelegating()
	}
	return false
}

func (w *ViewportWrapper) renderHelpOverlay() string {
	helpText := w.helpContent
	if helpText == "" {
		helpText = "No help available"
	}

	overlayStyle := lipgloss.NewStyle().
		Width(w.width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		helpText,
		"",
		hintStyle.Render("Press '?' or Esc to close"),
	))
}
