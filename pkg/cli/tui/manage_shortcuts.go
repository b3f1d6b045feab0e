package tui

import (
	"fmt"
	"strings"

	"newtab-go/pkg/cli/client"
	"newtab-go/pkg/cli/logger"
	"newtab-go/pkg/cli/tui/manageshortcuts"
	"newtab-go/pkg/models"
	"newtab-go/pkg/shortcuts"
	"newtab-go/pkg/utils"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// manageShortcutsModel lists the profile's shortcuts and edits, creates,
// deletes and resets them in a single flow.
type manageShortcutsModel struct {
	client ShortcutClient

	list     *models.ShortcutList
	selected int
	step     int
	err      error
	ready    bool

	// last action result
	status     string
	statusKind int

	// edit form; leaving a field commits both values
	nameInput textinput.Model
	urlInput  textinput.Model
	field     int

	// delete/reset confirmation
	confirm textinput.Model

	width int
}

func newManageShortcutsModel(c ShortcutClient) *manageShortcutsModel {
	confirm := newInput("y/N", 3)
	confirm.Width = 10

	return &manageShortcutsModel{
		client:    c,
		step:      manageshortcuts.StepList,
		nameInput: newInput("Name", 200),
		urlInput:  newInput("example.com", 2048),
		confirm:   confirm,
	}
}

// NewManageShortcutsModel creates the manage shortcuts flow wrapped in a
// scrolling viewport.
func NewManageShortcutsModel(c ShortcutClient) tea.Model {
	return NewViewportWrapper(newManageShortcutsModel(c), ViewportConfig{
		Title:       "Shortcuts",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: ManageShortcutsHelpContent,
		MinWidth:    40,
		MinHeight:   10,
	})
}

func (m *manageShortcutsModel) Init() tea.Cmd {
	return m.loadShortcuts()
}

// CapturingInput implements inputCapturer: text fields get every key.
func (m *manageShortcutsModel) CapturingInput() bool {
	return m.step != manageshortcuts.StepList
}

// SelectedLine implements selectable for viewport scrolling.
func (m *manageShortcutsModel) SelectedLine() int {
	if m.step != manageshortcuts.StepList || m.list == nil {
		return -1
	}
	// subtitle and blank line, then two lines per shortcut
	return 2 + m.selected*2
}

func (m *manageShortcutsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case manageshortcuts.ShortcutsLoadedMsg:
		m.ready = true
		if msg.Err != nil {
			logger.LogError(msg.Err, "load shortcuts")
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.list = msg.List
		m.selected = clampSelection(m.selected, len(m.list.Shortcuts))
		return m, nil

	case manageshortcuts.CreatedMsg:
		if msg.Err != nil {
			m.setActionError(msg.Err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Created shortcut %d", msg.Shortcut.Index))
		m.selected = msg.Shortcut.Index
		return m, m.loadShortcuts()

	case manageshortcuts.CommittedMsg:
		if msg.Err != nil {
			m.setActionError(msg.Err)
			return m, nil
		}
		m.replace(*msg.Shortcut)
		m.setStatus(fmt.Sprintf("Saved %s", msg.Shortcut.Name))
		if msg.Leave {
			m.step = manageshortcuts.StepList
		}
		return m, nil

	case manageshortcuts.DeletedMsg:
		m.step = manageshortcuts.StepList
		if msg.Err != nil {
			m.setActionError(msg.Err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Deleted shortcut %d", msg.Index))
		return m, m.loadShortcuts()

	case manageshortcuts.ResetMsg:
		m.step = manageshortcuts.StepList
		if msg.Err != nil {
			m.setActionError(msg.Err)
			return m, nil
		}
		m.list = msg.List
		m.selected = 0
		m.setStatus("Restored default shortcuts")
		return m, nil

	case tea.KeyMsg:
		if !m.ready || m.err != nil {
			return m, nil
		}
		switch m.step {
		case manageshortcuts.StepList:
			return m.handleListKeys(msg)
		case manageshortcuts.StepEdit:
			return m.handleEditKeys(msg)
		case manageshortcuts.StepDeleteConfirm, manageshortcuts.StepResetConfirm:
			return m.handleConfirmKeys(msg)
		}
	}

	return m, nil
}

func (m *manageShortcutsModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	total := len(m.list.Shortcuts)
	if newSelected, handled := handleListNavigation(msg.String(), m.selected, total); handled {
		m.selected = newSelected
		return m, nil
	}

	switch msg.String() {
	case "enter", "e":
		if total == 0 {
			return m, nil
		}
		sc := m.list.Shortcuts[m.selected]
		m.nameInput.SetValue(sc.Name)
		m.urlInput.SetValue(sc.URL)
		m.focusField(manageshortcuts.FieldName)
		m.status = ""
		m.step = manageshortcuts.StepEdit
		return m, nil

	case "n":
		if !m.list.CanCreate {
			m.setWarning("Maximum number of shortcuts reached")
			return m, nil
		}
		return m, m.createShortcut()

	case "d":
		if !m.list.CanDelete {
			m.setWarning("At least one shortcut must remain")
			return m, nil
		}
		m.beginConfirm(manageshortcuts.StepDeleteConfirm)
		return m, nil

	case "r":
		m.beginConfirm(manageshortcuts.StepResetConfirm)
		return m, nil
	}
	return m, nil
}

func (m *manageShortcutsModel) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		// leaving a field commits, like blur on the page
		cmd := m.commit(false)
		if cmd == nil {
			return m, nil
		}
		m.focusField(1 - m.field)
		return m, cmd
	case "enter", "esc":
		return m, m.commit(true)
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	if m.field == manageshortcuts.FieldName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

func (m *manageShortcutsModel) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = manageshortcuts.StepList
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		answer := strings.ToLower(strings.TrimSpace(m.confirm.Value()))
		if answer != "y" && answer != "yes" {
			m.step = manageshortcuts.StepList
			return m, nil
		}
		if m.step == manageshortcuts.StepResetConfirm {
			return m, m.resetShortcuts()
		}
		return m, m.deleteShortcut(m.selected)
	}

	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	return m, cmd
}

func (m *manageShortcutsModel) beginConfirm(step int) {
	m.confirm.SetValue("")
	m.confirm.Focus()
	m.status = ""
	m.step = step
}

func (m *manageShortcutsModel) focusField(field int) {
	m.field = field
	if field == manageshortcuts.FieldName {
		m.urlInput.Blur()
		m.nameInput.Focus()
		return
	}
	m.nameInput.Blur()
	m.urlInput.Focus()
}

// commit validates the edit form and returns the command saving it, or nil
// (with an inline error) when the URL is invalid.
func (m *manageShortcutsModel) commit(leave bool) tea.Cmd {
	if _, err := utils.ValidateURL(m.urlInput.Value()); err != nil {
		m.status, m.statusKind = err.Error(), statusError
		return nil
	}

	index := m.list.Shortcuts[m.selected].Index
	update := models.ShortcutUpdate{
		Name: m.nameInput.Value(),
		URL:  m.urlInput.Value(),
	}
	return func() tea.Msg {
		sc, err := m.client.UpdateShortcut(index, update)
		return manageshortcuts.CommittedMsg{Shortcut: sc, Leave: leave, Err: err}
	}
}

// replace swaps in a re-rendered shortcut, leaving the rest of the list
func (m *manageShortcutsModel) replace(sc models.ShortcutView) {
	if m.list == nil || sc.Index < 0 || sc.Index >= len(m.list.Shortcuts) {
		return
	}
	m.list.Shortcuts[sc.Index] = sc
}

func (m *manageShortcutsModel) setStatus(status string) {
	m.status, m.statusKind = status, statusOK
}

func (m *manageShortcutsModel) setWarning(status string) {
	m.status, m.statusKind = status, statusWarning
}

// setActionError keeps the list usable; a limit conflict means nothing
// changed and is only a warning.
func (m *manageShortcutsModel) setActionError(err error) {
	logger.LogError(err, "shortcut action")
	if client.IsConflict(err) {
		m.setWarning(err.Error())
		return
	}
	m.status, m.statusKind = err.Error(), statusError
}

func (m *manageShortcutsModel) loadShortcuts() tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.ListShortcuts()
		return manageshortcuts.ShortcutsLoadedMsg{List: list, Err: err}
	}
}

func (m *manageShortcutsModel) createShortcut() tea.Cmd {
	return func() tea.Msg {
		sc, err := m.client.CreateShortcut()
		return manageshortcuts.CreatedMsg{Shortcut: sc, Err: err}
	}
}

func (m *manageShortcutsModel) deleteShortcut(index int) tea.Cmd {
	return func() tea.Msg {
		err := m.client.DeleteShortcut(index)
		return manageshortcuts.DeletedMsg{Index: index, Err: err}
	}
}

func (m *manageShortcutsModel) resetShortcuts() tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.ResetShortcuts()
		return manageshortcuts.ResetMsg{List: list, Err: err}
	}
}

func (m *manageShortcutsModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading shortcuts...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}

	var s string
	switch m.step {
	case manageshortcuts.StepList:
		s = m.renderList()
	case manageshortcuts.StepEdit:
		s = m.renderEdit()
	case manageshortcuts.StepDeleteConfirm:
		s = m.renderConfirm("Delete shortcut", "Delete this shortcut? Later shortcuts move up.")
	case manageshortcuts.StepResetConfirm:
		s = m.renderConfirm("Reset shortcuts", "Replace every shortcut with the defaults?")
	}

	if status := renderStatus(m.status, m.statusKind); status != "" {
		s += "\n" + status + "\n"
	}
	return s
}

func (m *manageShortcutsModel) getMaxWidth() int {
	if m.width > 0 {
		return m.width
	}
	return manageshortcuts.DefaultWidth
}

func (m *manageShortcutsModel) renderList() string {
	var b strings.Builder
	b.WriteString(boldStyle.Render(fmt.Sprintf("%d of %d shortcuts", m.list.Amount, shortcuts.MaxShortcutsAllowed)) + "\n\n")
	b.WriteString(renderShortcutList(m.list.Shortcuts, m.selected, m.getMaxWidth()))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("(Enter edit • n new • d delete • r reset • ↑/↓ navigate)") + "\n")
	return b.String()
}

func (m *manageShortcutsModel) renderEdit() string {
	sc := m.list.Shortcuts[m.selected]

	var b strings.Builder
	b.WriteString(renderTitle(fmt.Sprintf("Edit shortcut %d", sc.Index)))
	b.WriteString(renderDivider(min(m.getMaxWidth(), 60)))
	b.WriteString("\n\n")
	b.WriteString(fieldLabelStyle.Render("Name") + " " + m.nameInput.View() + "\n")
	b.WriteString(fieldLabelStyle.Render("URL") + " " + m.urlInput.View() + "\n\n")
	b.WriteString(mutedStyle.Render("Icon: "+sc.Icon.Kind) + "\n\n")
	b.WriteString(hintStyle.Render("(Tab switch field and save • Enter/Esc save and go back)") + "\n")
	return b.String()
}

func (m *manageShortcutsModel) renderConfirm(title, question string) string {
	var b strings.Builder
	b.WriteString(renderTitle(title))
	b.WriteString(renderWarning(question) + "\n\n")
	if m.step == manageshortcuts.StepDeleteConfirm {
		b.WriteString(renderShortcutSummary(m.list.Shortcuts[m.selected], m.getMaxWidth()))
		b.WriteString("\n")
	}
	b.WriteString(boldStyle.Render("Confirm (y/N):"))
	b.WriteString(" ")
	b.WriteString(m.confirm.View())
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("(Press Enter to confirm, Esc to cancel)") + "\n")
	return b.String()
}
