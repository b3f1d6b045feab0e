package tui

import (
	"net/http"
	"strings"
	"testing"

	"newtab-go/pkg/cli/client"
	"newtab-go/pkg/cli/tui/manageshortcuts"
	"newtab-go/pkg/models"
	"newtab-go/pkg/shortcuts"

	tea "github.com/charmbracelet/bubbletea"
)

type fakeClient struct {
	items     []models.ShortcutView
	prefs     models.Preferences
	deleteErr error
	updates   int
}

func newFakeClient(names ...string) *fakeClient {
	fc := &fakeClient{prefs: models.Preferences{ShowShortcuts: true}}
	for _, n := range names {
		fc.items = append(fc.items, models.ShortcutView{Name: n, URL: "https://" + strings.ToLower(n) + ".com"})
	}
	fc.reindex()
	return fc
}

func (f *fakeClient) reindex() {
	for i := range f.items {
		f.items[i].Index = i
	}
}

func (f *fakeClient) snapshot() *models.ShortcutList {
	items := append([]models.ShortcutView(nil), f.items...)
	return &models.ShortcutList{
		Amount:    len(items),
		CanCreate: len(items) < shortcuts.MaxShortcutsAllowed,
		CanDelete: len(items) > shortcuts.MinShortcutsAllowed,
		Shortcuts: items,
	}
}

func (f *fakeClient) ListShortcuts() (*models.ShortcutList, error) {
	return f.snapshot(), nil
}

func (f *fakeClient) CreateShortcut() (*models.ShortcutView, error) {
	f.items = append(f.items, models.ShortcutView{Name: shortcuts.PlaceholderName})
	f.reindex()
	sc := f.items[len(f.items)-1]
	return &sc, nil
}

func (f *fakeClient) UpdateShortcut(index int, update models.ShortcutUpdate) (*models.ShortcutView, error) {
	f.updates++
	f.items[index].Name = update.Name
	f.items[index].URL = update.URL
	sc := f.items[index]
	return &sc, nil
}

func (f *fakeClient) DeleteShortcut(index int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.items = append(f.items[:index], f.items[index+1:]...)
	f.reindex()
	return nil
}

func (f *fakeClient) ResetShortcuts() (*models.ShortcutList, error) {
	f.items = newFakeClient("Youtube", "Gmail").items
	return f.snapshot(), nil
}

func (f *fakeClient) GetPreferences() (*models.Preferences, error) {
	p := f.prefs
	return &p, nil
}

func (f *fakeClient) UpdatePreferences(update models.PreferencesUpdate) (*models.Preferences, error) {
	if update.ShowShortcuts != nil {
		f.prefs.ShowShortcuts = *update.ShowShortcuts
	}
	if update.AdaptiveIcons != nil {
		f.prefs.AdaptiveIcons = *update.AdaptiveIcons
	}
	return f.GetPreferences()
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and feeds its message back into m
func run(t *testing.T, m tea.Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := m.Update(cmd())
	return next
}

func loadedModel(t *testing.T, fc *fakeClient) *manageShortcutsModel {
	t.Helper()
	m := newManageShortcutsModel(fc)
	run(t, m, m.Init())
	if !m.ready || m.err != nil {
		t.Fatalf("model not loaded: ready=%v err=%v", m.ready, m.err)
	}
	return m
}

func TestManageShortcutsLoadAndNavigate(t *testing.T) {
	m := loadedModel(t, newFakeClient("Youtube", "Gmail", "Amazon"))

	m.Update(key("down"))
	m.Update(key("j"))
	m.Update(key("j"))
	if m.selected != 2 {
		t.Fatalf("selected = %d", m.selected)
	}
	m.Update(key("k"))
	if m.selected != 1 {
		t.Fatalf("selected = %d", m.selected)
	}
	if !strings.Contains(m.View(), "3 of 50 shortcuts") {
		t.Fatalf("view:\n%s", m.View())
	}
	if m.SelectedLine() != 4 {
		t.Fatalf("selected line = %d", m.SelectedLine())
	}
}

func TestManageShortcutsCreate(t *testing.T) {
	fc := newFakeClient("Youtube")
	m := loadedModel(t, fc)

	_, cmd := m.Update(key("n"))
	run(t, m, run(t, m, cmd))
	if len(m.list.Shortcuts) != 2 || m.selected != 1 {
		t.Fatalf("list = %+v, selected %d", m.list.Shortcuts, m.selected)
	}

	m.list.CanCreate = false
	_, cmd = m.Update(key("n"))
	if cmd != nil || m.statusKind != statusWarning {
		t.Fatalf("create at max: cmd=%v status=%q", cmd != nil, m.status)
	}
}

func TestManageShortcutsEditCommitsOnFieldChange(t *testing.T) {
	fc := newFakeClient("Youtube", "Gmail")
	m := loadedModel(t, fc)

	m.Update(key("enter"))
	if m.step != manageshortcuts.StepEdit || !m.CapturingInput() {
		t.Fatalf("step = %d", m.step)
	}
	m.nameInput.SetValue("Go")
	m.urlInput.SetValue("go.dev")

	_, cmd := m.Update(key("tab"))
	if m.field != manageshortcuts.FieldURL {
		t.Fatalf("field = %d", m.field)
	}
	run(t, m, cmd)
	if m.step != manageshortcuts.StepEdit {
		t.Fatal("tab should keep the form open")
	}
	if got := m.list.Shortcuts[0]; got.Name != "Go" || got.URL != "go.dev" {
		t.Fatalf("shortcut = %+v", got)
	}

	_, cmd = m.Update(key("esc"))
	run(t, m, cmd)
	if m.step != manageshortcuts.StepList || fc.updates != 2 {
		t.Fatalf("step %d, updates %d", m.step, fc.updates)
	}
}

func TestManageShortcutsRejectsInvalidURL(t *testing.T) {
	fc := newFakeClient("Youtube")
	m := loadedModel(t, fc)

	m.Update(key("e"))
	m.urlInput.SetValue("not a url")
	_, cmd := m.Update(key("tab"))
	if cmd != nil || m.statusKind != statusError {
		t.Fatalf("expected inline error, got cmd=%v status=%q", cmd != nil, m.status)
	}
	if m.field != manageshortcuts.FieldName || fc.updates != 0 {
		t.Fatalf("field %d, updates %d", m.field, fc.updates)
	}
}

func TestManageShortcutsDeleteConfirm(t *testing.T) {
	fc := newFakeClient("Youtube", "Gmail")
	m := loadedModel(t, fc)

	m.Update(key("d"))
	if m.step != manageshortcuts.StepDeleteConfirm {
		t.Fatalf("step = %d", m.step)
	}
	m.Update(key("y"))
	_, cmd := m.Update(key("enter"))
	run(t, m, run(t, m, cmd))

	if m.step != manageshortcuts.StepList || len(m.list.Shortcuts) != 1 || m.list.Shortcuts[0].Name != "Gmail" {
		t.Fatalf("after delete: step %d list %+v", m.step, m.list.Shortcuts)
	}

	// last shortcut cannot be deleted
	m.Update(key("d"))
	if m.step != manageshortcuts.StepList || m.statusKind != statusWarning {
		t.Fatalf("step %d status %q", m.step, m.status)
	}
}

func TestManageShortcutsConflictIsWarning(t *testing.T) {
	fc := newFakeClient("Youtube", "Gmail")
	fc.deleteErr = &client.APIError{StatusCode: http.StatusConflict, Message: "cannot have fewer than 1 shortcut"}
	m := loadedModel(t, fc)

	m.Update(key("d"))
	m.Update(key("y"))
	_, cmd := m.Update(key("enter"))
	run(t, m, cmd)
	if m.statusKind != statusWarning || m.err != nil {
		t.Fatalf("status %q kind %d err %v", m.status, m.statusKind, m.err)
	}

	fc.deleteErr = &client.APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}
	m.Update(key("d"))
	m.Update(key("y"))
	_, cmd = m.Update(key("enter"))
	run(t, m, cmd)
	if m.statusKind != statusError || m.err != nil {
		t.Fatalf("status %q kind %d err %v", m.status, m.statusKind, m.err)
	}
}

func TestManageShortcutsResetConfirm(t *testing.T) {
	fc := newFakeClient("A", "B", "C")
	m := loadedModel(t, fc)

	m.Update(key("r"))
	m.Update(key("n"))
	_, cmd := m.Update(key("enter"))
	if cmd != nil || m.step != manageshortcuts.StepList || len(fc.items) != 3 {
		t.Fatal("declined reset should change nothing")
	}

	m.Update(key("r"))
	m.Update(key("y"))
	_, cmd = m.Update(key("enter"))
	run(t, m, cmd)
	if len(m.list.Shortcuts) != 2 || m.list.Shortcuts[0].Name != "Youtube" {
		t.Fatalf("after reset: %+v", m.list.Shortcuts)
	}
}

func TestPreferencesToggle(t *testing.T) {
	fc := newFakeClient("Youtube")
	m := newPreferencesModel(fc)
	run(t, m, m.Init())

	m.Update(key("down"))
	_, cmd := m.Update(key(" "))
	run(t, m, cmd)
	if !fc.prefs.AdaptiveIcons || !m.prefs.AdaptiveIcons || !fc.prefs.ShowShortcuts {
		t.Fatalf("prefs = %+v", fc.prefs)
	}
	if !strings.Contains(m.View(), "[x] ") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestWrapperPassesKeysWhileEditing(t *testing.T) {
	fc := newFakeClient("Youtube")
	m := loadedModel(t, fc)
	w := NewViewportWrapper(m, ViewportConfig{EnableMenu: true, EnableHelp: true})

	m.Update(key("e"))
	m.nameInput.SetValue("")
	for _, k := range []string{"q", "m", "?"} {
		_, cmd := w.Update(key(k))
		if isQuit(cmd) || w.showHelp {
			t.Fatalf("key %q was intercepted", k)
		}
	}
	if m.nameInput.Value() != "qm?" {
		t.Fatalf("name = %q", m.nameInput.Value())
	}

	w.Update(key("esc"))
	m.step = manageshortcuts.StepList
	_, cmd := w.Update(key("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit from the list")
	}
}

func TestRootMenuNavigation(t *testing.T) {
	fc := newFakeClient("Youtube")
	root := NewRootModel(fc).(*rootModel)

	root.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	_, cmd := root.Update(key("2"))
	if !root.IsDelegating() || cmd == nil {
		t.Fatal("expected preferences flow")
	}
	root.Update(cmd())

	_, cmd = root.Update(key("m"))
	if cmd == nil {
		t.Fatal("expected menu command")
	}
	msg := cmd()
	if _, ok := msg.(MenuNavigationMsg); !ok {
		t.Fatalf("msg = %T", msg)
	}
	root.Update(msg)
	if root.IsDelegating() {
		t.Fatal("root should be back at the menu")
	}
	if !strings.Contains(root.View(), "Manage shortcuts") {
		t.Fatalf("view:\n%s", root.View())
	}
}

func TestRootMenuHelp(t *testing.T) {
	root := NewRootModel(newFakeClient("Youtube"))

	root.Update(key("?"))
	if !strings.Contains(root.View(), "Select menu option") {
		t.Fatalf("view:\n%s", root.View())
	}
	_, cmd := root.Update(key("q"))
	if !isQuit(cmd) {
		t.Fatal("q should quit from the menu")
	}
}
