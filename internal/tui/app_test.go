package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"quicknotes/internal/config"
	"quicknotes/internal/notes"
	"quicknotes/internal/storage"
	"quicknotes/internal/tui/messages"
)

func newTestApp(t *testing.T, seed ...[2]string) (AppModel, *notes.Store) {
	t.Helper()
	clock := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	store := notes.NewStore(storage.NewMemorySlot(), notes.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	require.NoError(t, store.Load())
	for _, s := range seed {
		_, err := store.Create(s[0], s[1])
		require.NoError(t, err)
	}

	cfg := &config.Config{Backend: config.BackendMemory, Glamour: "notty"}
	m := NewAppModel(cfg, store)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel), store
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// press sends one key and drops any command it returns.
func press(m AppModel, keys ...string) AppModel {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(AppModel)
	}
	return m
}

// pressAndResolve sends a key whose command produces a result message, and
// feeds that message back in.
func pressAndResolve(t *testing.T, m AppModel, key string) AppModel {
	t.Helper()
	next, cmd := m.Update(keyMsg(key))
	m = next.(AppModel)
	require.NotNil(t, cmd, "expected a command from %q", key)
	next, _ = m.Update(cmd())
	return next.(AppModel)
}

func TestApp_WelcomeWhenEmpty(t *testing.T) {
	m, _ := newTestApp(t)

	view := m.View()
	require.Contains(t, view, "Welcome to Quick Notes")
	require.Contains(t, view, "kept in memory")
}

func TestApp_ListsNotes(t *testing.T) {
	m, _ := newTestApp(t, [2]string{"Groceries", "Milk, eggs"}, [2]string{"Call", "Mom at 5pm"})

	view := m.View()
	require.Contains(t, view, "Groceries")
	require.Contains(t, view, "Milk, eggs")
	require.Contains(t, view, "10/18/2026, 9:31:00 AM")
	require.Contains(t, view, "2 note(s)")
}

func TestApp_NavigationClamps(t *testing.T) {
	m, _ := newTestApp(t, [2]string{"a", "1"}, [2]string{"b", "2"})

	m = press(m, "k")
	require.Equal(t, 0, m.cursor)
	m = press(m, "j", "j", "j")
	require.Equal(t, 1, m.cursor)
	m = press(m, "g")
	require.Equal(t, 0, m.cursor)
	m = press(m, "G")
	require.Equal(t, 1, m.cursor)
}

func TestApp_CreateNote(t *testing.T) {
	m, store := newTestApp(t)

	m = press(m, "n")
	require.Equal(t, messages.ModeForm, m.mode)

	m = press(m, "Groceries", "tab", "Milk, eggs")
	m = pressAndResolve(t, m, "ctrl+s")

	require.Equal(t, messages.ModeList, m.mode)
	require.Equal(t, 1, store.Len())
	n, _ := store.Get(0)
	require.Equal(t, "Groceries", n.Title)
	require.Equal(t, "Milk, eggs", n.Content)
	require.Equal(t, "Note added", m.status)
}

func TestApp_CreateBlankShowsError(t *testing.T) {
	m, store := newTestApp(t)

	m = press(m, "n", "Title only")
	m = pressAndResolve(t, m, "ctrl+s")

	require.Equal(t, messages.ModeForm, m.mode)
	require.Equal(t, 0, store.Len())
	require.Contains(t, m.View(), "title and content are both required")
}

func TestApp_CancelKeepsDraft(t *testing.T) {
	m, store := newTestApp(t)

	m = press(m, "n", "Half", "tab", "done")
	m = pressAndResolve(t, m, "esc")
	require.Equal(t, messages.ModeList, m.mode)
	require.Equal(t, 0, store.Len())
	require.Equal(t, notes.Buffer{Title: "Half", Content: "done"}, store.Buffer())

	// Reopening the form brings the draft back
	m = press(m, "n")
	title, content := m.form.Values()
	require.Equal(t, "Half", title)
	require.Equal(t, "done", content)
}

func TestApp_EditNote(t *testing.T) {
	m, store := newTestApp(t, [2]string{"a", "1"}, [2]string{"b", "2"})
	original, _ := store.Get(1)

	m = press(m, "j", "e")
	require.Equal(t, messages.ModeForm, m.mode)
	idx, editing := store.Cursor()
	require.True(t, editing)
	require.Equal(t, 1, idx)

	m = press(m, "2", "tab", "!")
	m = pressAndResolve(t, m, "ctrl+s")

	require.Equal(t, messages.ModeList, m.mode)
	require.False(t, store.Editing())
	n, _ := store.Get(1)
	require.Equal(t, notes.Note{Title: "b2", Content: "2!", CreatedDate: original.CreatedDate}, n)
	require.Equal(t, "Note updated", m.status)
}

func TestApp_EditCancelClosesEdit(t *testing.T) {
	m, store := newTestApp(t, [2]string{"a", "1"})

	m = press(m, "enter", "changed")
	m = pressAndResolve(t, m, "esc")

	require.False(t, store.Editing())
	require.Equal(t, notes.Buffer{}, store.Buffer())
	n, _ := store.Get(0)
	require.Equal(t, "a", n.Title)
}

func TestApp_RemoveConfirmed(t *testing.T) {
	m, store := newTestApp(t, [2]string{"Groceries", "Milk"}, [2]string{"Call", "Mom"})

	m = press(m, "d")
	require.Equal(t, messages.ModeConfirm, m.mode)
	require.Contains(t, m.View(), "Are you sure you want to delete this note?")

	m = pressAndResolve(t, m, "y")
	require.Equal(t, messages.ModeList, m.mode)
	require.Equal(t, 1, store.Len())
	n, _ := store.Get(0)
	require.Equal(t, "Call", n.Title)
	require.Equal(t, "Note removed", m.status)
}

func TestApp_RemoveDeclined(t *testing.T) {
	m, store := newTestApp(t, [2]string{"Groceries", "Milk"})

	m = press(m, "x")
	m = pressAndResolve(t, m, "n")

	require.Equal(t, 1, store.Len())
	require.Equal(t, "Nothing removed", m.status)
	require.True(t, m.statusWarn)
}

func TestApp_RemoveDoubleYesRemovesOnce(t *testing.T) {
	m, store := newTestApp(t, [2]string{"A", "1"}, [2]string{"B", "2"}, [2]string{"C", "3"})

	m = press(m, "d")

	// Both keys arrive before the first answer is delivered
	next, first := m.Update(keyMsg("y"))
	m = next.(AppModel)
	next, second := m.Update(keyMsg("y"))
	m = next.(AppModel)
	require.NotNil(t, first)
	require.Nil(t, second, "dialog must answer only once")

	answer := first()
	next, _ = m.Update(answer)
	m = next.(AppModel)
	// A repeated delivery of the same answer is ignored
	next, _ = m.Update(answer)
	m = next.(AppModel)

	require.Equal(t, 2, store.Len())
	titles := []string{}
	for _, n := range store.Notes() {
		titles = append(titles, n.Title)
	}
	require.Equal(t, []string{"B", "C"}, titles)
}

func TestApp_StaleConfirmResultIgnored(t *testing.T) {
	m, store := newTestApp(t, [2]string{"A", "1"}, [2]string{"B", "2"})

	next, _ := m.Update(messages.ConfirmResultMsg{Index: 0, Confirmed: true})
	m = next.(AppModel)

	require.Equal(t, 2, store.Len())
	require.Equal(t, messages.ModeList, m.mode)
}

func TestApp_RemoveIgnoresOtherKeys(t *testing.T) {
	m, store := newTestApp(t, [2]string{"Groceries", "Milk"})

	m = press(m, "d", "q", "j")
	require.Equal(t, messages.ModeConfirm, m.mode)
	require.Equal(t, 1, store.Len())
}

func TestApp_RemoveLastShowsWelcome(t *testing.T) {
	m, _ := newTestApp(t, [2]string{"only", "note"})

	m = press(m, "d")
	m = pressAndResolve(t, m, "y")
	require.Contains(t, m.View(), "Welcome to Quick Notes")
	_, ok := m.selected()
	require.False(t, ok)
}

func TestApp_Search(t *testing.T) {
	m, _ := newTestApp(t,
		[2]string{"Groceries", "Milk, eggs"},
		[2]string{"Call", "Mom at 5pm"},
		[2]string{"Gym", "Leg day"},
	)

	m = press(m, "/")
	require.Equal(t, messages.ModeSearch, m.mode)
	m = press(m, "mom")
	require.Equal(t, []int{1}, m.visible)

	// Enter keeps the filter and returns to the list
	m = press(m, "enter")
	require.Equal(t, messages.ModeList, m.mode)
	require.Equal(t, "mom", m.query)
	idx, ok := m.selected()
	require.True(t, ok)
	require.Equal(t, 1, idx)

	// Esc in the list clears it
	m = press(m, "esc")
	require.Equal(t, []int{0, 1, 2}, m.visible)
}

func TestApp_SearchNoMatch(t *testing.T) {
	m, _ := newTestApp(t, [2]string{"Groceries", "Milk"})

	m = press(m, "/", "zzz", "enter")
	require.Empty(t, m.visible)
	require.Contains(t, m.View(), `No notes match "zzz"`)
	m = press(m, "d")
	require.Equal(t, messages.ModeList, m.mode)
}

func TestApp_RemoveWhileFilteredTargetsStoreIndex(t *testing.T) {
	m, store := newTestApp(t, [2]string{"Groceries", "Milk"}, [2]string{"Call", "Mom"})

	m = press(m, "/", "call", "enter", "d")
	m = pressAndResolve(t, m, "y")

	require.Equal(t, 1, store.Len())
	n, _ := store.Get(0)
	require.Equal(t, "Groceries", n.Title)
}

func TestApp_DetailPane(t *testing.T) {
	long := strings.Repeat("lorem ", 20) + "tailword"
	m, _ := newTestApp(t, [2]string{"Groceries", long})

	// The list preview is cut short
	require.NotContains(t, m.View(), "tailword")

	m = press(m, "v")
	require.True(t, m.showDetail)
	require.Contains(t, m.View(), "tailword")

	m = press(m, "v")
	require.False(t, m.showDetail)
}

func TestApp_HelpClosesOnAnyKey(t *testing.T) {
	m, _ := newTestApp(t)

	m = press(m, "?")
	require.Equal(t, messages.ModeHelp, m.mode)
	require.True(t, strings.Contains(m.View(), "Toggle detail pane"))

	m = press(m, "j")
	require.Equal(t, messages.ModeList, m.mode)
}

func TestApp_QuitKeys(t *testing.T) {
	m, _ := newTestApp(t)

	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	// q is text inside the form
	m = press(m, "n", "q")
	require.Equal(t, messages.ModeForm, m.mode)
	title, _ := m.form.Values()
	require.Equal(t, "q", title)
}
