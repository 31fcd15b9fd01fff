package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quicknotes/internal/config"
	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/shared"
	"quicknotes/internal/tui/theme"
)

// AppModel is the root model: the note list with its form, remove dialog,
// search box and detail pane.
type AppModel struct {
	cfg   *config.Config
	store *notes.Store

	mode    messages.Mode
	visible []int // store indices shown, in order
	cursor  int   // position in visible
	query   string
	search  textinput.Model

	form     *NoteFormModel
	modal    *ConfirmModal
	renderer *markdownRenderer

	showDetail bool
	status     string
	statusErr  bool
	statusWarn bool

	width  int
	height int
	ready  bool
}

// NewAppModel creates the root model over a loaded store.
func NewAppModel(cfg *config.Config, store *notes.Store) AppModel {
	si := textinput.New()
	si.Prompt = "/"
	si.Placeholder = "search notes"
	si.CharLimit = 128

	m := AppModel{
		cfg:      cfg,
		store:    store,
		search:   si,
		renderer: newMarkdownRenderer(cfg.Glamour),
	}
	m.refresh()
	return m
}

// Run starts the full-screen note UI and blocks until the user quits.
func Run(cfg *config.Config, store *notes.Store) error {
	p := tea.NewProgram(NewAppModel(cfg, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = msg.Width - 4
		if m.form != nil {
			m.form.SetWidth(m.formWidth())
		}
		return m, nil

	case messages.FormSubmitMsg:
		return m.submitForm(msg), nil

	case messages.FormCancelMsg:
		if m.form != nil && m.form.Editing() {
			m.store.CancelEdit()
		} else {
			// Keep the unsaved draft for the next "new note"
			m.store.SetBuffer(msg.Title, msg.Content)
		}
		m.form = nil
		m.mode = messages.ModeList
		return m, nil

	case messages.ConfirmResultMsg:
		// Only the open dialog's first answer counts
		if m.mode != messages.ModeConfirm || m.modal == nil || m.modal.Index != msg.Index {
			return m, nil
		}
		m.modal = nil
		m.mode = messages.ModeList
		removed, err := m.store.Remove(msg.Index, notes.Answer(msg.Confirmed))
		switch {
		case err != nil:
			m.setError(err)
		case removed:
			m.setStatus("Note removed")
		default:
			m.setWarning("Nothing removed")
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case messages.ModeForm:
			return m.updateForm(msg)
		case messages.ModeConfirm:
			return m, m.modal.Update(msg)
		case messages.ModeSearch:
			return m.updateSearch(msg)
		case messages.ModeHelp:
			m.mode = messages.ModeList
			return m, nil
		}
		return m.updateList(msg)
	}

	// Cursor blinks and other ticks belong to whichever input has focus
	var cmd tea.Cmd
	switch m.mode {
	case messages.ModeForm:
		if m.form != nil {
			m.form, cmd = m.form.Update(msg)
		}
	case messages.ModeSearch:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m AppModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}
	case "n":
		draft := m.store.Buffer()
		m.form = NewNoteForm(draft.Title, draft.Content, false, m.formWidth())
		m.mode = messages.ModeForm
		return m, m.form.Init()
	case "e", "enter":
		idx, ok := m.selected()
		if !ok {
			return m, nil
		}
		if err := m.store.BeginEdit(idx); err != nil {
			m.setError(err)
			return m, nil
		}
		buf := m.store.Buffer()
		m.form = NewNoteForm(buf.Title, buf.Content, true, m.formWidth())
		m.mode = messages.ModeForm
		return m, m.form.Init()
	case "d", "x":
		idx, ok := m.selected()
		if !ok {
			return m, nil
		}
		n, err := m.store.Get(idx)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.modal = NewConfirmModal(idx,
			"Are you sure you want to delete this note?",
			fmt.Sprintf("%q (%s)", n.Title, n.CreatedDate),
			m.formWidth())
		m.mode = messages.ModeConfirm
	case "/":
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		m.mode = messages.ModeSearch
		return m, m.search.Focus()
	case "esc":
		if m.query != "" {
			m.query = ""
			m.refresh()
		}
	case "v":
		m.showDetail = !m.showDetail
	case "?":
		m.mode = messages.ModeHelp
	}
	return m, nil
}

func (m AppModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.mode = messages.ModeList
		return m, nil
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.mode = messages.ModeList
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := m.search.Value(); q != m.query {
		m.query = q
		m.cursor = 0
		m.refresh()
	}
	return m, cmd
}

func (m AppModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.mode = messages.ModeList
		return m, nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m AppModel) submitForm(msg messages.FormSubmitMsg) AppModel {
	if m.form == nil {
		return m
	}
	editing := m.form.Editing()

	if err := m.store.Submit(msg.Title, msg.Content); err != nil {
		if errors.Is(err, notes.ErrEmptyField) {
			m.form.Error = "title and content are both required"
		} else {
			logs.Logger.Printf("Error saving note from form: %v", err)
			m.form.Error = err.Error()
		}
		return m
	}

	m.form = nil
	m.mode = messages.ModeList
	m.refresh()
	if editing {
		m.setStatus("Note updated")
	} else {
		m.setStatus("Note added")
		// Select the new note when it is visible
		last := m.store.Len() - 1
		for i, idx := range m.visible {
			if idx == last {
				m.cursor = i
			}
		}
	}
	return m
}

// refresh recomputes the visible indices from the store and the query.
func (m *AppModel) refresh() {
	m.visible = notes.Search(m.store.Notes(), m.query)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selected returns the store index under the cursor.
func (m AppModel) selected() (int, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return 0, false
	}
	return m.visible[m.cursor], true
}

func (m *AppModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
	m.statusWarn = false
}

func (m *AppModel) setWarning(s string) {
	m.setStatus(s)
	m.statusWarn = true
}

func (m *AppModel) setError(err error) {
	m.setStatus(err.Error())
	m.statusErr = true
}

func (m AppModel) formWidth() int {
	w := m.width * 2 / 3
	if w < 40 {
		w = 40
	}
	if w > 90 {
		w = 90
	}
	return w
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.mode {
	case messages.ModeHelp:
		return shared.RenderHelpPopup(helpSections, m.width, m.height)
	case messages.ModeForm:
		if m.form != nil {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
		}
	case messages.ModeConfirm:
		if m.modal != nil {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modal.View())
		}
	}

	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case m.store.Len() == 0:
		body = shared.CenterWithBottomHints(m.renderWelcome(), theme.HelpHint.Render(m.storageHint()), bodyHeight)
	case len(m.visible) == 0:
		body = shared.CenterContent(theme.Muted.Render("No notes match \""+m.query+"\""), bodyHeight)
	case m.showDetail:
		listWidth := m.width / 2
		list := m.renderList(listWidth, bodyHeight)
		idx, _ := m.selected()
		n, _ := m.store.Get(idx)
		detail := renderDetail(m.renderer, n, m.width-listWidth-2)
		body = lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
	default:
		body = m.renderList(m.width, bodyHeight)
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m AppModel) renderHeader() string {
	title := theme.Title.Render("Quick Notes")
	count := theme.Muted.Render(fmt.Sprintf("  %d note(s)", m.store.Len()))
	line := title + count
	if m.mode == messages.ModeSearch {
		line += "\n" + m.search.View()
	} else if m.query != "" {
		line += theme.Subtitle.Render("  filter: " + m.query)
	}
	return theme.Header.Width(m.width).Render(line)
}

func (m AppModel) renderWelcome() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Welcome to Quick Notes"),
		"",
		theme.Muted.Render("No notes yet. Press n to write your first one."),
	)
}

func (m AppModel) storageHint() string {
	switch m.cfg.Backend {
	case config.BackendMemory:
		return "Notes are kept in memory and lost on quit"
	case config.BackendBadger:
		return "Notes are saved to " + m.cfg.BadgerDir()
	}
	return "Notes are saved to " + m.cfg.DataDir
}

// renderList draws the visible notes, scrolled so the cursor stays on screen.
// Each note takes two lines.
func (m AppModel) renderList(width, height int) string {
	perPage := height / 2
	if perPage < 1 {
		perPage = 1
	}
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := start + perPage
	if end > len(m.visible) {
		end = len(m.visible)
	}

	editIdx, editing := m.store.Cursor()
	previewWidth := width - 6
	if previewWidth < 10 {
		previewWidth = 10
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		idx := m.visible[i]
		n, err := m.store.Get(idx)
		if err != nil {
			continue
		}

		marker := "  "
		if i == m.cursor {
			marker = theme.Cursor.Render("> ")
		}
		top := marker + theme.NoteTitle.Render(n.Title) + "  " + theme.NoteDate.Render(n.CreatedDate)
		if editing && idx == editIdx {
			top += "  " + theme.Editing.Render("[editing]")
		}
		bottom := "    " + theme.Muted.Render(notes.Preview(n.Content, previewWidth))

		row := top + "\n" + bottom
		if i == m.cursor {
			row = theme.SelectedBg.Width(width).Render(row)
		}
		b.WriteString(row)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (m AppModel) renderStatusBar() string {
	text := "n:new  e:edit  d:delete  /:search  v:detail  ?:help  q:quit"
	if m.status != "" {
		switch {
		case m.statusErr:
			text = theme.Error.Render(m.status)
		case m.statusWarn:
			text = theme.Warn.Render(m.status)
		default:
			text = theme.Ok.Render(m.status)
		}
	}
	return theme.StatusBar.Width(m.width).Render(text)
}

var helpSections = []shared.HelpSection{
	{
		Title: "Notes",
		Binds: []shared.HelpBind{
			{Key: "j / k", Desc: "Move down / up"},
			{Key: "g / G", Desc: "First / last note"},
			{Key: "n", Desc: "New note"},
			{Key: "e / enter", Desc: "Edit note"},
			{Key: "d / x", Desc: "Delete note"},
			{Key: "/", Desc: "Search"},
			{Key: "esc", Desc: "Clear search"},
			{Key: "v", Desc: "Toggle detail pane"},
			{Key: "?", Desc: "Show this help"},
			{Key: "q", Desc: "Quit"},
		},
	},
	{
		Title: "Note Form",
		Binds: []shared.HelpBind{
			{Key: "tab", Desc: "Switch field"},
			{Key: "ctrl+s", Desc: "Save"},
			{Key: "esc", Desc: "Cancel"},
		},
	},
	{
		Title: "Delete Dialog",
		Binds: []shared.HelpBind{
			{Key: "y / enter", Desc: "Delete"},
			{Key: "n / esc", Desc: "Keep"},
		},
	},
}
