package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/theme"
)

type formField int

const (
	fieldTitle formField = iota
	fieldContent
)

// NoteFormModel is the title/content form used both to add a note and to
// edit one.
type NoteFormModel struct {
	title   textinput.Model
	content textarea.Model
	focus   formField
	editing bool
	Error   string
	Width   int
}

// NewNoteForm creates a form prefilled with title and content.
func NewNoteForm(title, content string, editing bool, width int) *NoteFormModel {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = 256
	ti.SetValue(title)

	ta := textarea.New()
	ta.Placeholder = "Enter a new note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetValue(content)

	m := &NoteFormModel{
		title:   ti,
		content: ta,
		editing: editing,
	}
	m.SetWidth(width)
	m.title.Focus()
	return m
}

func (m *NoteFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Editing reports whether the form commits an edit rather than adding.
func (m *NoteFormModel) Editing() bool {
	return m.editing
}

func (m *NoteFormModel) Values() (string, string) {
	return m.title.Value(), m.content.Value()
}

// SetWidth sizes the box and both fields.
func (m *NoteFormModel) SetWidth(w int) {
	if w < 30 {
		w = 30
	}
	// Account for border (2) and padding (4)
	m.Width = w - 6
	m.title.Width = m.Width - theme.FieldLabel.GetWidth() - 2
	m.content.SetWidth(m.Width)
	m.content.SetHeight(6)
}

func (m *NoteFormModel) Update(msg tea.Msg) (*NoteFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+s":
			title, content := m.Values()
			return m, func() tea.Msg {
				return messages.FormSubmitMsg{Title: title, Content: content}
			}
		case "esc":
			title, content := m.Values()
			return m, func() tea.Msg {
				return messages.FormCancelMsg{Title: title, Content: content}
			}
		case "tab", "shift+tab":
			return m, m.toggleFocus()
		case "enter":
			// Enter in the title moves on; in the content it is a newline.
			if m.focus == fieldTitle {
				return m, m.toggleFocus()
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldContent:
		m.content, cmd = m.content.Update(msg)
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.Error = ""
	}
	return m, cmd
}

func (m *NoteFormModel) toggleFocus() tea.Cmd {
	if m.focus == fieldTitle {
		m.focus = fieldContent
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = fieldTitle
	m.content.Blur()
	return m.title.Focus()
}

func (m *NoteFormModel) View() string {
	var b strings.Builder

	heading := "New Note"
	if m.editing {
		heading = "Edit Note"
	}
	b.WriteString(theme.Title.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(theme.FieldLabel.Render("Title:"))
	b.WriteString(m.title.View())
	b.WriteString("\n\n")

	b.WriteString(theme.FieldLabel.Render("Content:"))
	b.WriteString("\n")
	b.WriteString(m.content.View())
	b.WriteString("\n")

	if m.Error != "" {
		b.WriteString("\n" + theme.Error.Render("Error: "+m.Error) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.ModalHelp.Render("[tab] switch field  [ctrl+s] save  [esc] cancel"))

	return theme.ModalBox.Width(m.Width).Render(b.String())
}
