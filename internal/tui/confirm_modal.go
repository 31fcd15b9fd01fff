package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"quicknotes/internal/tui/messages"
	"quicknotes/internal/tui/theme"
)

// ConfirmModal asks a yes/no question about removing one note.
type ConfirmModal struct {
	Index   int    // store index the answer applies to
	Message string // primary question
	Details string // optional context
	Width   int

	answered bool
}

func NewConfirmModal(index int, message, details string, width int) *ConfirmModal {
	return &ConfirmModal{
		Index:   index,
		Message: message,
		Details: details,
		Width:   width,
	}
}

// Update handles key events. Keys other than yes/no are swallowed, and so
// is every key after the first answer.
func (m *ConfirmModal) Update(msg tea.KeyMsg) tea.Cmd {
	if m.answered {
		return nil
	}
	var confirmed bool
	switch msg.String() {
	case "y", "Y", "enter":
		confirmed = true
	case "n", "N", "esc":
		confirmed = false
	default:
		return nil
	}
	m.answered = true
	index := m.Index
	return func() tea.Msg {
		return messages.ConfirmResultMsg{Index: index, Confirmed: confirmed}
	}
}

func (m *ConfirmModal) View() string {
	var content strings.Builder

	content.WriteString(theme.ModalTitle.Render(m.Message) + "\n")
	if m.Details != "" {
		content.WriteString("\n" + m.Details + "\n")
	}
	content.WriteString("\n")
	content.WriteString(theme.Ok.Render("[y]") + " Yes  ")
	content.WriteString(theme.Error.Render("[n/esc]") + " No")

	return theme.ModalBox.Width(m.Width).Render(content.String())
}
