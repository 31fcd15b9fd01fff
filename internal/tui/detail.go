package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"quicknotes/internal/logs"
	"quicknotes/internal/notes"
	"quicknotes/internal/tui/theme"
)

// markdownRenderer renders note content with glamour, rebuilding the
// underlying renderer only when the wrap width changes.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

func newMarkdownRenderer(style string) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style}
}

func (r *markdownRenderer) Render(content string, width int) string {
	if width < 10 {
		width = 10
	}
	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			logs.Logger.Printf("Error creating markdown renderer: %v", err)
			return content
		}
		r.renderer = tr
		r.width = width
	}

	out, err := r.renderer.Render(content)
	if err != nil {
		logs.Logger.Printf("Error rendering note: %v", err)
		return content
	}
	return strings.Trim(out, "\n")
}

// renderDetail shows one note in full.
func renderDetail(r *markdownRenderer, n notes.Note, width int) string {
	var b strings.Builder
	b.WriteString(theme.NoteTitle.Render(n.Title))
	b.WriteString("\n")
	b.WriteString(theme.NoteDate.Render(n.CreatedDate))
	b.WriteString("\n\n")
	b.WriteString(r.Render(n.Content, width-2))
	return theme.DetailPane.Width(width).Render(b.String())
}
