package notes

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeList_Errors(t *testing.T) {
	tests := []string{
		"{not json",
		`{"title":"a"}`,
		`[1, 2]`,
		`[{"title": 5}]`,
	}
	for _, raw := range tests {
		_, err := DecodeList(raw)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("DecodeList(%q): expected *ParseError, got %v", raw, err)
		}
	}
}

func TestDecodeList_NullAndEmpty(t *testing.T) {
	for _, raw := range []string{"[]", "null"} {
		list, err := DecodeList(raw)
		if err != nil {
			t.Fatalf("DecodeList(%q): %v", raw, err)
		}
		if len(list) != 0 {
			t.Errorf("DecodeList(%q): expected empty list, got %d", raw, len(list))
		}
	}
}

func TestEncodeList_WireFormat(t *testing.T) {
	raw, err := EncodeList([]Note{{Title: "t", Content: "c", CreatedDate: "d"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := `[{"title":"t","content":"c","createdDate":"d"}]`
	if raw != expected {
		t.Errorf("expected %s, got %s", expected, raw)
	}

	raw, _ = EncodeList(nil)
	if raw != "[]" {
		t.Errorf("expected [] for nil list, got %s", raw)
	}
}

func TestLegacyTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"short", "short"},
		{"\n\n  second line\nthird", "second line"},
		{strings.Repeat("a", 50), strings.Repeat("a", 37) + "..."},
	}
	for _, tt := range tests {
		if got := legacyTitle(tt.input); got != tt.expected {
			t.Errorf("legacyTitle(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestSearch(t *testing.T) {
	list := []Note{
		{Title: "Groceries", Content: "Milk, eggs"},
		{Title: "Call", Content: "Mom at 5pm"},
		{Title: "Gym", Content: "leg day"},
	}

	all := Search(list, "")
	if len(all) != 3 || all[0] != 0 || all[2] != 2 {
		t.Errorf("empty query: expected all indices in order, got %v", all)
	}

	got := Search(list, "mom")
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1] for 'mom', got %v", got)
	}

	got = Search(list, "eggs")
	if len(got) == 0 || got[0] != 0 {
		t.Errorf("expected Groceries first for 'eggs', got %v", got)
	}

	if got := Search(list, "zzzz"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		max      int
		expected string
	}{
		{"plain", "Milk, eggs", 60, "Milk, eggs"},
		{"markup stripped", "# Shopping\n\nMilk, *eggs* and [bread](http://x)", 60, "Shopping Milk, eggs and bread"},
		{"soft breaks", "line one\nline two", 60, "line one line two"},
		{"list items", "- a\n- b", 60, "a b"},
		{"code skipped", "```\ncode\n```\n\nafter", 60, "after"},
		{"truncated", strings.Repeat("word ", 20), 13, "word word ..."},
		{"tiny cap", "Milk, eggs", 3, "Mil"},
		{"one rune", "Milk", 1, "M"},
		{"zero cap", "Milk", 0, ""},
		{"tiny cap short text", "ab", 3, "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.content, tt.max); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Groceries", "groceries"},
		{"Call Mom @ 5pm!", "call-mom-5pm"},
		{"???", "note"},
	}
	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.expected {
			t.Errorf("Slug(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestExportMarkdown_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "export")
	list := []Note{
		{Title: "Groceries", Content: "Milk, eggs", CreatedDate: "10/18/2026, 9:31:00 AM"},
		{Title: "Call: Mom", Content: "# At 5pm\n\n- bring cake", CreatedDate: "10/18/2026, 9:32:00 AM"},
	}

	paths, err := ExportMarkdown(dir, list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 files, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "001-groceries.md" {
		t.Errorf("unexpected filename %q", filepath.Base(paths[0]))
	}

	back, err := ReadMarkdownFiles(paths)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	for i := range list {
		if back[i] != list[i] {
			t.Errorf("note %d: expected %+v, got %+v", i, list[i], back[i])
		}
	}
}

func TestExportMarkdown_KeepsSurroundingWhitespace(t *testing.T) {
	list := []Note{
		{Title: "indent", Content: "    code block\nline", CreatedDate: "d"},
		{Title: "trailing", Content: "text\n\n", CreatedDate: "d"},
		{Title: "leading blank", Content: "\nafter blank", CreatedDate: "d"},
	}
	for _, n := range list {
		data, err := MarshalMarkdown(n)
		if err != nil {
			t.Fatalf("marshal %q: %v", n.Title, err)
		}
		back, err := ParseMarkdown(data)
		if err != nil {
			t.Fatalf("parse %q: %v", n.Title, err)
		}
		if back.Content != n.Content {
			t.Errorf("%s: expected content %q, got %q", n.Title, n.Content, back.Content)
		}
	}
}

func TestParseMarkdown_NoFrontmatter(t *testing.T) {
	n, err := ParseMarkdown([]byte("# Trip ideas\n\nLisbon\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Title != "Trip ideas" {
		t.Errorf("expected title 'Trip ideas', got %q", n.Title)
	}
	if n.Content != "# Trip ideas\n\nLisbon" {
		t.Errorf("unexpected content %q", n.Content)
	}
}

func TestParseMarkdown_Unterminated(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "bad.md")
	os.WriteFile(tmp, []byte("---\ntitle: x\n"), 0644)
	if _, err := ReadMarkdownFiles([]string{tmp}); err == nil {
		t.Error("expected error for unterminated frontmatter")
	}
}
