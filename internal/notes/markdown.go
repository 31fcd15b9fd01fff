package notes

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type noteFrontmatter struct {
	Title   string `yaml:"title"`
	Created string `yaml:"created,omitempty"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a title into a filename-safe fragment.
func Slug(title string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	s = strings.Trim(s, "-")
	if len(s) > 40 {
		s = strings.TrimRight(s[:40], "-")
	}
	if s == "" {
		return "note"
	}
	return s
}

// MarshalMarkdown renders a note as markdown with YAML frontmatter.
func MarshalMarkdown(n Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	yamlBytes, err := yaml.Marshal(noteFrontmatter{Title: n.Title, Created: n.CreatedDate})
	if err != nil {
		return nil, err
	}
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// ParseMarkdown reads a note written by MarshalMarkdown. Files without
// frontmatter take their title from the first line.
func ParseMarkdown(content []byte) (Note, error) {
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		body := strings.TrimSpace(string(content))
		return Note{Title: legacyTitle(strings.TrimLeft(body, "# ")), Content: body}, nil
	}

	var fmEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			fmEnd = i
			break
		}
	}
	if fmEnd == 0 {
		return Note{}, fmt.Errorf("unterminated frontmatter")
	}

	var fm noteFrontmatter
	if err := yaml.Unmarshal(bytes.Join(lines[1:fmEnd], []byte("\n")), &fm); err != nil {
		return Note{}, fmt.Errorf("invalid frontmatter: %w", err)
	}

	// Drop the blank separator line and the final newline MarshalMarkdown
	// adds; everything else in the body is content.
	bodyLines := lines[fmEnd+1:]
	if len(bodyLines) > 0 && len(bytes.TrimSpace(bodyLines[0])) == 0 {
		bodyLines = bodyLines[1:]
	}
	body := strings.TrimSuffix(string(bytes.Join(bodyLines, []byte("\n"))), "\n")
	return Note{Title: fm.Title, Content: body, CreatedDate: fm.Created}, nil
}

// ExportMarkdown writes one file per note into dir, named by position and
// title so the files sort in list order. It returns the written paths.
func ExportMarkdown(dir string, list []Note) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating directory: %w", err)
	}

	paths := make([]string, 0, len(list))
	for i, n := range list {
		data, err := MarshalMarkdown(n)
		if err != nil {
			return paths, fmt.Errorf("error encoding note %d: %w", i, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%03d-%s.md", i+1, Slug(n.Title)))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("error writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ReadMarkdownFiles parses each path with ParseMarkdown.
func ReadMarkdownFiles(paths []string) ([]Note, error) {
	var out []Note
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", path, err)
		}
		n, err := ParseMarkdown(data)
		if err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		out = append(out, n)
	}
	return out, nil
}
