package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrEmptyField is returned when a note's title or content is blank.
var ErrEmptyField = errors.New("title and content are required")

// ErrIndexOutOfRange is returned for indices outside the note list.
var ErrIndexOutOfRange = errors.New("note index out of range")

// Note is a single persisted record.
type Note struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedDate string `json:"createdDate"`
}

func (n Note) String() string {
	return fmt.Sprintf("%s (%s)", n.Title, n.CreatedDate)
}

// Validate reports ErrEmptyField when title or content is empty or whitespace-only.
func Validate(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return ErrEmptyField
	}
	return nil
}

// ParseError wraps a stored value that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "malformed note list: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

const legacyTitleRunes = 40

// EncodeList serializes a note list to its stored JSON form.
func EncodeList(list []Note) (string, error) {
	if list == nil {
		list = []Note{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeList parses the stored JSON form. Entries that are bare strings
// (notes saved before titles existed) are upgraded in place.
func DecodeList(raw string) ([]Note, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &ParseError{Err: err}
	}

	list := make([]Note, 0, len(entries))
	for i, entry := range entries {
		trimmed := strings.TrimSpace(string(entry))
		if strings.HasPrefix(trimmed, `"`) {
			var text string
			if err := json.Unmarshal(entry, &text); err != nil {
				return nil, &ParseError{Err: fmt.Errorf("entry %d: %w", i, err)}
			}
			if strings.TrimSpace(text) == "" {
				continue
			}
			list = append(list, Note{Title: legacyTitle(text), Content: text})
			continue
		}

		var n Note
		if err := json.Unmarshal(entry, &n); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("entry %d: %w", i, err)}
		}
		list = append(list, n)
	}
	return list, nil
}

func legacyTitle(text string) string {
	line := text
	for _, l := range strings.Split(text, "\n") {
		if strings.TrimSpace(l) != "" {
			line = strings.TrimSpace(l)
			break
		}
	}
	return truncate(line, legacyTitleRunes)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
