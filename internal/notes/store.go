package notes

import (
	"errors"
	"fmt"
	"time"

	"quicknotes/internal/logs"
	"quicknotes/internal/storage"
)

const (
	DefaultKey        = "todos"
	DefaultDateLayout = "1/2/2006, 3:04:05 PM"

	noCursor = -1
)

// Buffer is the form draft: the pending input for a new note, or the
// fields of the note being edited.
type Buffer struct {
	Title   string
	Content string
}

// Store is the ordered note list with its edit cursor, mirrored to a slot
// after every mutation. A Store is owned by a single UI loop and is not
// safe for concurrent use.
type Store struct {
	slot   storage.Slot
	key    string
	now    func() time.Time
	layout string

	notes  []Note
	cursor int
	buffer Buffer
}

// Option configures a Store.
type Option func(*Store)

// WithKey sets the slot key the list is stored under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces time.Now for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDateLayout sets the time layout used for CreatedDate.
func WithDateLayout(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.layout = layout
		}
	}
}

// NewStore creates an empty store over slot. Call Load before use.
func NewStore(slot storage.Slot, opts ...Option) *Store {
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		now:    time.Now,
		layout: DefaultDateLayout,
		cursor: noCursor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key backing the store.
func (s *Store) Key() string {
	return s.key
}

// CorruptKey is where an unparseable stored value is moved aside on Load.
func (s *Store) CorruptKey() string {
	return s.key + ".corrupt"
}

// Load reads the persisted list. A missing key yields an empty list. A value
// that fails to parse also yields an empty list; the raw value is copied to
// CorruptKey so the next write doesn't destroy it.
func (s *Store) Load() error {
	s.notes = nil
	s.cursor = noCursor
	s.buffer = Buffer{}

	raw, ok, err := s.slot.Get(s.key)
	if err != nil {
		return fmt.Errorf("error loading notes: %w", err)
	}
	if !ok {
		logs.Logger.Printf("No stored notes under %q, starting empty", s.key)
		return nil
	}

	list, err := DecodeList(raw)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			logs.Logger.Printf("Stored notes under %q are unreadable, starting empty: %v", s.key, err)
			if err := s.slot.Set(s.CorruptKey(), raw); err != nil {
				logs.Logger.Printf("Could not preserve unreadable notes under %q: %v", s.CorruptKey(), err)
			}
			return nil
		}
		return err
	}

	s.notes = list
	logs.Logger.Printf("Loaded %d notes from %q", len(list), s.key)
	return nil
}

// Notes returns a copy of the current list.
func (s *Store) Notes() []Note {
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	return len(s.notes)
}

// Get returns the note at index.
func (s *Store) Get(index int) (Note, error) {
	if err := s.checkIndex(index); err != nil {
		return Note{}, err
	}
	return s.notes[index], nil
}

// Cursor returns the index being edited, and false when no edit is open.
func (s *Store) Cursor() (int, bool) {
	return s.cursor, s.cursor != noCursor
}

// Editing reports whether an edit is open.
func (s *Store) Editing() bool {
	return s.cursor != noCursor
}

// Buffer returns the current form draft.
func (s *Store) Buffer() Buffer {
	return s.buffer
}

// SetBuffer replaces the form draft.
func (s *Store) SetBuffer(title, content string) {
	s.buffer = Buffer{Title: title, Content: content}
}

// Create appends a new note stamped with the current time.
func (s *Store) Create(title, content string) (Note, error) {
	if err := Validate(title, content); err != nil {
		return Note{}, err
	}

	n := Note{
		Title:       title,
		Content:     content,
		CreatedDate: s.now().Format(s.layout),
	}

	next := make([]Note, len(s.notes), len(s.notes)+1)
	copy(next, s.notes)
	next = append(next, n)

	if err := s.persist(next); err != nil {
		return Note{}, err
	}
	s.buffer = Buffer{}
	logs.Logger.Printf("Created note %d: %q", len(next)-1, n.Title)
	return n, nil
}

// Import appends already-built notes, keeping their CreatedDate when set.
// Notes failing validation are skipped. It returns how many were added.
func (s *Store) Import(incoming []Note) (int, error) {
	next := s.Notes()
	added := 0
	for _, n := range incoming {
		if Validate(n.Title, n.Content) != nil {
			continue
		}
		if n.CreatedDate == "" {
			n.CreatedDate = s.now().Format(s.layout)
		}
		next = append(next, n)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	if err := s.persist(next); err != nil {
		return 0, err
	}
	if s.cursor != noCursor {
		s.buffer = Buffer{}
	}
	s.cursor = noCursor
	logs.Logger.Printf("Imported %d notes", added)
	return added, nil
}

// BeginEdit opens the note at index for editing and fills the buffer from
// it. Any uncommitted edit of another note is discarded.
func (s *Store) BeginEdit(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	n := s.notes[index]
	s.cursor = index
	s.buffer = Buffer{Title: n.Title, Content: n.Content}
	return nil
}

// CommitEdit replaces title and content of the note at index, keeping its
// CreatedDate, and closes the edit. Blank fields leave everything as is,
// including the open edit.
func (s *Store) CommitEdit(index int, title, content string) error {
	if err := Validate(title, content); err != nil {
		return err
	}
	if err := s.checkIndex(index); err != nil {
		return err
	}

	next := s.Notes()
	next[index] = Note{
		Title:       title,
		Content:     content,
		CreatedDate: s.notes[index].CreatedDate,
	}

	if err := s.persist(next); err != nil {
		return err
	}
	s.cursor = noCursor
	s.buffer = Buffer{}
	logs.Logger.Printf("Updated note %d: %q", index, title)
	return nil
}

// CancelEdit closes the open edit without saving.
func (s *Store) CancelEdit() {
	if s.cursor == noCursor {
		return
	}
	s.cursor = noCursor
	s.buffer = Buffer{}
}

// Submit creates a note, or commits the open edit.
func (s *Store) Submit(title, content string) error {
	if s.cursor != noCursor {
		return s.CommitEdit(s.cursor, title, content)
	}
	_, err := s.Create(title, content)
	return err
}

// Remove deletes the note at index once confirm agrees; a nil confirm
// declines. It reports whether the note was removed. Any removal closes
// the open edit, whichever note it was on.
func (s *Store) Remove(index int, confirm Confirmer) (bool, error) {
	if err := s.checkIndex(index); err != nil {
		return false, err
	}
	if confirm == nil || !confirm.ConfirmRemove(index, s.notes[index]) {
		logs.Logger.Printf("Removal of note %d declined", index)
		return false, nil
	}

	next := make([]Note, 0, len(s.notes)-1)
	next = append(next, s.notes[:index]...)
	next = append(next, s.notes[index+1:]...)

	if err := s.persist(next); err != nil {
		return false, err
	}
	if s.cursor != noCursor {
		s.buffer = Buffer{}
	}
	s.cursor = noCursor
	logs.Logger.Printf("Removed note %d", index)
	return true, nil
}

// persist writes list to the slot and, only once that succeeds, makes it
// the current list.
func (s *Store) persist(list []Note) error {
	raw, err := EncodeList(list)
	if err != nil {
		return fmt.Errorf("error encoding notes: %w", err)
	}
	if err := s.slot.Set(s.key, raw); err != nil {
		logs.Logger.Printf("Error saving notes: %v", err)
		return fmt.Errorf("error saving notes: %w", err)
	}
	s.notes = list
	return nil
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.notes) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(s.notes))
	}
	return nil
}
