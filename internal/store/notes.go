package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pagemark/bookpace/internal/entities"
)

// NotePatch carries the fields of a partial note update.
type NotePatch struct {
	Type    *entities.NoteType
	Page    *int
	Content *string
}

// AddNote assigns a fresh id and creation timestamp and persists the note
// collection. Page bounds are validated by the caller, not here.
func (s *Store) AddNote(note entities.Note) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note.ID = uuid.NewString()
	note.CreatedAt = time.Now().UTC()

	s.notes = append(s.notes, note)
	if err := s.persistNotes(); err != nil {
		return "", err
	}
	return note.ID, nil
}

// UpdateNote merges patch into the stored note. Unknown ids are a silent
// no-op.
func (s *Store) UpdateNote(id string, patch NotePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		if patch.Type != nil {
			s.notes[i].Type = *patch.Type
		}
		if patch.Page != nil {
			s.notes[i].Page = *patch.Page
		}
		if patch.Content != nil {
			s.notes[i].Content = *patch.Content
		}
		return s.persistNotes()
	}
	return nil
}

// DeleteNote removes the note. Unknown ids are a silent no-op.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return s.persistNotes()
		}
	}
	return nil
}

// GetNote returns the note and whether it exists.
func (s *Store) GetNote(id string) (entities.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return entities.Note{}, false
}

// NotesByBook returns all notes for a book, ordered by page ascending.
func (s *Store) NotesByBook(bookID string) []entities.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]entities.Note, 0)
	for _, n := range s.notes {
		if n.BookID == bookID {
			notes = append(notes, n)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Page < notes[j].Page
	})
	return notes
}
