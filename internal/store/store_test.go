package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagemark/bookpace/internal/entities"
)

// memBlobs is an in-memory Blobs implementation for tests.
type memBlobs struct {
	data    map[string][]byte
	saveErr error
	saves   []string
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: map[string][]byte{}}
}

func (m *memBlobs) Load(name string) ([]byte, error) {
	return m.data[name], nil
}

func (m *memBlobs) Save(name string, payload []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves = append(m.saves, name)
	m.data[name] = payload
	return nil
}

func addTestBook(t *testing.T, s *Store, title string, totalPages int) string {
	t.Helper()
	id, err := s.AddBook(entities.Book{Title: title, Author: "Author", TotalPages: totalPages})
	require.NoError(t, err)
	return id
}

func TestAddBookAssignsIDAndPersists(t *testing.T) {
	blobs := newMemBlobs()
	s := New(blobs)

	id, err := s.AddBook(entities.Book{Title: "Dune", Author: "Frank Herbert", TotalPages: 412})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	book, ok := s.GetBook(id)
	require.True(t, ok)
	assert.Equal(t, "Dune", book.Title)
	assert.False(t, book.CreatedAt.IsZero())
	assert.Contains(t, blobs.saves, KeyBooks)

	// A second store over the same blobs sees the book.
	s2 := New(blobs)
	reloaded, ok := s2.GetBook(id)
	require.True(t, ok)
	assert.Equal(t, book.Title, reloaded.Title)
}

func TestAddBookSaveFailure(t *testing.T) {
	blobs := newMemBlobs()
	blobs.saveErr = errors.New("disk full")
	s := New(blobs)

	_, err := s.AddBook(entities.Book{Title: "Dune", TotalPages: 412})
	assert.Error(t, err)
}

func TestUpdateBookMergesFields(t *testing.T) {
	s := New(newMemBlobs())
	id := addTestBook(t, s, "Dune", 412)

	page := 100
	rating := 4
	require.NoError(t, s.UpdateBook(id, BookPatch{CurrentPage: &page, Rating: &rating}))

	book, ok := s.GetBook(id)
	require.True(t, ok)
	assert.Equal(t, 100, book.CurrentPage)
	assert.Equal(t, 4, book.Rating)
	assert.Equal(t, "Dune", book.Title, "unpatched fields are preserved")
	assert.Equal(t, 412, book.TotalPages)
}

func TestUpdateBookUnknownIDIsNoOp(t *testing.T) {
	s := New(newMemBlobs())
	addTestBook(t, s, "Dune", 412)

	before := s.ListBooks()
	page := 50
	require.NoError(t, s.UpdateBook("missing", BookPatch{CurrentPage: &page}))
	assert.Equal(t, before, s.ListBooks())
}

func TestDeleteBookCascades(t *testing.T) {
	s := New(newMemBlobs())
	id := addTestBook(t, s, "Dune", 412)
	other := addTestBook(t, s, "Emma", 300)

	_, err := s.AddNote(entities.Note{BookID: id, Type: entities.NoteTypeAnnotation, Page: 10, Content: "a"})
	require.NoError(t, err)
	_, err = s.AddNote(entities.Note{BookID: other, Type: entities.NoteTypeBookmark, Page: 5, Content: "b"})
	require.NoError(t, err)
	_, err = s.AddSession(entities.ReadingSession{BookID: id, StartPage: 1, EndPage: 20, Duration: 600, WPM: 190})
	require.NoError(t, err)

	require.NoError(t, s.DeleteBook(id))

	_, ok := s.GetBook(id)
	assert.False(t, ok)
	assert.Empty(t, s.NotesByBook(id))
	assert.Empty(t, s.SessionsByBook(id))

	// Records of the surviving book are untouched.
	assert.Len(t, s.NotesByBook(other), 1)
}

func TestDeleteBookUnknownIDIsNoOp(t *testing.T) {
	s := New(newMemBlobs())
	addTestBook(t, s, "Dune", 412)

	require.NoError(t, s.DeleteBook("missing"))
	assert.Len(t, s.ListBooks(), 1)
}

func TestNotesByBookSortedByPage(t *testing.T) {
	s := New(newMemBlobs())
	id := addTestBook(t, s, "Dune", 412)

	_, err := s.AddNote(entities.Note{BookID: id, Type: entities.NoteTypeQuotation, Page: 50, Content: "later"})
	require.NoError(t, err)
	_, err = s.AddNote(entities.Note{BookID: id, Type: entities.NoteTypeAnnotation, Page: 10, Content: "earlier"})
	require.NoError(t, err)

	notes := s.NotesByBook(id)
	require.Len(t, notes, 2)
	assert.Equal(t, 10, notes[0].Page)
	assert.Equal(t, 50, notes[1].Page)
}

func TestUpdateNote(t *testing.T) {
	s := New(newMemBlobs())
	id := addTestBook(t, s, "Dune", 412)
	noteID, err := s.AddNote(entities.Note{BookID: id, Type: entities.NoteTypeAnnotation, Page: 10, Content: "draft"})
	require.NoError(t, err)

	content := "final"
	require.NoError(t, s.UpdateNote(noteID, NotePatch{Content: &content}))

	note, ok := s.GetNote(noteID)
	require.True(t, ok)
	assert.Equal(t, "final", note.Content)
	assert.Equal(t, 10, note.Page)
}

func TestSessionsKeepInsertionOrder(t *testing.T) {
	s := New(newMemBlobs())
	id := addTestBook(t, s, "Dune", 412)

	_, err := s.AddSession(entities.ReadingSession{BookID: id, StartPage: 1, EndPage: 51, Duration: 3000, WPM: 250})
	require.NoError(t, err)
	_, err = s.AddSession(entities.ReadingSession{BookID: id, StartPage: 51, EndPage: 60, Duration: 600, WPM: 225})
	require.NoError(t, err)

	sessions := s.SessionsByBook(id)
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].StartPage)
	assert.Equal(t, 51, sessions[1].StartPage)
}

func TestCorruptCollectionStartsEmpty(t *testing.T) {
	blobs := newMemBlobs()
	blobs.data[KeyBooks] = []byte("{not json")

	s := New(blobs)
	assert.Empty(t, s.ListBooks())
}
