package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagemark/bookpace/internal/entities"
)

// BookPatch carries the fields of a partial book update. Nil fields are left
// untouched.
type BookPatch struct {
	Title         *string
	Author        *string
	PublishedYear *int
	TotalPages    *int
	CurrentPage   *int
	Edition       *string
	Publisher     *string
	CoverURL      *string
	Rating        *int
	Description   *string
}

// AddBook assigns a fresh id and creation timestamp, appends the book and
// persists the collection. Returns the new id.
func (s *Store) AddBook(book entities.Book) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book.ID = uuid.NewString()
	book.CreatedAt = time.Now().UTC()

	s.books = append(s.books, book)
	if err := s.persistBooks(); err != nil {
		return "", err
	}
	return book.ID, nil
}

// UpdateBook merges patch into the stored book. Unknown ids are a silent
// no-op.
func (s *Store) UpdateBook(id string, patch BookPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID != id {
			continue
		}
		applyBookPatch(&s.books[i], patch)
		return s.persistBooks()
	}
	return nil
}

// DeleteBook removes the book and every note and session that references it.
// The book collection is written first; a crash between writes can leave
// dangling notes or sessions, an accepted limitation of the blob-per-collection
// model.
func (s *Store) DeleteBook(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	books := s.books[:0]
	for _, b := range s.books {
		if b.ID == id {
			found = true
			continue
		}
		books = append(books, b)
	}
	if !found {
		return nil
	}
	s.books = books

	notes := s.notes[:0]
	for _, n := range s.notes {
		if n.BookID != id {
			notes = append(notes, n)
		}
	}
	s.notes = notes

	sessions := s.sessions[:0]
	for _, sess := range s.sessions {
		if sess.BookID != id {
			sessions = append(sessions, sess)
		}
	}
	s.sessions = sessions

	if err := s.persistBooks(); err != nil {
		return err
	}
	if err := s.persistNotes(); err != nil {
		return err
	}
	return s.persistSessions()
}

// GetBook returns the book and whether it exists.
func (s *Store) GetBook(id string) (entities.Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.books {
		if b.ID == id {
			return b, true
		}
	}
	return entities.Book{}, false
}

// ListBooks returns all books in insertion order.
func (s *Store) ListBooks() []entities.Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]entities.Book, len(s.books))
	copy(books, s.books)
	return books
}

func applyBookPatch(book *entities.Book, patch BookPatch) {
	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.PublishedYear != nil {
		book.PublishedYear = *patch.PublishedYear
	}
	if patch.TotalPages != nil {
		book.TotalPages = *patch.TotalPages
	}
	if patch.CurrentPage != nil {
		book.CurrentPage = *patch.CurrentPage
	}
	if patch.Edition != nil {
		book.Edition = *patch.Edition
	}
	if patch.Publisher != nil {
		book.Publisher = *patch.Publisher
	}
	if patch.CoverURL != nil {
		book.CoverURL = *patch.CoverURL
	}
	if patch.Rating != nil {
		book.Rating = *patch.Rating
	}
	if patch.Description != nil {
		book.Description = *patch.Description
	}
}
