// Package store holds the in-memory book, note and reading-session collections
// and is the sole writer of the persistent blob store. Every mutation rewrites
// the affected collection in full; there are no partial or delta writes.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/pagemark/bookpace/internal/entities"
)

// Collection names used as blob-store keys.
const (
	KeyBooks    = "books"
	KeyNotes    = "notes"
	KeySessions = "reading_sessions"
)

// Blobs is the persistence interface the store writes through.
type Blobs interface {
	Load(name string) ([]byte, error)
	Save(name string, payload []byte) error
}

// Store owns the in-memory collections. It is created once at startup and
// shared by reference; a mutex serializes access since HTTP handlers run
// concurrently.
type Store struct {
	mu    sync.RWMutex
	blobs Blobs

	books    []entities.Book
	notes    []entities.Note
	sessions []entities.ReadingSession
}

// New loads all collections from the blob store. Missing or unreadable
// payloads degrade to an empty collection; corruption is logged, never fatal.
func New(blobs Blobs) *Store {
	return &Store{
		blobs:    blobs,
		books:    loadCollection[entities.Book](blobs, KeyBooks),
		notes:    loadCollection[entities.Note](blobs, KeyNotes),
		sessions: loadCollection[entities.ReadingSession](blobs, KeySessions),
	}
}

func loadCollection[T any](blobs Blobs, name string) []T {
	payload, err := blobs.Load(name)
	if err != nil {
		log.Printf("WARNING: failed to load collection %q, starting empty: %v", name, err)
		return nil
	}
	if len(payload) == 0 {
		return nil
	}

	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		log.Printf("WARNING: collection %q is corrupt, starting empty: %v", name, err)
		return nil
	}
	return records
}

func (s *Store) persist(name string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("serialize collection %q: %w", name, err)
	}
	if err := s.blobs.Save(name, payload); err != nil {
		return fmt.Errorf("persist collection %q: %w", name, err)
	}
	return nil
}

func (s *Store) persistBooks() error {
	return s.persist(KeyBooks, s.books)
}

func (s *Store) persistNotes() error {
	return s.persist(KeyNotes, s.notes)
}

func (s *Store) persistSessions() error {
	return s.persist(KeySessions, s.sessions)
}

// Snapshot returns copies of all three collections, for backups.
func (s *Store) Snapshot() ([]entities.Book, []entities.Note, []entities.ReadingSession) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]entities.Book, len(s.books))
	copy(books, s.books)
	notes := make([]entities.Note, len(s.notes))
	copy(notes, s.notes)
	sessions := make([]entities.ReadingSession, len(s.sessions))
	copy(sessions, s.sessions)
	return books, notes, sessions
}
