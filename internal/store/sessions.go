package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagemark/bookpace/internal/entities"
)

// AddSession records a completed reading interval. Sessions are immutable
// once stored; there is no update operation.
func (s *Store) AddSession(session entities.ReadingSession) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session.ID = uuid.NewString()
	session.CreatedAt = time.Now().UTC()

	s.sessions = append(s.sessions, session)
	if err := s.persistSessions(); err != nil {
		return "", err
	}
	return session.ID, nil
}

// SessionsByBook returns all sessions for a book in insertion order, which is
// chronological.
func (s *Store) SessionsByBook(bookID string) []entities.ReadingSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]entities.ReadingSession, 0)
	for _, sess := range s.sessions {
		if sess.BookID == bookID {
			sessions = append(sessions, sess)
		}
	}
	return sessions
}
