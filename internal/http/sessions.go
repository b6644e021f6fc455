package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/stats"
	"github.com/pagemark/bookpace/internal/store"
)

// SessionStore defines the domain-store operations used by the sessions
// controller.
type SessionStore interface {
	GetBook(id string) (entities.Book, bool)
	UpdateBook(id string, patch store.BookPatch) error
	AddSession(session entities.ReadingSession) (string, error)
	SessionsByBook(bookID string) []entities.ReadingSession
}

type SessionsController struct {
	store SessionStore
}

func NewSessionsController(store SessionStore) *SessionsController {
	return &SessionsController{store: store}
}

type createSessionRequest struct {
	StartPage int `json:"start_page"`
	EndPage   int `json:"end_page"`
	Duration  int `json:"duration"` // Seconds
}

// GetBookSessions lists a book's reading sessions in chronological order.
// As with notes, a stale book id yields an empty list.
// GET /api/books/:id/sessions
func (sc *SessionsController) GetBookSessions(c *gin.Context) {
	sessions := sc.store.SessionsByBook(c.Param("id"))
	c.IndentedJSON(http.StatusOK, gin.H{"sessions": sessions, "count": len(sessions)})
}

// CreateSession records a manually entered reading session, computes its
// speed, and advances the book's current page to the session's end page.
// POST /api/books/:id/sessions
func (sc *SessionsController) CreateSession(c *gin.Context) {
	bookID := c.Param("id")

	book, ok := sc.store.GetBook(bookID)
	if !ok {
		respondNotFound(c, "book")
		return
	}

	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.StartPage < 1 || req.StartPage > book.TotalPages {
		respondBadRequest(c, "start page must be between 1 and the book's total page count")
		return
	}
	if req.EndPage <= req.StartPage || req.EndPage > book.TotalPages {
		respondBadRequest(c, "end page must be after the start page and within the book")
		return
	}

	wpm, err := stats.SessionWPM(req.StartPage, req.EndPage, req.Duration)
	if err != nil {
		respondBadRequest(c, "duration must be a positive number of seconds")
		return
	}

	id, err := sc.store.AddSession(entities.ReadingSession{
		BookID:    bookID,
		StartPage: req.StartPage,
		EndPage:   req.EndPage,
		Duration:  req.Duration,
		WPM:       wpm,
	})
	if err != nil {
		respondInternalError(c, err, "create session")
		return
	}

	endPage := req.EndPage
	if err := sc.store.UpdateBook(bookID, store.BookPatch{CurrentPage: &endPage}); err != nil {
		respondInternalError(c, err, "advance book progress")
		return
	}

	sessions := sc.store.SessionsByBook(bookID)
	for _, sess := range sessions {
		if sess.ID == id {
			respondCreated(c, sess)
			return
		}
	}
	respondCreated(c, gin.H{"id": id})
}
