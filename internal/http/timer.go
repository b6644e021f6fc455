package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/store"
	"github.com/pagemark/bookpace/internal/timer"
)

type TimerController struct {
	store   SessionStore
	tracker *timer.Tracker
}

func NewTimerController(store SessionStore, tracker *timer.Tracker) *TimerController {
	return &TimerController{store: store, tracker: tracker}
}

type startTimerRequest struct {
	BookID    string `json:"book_id"`
	StartPage int    `json:"start_page"`
}

type stopTimerRequest struct {
	EndPage int `json:"end_page"`
}

// StartTimer begins a timed reading session. Starting while a timer is
// already running discards the previous one.
// POST /api/timer/start
func (tc *TimerController) StartTimer(c *gin.Context) {
	var req startTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, ok := tc.store.GetBook(req.BookID)
	if !ok {
		respondNotFound(c, "book")
		return
	}
	if req.StartPage < 1 || req.StartPage > book.TotalPages {
		respondBadRequest(c, "start page must be between 1 and the book's total page count")
		return
	}

	tc.tracker.Start(req.BookID, req.StartPage)
	status, _ := tc.tracker.Status()
	c.IndentedJSON(http.StatusOK, status)
}

// GetTimerStatus reports the running timer, or 404 when idle.
// GET /api/timer
func (tc *TimerController) GetTimerStatus(c *gin.Context) {
	status, running := tc.tracker.Status()
	if !running {
		respondNotFound(c, "running timer")
		return
	}
	c.IndentedJSON(http.StatusOK, status)
}

// StopTimer ends the timed session, stores it with its derived speed, and
// advances the book's current page to the end page. Validation failures leave
// the timer running so the reader can retry with a corrected page.
// POST /api/timer/stop
func (tc *TimerController) StopTimer(c *gin.Context) {
	var req stopTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	status, running := tc.tracker.Status()
	if !running {
		respondNotFound(c, "running timer")
		return
	}

	if book, ok := tc.store.GetBook(status.BookID); ok && req.EndPage > book.TotalPages {
		respondBadRequest(c, "end page must be within the book")
		return
	}

	interval, err := tc.tracker.Stop(req.EndPage)
	if err != nil {
		switch {
		case errors.Is(err, timer.ErrNotRunning):
			respondNotFound(c, "running timer")
		case errors.Is(err, timer.ErrEndNotAfter), errors.Is(err, timer.ErrTooShort):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "stop timer")
		}
		return
	}

	id, err := tc.store.AddSession(entities.ReadingSession{
		BookID:    interval.BookID,
		StartPage: interval.StartPage,
		EndPage:   interval.EndPage,
		Duration:  interval.Duration,
		WPM:       interval.WPM,
	})
	if err != nil {
		respondInternalError(c, err, "record timed session")
		return
	}

	endPage := interval.EndPage
	if err := tc.store.UpdateBook(interval.BookID, store.BookPatch{CurrentPage: &endPage}); err != nil {
		respondInternalError(c, err, "advance book progress")
		return
	}

	for _, sess := range tc.store.SessionsByBook(interval.BookID) {
		if sess.ID == id {
			respondCreated(c, sess)
			return
		}
	}
	respondCreated(c, gin.H{"id": id})
}

// ResetTimer discards the running timer without recording a session.
// POST /api/timer/reset
func (tc *TimerController) ResetTimer(c *gin.Context) {
	tc.tracker.Reset()
	respondSuccess(c, "Timer reset")
}
