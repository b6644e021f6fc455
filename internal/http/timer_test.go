package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/store"
	"github.com/pagemark/bookpace/internal/timer"
)

func newTimerRouter(s *store.Store, tracker *timer.Tracker) *gin.Engine {
	controller := NewTimerController(s, tracker)
	router := gin.New()
	router.GET("/api/timer", controller.GetTimerStatus)
	router.POST("/api/timer/start", controller.StartTimer)
	router.POST("/api/timer/stop", controller.StopTimer)
	router.POST("/api/timer/reset", controller.ResetTimer)
	return router
}

func TestStartTimer(t *testing.T) {
	s := newTestStore(t)
	bookID := addTestBook(t, s, 300)
	router := newTimerRouter(s, timer.NewTracker())

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
		"book_id":    bookID,
		"start_page": 25,
	})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var status timer.Status
	decodeBody(t, w, &status)

	if status.BookID != bookID {
		t.Errorf("expected timer bound to book %s, got %s", bookID, status.BookID)
	}
	if status.StartPage != 25 {
		t.Errorf("expected start page 25, got %d", status.StartPage)
	}
}

func TestStartTimerValidation(t *testing.T) {
	s := newTestStore(t)
	bookID := addTestBook(t, s, 100)
	router := newTimerRouter(s, timer.NewTracker())

	t.Run("missing book", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
			"book_id":    "no-such-id",
			"start_page": 1,
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})

	t.Run("start page out of bounds", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
			"book_id":    bookID,
			"start_page": 500,
		})
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestTimerStatusWhenIdle(t *testing.T) {
	s := newTestStore(t)
	router := newTimerRouter(s, timer.NewTracker())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/timer", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 when no timer runs, got %d", w.Code)
	}
}

func TestStopTimerWhenIdle(t *testing.T) {
	s := newTestStore(t)
	router := newTimerRouter(s, timer.NewTracker())

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/timer/stop", map[string]any{"end_page": 10})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestStopTimerTooShortLeavesTimerRunning(t *testing.T) {
	s := newTestStore(t)
	bookID := addTestBook(t, s, 300)
	tracker := timer.NewTracker()
	router := newTimerRouter(s, tracker)

	startReq := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
		"book_id":    bookID,
		"start_page": 1,
	})
	router.ServeHTTP(httptest.NewRecorder(), startReq)

	// Stopping immediately means zero elapsed seconds; the speed is undefined
	// and the session must be rejected without killing the timer.
	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/timer/stop", map[string]any{"end_page": 10})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}

	if _, running := tracker.Status(); !running {
		t.Error("expected timer to keep running after a rejected stop")
	}
	if sessions := s.SessionsByBook(bookID); len(sessions) != 0 {
		t.Errorf("expected no sessions recorded, got %d", len(sessions))
	}
}

func TestStopTimerEndPageBeyondBook(t *testing.T) {
	s := newTestStore(t)
	bookID := addTestBook(t, s, 100)
	router := newTimerRouter(s, timer.NewTracker())

	startReq := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
		"book_id":    bookID,
		"start_page": 1,
	})
	router.ServeHTTP(httptest.NewRecorder(), startReq)

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/timer/stop", map[string]any{"end_page": 150})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestResetTimer(t *testing.T) {
	s := newTestStore(t)
	bookID := addTestBook(t, s, 300)
	tracker := timer.NewTracker()
	router := newTimerRouter(s, tracker)

	startReq := jsonRequest(t, "POST", "/api/timer/start", map[string]any{
		"book_id":    bookID,
		"start_page": 1,
	})
	router.ServeHTTP(httptest.NewRecorder(), startReq)

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/timer/reset", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	if _, running := tracker.Status(); running {
		t.Error("expected timer to be idle after reset")
	}
	if sessions := s.SessionsByBook(bookID); len(sessions) != 0 {
		t.Errorf("expected no sessions recorded by reset, got %d", len(sessions))
	}
}
