package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/stats"
)

// StatsStore defines the domain-store operations used by the stats controller.
type StatsStore interface {
	GetBook(id string) (entities.Book, bool)
	SessionsByBook(bookID string) []entities.ReadingSession
}

type StatsController struct {
	store StatsStore
}

func NewStatsController(store StatsStore) *StatsController {
	return &StatsController{store: store}
}

type bookStatsResponse struct {
	ProgressPercent int `json:"progress_percent"`
	AverageWPM      int `json:"average_wpm"`
	PagesRemaining  int `json:"pages_remaining"`
	SessionCount    int `json:"session_count"`
}

type projectionResponse struct {
	stats.Projection
	CompletionDate       string `json:"completion_date"`
	RequiredDailyMinutes *int   `json:"required_daily_minutes,omitempty"`
}

// GetBookStats reports progress and average speed for a book.
// GET /api/books/:id/stats
func (st *StatsController) GetBookStats(c *gin.Context) {
	book, ok := st.store.GetBook(c.Param("id"))
	if !ok {
		respondNotFound(c, "book")
		return
	}

	sessions := st.store.SessionsByBook(book.ID)
	c.IndentedJSON(http.StatusOK, bookStatsResponse{
		ProgressPercent: stats.ProgressPercent(book.CurrentPage, book.TotalPages),
		AverageWPM:      stats.AverageWPM(sessions),
		PagesRemaining:  book.PagesRemaining(),
		SessionCount:    len(sessions),
	})
}

// GetBookProjection estimates the effort left in a book against a daily
// reading budget. With desired_days set, it also reports the daily minutes
// that deadline would require.
// GET /api/books/:id/projection?daily_minutes=30&desired_days=14
func (st *StatsController) GetBookProjection(c *gin.Context) {
	book, ok := st.store.GetBook(c.Param("id"))
	if !ok {
		respondNotFound(c, "book")
		return
	}

	dailyMinutes, err := strconv.Atoi(c.DefaultQuery("daily_minutes", "30"))
	if err != nil || dailyMinutes <= 0 {
		respondBadRequest(c, "daily_minutes must be a positive integer")
		return
	}

	avgWPM := stats.AverageWPM(st.store.SessionsByBook(book.ID))
	projection, err := stats.Estimate(book.PagesRemaining(), avgWPM, dailyMinutes)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	resp := projectionResponse{
		Projection:     projection,
		CompletionDate: stats.CompletionDate(time.Now().UTC(), projection.DaysNeeded).Format("2006-01-02"),
	}

	if raw := c.Query("desired_days"); raw != "" {
		desiredDays, err := strconv.Atoi(raw)
		if err != nil || desiredDays <= 0 {
			respondBadRequest(c, "desired_days must be a positive integer")
			return
		}
		required, err := stats.RequiredDailyMinutes(book.PagesRemaining(), avgWPM, desiredDays)
		if err != nil {
			respondBadRequest(c, err.Error())
			return
		}
		resp.RequiredDailyMinutes = &required
	}

	c.IndentedJSON(http.StatusOK, resp)
}
