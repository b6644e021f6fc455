package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/covers"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Store, coverInvalidator(cfg.CoverCache), cfg.TaskClient)
	notesController := NewNotesController(cfg.Store)
	sessionsController := NewSessionsController(cfg.Store)
	statsController := NewStatsController(cfg.Store)
	timerController := NewTimerController(cfg.Store, cfg.Tracker)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Books API endpoints
	router.GET("/api/books", booksController.GetAllBooks)
	router.POST("/api/books", booksController.CreateBook)
	router.GET("/api/books/:id", booksController.GetBook)
	router.PATCH("/api/books/:id", booksController.UpdateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)

	// Notes endpoints
	router.GET("/api/books/:id/notes", notesController.GetBookNotes)
	router.POST("/api/books/:id/notes", notesController.CreateNote)
	router.PATCH("/api/notes/:id", notesController.UpdateNote)
	router.DELETE("/api/notes/:id", notesController.DeleteNote)

	// Session endpoints
	router.GET("/api/books/:id/sessions", sessionsController.GetBookSessions)
	router.POST("/api/books/:id/sessions", sessionsController.CreateSession)

	// Statistics endpoints
	router.GET("/api/books/:id/stats", statsController.GetBookStats)
	router.GET("/api/books/:id/projection", statsController.GetBookProjection)

	// Reading timer endpoints
	router.GET("/api/timer", timerController.GetTimerStatus)
	router.POST("/api/timer/start", timerController.StartTimer)
	router.POST("/api/timer/stop", timerController.StopTimer)
	router.POST("/api/timer/reset", timerController.ResetTimer)

	// Catalog endpoints
	if cfg.CatalogClient != nil {
		catalogController := NewCatalogController(cfg.CatalogClient, cfg.Store, cfg.TaskClient)
		router.GET("/api/catalog/search", catalogController.SearchCatalog)
		router.POST("/api/books/import", catalogController.ImportFromCatalog)
	}

	// Book cover endpoint
	if cfg.CoverCache != nil {
		coversController := NewCoversController(cfg.Store, cfg.CoverCache)
		router.GET("/api/books/:id/cover", coversController.GetCover)
	}

	return router
}

// coverInvalidator adapts an optional cache pointer to the CoverInvalidator
// interface without producing a typed-nil interface value.
func coverInvalidator(cache *covers.Cache) CoverInvalidator {
	if cache == nil {
		return nil
	}
	return cache
}
