package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
)

// CoverCache fetches and caches cover images locally.
type CoverCache interface {
	GetCover(bookID, coverURL string) (string, error)
}

// BookGetter looks up a single book.
type BookGetter interface {
	GetBook(id string) (entities.Book, bool)
}

type CoversController struct {
	store BookGetter
	cache CoverCache
}

func NewCoversController(store BookGetter, cache CoverCache) *CoversController {
	return &CoversController{store: store, cache: cache}
}

// GetCover serves the book's cover image from the local cache, fetching it on
// first access. Books without a cover URL get a 204.
// GET /api/books/:id/cover
func (cc *CoversController) GetCover(c *gin.Context) {
	book, ok := cc.store.GetBook(c.Param("id"))
	if !ok {
		respondNotFound(c, "book")
		return
	}

	if book.CoverURL == "" {
		c.Status(http.StatusNoContent)
		return
	}

	path, err := cc.cache.GetCover(book.ID, book.CoverURL)
	if err != nil {
		respondInternalError(c, err, "fetch cover")
		return
	}

	c.File(path)
}
