package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/catalog"
	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/tasks"
)

// CatalogClient defines the external catalog operations used by the catalog
// controller.
type CatalogClient interface {
	Search(ctx context.Context, query string) ([]catalog.Volume, error)
	GetVolume(ctx context.Context, volumeID string) (*catalog.Volume, error)
}

// BookAdder is the store-side surface of a catalog import.
type BookAdder interface {
	AddBook(book entities.Book) (string, error)
	GetBook(id string) (entities.Book, bool)
}

type CatalogController struct {
	client     CatalogClient
	store      BookAdder
	taskClient *tasks.Client
}

func NewCatalogController(client CatalogClient, store BookAdder, taskClient *tasks.Client) *CatalogController {
	return &CatalogController{client: client, store: store, taskClient: taskClient}
}

type importRequest struct {
	VolumeID string `json:"volume_id"`
}

// SearchCatalog proxies a free-text search to the catalog and returns the hits
// already mapped into the internal book shape. Volumes missing their metadata
// envelope are skipped.
// GET /api/catalog/search?q=...
func (cc *CatalogController) SearchCatalog(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		respondBadRequest(c, "query parameter 'q' is required")
		return
	}

	volumes, err := cc.client.Search(c.Request.Context(), query)
	if err != nil {
		respondInternalError(c, err, "catalog search")
		return
	}

	results := make([]entities.Book, 0, len(volumes))
	for _, vol := range volumes {
		book, err := catalog.BookFromVolume(&vol)
		if err != nil {
			log.Printf("Skipping catalog volume %s: %v", vol.ID, err)
			continue
		}
		results = append(results, book)
	}

	c.IndentedJSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// ImportFromCatalog fetches a volume by id and stores it as a new book. When
// the task queue is running, a cover prefetch is enqueued so the first list
// render is served from the local cache.
// POST /api/books/import
func (cc *CatalogController) ImportFromCatalog(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.VolumeID == "" {
		respondBadRequest(c, "volume_id is required")
		return
	}

	volume, err := cc.client.GetVolume(c.Request.Context(), req.VolumeID)
	if err != nil {
		respondNotFound(c, "catalog volume")
		return
	}

	book, err := catalog.BookFromVolume(volume)
	if err != nil {
		respondBadRequest(c, "catalog volume has no usable metadata")
		return
	}

	id, err := cc.store.AddBook(book)
	if err != nil {
		respondInternalError(c, err, "import book")
		return
	}

	if cc.taskClient != nil && book.CoverURL != "" {
		task := tasks.PrefetchCoverTask{BookID: id, CoverURL: book.CoverURL}
		if _, err := cc.taskClient.Add(task).Save(); err != nil {
			log.Printf("WARNING: failed to enqueue cover prefetch for book %s: %v", id, err)
		}
	}

	stored, _ := cc.store.GetBook(id)
	respondCreated(c, stored)
}
