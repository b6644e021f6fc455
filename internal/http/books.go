package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/store"
	"github.com/pagemark/bookpace/internal/tasks"
)

// BookStore defines the domain-store operations used by the books controller.
type BookStore interface {
	AddBook(book entities.Book) (string, error)
	UpdateBook(id string, patch store.BookPatch) error
	DeleteBook(id string) error
	GetBook(id string) (entities.Book, bool)
	ListBooks() []entities.Book
}

// CoverInvalidator removes cached cover files for a book.
type CoverInvalidator interface {
	InvalidateCover(bookID string) error
}

type BooksController struct {
	store      BookStore
	covers     CoverInvalidator
	taskClient *tasks.Client
}

func NewBooksController(store BookStore, covers CoverInvalidator, taskClient *tasks.Client) *BooksController {
	return &BooksController{store: store, covers: covers, taskClient: taskClient}
}

type createBookRequest struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	PublishedYear int    `json:"published_year"`
	TotalPages    int    `json:"total_pages"`
	CurrentPage   int    `json:"current_page"`
	Edition       string `json:"edition"`
	Publisher     string `json:"publisher"`
	CoverURL      string `json:"cover_url"`
	Rating        int    `json:"rating"`
	Description   string `json:"description"`
}

type updateBookRequest struct {
	Title         *string `json:"title"`
	Author        *string `json:"author"`
	PublishedYear *int    `json:"published_year"`
	TotalPages    *int    `json:"total_pages"`
	CurrentPage   *int    `json:"current_page"`
	Edition       *string `json:"edition"`
	Publisher     *string `json:"publisher"`
	CoverURL      *string `json:"cover_url"`
	Rating        *int    `json:"rating"`
	Description   *string `json:"description"`
}

// GetAllBooks returns the whole library.
// GET /api/books
func (bc *BooksController) GetAllBooks(c *gin.Context) {
	books := bc.store.ListBooks()
	c.IndentedJSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBook returns one book.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	book, ok := bc.store.GetBook(c.Param("id"))
	if !ok {
		respondNotFound(c, "book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}

// CreateBook adds a manually entered book.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if req.Title == "" {
		respondBadRequest(c, "title is required")
		return
	}
	if req.TotalPages <= 0 {
		respondBadRequest(c, "total pages must be a positive number")
		return
	}
	if req.CurrentPage < 0 || req.CurrentPage > req.TotalPages {
		respondBadRequest(c, "current page must be between 0 and the total page count")
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		respondBadRequest(c, "rating must be between 0 and 5")
		return
	}

	id, err := bc.store.AddBook(entities.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		TotalPages:    req.TotalPages,
		CurrentPage:   req.CurrentPage,
		Edition:       req.Edition,
		Publisher:     req.Publisher,
		CoverURL:      req.CoverURL,
		Rating:        req.Rating,
		Description:   req.Description,
	})
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}

	if bc.taskClient != nil && req.CoverURL != "" {
		task := tasks.PrefetchCoverTask{BookID: id, CoverURL: req.CoverURL}
		if _, err := bc.taskClient.Add(task).Save(); err != nil {
			log.Printf("WARNING: failed to enqueue cover prefetch for book %s: %v", id, err)
		}
	}

	book, _ := bc.store.GetBook(id)
	respondCreated(c, book)
}

// UpdateBook merges the provided fields into the book. An unknown id is a
// silent no-op, matching the store contract.
// PATCH /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id := c.Param("id")

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if book, ok := bc.store.GetBook(id); ok {
		totalPages := book.TotalPages
		if req.TotalPages != nil {
			totalPages = *req.TotalPages
			if totalPages <= 0 {
				respondBadRequest(c, "total pages must be a positive number")
				return
			}
		}
		if req.CurrentPage != nil && (*req.CurrentPage < 0 || *req.CurrentPage > totalPages) {
			respondBadRequest(c, "current page must be between 0 and the total page count")
			return
		}
		if req.Rating != nil && (*req.Rating < 0 || *req.Rating > 5) {
			respondBadRequest(c, "rating must be between 0 and 5")
			return
		}
	}

	err := bc.store.UpdateBook(id, store.BookPatch{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		TotalPages:    req.TotalPages,
		CurrentPage:   req.CurrentPage,
		Edition:       req.Edition,
		Publisher:     req.Publisher,
		CoverURL:      req.CoverURL,
		Rating:        req.Rating,
		Description:   req.Description,
	})
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	respondSuccess(c, "Book updated")
}

// DeleteBook removes the book and all notes and sessions that reference it.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id := c.Param("id")

	if err := bc.store.DeleteBook(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	if bc.covers != nil {
		if err := bc.covers.InvalidateCover(id); err != nil {
			log.Printf("WARNING: failed to invalidate cover cache for book %s: %v", id, err)
		}
	}

	respondSuccess(c, "Book deleted")
}
