package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/store"
)

// NoteStore defines the domain-store operations used by the notes controller.
type NoteStore interface {
	GetBook(id string) (entities.Book, bool)
	AddNote(note entities.Note) (string, error)
	UpdateNote(id string, patch store.NotePatch) error
	DeleteNote(id string) error
	GetNote(id string) (entities.Note, bool)
	NotesByBook(bookID string) []entities.Note
}

type NotesController struct {
	store NoteStore
}

func NewNotesController(store NoteStore) *NotesController {
	return &NotesController{store: store}
}

type createNoteRequest struct {
	Type    string `json:"type"`
	Page    int    `json:"page"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Type    *string `json:"type"`
	Page    *int    `json:"page"`
	Content *string `json:"content"`
}

// GetBookNotes lists a book's notes ordered by page. A book id that no longer
// exists yields an empty list rather than an error, so clients holding stale
// ids degrade gracefully.
// GET /api/books/:id/notes
func (nc *NotesController) GetBookNotes(c *gin.Context) {
	notes := nc.store.NotesByBook(c.Param("id"))
	c.IndentedJSON(http.StatusOK, gin.H{"notes": notes, "count": len(notes)})
}

// CreateNote attaches a note to a book.
// POST /api/books/:id/notes
func (nc *NotesController) CreateNote(c *gin.Context) {
	bookID := c.Param("id")

	book, ok := nc.store.GetBook(bookID)
	if !ok {
		respondNotFound(c, "book")
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	noteType := entities.NoteType(req.Type)
	if !entities.ValidNoteType(noteType) {
		respondBadRequest(c, "type must be one of: annotation, quotation, bookmark")
		return
	}
	if req.Page < 1 || req.Page > book.TotalPages {
		respondBadRequest(c, "page must be between 1 and the book's total page count")
		return
	}
	if req.Content == "" {
		respondBadRequest(c, "content is required")
		return
	}

	id, err := nc.store.AddNote(entities.Note{
		BookID:  bookID,
		Type:    noteType,
		Page:    req.Page,
		Content: req.Content,
	})
	if err != nil {
		respondInternalError(c, err, "create note")
		return
	}

	note, _ := nc.store.GetNote(id)
	respondCreated(c, note)
}

// UpdateNote merges the provided fields into the note. An unknown id is a
// silent no-op.
// PATCH /api/notes/:id
func (nc *NotesController) UpdateNote(c *gin.Context) {
	id := c.Param("id")

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	var noteType *entities.NoteType
	if req.Type != nil {
		converted := entities.NoteType(*req.Type)
		if !entities.ValidNoteType(converted) {
			respondBadRequest(c, "type must be one of: annotation, quotation, bookmark")
			return
		}
		noteType = &converted
	}
	if req.Content != nil && *req.Content == "" {
		respondBadRequest(c, "content cannot be empty")
		return
	}
	if note, ok := nc.store.GetNote(id); ok && req.Page != nil {
		if book, found := nc.store.GetBook(note.BookID); found {
			if *req.Page < 1 || *req.Page > book.TotalPages {
				respondBadRequest(c, "page must be between 1 and the book's total page count")
				return
			}
		}
	}

	err := nc.store.UpdateNote(id, store.NotePatch{
		Type:    noteType,
		Page:    req.Page,
		Content: req.Content,
	})
	if err != nil {
		respondInternalError(c, err, "update note")
		return
	}

	respondSuccess(c, "Note updated")
}

// DeleteNote removes a note. An unknown id is a silent no-op.
// DELETE /api/notes/:id
func (nc *NotesController) DeleteNote(c *gin.Context) {
	if err := nc.store.DeleteNote(c.Param("id")); err != nil {
		respondInternalError(c, err, "delete note")
		return
	}
	respondSuccess(c, "Note deleted")
}
