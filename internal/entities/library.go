package entities

import (
	"time"
)

type NoteType string

const (
	NoteTypeAnnotation NoteType = "annotation"
	NoteTypeQuotation  NoteType = "quotation"
	NoteTypeBookmark   NoteType = "bookmark"
)

// ValidNoteType reports whether t is one of the known note types.
func ValidNoteType(t NoteType) bool {
	switch t {
	case NoteTypeAnnotation, NoteTypeQuotation, NoteTypeBookmark:
		return true
	}
	return false
}

// Book is the root record of the library. Notes and reading sessions belong to
// exactly one book and are removed together with it.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	PublishedYear int       `json:"published_year,omitempty"`
	TotalPages    int       `json:"total_pages"`
	CurrentPage   int       `json:"current_page"`
	Edition       string    `json:"edition,omitempty"`
	Publisher     string    `json:"publisher,omitempty"`
	CoverURL      string    `json:"cover_url,omitempty"`
	Rating        int       `json:"rating"` // 0-5, 0 = unrated
	Description   string    `json:"description,omitempty"`
	ISBN          string    `json:"isbn,omitempty"`
	PublishedDate string    `json:"published_date,omitempty"`
	CatalogID     string    `json:"catalog_id,omitempty"` // Google Books volume id, when imported
	Language      string    `json:"language,omitempty"`
	Categories    string    `json:"categories,omitempty"` // comma-separated
	CreatedAt     time.Time `json:"created_at"`
}

// PagesRemaining returns the unread page count, never negative.
func (b Book) PagesRemaining() int {
	remaining := b.TotalPages - b.CurrentPage
	if remaining < 0 {
		return 0
	}
	return remaining
}

type Note struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Type      NoteType  `json:"type"`
	Page      int       `json:"page"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadingSession is one timed, contiguous reading interval. Sessions are
// immutable once recorded.
type ReadingSession struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	StartPage int       `json:"start_page"`
	EndPage   int       `json:"end_page"`
	Duration  int       `json:"duration"` // seconds
	WPM       int       `json:"wpm"`
	CreatedAt time.Time `json:"created_at"`
}
