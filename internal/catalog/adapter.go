package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/pagemark/bookpace/internal/entities"
)

// BookFromVolume maps a catalog volume into a book payload ready for the
// domain store. Missing optional fields become zero values; only a missing
// metadata envelope is an error, meaning the record was not found.
func BookFromVolume(v *Volume) (entities.Book, error) {
	if v == nil || v.VolumeInfo == nil {
		return entities.Book{}, fmt.Errorf("volume metadata not found")
	}
	info := v.VolumeInfo

	author := "Unknown"
	if len(info.Authors) > 0 {
		author = strings.Join(info.Authors, ", ")
	}

	coverURL := ""
	if info.ImageLinks != nil {
		coverURL = info.ImageLinks.Thumbnail
	}

	return entities.Book{
		Title:         info.Title,
		Author:        author,
		TotalPages:    info.PageCount,
		CoverURL:      coverURL,
		Description:   info.Description,
		ISBN:          preferredISBN(info.IndustryIdentifiers),
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		PublishedYear: extractYear(info.PublishedDate),
		CatalogID:     v.ID,
		Language:      info.Language,
		Categories:    strings.Join(info.Categories, ", "),
	}, nil
}

// preferredISBN picks one identifier by priority: ISBN-13, then ISBN-10, then
// empty.
func preferredISBN(identifiers []IndustryIdentifier) string {
	isbn10 := ""
	for _, id := range identifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			if isbn10 == "" {
				isbn10 = id.Identifier
			}
		}
	}
	return isbn10
}

// extractYear pulls a 4-digit year out of a published-date string.
// Best-effort only: catalog dates arrive in several layouts, so known formats
// are tried first and any 4-digit run is the fallback. Returns 0 when nothing
// parses.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	formats := []string{
		"2006",
		"2006-01",
		"2006-01-02",
		"January 2, 2006",
		"January 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Year()
		}
	}

	for i := 0; i <= len(dateStr)-4; i++ {
		if dateStr[i] < '0' || dateStr[i] > '9' {
			continue
		}
		var year int
		if _, err := fmt.Sscanf(dateStr[i:i+4], "%d", &year); err == nil && year > 1000 && year < 3000 {
			return year
		}
	}

	return 0
}
