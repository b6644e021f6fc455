package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/catalog"
	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/store"
)

type mockCatalogClient struct {
	volumes   []catalog.Volume
	searchErr error
}

func (m *mockCatalogClient) Search(ctx context.Context, query string) ([]catalog.Volume, error) {
	return m.volumes, m.searchErr
}

func (m *mockCatalogClient) GetVolume(ctx context.Context, volumeID string) (*catalog.Volume, error) {
	for i := range m.volumes {
		if m.volumes[i].ID == volumeID {
			return &m.volumes[i], nil
		}
	}
	return nil, fmt.Errorf("volume not found: %s", volumeID)
}

func newCatalogRouter(client CatalogClient, s *store.Store) *gin.Engine {
	controller := NewCatalogController(client, s, nil)
	router := gin.New()
	router.GET("/api/catalog/search", controller.SearchCatalog)
	router.POST("/api/books/import", controller.ImportFromCatalog)
	return router
}

func TestSearchCatalog(t *testing.T) {
	s := newTestStore(t)
	client := &mockCatalogClient{
		volumes: []catalog.Volume{
			{
				ID: "vol-1",
				VolumeInfo: &catalog.VolumeInfo{
					Title:     "Dune",
					Authors:   []string{"Frank Herbert"},
					PageCount: 412,
				},
			},
			{ID: "vol-broken"}, // No metadata envelope, must be skipped
		},
	}
	router := newCatalogRouter(client, s)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/catalog/search?q=dune", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Results []entities.Book `json:"results"`
		Count   int             `json:"count"`
	}
	decodeBody(t, w, &resp)

	if resp.Count != 1 {
		t.Fatalf("expected 1 result after skipping broken volume, got %d", resp.Count)
	}
	if resp.Results[0].Title != "Dune" {
		t.Errorf("expected title Dune, got %q", resp.Results[0].Title)
	}
	if resp.Results[0].Author != "Frank Herbert" {
		t.Errorf("expected author Frank Herbert, got %q", resp.Results[0].Author)
	}
}

func TestSearchCatalogRequiresQuery(t *testing.T) {
	s := newTestStore(t)
	router := newCatalogRouter(&mockCatalogClient{}, s)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/catalog/search", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestImportFromCatalog(t *testing.T) {
	s := newTestStore(t)
	client := &mockCatalogClient{
		volumes: []catalog.Volume{
			{
				ID: "vol-1",
				VolumeInfo: &catalog.VolumeInfo{
					Title:         "Dune",
					Authors:       []string{"Frank Herbert"},
					PageCount:     412,
					PublishedDate: "1965-08-01",
					IndustryIdentifiers: []catalog.IndustryIdentifier{
						{Type: "ISBN_13", Identifier: "9780441013593"},
					},
				},
			},
		},
	}
	router := newCatalogRouter(client, s)

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/books/import", map[string]any{"volume_id": "vol-1"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var book entities.Book
	decodeBody(t, w, &book)

	if book.ID == "" {
		t.Error("expected imported book to have an id")
	}
	if book.CatalogID != "vol-1" {
		t.Errorf("expected catalog id vol-1, got %q", book.CatalogID)
	}
	if book.ISBN != "9780441013593" {
		t.Errorf("expected ISBN-13, got %q", book.ISBN)
	}
	if book.PublishedYear != 1965 {
		t.Errorf("expected published year 1965, got %d", book.PublishedYear)
	}

	if books := s.ListBooks(); len(books) != 1 {
		t.Errorf("expected 1 stored book, got %d", len(books))
	}
}

func TestImportFromCatalogUnknownVolume(t *testing.T) {
	s := newTestStore(t)
	router := newCatalogRouter(&mockCatalogClient{}, s)

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/books/import", map[string]any{"volume_id": "nope"})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestImportFromCatalogRequiresVolumeID(t *testing.T) {
	s := newTestStore(t)
	router := newCatalogRouter(&mockCatalogClient{}, s)

	w := httptest.NewRecorder()
	req := jsonRequest(t, "POST", "/api/books/import", map[string]any{})
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
