package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pagemark/bookpace/internal/entities"
	"github.com/pagemark/bookpace/internal/store"
)

// memBlobs is an in-memory blob store for handler tests.
type memBlobs struct {
	data map[string][]byte
}

func newMemBlobs() *memBlobs {
	return &memBlobs{data: make(map[string][]byte)}
}

func (m *memBlobs) Load(name string) ([]byte, error) {
	return m.data[name], nil
}

func (m *memBlobs) Save(name string, payload []byte) error {
	m.data[name] = payload
	return nil
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return store.New(newMemBlobs())
}

func addTestBook(t *testing.T, s *store.Store, totalPages int) string {
	t.Helper()
	id, err := s.AddBook(entities.Book{
		Title:      "The Test Book",
		Author:     "Test Author",
		TotalPages: totalPages,
	})
	if err != nil {
		t.Fatalf("failed to add test book: %v", err)
	}
	return id
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req, err := http.NewRequest(method, path, &buf)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response body %q: %v", w.Body.String(), err)
	}
}
