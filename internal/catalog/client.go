// Package catalog looks up book metadata in the Google Books volumes API and
// maps it into the internal book shape.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const defaultBaseURL = "https://www.googleapis.com/books/v1"

// Volume is one catalog record. VolumeInfo is the metadata envelope; a volume
// without it is treated as not found.
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo *VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	PageCount           int                  `json:"pageCount"`
	Description         string               `json:"description"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Language            string               `json:"language"`
	Categories          []string             `json:"categories"`
	ImageLinks          *ImageLinks          `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Client queries the Google Books API with rate limiting.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a Google Books client. The API key is optional for the
// volumes endpoints but raises quota limits when set.
func NewClient(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     defaultBaseURL,
		apiKey:      apiKey,
		rateLimiter: newRateLimiter(time.Second),
	}
}

// Search runs a free-text volume search and returns the raw catalog hits.
func (c *Client) Search(ctx context.Context, query string) ([]Volume, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	c.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/volumes?q=%s", c.baseURL, url.QueryEscape(query))
	if c.apiKey != "" {
		searchURL += "&key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Bookpace/1.0 (https://github.com/pagemark/bookpace)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search volumes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return result.Items, nil
}

// GetVolume fetches a single volume by its catalog id.
func (c *Client) GetVolume(ctx context.Context, volumeID string) (*Volume, error) {
	if volumeID == "" {
		return nil, fmt.Errorf("volume id is required")
	}

	c.rateLimiter.wait()

	volumeURL := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(volumeID))
	if c.apiKey != "" {
		volumeURL += "?key=" + url.QueryEscape(c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, volumeURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Bookpace/1.0 (https://github.com/pagemark/bookpace)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch volume: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("volume not found: %s", volumeID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var volume Volume
	if err := json.NewDecoder(resp.Body).Decode(&volume); err != nil {
		return nil, fmt.Errorf("decode volume response: %w", err)
	}

	return &volume, nil
}
