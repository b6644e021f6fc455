package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/pagemark/bookpace/internal/covers"
)

// PrefetchCoverTask downloads a book's cover into the local cache so the
// first list render never waits on the image host.
type PrefetchCoverTask struct {
	BookID   string `json:"book_id"`
	CoverURL string `json:"cover_url"`
}

// Config returns the queue configuration for cover prefetch tasks.
func (t PrefetchCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "prefetch_cover",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PrefetchCoverProcessor creates a processor function for PrefetchCoverTask.
func PrefetchCoverProcessor(cache *covers.Cache) backlite.QueueProcessor[PrefetchCoverTask] {
	return func(ctx context.Context, task PrefetchCoverTask) error {
		if cache == nil {
			return fmt.Errorf("cover cache not configured")
		}
		if task.CoverURL == "" {
			return nil
		}

		path, err := cache.GetCover(task.BookID, task.CoverURL)
		if err != nil {
			return fmt.Errorf("prefetch cover for book %s: %w", task.BookID, err)
		}

		log.Printf("[TASK] Cached cover for book %s at %s", task.BookID, path)
		return nil
	}
}

// NewPrefetchCoverQueue creates a backlite queue for cover prefetch tasks.
func NewPrefetchCoverQueue(cache *covers.Cache) backlite.Queue {
	return backlite.NewQueue(PrefetchCoverProcessor(cache))
}
