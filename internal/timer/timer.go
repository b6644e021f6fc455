// Package timer drives the timed reading session: a one-second tick counter
// with at most one active cycle at a time.
package timer

import (
	"errors"
	"sync"
	"time"

	"github.com/pagemark/bookpace/internal/stats"
)

var (
	ErrNotRunning  = errors.New("no reading timer is running")
	ErrTooShort    = errors.New("session is too short to record")
	ErrEndNotAfter = errors.New("end page must be greater than start page")
)

// Status is a snapshot of the running timer.
type Status struct {
	BookID    string    `json:"book_id"`
	StartPage int       `json:"start_page"`
	Seconds   int       `json:"seconds"`
	StartedAt time.Time `json:"started_at"`
}

// Interval is a completed reading interval, ready to be stored as a session.
type Interval struct {
	BookID    string
	StartPage int
	EndPage   int
	Duration  int // seconds
	WPM       int
}

// Tracker counts elapsed seconds for the active reading session. Starting a
// new cycle always clears any prior one, so at most one tick source is ever
// active.
type Tracker struct {
	mu       sync.Mutex
	interval time.Duration

	running   bool
	stop      chan struct{}
	bookID    string
	startPage int
	seconds   int
	startedAt time.Time
}

func NewTracker() *Tracker {
	return &Tracker{interval: time.Second}
}

// Start begins a new tick cycle for the given book and start page, replacing
// any running cycle.
func (t *Tracker) Start(bookID string, startPage int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.clearLocked()

	t.running = true
	t.bookID = bookID
	t.startPage = startPage
	t.seconds = 0
	t.startedAt = time.Now().UTC()
	t.stop = make(chan struct{})

	go t.tick(t.stop)
}

func (t *Tracker) tick(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			t.seconds++
			t.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// Status returns a snapshot of the running timer, or false when idle.
func (t *Tracker) Status() (Status, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return Status{}, false
	}
	return Status{
		BookID:    t.bookID,
		StartPage: t.startPage,
		Seconds:   t.seconds,
		StartedAt: t.startedAt,
	}, true
}

// Stop ends the running cycle and returns the completed interval with its
// derived reading speed. The elapsed count must be at least one second, since
// the speed is undefined for zero durations.
func (t *Tracker) Stop(endPage int) (Interval, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return Interval{}, ErrNotRunning
	}
	if endPage <= t.startPage {
		return Interval{}, ErrEndNotAfter
	}

	wpm, err := stats.SessionWPM(t.startPage, endPage, t.seconds)
	if err != nil {
		return Interval{}, ErrTooShort
	}

	interval := Interval{
		BookID:    t.bookID,
		StartPage: t.startPage,
		EndPage:   endPage,
		Duration:  t.seconds,
		WPM:       wpm,
	}
	t.clearLocked()
	return interval, nil
}

// Reset discards any running cycle without recording a session.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clearLocked()
}

func (t *Tracker) clearLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.running = false
	t.bookID = ""
	t.startPage = 0
	t.seconds = 0
}
