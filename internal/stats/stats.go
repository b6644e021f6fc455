// Package stats computes reading-speed metrics and completion projections.
// All functions are pure; every division guards its denominator.
package stats

import (
	"errors"
	"math"
	"time"

	"github.com/pagemark/bookpace/internal/entities"
)

const (
	// WordsPerPage is the assumed word density of a printed page.
	WordsPerPage = 250

	// DefaultWPM is the reading speed assumed when no sessions exist yet.
	DefaultWPM = 200
)

var (
	ErrZeroDuration  = errors.New("session duration must be positive")
	ErrInvalidBudget = errors.New("daily minutes must be positive")
	ErrInvalidDays   = errors.New("desired days must be positive")
)

// Projection is a forward-looking estimate of the effort left in a book.
type Projection struct {
	TotalMinutes int `json:"total_minutes"`
	DaysNeeded   int `json:"days_needed"`
	HoursNeeded  int `json:"hours_needed"`
}

// SessionWPM derives the words-per-minute speed of one reading interval.
// Returns ErrZeroDuration for non-positive durations; the speed is undefined
// there and must not be computed.
func SessionWPM(startPage, endPage, durationSeconds int) (int, error) {
	if durationSeconds <= 0 {
		return 0, ErrZeroDuration
	}
	words := float64((endPage - startPage) * WordsPerPage)
	minutes := float64(durationSeconds) / 60
	return int(math.Round(words / minutes)), nil
}

// AverageWPM is the arithmetic mean of the recorded session speeds, rounded
// to the nearest integer. Zero when no sessions exist.
func AverageWPM(sessions []entities.ReadingSession) int {
	if len(sessions) == 0 {
		return 0
	}
	total := 0
	for _, s := range sessions {
		total += s.WPM
	}
	return int(math.Round(float64(total) / float64(len(sessions))))
}

// ProgressPercent is the rounded share of pages read, clamped to [0,100].
// Zero when the book has no page count.
func ProgressPercent(currentPage, totalPages int) int {
	if totalPages <= 0 {
		return 0
	}
	percent := int(math.Round(float64(currentPage) / float64(totalPages) * 100))
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// Estimate projects the time needed to finish the remaining pages given a
// reading speed and a daily-minutes budget. A non-positive wpm falls back to
// DefaultWPM.
func Estimate(remainingPages, wpm, dailyMinutes int) (Projection, error) {
	if dailyMinutes <= 0 {
		return Projection{}, ErrInvalidBudget
	}
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	if remainingPages < 0 {
		remainingPages = 0
	}

	totalWords := float64(remainingPages * WordsPerPage)
	totalMinutes := totalWords / float64(wpm)

	return Projection{
		TotalMinutes: int(math.Round(totalMinutes)),
		DaysNeeded:   int(math.Ceil(totalMinutes / float64(dailyMinutes))),
		HoursNeeded:  int(math.Round(totalMinutes / 60)),
	}, nil
}

// RequiredDailyMinutes is the inverse projection: how many minutes per day a
// self-chosen deadline of desiredDays requires.
func RequiredDailyMinutes(remainingPages, wpm, desiredDays int) (int, error) {
	if desiredDays <= 0 {
		return 0, ErrInvalidDays
	}
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	if remainingPages < 0 {
		remainingPages = 0
	}

	totalMinutes := float64(remainingPages*WordsPerPage) / float64(wpm)
	return int(math.Ceil(totalMinutes / float64(desiredDays))), nil
}

// CompletionDate adds the projected day count to a reference date using
// whole-day arithmetic.
func CompletionDate(from time.Time, daysNeeded int) time.Time {
	return from.AddDate(0, 0, daysNeeded)
}
