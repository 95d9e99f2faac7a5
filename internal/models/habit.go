package models

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used everywhere in the app,
// including the persisted files ("YYYY-MM-DD").
const DateLayout = "2006-01-02"

// Habit is one tracked habit. CompletedDates behaves as a set of
// "YYYY-MM-DD" strings; order is not significant and duplicates never occur.
// The JSON tags match the on-disk record format.
type Habit struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	CompletedDates []string `json:"completed_dates"`
	CreatedAt      string   `json:"created_at"`
}

// NewHabit creates a habit with a fresh ID and created_at set to today.
func NewHabit(name string, today time.Time) *Habit {
	return &Habit{
		ID:             uuid.NewString(),
		Name:           name,
		CompletedDates: []string{},
		CreatedAt:      today.Format(DateLayout),
	}
}

// IsCompletedOn reports whether the habit was checked on the given date.
func (h *Habit) IsCompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// ToggleDate checks the date if unchecked, or unchecks it if checked.
// Toggling the same date twice restores the original set. The caller is
// responsible for rejecting dates after today; the record itself does not.
func (h *Habit) ToggleDate(date string) {
	for i, d := range h.CompletedDates {
		if d == date {
			h.CompletedDates = append(h.CompletedDates[:i], h.CompletedDates[i+1:]...)
			return
		}
	}
	h.CompletedDates = append(h.CompletedDates, date)
}

// CurrentStreak counts consecutive checked days walking backward from today.
// If today itself is not yet checked the walk starts at yesterday, so an
// unfinished "today" does not zero out a continuing streak.
func (h *Habit) CurrentStreak(today time.Time) int {
	cursor := today
	if !h.IsCompletedOn(cursor.Format(DateLayout)) {
		cursor = cursor.AddDate(0, 0, -1)
	}

	streak := 0
	for h.IsCompletedOn(cursor.Format(DateLayout)) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

// TotalCompletions is the number of days the habit was ever checked.
func (h *Habit) TotalCompletions() int {
	return len(h.CompletedDates)
}

// WeeklyPercentage returns the rounded percentage of the given 7-day period
// on which the habit was checked (0..100).
func (h *Habit) WeeklyPercentage(period []string) int {
	checks := 0
	for _, d := range period {
		if h.IsCompletedOn(d) {
			checks++
		}
	}
	return int(float64(checks)/7.0*100.0 + 0.5)
}

// SortForDisplay orders habits for the week view: habits checked today come
// first, then case-insensitive alphabetical by name.
func SortForDisplay(habits []*Habit, today string) {
	sort.SliceStable(habits, func(i, j int) bool {
		di := habits[i].IsCompletedOn(today)
		dj := habits[j].IsCompletedOn(today)
		if di != dj {
			return di
		}
		return strings.ToLower(habits[i].Name) < strings.ToLower(habits[j].Name)
	})
}
