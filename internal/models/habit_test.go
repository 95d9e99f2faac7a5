package models

import (
	"reflect"
	"testing"
	"time"
)

func day(t time.Time, offset int) string {
	return t.AddDate(0, 0, offset).Format(DateLayout)
}

func TestHabit_ToggleDate(t *testing.T) {
	h := NewHabit("read", time.Now())
	date := "2025-03-10"

	h.ToggleDate(date)
	if !h.IsCompletedOn(date) {
		t.Fatal("date should be checked after first toggle")
	}
	if h.TotalCompletions() != 1 {
		t.Errorf("TotalCompletions: got %d, want 1", h.TotalCompletions())
	}

	h.ToggleDate(date)
	if h.IsCompletedOn(date) {
		t.Fatal("date should be unchecked after second toggle")
	}
	if h.TotalCompletions() != 0 {
		t.Errorf("TotalCompletions: got %d, want 0", h.TotalCompletions())
	}
}

func TestHabit_ToggleDate_PairRestoresSet(t *testing.T) {
	h := &Habit{CompletedDates: []string{"2025-03-01", "2025-03-02", "2025-03-03"}}
	original := append([]string{}, h.CompletedDates...)

	h.ToggleDate("2025-03-05")
	h.ToggleDate("2025-03-05")

	if !reflect.DeepEqual(h.CompletedDates, original) {
		t.Errorf("double toggle changed the set: got %v, want %v", h.CompletedDates, original)
	}
}

func TestHabit_CurrentStreak(t *testing.T) {
	now := time.Now()

	h := &Habit{CompletedDates: []string{day(now, 0), day(now, -1), day(now, -2)}}
	if got := h.CurrentStreak(now); got != 3 {
		t.Errorf("streak with today..today-2: got %d, want 3", got)
	}

	empty := &Habit{CompletedDates: []string{}}
	if got := empty.CurrentStreak(now); got != 0 {
		t.Errorf("streak with no check-ins: got %d, want 0", got)
	}
}

func TestHabit_CurrentStreak_ForgivesUncheckedToday(t *testing.T) {
	now := time.Now()

	h := &Habit{CompletedDates: []string{day(now, -1)}}
	if got := h.CurrentStreak(now); got != 1 {
		t.Errorf("streak with only yesterday checked: got %d, want 1", got)
	}

	h = &Habit{CompletedDates: []string{day(now, -1), day(now, -2), day(now, -3)}}
	if got := h.CurrentStreak(now); got != 3 {
		t.Errorf("streak with yesterday..today-3: got %d, want 3", got)
	}

	// A gap before yesterday still breaks the streak.
	h = &Habit{CompletedDates: []string{day(now, -1), day(now, -3)}}
	if got := h.CurrentStreak(now); got != 1 {
		t.Errorf("streak with gap at today-2: got %d, want 1", got)
	}
}

func TestHabit_WeeklyPercentage(t *testing.T) {
	now := time.Now()
	period := make([]string, 7)
	for i := range period {
		period[i] = day(now, i)
	}

	h := &Habit{CompletedDates: []string{period[0], period[2], period[4]}}
	if got := h.WeeklyPercentage(period); got != 43 {
		t.Errorf("3 of 7: got %d, want 43", got)
	}

	none := &Habit{}
	if got := none.WeeklyPercentage(period); got != 0 {
		t.Errorf("0 of 7: got %d, want 0", got)
	}

	all := &Habit{CompletedDates: period}
	if got := all.WeeklyPercentage(period); got != 100 {
		t.Errorf("7 of 7: got %d, want 100", got)
	}
}

func TestNewHabit(t *testing.T) {
	now := time.Now()
	a := NewHabit("run", now)
	b := NewHabit("run", now)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids must be unique and non-empty: %q vs %q", a.ID, b.ID)
	}
	if a.CreatedAt != now.Format(DateLayout) {
		t.Errorf("CreatedAt: got %q, want today", a.CreatedAt)
	}
	if len(a.CompletedDates) != 0 {
		t.Errorf("new habit should start with no check-ins: %v", a.CompletedDates)
	}
}

func TestSortForDisplay(t *testing.T) {
	now := time.Now()
	today := now.Format(DateLayout)

	zebra := &Habit{Name: "Zebra walk", CompletedDates: []string{today}}
	apple := &Habit{Name: "apple eating"}
	bread := &Habit{Name: "Bake bread"}

	habits := []*Habit{apple, zebra, bread}
	SortForDisplay(habits, today)

	want := []string{"Zebra walk", "apple eating", "Bake bread"}
	for i, h := range habits {
		if h.Name != want[i] {
			t.Fatalf("position %d: got %q, want %q (full order: %v)", i, h.Name, want[i], names(habits))
		}
	}
}

func names(habits []*Habit) []string {
	out := make([]string, len(habits))
	for i, h := range habits {
		out[i] = h.Name
	}
	return out
}
