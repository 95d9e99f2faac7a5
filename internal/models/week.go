package models

import "time"

// Week is one Monday-to-Sunday window of the tracker, identified by a signed
// offset from the current week (0 = this week, -1 = last week, ...).
type Week struct {
	Offset    int      `json:"offset"`
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Dates     []string `json:"dates"`
	CanGoBack bool     `json:"can_go_back"`
}

// WeekStart returns the Monday of the week `offset` weeks away from today.
func WeekStart(today time.Time, offset int) time.Time {
	d := today.AddDate(0, 0, 7*offset)
	// time.Weekday counts Sunday as 0; shift so Monday is the week start.
	back := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -back)
}

// WeekFor builds the week window for the given offset. earliestCreated is the
// smallest created_at among the user's habits ("" when there are none); it
// bounds backward navigation so the view cannot go before any habit existed.
func WeekFor(today time.Time, offset int, earliestCreated string) Week {
	start := WeekStart(today, offset)
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return Week{
		Offset:    offset,
		Start:     dates[0],
		End:       dates[6],
		Dates:     dates,
		CanGoBack: earliestCreated != "" && weekEnd(today, offset-1) >= earliestCreated,
	}
}

// WeekInRange reports whether the window at the given offset is reachable:
// the current and future weeks always are, past weeks only while their end
// still overlaps the oldest habit.
func WeekInRange(today time.Time, offset int, earliestCreated string) bool {
	if offset >= 0 {
		return true
	}
	return earliestCreated != "" && weekEnd(today, offset) >= earliestCreated
}

func weekEnd(today time.Time, offset int) string {
	return WeekStart(today, offset).AddDate(0, 0, 6).Format(DateLayout)
}

// EarliestCreatedAt returns the smallest created_at across habits, or ""
// when the list is empty. ISO dates compare correctly as strings.
func EarliestCreatedAt(habits []*Habit) string {
	earliest := ""
	for _, h := range habits {
		if earliest == "" || h.CreatedAt < earliest {
			earliest = h.CreatedAt
		}
	}
	return earliest
}
