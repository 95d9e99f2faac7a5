package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/daily-habits/internal/achievements"
	"github.com/crucial707/daily-habits/internal/metrics"
	"github.com/crucial707/daily-habits/internal/middleware"
	"github.com/crucial707/daily-habits/internal/models"
	"github.com/crucial707/daily-habits/internal/repo"
	"github.com/go-chi/chi/v5"
)

// ==========================
// HabitHandler
// ==========================
type HabitHandler struct {
	Repo *repo.HabitRepo
}

// habitView is one habit plus its derived numbers for the week view.
type habitView struct {
	*models.Habit
	Streak           int  `json:"streak"`
	TotalCompletions int  `json:"total_completions"`
	WeeklyPercent    int  `json:"weekly_percent"`
	CompletedToday   bool `json:"completed_today"`
}

// ==========================
// List (week view: habits, stats, badges)
// ==========================
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	offset := 0
	if v := r.URL.Query().Get("week"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			JSONError(w, "invalid week offset", http.StatusBadRequest)
			return
		}
		offset = n
	}

	habits, err := h.Repo.Load(username)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	now := time.Now()
	today := now.Format(models.DateLayout)
	earliest := models.EarliestCreatedAt(habits)

	if !models.WeekInRange(now, offset, earliest) {
		JSONError(w, "week offset is before any habit existed", http.StatusBadRequest)
		return
	}
	week := models.WeekFor(now, offset, earliest)

	// Stats and badges cover every habit; the week filter only hides rows.
	totalCheckins := 0
	bestStreak := 0
	for _, habit := range habits {
		totalCheckins += habit.TotalCompletions()
		if s := habit.CurrentStreak(now); s > bestStreak {
			bestStreak = s
		}
	}

	visible := make([]*models.Habit, 0, len(habits))
	for _, habit := range habits {
		if habit.CreatedAt <= week.End {
			visible = append(visible, habit)
		}
	}
	models.SortForDisplay(visible, today)

	views := make([]habitView, 0, len(visible))
	for _, habit := range visible {
		views = append(views, habitView{
			Habit:            habit,
			Streak:           habit.CurrentStreak(now),
			TotalCompletions: habit.TotalCompletions(),
			WeeklyPercent:    habit.WeeklyPercentage(week.Dates),
			CompletedToday:   habit.IsCompletedOn(today),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"week":   week,
		"habits": views,
		"stats": map[string]int{
			"total_checkins": totalCheckins,
			"active_habits":  len(habits),
			"best_streak":    bestStreak,
		},
		"badges": achievements.BadgesFor(bestStreak, totalCheckins),
	})
}

// ==========================
// Create Habit
// ==========================
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		JSONValidationError(w, "validation failed",
			map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}

	var created *models.Habit
	_, err := h.Repo.Mutate(username, func(habits []*models.Habit) ([]*models.Habit, error) {
		for _, habit := range habits {
			if strings.EqualFold(habit.Name, name) {
				return nil, &repo.ValidationError{Msg: "habit already exists"}
			}
		}
		created = models.NewHabit(name, time.Now())
		return append(habits, created), nil
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	metrics.HabitsCreatedTotal.Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// ==========================
// Toggle Date
// ==========================
func (h *HabitHandler) ToggleDate(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var input struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if _, err := time.Parse(models.DateLayout, input.Date); err != nil {
		JSONValidationError(w, "validation failed",
			map[string]string{"date": "must be YYYY-MM-DD"}, http.StatusBadRequest)
		return
	}
	today := time.Now().Format(models.DateLayout)
	if input.Date > today {
		JSONValidationError(w, "validation failed",
			map[string]string{"date": "cannot check a future date"}, http.StatusBadRequest)
		return
	}

	var toggled *models.Habit
	_, err := h.Repo.Mutate(username, func(habits []*models.Habit) ([]*models.Habit, error) {
		for _, habit := range habits {
			if habit.ID == id {
				habit.ToggleDate(input.Date)
				toggled = habit
				return habits, nil
			}
		}
		return nil, repo.ErrNotFound
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}
	metrics.IncToggle(toggled.IsCompletedOn(input.Date))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toggled)
}

// ==========================
// Update Habit (rename)
// ==========================
func (h *HabitHandler) UpdateHabit(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	var input struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		JSONValidationError(w, "validation failed",
			map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}

	var updated *models.Habit
	_, err := h.Repo.Mutate(username, func(habits []*models.Habit) ([]*models.Habit, error) {
		for _, habit := range habits {
			if habit.ID != id && strings.EqualFold(habit.Name, name) {
				return nil, &repo.ValidationError{Msg: "habit already exists"}
			}
		}
		for _, habit := range habits {
			if habit.ID == id {
				habit.Name = name
				updated = habit
				return habits, nil
			}
		}
		return nil, repo.ErrNotFound
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

// ==========================
// Delete Habit
// ==========================
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	_, err := h.Repo.Mutate(username, func(habits []*models.Habit) ([]*models.Habit, error) {
		for i, habit := range habits {
			if habit.ID == id {
				return append(habits[:i], habits[i+1:]...), nil
			}
		}
		return nil, repo.ErrNotFound
	})
	if err != nil {
		respondRepoError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ==========================
// Badges
// ==========================
func (h *HabitHandler) GetBadges(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	habits, err := h.Repo.Load(username)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	now := time.Now()
	total := 0
	best := 0
	for _, habit := range habits {
		total += habit.TotalCompletions()
		if s := habit.CurrentStreak(now); s > best {
			best = s
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"max_streak":        best,
		"total_completions": total,
		"badges":            achievements.BadgesFor(best, total),
	})
}
