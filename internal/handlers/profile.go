package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/crucial707/daily-habits/internal/middleware"
	"github.com/crucial707/daily-habits/internal/repo"
)

// ProfileHandler serves the authenticated account and its theme preference.
type ProfileHandler struct {
	Users *repo.UserRepo
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Users.GetByUsername(username)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// ToggleTheme flips the persisted theme between light and dark.
func (h *ProfileHandler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsername(r.Context())
	if !ok {
		JSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	theme, err := h.Users.ToggleTheme(username)
	if err != nil {
		respondRepoError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"theme": theme})
}
