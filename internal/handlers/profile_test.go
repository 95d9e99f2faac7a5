package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crucial707/daily-habits/internal/middleware"
	"github.com/crucial707/daily-habits/internal/models"
	"github.com/crucial707/daily-habits/internal/repo"
	"github.com/go-chi/chi/v5"
)

func newProfileRouter(t *testing.T, username string) chi.Router {
	t.Helper()
	users := repo.NewUserRepo(filepath.Join(t.TempDir(), "users.json"))
	if _, err := users.Register(username, "password123"); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	h := &ProfileHandler{Users: users}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.UsernameKey, username)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/v1/profile", h.GetProfile)
	r.Post("/v1/profile/theme", h.ToggleTheme)
	return r
}

func TestProfileHandler_GetProfile(t *testing.T) {
	r := newProfileRouter(t, "carol")

	rr := doJSON(t, r, "GET", "/v1/profile", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}

	var user models.User
	if err := json.NewDecoder(rr.Body).Decode(&user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Username != "carol" {
		t.Errorf("username: got %q, want carol", user.Username)
	}
	if user.Theme != models.ThemeLight {
		t.Errorf("theme: got %q, want %q", user.Theme, models.ThemeLight)
	}
	// The bcrypt hash must never appear in API responses.
	if body := rr.Body.String(); strings.Contains(body, "$2a$") || strings.Contains(body, "password") {
		t.Errorf("profile response leaks password material: %s", body)
	}
}

func TestProfileHandler_ToggleTheme(t *testing.T) {
	r := newProfileRouter(t, "dave")

	var out struct {
		Theme string `json:"theme"`
	}

	rr := doJSON(t, r, "POST", "/v1/profile/theme", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("first toggle status: got %d (%s)", rr.Code, rr.Body.String())
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Theme != models.ThemeDark {
		t.Errorf("first toggle: got %q, want %q", out.Theme, models.ThemeDark)
	}

	rr = doJSON(t, r, "POST", "/v1/profile/theme", nil)
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Theme != models.ThemeLight {
		t.Errorf("second toggle: got %q, want %q", out.Theme, models.ThemeLight)
	}
}
