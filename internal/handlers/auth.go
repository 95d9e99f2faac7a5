package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crucial707/daily-habits/internal/metrics"
	"github.com/crucial707/daily-habits/internal/repo"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	Users       *repo.UserRepo
	Secret      []byte
	ExpireHours int
}

// ==========================
// Register (password stored as bcrypt hash; logs the new account in)
// ==========================
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username        string `json:"username" validate:"required"`
		Password        string `json:"password" validate:"required"`
		ConfirmPassword string `json:"confirm_password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		JSONValidationError(w, "validation failed",
			map[string]string{"confirm_password": "passwords do not match"}, http.StatusBadRequest)
		return
	}

	user, err := h.Users.Register(input.Username, input.Password)
	if err != nil {
		respondRepoError(w, err)
		return
	}
	metrics.RegistrationsTotal.Inc()

	token, err := h.issueToken(user.Username)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ==========================
// Login (unknown user and wrong password both answer 401)
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := h.Users.Authenticate(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) || errors.Is(err, repo.ErrInvalidPassword) {
			JSONError(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		respondRepoError(w, err)
		return
	}

	token, err := h.issueToken(user.Username)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) issueToken(username string) (string, error) {
	hours := h.ExpireHours
	if hours <= 0 {
		hours = 24
	}
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(time.Duration(hours) * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.Secret)
}
