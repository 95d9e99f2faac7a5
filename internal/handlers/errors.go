package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/crucial707/daily-habits/internal/repo"
)

// ErrMessageInternal is the generic message for 500 responses. Do not expose internal details to clients.
const ErrMessageInternal = "internal server error"

// JSONError sends a JSON error response with a single "error" field.
func JSONError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// JSONValidationError sends a JSON error response with "error" and optional "fields" for field-level details.
// status is typically http.StatusBadRequest (400).
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	out := map[string]interface{}{"error": message}
	if len(fields) > 0 {
		out["fields"] = fields
	}
	json.NewEncoder(w).Encode(out)
}

// respondRepoError maps store errors onto HTTP responses. Storage failures are
// logged with detail but reported generically.
func respondRepoError(w http.ResponseWriter, err error) {
	var verr *repo.ValidationError
	if errors.As(err, &verr) {
		JSONError(w, verr.Msg, http.StatusBadRequest)
		return
	}
	if errors.Is(err, repo.ErrDuplicateUser) {
		JSONError(w, "username already registered", http.StatusConflict)
		return
	}
	if errors.Is(err, repo.ErrNotFound) {
		JSONError(w, "not found", http.StatusNotFound)
		return
	}
	var serr *repo.StorageError
	if errors.As(err, &serr) {
		slog.Error("storage failure", "op", serr.Op, "path", serr.Path, "err", serr.Err)
	}
	JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
}
