package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ledgerline/backend/internal/repository"
	"github.com/ledgerline/backend/internal/service"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// decodeJSON reads the request body into dst, writing 400 invalid_json on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body_too_large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}

// pathID returns the {id} path value in canonical form. Anything that is not a
// UUID cannot name a row, so it gets 404 not_found without a database round trip.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return "", false
	}
	return id.String(), true
}

// writeServiceError maps service and repository errors onto HTTP responses.
// fallback is the code used for unexpected failures, which are logged.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if ve, ok := service.AsValidation(err); ok {
		writeError(w, http.StatusBadRequest, ve.Code)
		return
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status")
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition")
	case errors.Is(err, service.ErrAlreadyConverted):
		writeError(w, http.StatusConflict, "already_converted")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, "conflict")
	default:
		slog.Error(fallback, "error", err, "method", r.Method, "path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()))
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// page reads limit (default 20, max 100) and offset from the query string.
// Out-of-range values fall back to the defaults.
func page(r *http.Request) (limit, offset int) {
	limit = 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

type statusRequest struct {
	Status string `json:"status"`
}
