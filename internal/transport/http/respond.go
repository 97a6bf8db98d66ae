package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"emotrack/internal/domain"
	"emotrack/internal/store"

	"github.com/go-chi/chi/v5"
)

// errorBody mirrors the boom-style payload the API has always returned.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// writeError maps domain error kinds to statuses: NotFound→404, Conflict→409,
// Unauthorized→401 (always the same generic body), Validation→400. Raw
// constraint violations that escaped the services keep the original
// conventions: unique→409, foreign key→400.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{
			StatusCode: http.StatusUnauthorized,
			Error:      "Unauthorized",
			Message:    "unauthorized",
		})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorBody{
			StatusCode: http.StatusNotFound,
			Error:      "Not Found",
			Message:    err.Error(),
		})
	case domain.IsConflict(err) || store.IsUniqueViolation(err):
		writeJSON(w, http.StatusConflict, errorBody{
			StatusCode: http.StatusConflict,
			Error:      "Conflict",
			Message:    err.Error(),
		})
	case domain.IsValidation(err) || store.IsForeignKeyViolation(err):
		writeJSON(w, http.StatusBadRequest, errorBody{
			StatusCode: http.StatusBadRequest,
			Error:      "Bad Request",
			Message:    err.Error(),
		})
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			StatusCode: http.StatusInternalServerError,
			Error:      "Internal Server Error",
			Message:    "internal server error",
		})
	}
}

func decode(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return domain.Invalid("malformed request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("invalid %s", name)
	}
	return id, nil
}

// pageParams reads optional limit/offset query parameters; limit == 0 means
// no pagination.
func pageParams(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return 0, 0, domain.Invalid("invalid limit")
		}
	}
	if v := q.Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, domain.Invalid("invalid offset")
		}
	}
	return limit, offset, nil
}
