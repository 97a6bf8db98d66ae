package http

import (
	"net/http"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/service"
)

type EmotionHandler struct {
	Emotions service.EmotionService
}

// listByStudent serves GET /students/{id}/emotions with an optional
// from/to RFC 3339 range.
func (h *EmotionHandler) listByStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	fromStr, toStr := q.Get("from"), q.Get("to")
	if fromStr != "" || toStr != "" {
		from, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			writeError(w, r, domain.Invalid("invalid from timestamp"))
			return
		}
		to, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			writeError(w, r, domain.Invalid("invalid to timestamp"))
			return
		}
		entries, err := h.Emotions.ListByStudentBetween(r.Context(), id, from, to)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
		return
	}

	entries, err := h.Emotions.ListByStudent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// createOwn logs an emotion for the student behind the session token.
func (h *EmotionHandler) createOwn(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEmotionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	entry, err := h.Emotions.CreateByStudentAccount(r.Context(), claims.AccountID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// listOwn returns the authenticated student's own entries.
func (h *EmotionHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	entries, err := h.Emotions.ListByStudentAccount(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
