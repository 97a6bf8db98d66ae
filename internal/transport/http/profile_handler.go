package http

import (
	"net/http"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/service"

	"github.com/go-chi/chi/v5"
)

// ProfileHandler serves /students, /professors and /health-staff from one
// generic implementation, matching the generic profile service underneath.
type ProfileHandler[T domain.Profile] struct {
	Profiles service.ProfileService[T]
}

func (h *ProfileHandler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	return r
}

func (h *ProfileHandler[T]) list(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Profiles.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *ProfileHandler[T]) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := h.Profiles.CreateWithAccount(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *ProfileHandler[T]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := h.Profiles.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler[T]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := h.Profiles.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler[T]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Profiles.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
