package http

import (
	"net/http"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/service"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	Courses service.CourseService
}

func (h *CourseHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.search)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(RequireRoles(domain.RoleAdmin))
		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/enrollments", h.enroll)
		r.Delete("/{id}/enrollments/{studentID}", h.unenroll)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireRoles(domain.RoleAdmin, domain.RoleProfessor))
		r.Patch("/{id}", h.update)
		r.Post("/{id}/deactivate", h.deactivate)
	})

	r.With(RequireRoles(domain.RoleProfessor)).Post("/own", h.createOwn)

	r.Group(func(r chi.Router) {
		r.Use(RequireRoles(domain.RoleStudent))
		r.Post("/{id}/enroll", h.enrollSelf)
		r.Post("/{id}/unenroll", h.unenrollSelf)
	})

	return r
}

func (h *CourseHandler) search(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	page, err := h.Courses.Search(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CourseHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	course, err := h.Courses.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCourseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	course, err := h.Courses.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

// createOwn forces ownership to the professor behind the session token.
func (h *CourseHandler) createOwn(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCourseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	course, err := h.Courses.CreateByProfessorToken(r.Context(), req, claims.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, course)
}

func (h *CourseHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.UpdateCourseRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	course, err := h.Courses.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	course, err := h.Courses.Deactivate(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Courses.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandler) enroll(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req dto.EnrollRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	enrollment, err := h.Courses.Enroll(r.Context(), id, req.StudentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollment)
}

func (h *CourseHandler) unenroll(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	studentID, err := pathID(r, "studentID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	enrollment, err := h.Courses.Unenroll(r.Context(), id, studentID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollment)
}

func (h *CourseHandler) enrollSelf(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	enrollment, err := h.Courses.EnrollByStudentToken(r.Context(), id, claims.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, enrollment)
}

func (h *CourseHandler) unenrollSelf(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	claims := ClaimsFromContext(r.Context())
	enrollment, err := h.Courses.UnenrollByStudentToken(r.Context(), id, claims.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, enrollment)
}

// listByStudent and listByProfessor back the nested listing routes mounted
// under /students and /professors.
func (h *CourseHandler) listByStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	courses, err := h.Courses.ListByStudent(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (h *CourseHandler) listByProfessor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	courses, err := h.Courses.ListByProfessor(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}
