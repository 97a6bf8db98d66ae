package http

import (
	"net/http"

	"emotrack/internal/domain"
	"emotrack/internal/service"
)

// MeHandler serves the /profile routes, everything resolved from the session
// token rather than a path id.
type MeHandler struct {
	Accounts service.AccountService
	Courses  service.CourseService
}

func (h *MeHandler) get(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	account, err := h.Accounts.Get(r.Context(), claims.AccountID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// courses lists the caller's current courses: enrolled ones for students,
// owned ones for professors.
func (h *MeHandler) courses(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	switch claims.Role {
	case domain.RoleStudent:
		courses, err := h.Courses.ListByStudentAccount(r.Context(), claims.AccountID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, courses)
	case domain.RoleProfessor:
		courses, err := h.Courses.ListByProfessorAccount(r.Context(), claims.AccountID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, courses)
	default:
		writeError(w, r, domain.ErrUnauthorized)
	}
}
