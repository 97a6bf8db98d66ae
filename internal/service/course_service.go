package service

import (
	"context"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
)

// CourseService owns the course/schedule/enrollment lifecycle: soft-delete
// active flags, create-or-reactivate semantics and the deactivation cascade.
type CourseService interface {
	// Create inserts a new active course, or reactivates an inactive row with
	// the same (name, groupCode) in place. An active duplicate is a Conflict.
	Create(ctx context.Context, req dto.CreateCourseRequest) (*domain.Course, error)
	// CreateByProfessorToken resolves the professor profile behind accountID
	// and forces ownership to it.
	CreateByProfessorToken(ctx context.Context, req dto.CreateCourseRequest, accountID int64) (*domain.Course, error)
	Get(ctx context.Context, id int64) (*domain.Course, error)
	Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*domain.Course, error)
	// Deactivate soft-deletes the course: schedules are hard-deleted, every
	// enrollment is flipped inactive, the course row is kept.
	Deactivate(ctx context.Context, id int64) (*domain.Course, error)
	// Delete hard-deletes the course and its enrollment history.
	Delete(ctx context.Context, id int64) error

	// Enroll inserts an active enrollment or reactivates the student's prior
	// inactive row; enrolling twice while active is a Conflict.
	Enroll(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error)
	EnrollByStudentToken(ctx context.Context, courseID, accountID int64) (*domain.Enrollment, error)
	// Unenroll is not idempotent: an already-inactive enrollment is a Conflict.
	Unenroll(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error)
	UnenrollByStudentToken(ctx context.Context, courseID, accountID int64) (*domain.Enrollment, error)

	Search(ctx context.Context, query string, limit, offset int) (dto.Page[domain.Course], error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Course, error)
	ListByStudentAccount(ctx context.Context, accountID int64) ([]domain.Course, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]domain.Course, error)
	ListByProfessorAccount(ctx context.Context, accountID int64) ([]domain.Course, error)
}
