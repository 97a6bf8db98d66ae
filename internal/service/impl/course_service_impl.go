package impl

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/observability/metrics"
	"emotrack/internal/observability/middleware"
	"emotrack/internal/store"
)

// Narrow store interfaces: the service only names the queries it runs, and
// the tests run against in-memory fakes of these.

type courseTxStore interface {
	WithTx(ctx context.Context, fn func(tx courseTx) error) error
}

type courseTx interface {
	Courses() courseStore
	Schedules() scheduleStore
	Enrollments() enrollmentStore
	Students() studentStore
	Professors() professorStore
}

type courseStore interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id int64) (*domain.Course, error)
	GetByNameGroup(ctx context.Context, name, groupCode string) (*domain.Course, error)
	ActiveExistsExcept(ctx context.Context, name, groupCode string, exceptID int64) (bool, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, query string, limit, offset int) ([]domain.Course, int64, error)
	ListByProfessor(ctx context.Context, professorID int64) ([]domain.Course, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Course, error)
}

type scheduleStore interface {
	ReplaceForCourse(ctx context.Context, courseID int64, schedules []domain.Schedule) error
	DeleteForCourse(ctx context.Context, courseID int64) error
}

type enrollmentStore interface {
	GetByCourseStudent(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error)
	InsertActive(ctx context.Context, enr *domain.Enrollment) (bool, error)
	SetActive(ctx context.Context, id int64, active bool) error
	DeactivateForCourse(ctx context.Context, courseID int64) error
	DeleteForCourse(ctx context.Context, courseID int64) error
}

type studentStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Student, error)
	GetByAccountID(ctx context.Context, accountID int64) (*domain.Student, error)
}

type professorStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Professor, error)
	GetByAccountID(ctx context.Context, accountID int64) (*domain.Professor, error)
}

// gormCourseStore adapts *store.Store to the narrow interfaces above.
type gormCourseStore struct{ store *store.Store }

func (g gormCourseStore) WithTx(ctx context.Context, fn func(tx courseTx) error) error {
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormCourseTx{tx: tx})
	})
}

type gormCourseTx struct{ tx *store.Store }

func (g gormCourseTx) Courses() courseStore         { return g.tx.Courses() }
func (g gormCourseTx) Schedules() scheduleStore     { return g.tx.Schedules() }
func (g gormCourseTx) Enrollments() enrollmentStore { return g.tx.Enrollments() }
func (g gormCourseTx) Students() studentStore       { return store.Profiles[domain.Student](g.tx) }
func (g gormCourseTx) Professors() professorStore   { return store.Profiles[domain.Professor](g.tx) }

type CourseServiceImpl struct {
	Store courseTxStore
}

func NewCourseServiceImpl(st *store.Store) *CourseServiceImpl {
	return &CourseServiceImpl{Store: gormCourseStore{store: st}}
}

func toSchedules(inputs []dto.ScheduleInput) []domain.Schedule {
	out := make([]domain.Schedule, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, domain.Schedule{
			Weekday:   in.Weekday,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}
	return out
}

// Create inserts a new active course or reactivates an inactive row with the
// same (name, groupCode). All writes, including the schedule replace-all,
// share one transaction.
func (c *CourseServiceImpl) Create(ctx context.Context, req dto.CreateCourseRequest) (*domain.Course, error) {
	if req.Name == "" || req.GroupCode == "" {
		return nil, domain.Invalid("name and groupCode are required")
	}

	var out *domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		if _, err := tx.Professors().GetByID(ctx, req.ProfessorID); err != nil {
			return notFoundOr(err, "professor")
		}

		existing, err := tx.Courses().GetByNameGroup(ctx, req.Name, req.GroupCode)
		switch {
		case err == nil && existing.Active:
			return domain.Conflict("course already exists")
		case err == nil:
			// Reactivate in place: same row, same id, fresh owner and schedules.
			fields := map[string]any{"active": true, "professor_id": req.ProfessorID}
			if err := tx.Courses().UpdateFields(ctx, existing.ID, fields); err != nil {
				return err
			}
			if err := tx.Schedules().ReplaceForCourse(ctx, existing.ID, toSchedules(req.Schedules)); err != nil {
				return err
			}
			out, err = tx.Courses().GetByID(ctx, existing.ID)
			return err
		case errors.Is(err, store.ErrRecordNotFound):
			course := &domain.Course{
				Name:        req.Name,
				GroupCode:   req.GroupCode,
				Active:      true,
				ProfessorID: req.ProfessorID,
				CreatedAt:   time.Now().UTC(),
			}
			if err := tx.Courses().Create(ctx, course); err != nil {
				if store.IsUniqueViolation(err) {
					return domain.Conflict("course already exists")
				}
				return err
			}
			if len(req.Schedules) > 0 {
				if err := tx.Schedules().ReplaceForCourse(ctx, course.ID, toSchedules(req.Schedules)); err != nil {
					return err
				}
			}
			out, err = tx.Courses().GetByID(ctx, course.ID)
			return err
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	slog.Info("course created",
		"course_id", out.ID,
		"name", out.Name,
		"group", out.GroupCode,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return out, nil
}

func (c *CourseServiceImpl) CreateByProfessorToken(ctx context.Context, req dto.CreateCourseRequest, accountID int64) (*domain.Course, error) {
	var professorID int64
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		prof, err := tx.Professors().GetByAccountID(ctx, accountID)
		if err != nil {
			return notFoundOr(err, "professor")
		}
		professorID = prof.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	req.ProfessorID = professorID
	return c.Create(ctx, req)
}

func (c *CourseServiceImpl) Get(ctx context.Context, id int64) (*domain.Course, error) {
	var out *domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		course, err := tx.Courses().GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "course")
		}
		out = course
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update re-checks the active-uniqueness pair only when both name and
// groupCode change, and replaces the schedule set wholesale when one is given.
func (c *CourseServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*domain.Course, error) {
	var out *domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		course, err := tx.Courses().GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "course")
		}

		if req.Name != nil && req.GroupCode != nil {
			taken, err := tx.Courses().ActiveExistsExcept(ctx, *req.Name, *req.GroupCode, course.ID)
			if err != nil {
				return err
			}
			if taken {
				return domain.Conflict("course already exists")
			}
		}

		fields := map[string]any{}
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.GroupCode != nil {
			fields["group_code"] = *req.GroupCode
		}
		if req.ProfessorID != nil {
			if _, err := tx.Professors().GetByID(ctx, *req.ProfessorID); err != nil {
				return notFoundOr(err, "professor")
			}
			fields["professor_id"] = *req.ProfessorID
		}
		if len(fields) > 0 {
			if err := tx.Courses().UpdateFields(ctx, course.ID, fields); err != nil {
				if store.IsUniqueViolation(err) {
					return domain.Conflict("course already exists")
				}
				return err
			}
		}
		if req.Schedules != nil {
			if err := tx.Schedules().ReplaceForCourse(ctx, course.ID, toSchedules(*req.Schedules)); err != nil {
				return err
			}
		}

		out, err = tx.Courses().GetByID(ctx, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deactivate is the cascading soft-delete: the course row stays, schedules
// are hard-deleted, enrollments are all flipped inactive.
func (c *CourseServiceImpl) Deactivate(ctx context.Context, id int64) (*domain.Course, error) {
	var out *domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		course, err := tx.Courses().GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "course")
		}
		if !course.Active {
			return domain.Conflict("course already inactive")
		}

		if err := tx.Courses().UpdateFields(ctx, course.ID, map[string]any{"active": false}); err != nil {
			return err
		}
		if err := tx.Schedules().DeleteForCourse(ctx, course.ID); err != nil {
			return err
		}
		if err := tx.Enrollments().DeactivateForCourse(ctx, course.ID); err != nil {
			return err
		}

		out, err = tx.Courses().GetByID(ctx, course.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("course deactivated",
		"course_id", out.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return out, nil
}

// Delete hard-deletes the course and its enrollment history; schedules go via
// the FK cascade.
func (c *CourseServiceImpl) Delete(ctx context.Context, id int64) error {
	return c.Store.WithTx(ctx, func(tx courseTx) error {
		if _, err := tx.Courses().GetByID(ctx, id); err != nil {
			return notFoundOr(err, "course")
		}
		if err := tx.Enrollments().DeleteForCourse(ctx, id); err != nil {
			return err
		}
		return tx.Courses().Delete(ctx, id)
	})
}

func (c *CourseServiceImpl) Enroll(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error) {
	result := "success"
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("enroll", result).Inc() }()

	var out *domain.Enrollment
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		if _, err := tx.Students().GetByID(ctx, studentID); err != nil {
			return notFoundOr(err, "student")
		}
		return c.enroll(ctx, tx, courseID, studentID, &out)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}
	return out, nil
}

func (c *CourseServiceImpl) EnrollByStudentToken(ctx context.Context, courseID, accountID int64) (*domain.Enrollment, error) {
	result := "success"
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("enroll", result).Inc() }()

	var out *domain.Enrollment
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		student, err := tx.Students().GetByAccountID(ctx, accountID)
		if err != nil {
			return notFoundOr(err, "student")
		}
		return c.enroll(ctx, tx, courseID, student.ID, &out)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}
	return out, nil
}

// enroll applies the create-or-reactivate rule shared with course creation:
// no row inserts, an active row conflicts, an inactive row is flipped back.
func (c *CourseServiceImpl) enroll(ctx context.Context, tx courseTx, courseID, studentID int64, out **domain.Enrollment) error {
	course, err := tx.Courses().GetByID(ctx, courseID)
	if err != nil {
		return notFoundOr(err, "course")
	}
	if !course.Active {
		return domain.Conflict("course is inactive")
	}

	existing, err := tx.Enrollments().GetByCourseStudent(ctx, courseID, studentID)
	switch {
	case err == nil && existing.Active:
		return domain.Conflict("already enrolled")
	case err == nil:
		if err := tx.Enrollments().SetActive(ctx, existing.ID, true); err != nil {
			return err
		}
		existing.Active = true
		*out = existing
		return nil
	case errors.Is(err, store.ErrRecordNotFound):
		enr := &domain.Enrollment{
			CourseID:  courseID,
			StudentID: studentID,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}
		inserted, err := tx.Enrollments().InsertActive(ctx, enr)
		if err != nil {
			if store.IsUniqueViolation(err) {
				return domain.Conflict("already enrolled")
			}
			return err
		}
		if !inserted {
			// Lost a concurrent race on the partial unique index.
			return domain.Conflict("already enrolled")
		}
		*out = enr
		return nil
	default:
		return err
	}
}

func (c *CourseServiceImpl) Unenroll(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error) {
	result := "success"
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("unenroll", result).Inc() }()

	var out *domain.Enrollment
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		return c.unenroll(ctx, tx, courseID, studentID, &out)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}
	return out, nil
}

func (c *CourseServiceImpl) UnenrollByStudentToken(ctx context.Context, courseID, accountID int64) (*domain.Enrollment, error) {
	result := "success"
	defer func() { metrics.EnrollmentsTotal.WithLabelValues("unenroll", result).Inc() }()

	var out *domain.Enrollment
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		student, err := tx.Students().GetByAccountID(ctx, accountID)
		if err != nil {
			return notFoundOr(err, "student")
		}
		return c.unenroll(ctx, tx, courseID, student.ID, &out)
	})
	if err != nil {
		result = "failure"
		return nil, err
	}
	return out, nil
}

// unenroll is not idempotent at the API level: unenrolling an inactive
// enrollment is a Conflict, callers check state first.
func (c *CourseServiceImpl) unenroll(ctx context.Context, tx courseTx, courseID, studentID int64, out **domain.Enrollment) error {
	existing, err := tx.Enrollments().GetByCourseStudent(ctx, courseID, studentID)
	if err != nil {
		return notFoundOr(err, "enrollment")
	}
	if !existing.Active {
		return domain.Conflict("enrollment already inactive")
	}
	if err := tx.Enrollments().SetActive(ctx, existing.ID, false); err != nil {
		return err
	}
	existing.Active = false
	*out = existing
	return nil
}

func (c *CourseServiceImpl) Search(ctx context.Context, query string, limit, offset int) (dto.Page[domain.Course], error) {
	var page dto.Page[domain.Course]
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		courses, total, err := tx.Courses().Search(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		page = dto.NewPage(courses, total, limit, offset, limit > 0)
		return nil
	})
	return page, err
}

func (c *CourseServiceImpl) ListByStudent(ctx context.Context, studentID int64) ([]domain.Course, error) {
	var out []domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		if _, err := tx.Students().GetByID(ctx, studentID); err != nil {
			return notFoundOr(err, "student")
		}
		courses, err := tx.Courses().ListByStudent(ctx, studentID)
		out = courses
		return err
	})
	return out, err
}

func (c *CourseServiceImpl) ListByStudentAccount(ctx context.Context, accountID int64) ([]domain.Course, error) {
	var out []domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		student, err := tx.Students().GetByAccountID(ctx, accountID)
		if err != nil {
			return notFoundOr(err, "student")
		}
		courses, err := tx.Courses().ListByStudent(ctx, student.ID)
		out = courses
		return err
	})
	return out, err
}

func (c *CourseServiceImpl) ListByProfessor(ctx context.Context, professorID int64) ([]domain.Course, error) {
	var out []domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		if _, err := tx.Professors().GetByID(ctx, professorID); err != nil {
			return notFoundOr(err, "professor")
		}
		courses, err := tx.Courses().ListByProfessor(ctx, professorID)
		out = courses
		return err
	})
	return out, err
}

func (c *CourseServiceImpl) ListByProfessorAccount(ctx context.Context, accountID int64) ([]domain.Course, error) {
	var out []domain.Course
	err := c.Store.WithTx(ctx, func(tx courseTx) error {
		prof, err := tx.Professors().GetByAccountID(ctx, accountID)
		if err != nil {
			return notFoundOr(err, "professor")
		}
		courses, err := tx.Courses().ListByProfessor(ctx, prof.ID)
		out = courses
		return err
	})
	return out, err
}

// notFoundOr maps a store-level miss to a domain NotFound for the entity and
// passes every other error through unchanged.
func notFoundOr(err error, entity string) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return domain.NotFound(entity)
	}
	return err
}
