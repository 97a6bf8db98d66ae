package store

import (
	"context"

	"emotrack/internal/domain"

	"gorm.io/gorm"
)

type CourseStore struct{ db *gorm.DB }

func (s *Store) Courses() *CourseStore { return &CourseStore{db: s.DB} }

func (c *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	return c.db.WithContext(ctx).Create(course).Error
}

// GetByID does not filter on active, historical records stay reachable by id.
func (c *CourseStore) GetByID(ctx context.Context, id int64) (*domain.Course, error) {
	var course domain.Course
	err := c.db.WithContext(ctx).
		Preload("Schedules").Preload("Professor").
		First(&course, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &course, nil
}

// GetByNameGroup returns the row for a (name, group_code) pair regardless of
// active state; the create-or-reactivate decision needs the inactive row too.
func (c *CourseStore) GetByNameGroup(ctx context.Context, name, groupCode string) (*domain.Course, error) {
	var course domain.Course
	err := c.db.WithContext(ctx).
		Order("active DESC, id DESC").
		First(&course, "name = ? AND group_code = ?", name, groupCode).Error
	if err != nil {
		return nil, translate(err)
	}
	return &course, nil
}

// ActiveExistsExcept reports whether another active course (id <> exceptID)
// already claims the (name, group_code) pair.
func (c *CourseStore) ActiveExistsExcept(ctx context.Context, name, groupCode string, exceptID int64) (bool, error) {
	var n int64
	err := c.db.WithContext(ctx).Model(&domain.Course{}).
		Where("name = ? AND group_code = ? AND active AND id <> ?", name, groupCode, exceptID).
		Count(&n).Error
	return n > 0, err
}

func (c *CourseStore) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return c.db.WithContext(ctx).Model(&domain.Course{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (c *CourseStore) Delete(ctx context.Context, id int64) error {
	return c.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Course{}).Error
}

// Search matches a case-insensitive substring against the course name and the
// owning professor's first or last name, active courses only. The total is
// counted before pagination is applied.
func (c *CourseStore) Search(ctx context.Context, query string, limit, offset int) ([]domain.Course, int64, error) {
	base := c.db.WithContext(ctx).Model(&domain.Course{}).
		Joins("JOIN professors ON professors.id = courses.professor_id").
		Where("courses.active")
	if query != "" {
		pattern := "%" + query + "%"
		base = base.Where(
			"courses.name ILIKE ? OR professors.first_name ILIKE ? OR professors.last_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{}).
		Preload("Professor").Preload("Schedules").
		Order("courses.id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var courses []domain.Course
	if err := q.Find(&courses).Error; err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// ListByProfessor returns the professor's active courses.
func (c *CourseStore) ListByProfessor(ctx context.Context, professorID int64) ([]domain.Course, error) {
	var courses []domain.Course
	err := c.db.WithContext(ctx).
		Preload("Schedules").
		Where("professor_id = ? AND active", professorID).
		Order("id").
		Find(&courses).Error
	return courses, err
}

// ListByStudent returns the active courses the student is actively enrolled in.
func (c *CourseStore) ListByStudent(ctx context.Context, studentID int64) ([]domain.Course, error) {
	var courses []domain.Course
	err := c.db.WithContext(ctx).
		Preload("Schedules").Preload("Professor").
		Joins("JOIN enrollments ON enrollments.course_id = courses.id").
		Where("enrollments.student_id = ? AND enrollments.active AND courses.active", studentID).
		Order("courses.id").
		Find(&courses).Error
	return courses, err
}
