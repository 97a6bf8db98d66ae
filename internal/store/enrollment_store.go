package store

import (
	"context"

	"emotrack/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentStore struct{ db *gorm.DB }

func (s *Store) Enrollments() *EnrollmentStore { return &EnrollmentStore{db: s.DB} }

func (e *EnrollmentStore) GetByCourseStudent(ctx context.Context, courseID, studentID int64) (*domain.Enrollment, error) {
	var enr domain.Enrollment
	err := e.db.WithContext(ctx).
		Order("active DESC, id DESC").
		First(&enr, "course_id = ? AND student_id = ?", courseID, studentID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &enr, nil
}

// InsertActive inserts a fresh active enrollment through the partial unique
// index on (course_id, student_id) WHERE active. ON CONFLICT DO NOTHING makes
// a lost check-then-act race surface as inserted == false instead of an error.
func (e *EnrollmentStore) InsertActive(ctx context.Context, enr *domain.Enrollment) (inserted bool, err error) {
	enr.Active = true
	res := e.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(enr)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (e *EnrollmentStore) SetActive(ctx context.Context, id int64, active bool) error {
	return e.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("id = ?", id).
		Update("active", active).Error
}

// DeactivateForCourse flips every enrollment of the course inactive,
// unconditionally, as part of the course-deactivation cascade.
func (e *EnrollmentStore) DeactivateForCourse(ctx context.Context, courseID int64) error {
	return e.db.WithContext(ctx).Model(&domain.Enrollment{}).
		Where("course_id = ?", courseID).
		Update("active", false).Error
}

// DeleteForCourse hard-deletes enrollment history, used only by the course
// hard delete.
func (e *EnrollmentStore) DeleteForCourse(ctx context.Context, courseID int64) error {
	return e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&domain.Enrollment{}).Error
}
