package store

import (
	"context"

	"emotrack/internal/domain"

	"gorm.io/gorm"
)

type ScheduleStore struct{ db *gorm.DB }

func (s *Store) Schedules() *ScheduleStore { return &ScheduleStore{db: s.DB} }

// ReplaceForCourse deletes the course's schedule set and bulk-inserts the new
// one. Schedules are never merged or diffed.
func (ss *ScheduleStore) ReplaceForCourse(ctx context.Context, courseID int64, schedules []domain.Schedule) error {
	if err := ss.DeleteForCourse(ctx, courseID); err != nil {
		return err
	}
	if len(schedules) == 0 {
		return nil
	}
	for i := range schedules {
		schedules[i].ID = 0
		schedules[i].CourseID = courseID
	}
	return ss.db.WithContext(ctx).Create(&schedules).Error
}

func (ss *ScheduleStore) DeleteForCourse(ctx context.Context, courseID int64) error {
	return ss.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Delete(&domain.Schedule{}).Error
}
