package store

import (
	"context"
	"time"

	"emotrack/internal/domain"

	"gorm.io/gorm"
)

type EmotionStore struct{ db *gorm.DB }

func (s *Store) Emotions() *EmotionStore { return &EmotionStore{db: s.DB} }

func (e *EmotionStore) Create(ctx context.Context, entry *domain.EmotionEntry) error {
	return e.db.WithContext(ctx).Create(entry).Error
}

func (e *EmotionStore) ListByStudent(ctx context.Context, studentID int64) ([]domain.EmotionEntry, error) {
	var entries []domain.EmotionEntry
	err := e.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// ListByStudentBetween returns entries with created_at in [from, to].
func (e *EmotionStore) ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]domain.EmotionEntry, error) {
	var entries []domain.EmotionEntry
	err := e.db.WithContext(ctx).
		Where("student_id = ? AND created_at BETWEEN ? AND ?", studentID, from, to).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
