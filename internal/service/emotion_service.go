package service

import (
	"context"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
)

// EmotionService is append-only: entries are created and queried, never
// edited or removed.
type EmotionService interface {
	CreateByStudentAccount(ctx context.Context, accountID int64, req dto.CreateEmotionRequest) (*domain.EmotionEntry, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.EmotionEntry, error)
	ListByStudentAccount(ctx context.Context, accountID int64) ([]domain.EmotionEntry, error)
	ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]domain.EmotionEntry, error)
}
