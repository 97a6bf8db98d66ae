package impl

import (
	"context"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/store"
)

type EmotionServiceImpl struct {
	Store *store.Store
}

func NewEmotionServiceImpl(st *store.Store) *EmotionServiceImpl {
	return &EmotionServiceImpl{Store: st}
}

// CreateByStudentAccount resolves the student behind the session token and
// appends the entry on their behalf.
func (e *EmotionServiceImpl) CreateByStudentAccount(ctx context.Context, accountID int64, req dto.CreateEmotionRequest) (*domain.EmotionEntry, error) {
	if req.Emotion == "" {
		return nil, domain.Invalid("emotion is required")
	}
	student, err := store.Profiles[domain.Student](e.Store).GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, "student")
	}

	entry := &domain.EmotionEntry{
		Emotion:   req.Emotion,
		Note:      req.Note,
		StudentID: student.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := e.Store.Emotions().Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (e *EmotionServiceImpl) ListByStudent(ctx context.Context, studentID int64) ([]domain.EmotionEntry, error) {
	if _, err := store.Profiles[domain.Student](e.Store).GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, "student")
	}
	return e.Store.Emotions().ListByStudent(ctx, studentID)
}

func (e *EmotionServiceImpl) ListByStudentAccount(ctx context.Context, accountID int64) ([]domain.EmotionEntry, error) {
	student, err := store.Profiles[domain.Student](e.Store).GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, "student")
	}
	return e.Store.Emotions().ListByStudent(ctx, student.ID)
}

func (e *EmotionServiceImpl) ListByStudentBetween(ctx context.Context, studentID int64, from, to time.Time) ([]domain.EmotionEntry, error) {
	if _, err := store.Profiles[domain.Student](e.Store).GetByID(ctx, studentID); err != nil {
		return nil, notFoundOr(err, "student")
	}
	return e.Store.Emotions().ListByStudentBetween(ctx, studentID, from, to)
}
