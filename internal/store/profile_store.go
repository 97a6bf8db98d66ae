package store

import (
	"context"

	"emotrack/internal/domain"

	"gorm.io/gorm"
)

// ProfileStore is one implementation for the three role-profile tables.
// The type parameter picks the table through GORM's model binding.
type ProfileStore[T domain.Profile] struct{ db *gorm.DB }

func Profiles[T domain.Profile](s *Store) *ProfileStore[T] {
	return &ProfileStore[T]{db: s.DB}
}

func (p *ProfileStore[T]) Create(ctx context.Context, profile *T) error {
	return p.db.WithContext(ctx).Create(profile).Error
}

func (p *ProfileStore[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	var out T
	err := p.db.WithContext(ctx).Preload("Account").First(&out, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (p *ProfileStore[T]) GetByAccountID(ctx context.Context, accountID int64) (*T, error) {
	var out T
	err := p.db.WithContext(ctx).First(&out, "account_id = ?", accountID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (p *ProfileStore[T]) List(ctx context.Context, limit, offset int) ([]T, int64, error) {
	var model T
	var total int64
	if err := p.db.WithContext(ctx).Model(&model).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := p.db.WithContext(ctx).Preload("Account").Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (p *ProfileStore[T]) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	var model T
	return p.db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(fields).Error
}

func (p *ProfileStore[T]) Delete(ctx context.Context, id int64) error {
	var model T
	return p.db.WithContext(ctx).Where("id = ?", id).Delete(&model).Error
}
