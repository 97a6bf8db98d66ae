package store

import (
	"context"

	"emotrack/internal/domain"

	"gorm.io/gorm"
)

type AccountStore struct{ db *gorm.DB }

func (s *Store) Accounts() *AccountStore { return &AccountStore{db: s.DB} }

func (a *AccountStore) Create(ctx context.Context, acc *domain.Account) error {
	return a.db.WithContext(ctx).Create(acc).Error
}

func (a *AccountStore) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var acc domain.Account
	err := a.db.WithContext(ctx).
		Preload("Student").Preload("Professor").Preload("HealthStaff").
		First(&acc, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (a *AccountStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var acc domain.Account
	if err := a.db.WithContext(ctx).First(&acc, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

// List returns a page of accounts plus the unpaginated total.
func (a *AccountStore) List(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	var total int64
	if err := a.db.WithContext(ctx).Model(&domain.Account{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	q := a.db.WithContext(ctx).
		Preload("Student").Preload("Professor").Preload("HealthStaff").
		Order("id")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var accounts []domain.Account
	if err := q.Find(&accounts).Error; err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

func (a *AccountStore) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return a.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (a *AccountStore) Delete(ctx context.Context, id int64) error {
	return a.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Account{}).Error
}

// SetRecoveryToken overwrites the outstanding recovery token; only the most
// recently issued token stays valid.
func (a *AccountStore) SetRecoveryToken(ctx context.Context, id int64, token *string) error {
	return a.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Update("recovery_token", token).Error
}

// SetPassword stores a new hash and clears the recovery token in one write,
// making recovery tokens single-use.
func (a *AccountStore) SetPassword(ctx context.Context, id int64, hash string) error {
	return a.db.WithContext(ctx).Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": hash, "recovery_token": nil}).Error
}
