package service

import (
	"context"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
)

type AccountService interface {
	Create(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) (dto.Page[domain.Account], error)
	Get(ctx context.Context, id int64) (*domain.Account, error)
	Update(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}
