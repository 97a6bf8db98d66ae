package service

import (
	"context"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
)

// ProfileService is the one CRUD surface shared by the three role profiles
// (student, professor, health staff), parameterized by profile type instead of
// copied per role.
type ProfileService[T domain.Profile] interface {
	// CreateWithAccount creates the login account and the profile in one
	// transaction; the account role is forced to the profile's role.
	CreateWithAccount(ctx context.Context, req dto.CreateProfileRequest) (*T, error)
	List(ctx context.Context, limit, offset int) (dto.Page[T], error)
	Get(ctx context.Context, id int64) (*T, error)
	GetByAccount(ctx context.Context, accountID int64) (*T, error)
	Update(ctx context.Context, id int64, req dto.UpdateProfileRequest) (*T, error)
	// Delete removes the profile and its account together.
	Delete(ctx context.Context, id int64) error
}
