package impl

import (
	"context"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/service"
	"emotrack/internal/store"
)

// ProfileServiceImpl serves all three role profiles from one implementation;
// only the build function differs per role.
type ProfileServiceImpl[T domain.Profile] struct {
	Store           *store.Store
	PasswordService service.PasswordService
	build           func(req dto.CreateProfileRequest, accountID int64) T
}

func NewStudentService(st *store.Store, pw service.PasswordService) *ProfileServiceImpl[domain.Student] {
	return &ProfileServiceImpl[domain.Student]{
		Store:           st,
		PasswordService: pw,
		build: func(req dto.CreateProfileRequest, accountID int64) domain.Student {
			return domain.Student{
				FirstName:         req.FirstName,
				LastName:          req.LastName,
				InstitutionalCode: req.InstitutionalCode,
				AccountID:         accountID,
			}
		},
	}
}

func NewProfessorService(st *store.Store, pw service.PasswordService) *ProfileServiceImpl[domain.Professor] {
	return &ProfileServiceImpl[domain.Professor]{
		Store:           st,
		PasswordService: pw,
		build: func(req dto.CreateProfileRequest, accountID int64) domain.Professor {
			return domain.Professor{
				FirstName:         req.FirstName,
				LastName:          req.LastName,
				InstitutionalCode: req.InstitutionalCode,
				AccountID:         accountID,
			}
		},
	}
}

func NewHealthStaffService(st *store.Store, pw service.PasswordService) *ProfileServiceImpl[domain.HealthStaff] {
	return &ProfileServiceImpl[domain.HealthStaff]{
		Store:           st,
		PasswordService: pw,
		build: func(req dto.CreateProfileRequest, accountID int64) domain.HealthStaff {
			return domain.HealthStaff{
				FirstName:         req.FirstName,
				LastName:          req.LastName,
				InstitutionalCode: req.InstitutionalCode,
				Specialty:         req.Specialty,
				AccountID:         accountID,
			}
		},
	}
}

func (p *ProfileServiceImpl[T]) role() domain.Role {
	var zero T
	return zero.ProfileRole()
}

func (p *ProfileServiceImpl[T]) entity() string {
	var zero T
	return zero.EntityName()
}

// CreateWithAccount creates the login account and the profile in one
// transaction; the account role comes from the profile type, not the request.
func (p *ProfileServiceImpl[T]) CreateWithAccount(ctx context.Context, req dto.CreateProfileRequest) (*T, error) {
	if req.FirstName == "" || req.LastName == "" || req.InstitutionalCode == "" {
		return nil, domain.Invalid("firstName, lastName and institutionalCode are required")
	}
	if req.Account.Email == "" {
		return nil, domain.Invalid("account email is required")
	}
	hash, err := p.PasswordService.Hash(req.Account.Password)
	if err != nil {
		return nil, invalidPassword(err)
	}

	var created T
	err = p.Store.WithTx(ctx, func(tx *store.Store) error {
		account := &domain.Account{
			Email:     req.Account.Email,
			Password:  hash,
			Role:      p.role(),
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Accounts().Create(ctx, account); err != nil {
			if store.IsUniqueViolation(err) {
				return domain.Conflict("email already in use")
			}
			return err
		}
		profile := p.build(req, account.ID)
		if err := store.Profiles[T](tx).Create(ctx, &profile); err != nil {
			if store.IsUniqueViolation(err) {
				return domain.Conflict("institutional code already in use")
			}
			return err
		}
		created = profile
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p.Get(ctx, created.GetID())
}

func (p *ProfileServiceImpl[T]) List(ctx context.Context, limit, offset int) (dto.Page[T], error) {
	items, total, err := store.Profiles[T](p.Store).List(ctx, limit, offset)
	if err != nil {
		return dto.Page[T]{}, err
	}
	return dto.NewPage(items, total, limit, offset, limit > 0), nil
}

func (p *ProfileServiceImpl[T]) Get(ctx context.Context, id int64) (*T, error) {
	profile, err := store.Profiles[T](p.Store).GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, p.entity())
	}
	return profile, nil
}

func (p *ProfileServiceImpl[T]) GetByAccount(ctx context.Context, accountID int64) (*T, error) {
	profile, err := store.Profiles[T](p.Store).GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(err, p.entity())
	}
	return profile, nil
}

func (p *ProfileServiceImpl[T]) Update(ctx context.Context, id int64, req dto.UpdateProfileRequest) (*T, error) {
	profiles := store.Profiles[T](p.Store)
	if _, err := profiles.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, p.entity())
	}

	fields := map[string]any{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.InstitutionalCode != nil {
		fields["institutional_code"] = *req.InstitutionalCode
	}
	if req.Specialty != nil && p.role() == domain.RoleHealth {
		fields["specialty"] = *req.Specialty
	}
	if len(fields) > 0 {
		if err := profiles.UpdateFields(ctx, id, fields); err != nil {
			if store.IsUniqueViolation(err) {
				return nil, domain.Conflict("institutional code already in use")
			}
			return nil, err
		}
	}
	return profiles.GetByID(ctx, id)
}

// Delete removes the profile and its login account together, as the original
// API did.
func (p *ProfileServiceImpl[T]) Delete(ctx context.Context, id int64) error {
	return p.Store.WithTx(ctx, func(tx *store.Store) error {
		profiles := store.Profiles[T](tx)
		profile, err := profiles.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, p.entity())
		}
		if err := profiles.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Accounts().Delete(ctx, (*profile).GetAccountID())
	})
}
