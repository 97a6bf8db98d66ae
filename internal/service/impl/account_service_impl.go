package impl

import (
	"context"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/service"
	"emotrack/internal/store"
)

type AccountServiceImpl struct {
	Store           *store.Store
	PasswordService service.PasswordService
}

func NewAccountServiceImpl(st *store.Store, pw service.PasswordService) *AccountServiceImpl {
	return &AccountServiceImpl{Store: st, PasswordService: pw}
}

func (a *AccountServiceImpl) Create(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if req.Email == "" {
		return nil, domain.Invalid("email is required")
	}
	if !req.Role.Valid() {
		return nil, domain.Invalid("invalid role %q", req.Role)
	}
	hash, err := a.PasswordService.Hash(req.Password)
	if err != nil {
		return nil, invalidPassword(err)
	}

	account := &domain.Account{
		Email:     req.Email,
		Password:  hash,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.Store.Accounts().Create(ctx, account); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, domain.Conflict("email already in use")
		}
		return nil, err
	}
	return account, nil
}

func (a *AccountServiceImpl) List(ctx context.Context, limit, offset int) (dto.Page[domain.Account], error) {
	accounts, total, err := a.Store.Accounts().List(ctx, limit, offset)
	if err != nil {
		return dto.Page[domain.Account]{}, err
	}
	return dto.NewPage(accounts, total, limit, offset, limit > 0), nil
}

func (a *AccountServiceImpl) Get(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := a.Store.Accounts().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "account")
	}
	return account, nil
}

func (a *AccountServiceImpl) Update(ctx context.Context, id int64, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if _, err := a.Store.Accounts().GetByID(ctx, id); err != nil {
		return nil, notFoundOr(err, "account")
	}

	fields := map[string]any{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, domain.Invalid("invalid role %q", *req.Role)
		}
		fields["role"] = *req.Role
	}
	if req.Password != nil {
		hash, err := a.PasswordService.Hash(*req.Password)
		if err != nil {
			return nil, invalidPassword(err)
		}
		fields["password"] = hash
	}
	if len(fields) > 0 {
		if err := a.Store.Accounts().UpdateFields(ctx, id, fields); err != nil {
			if store.IsUniqueViolation(err) {
				return nil, domain.Conflict("email already in use")
			}
			return nil, err
		}
	}
	return a.Store.Accounts().GetByID(ctx, id)
}

func (a *AccountServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := a.Store.Accounts().GetByID(ctx, id); err != nil {
		return notFoundOr(err, "account")
	}
	return a.Store.Accounts().Delete(ctx, id)
}
