package impl

import (
	"context"
	"errors"
	"log/slog"

	"emotrack/internal/domain"
	"emotrack/internal/dto"
	"emotrack/internal/observability/metrics"
	"emotrack/internal/observability/middleware"
	"emotrack/internal/service"
	"emotrack/internal/store"
)

// accountReader is the slice of the account store the auth flow needs; the
// tests swap in an in-memory fake.
type accountReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	SetRecoveryToken(ctx context.Context, id int64, token *string) error
	SetPassword(ctx context.Context, id int64, hash string) error
}

type AuthServiceImpl struct {
	Accounts         accountReader
	PasswordService  service.PasswordService
	TokenService     service.TokenService
	Email            service.EmailService
	RecoveryLinkBase string
}

func NewAuthServiceImpl(st *store.Store, pw service.PasswordService, ts service.TokenService, mail service.EmailService, recoveryLinkBase string) *AuthServiceImpl {
	return &AuthServiceImpl{
		Accounts:         st.Accounts(),
		PasswordService:  pw,
		TokenService:     ts,
		Email:            mail,
		RecoveryLinkBase: recoveryLinkBase,
	}
}

// Login never reveals which check failed: unknown email and wrong password
// both return domain.ErrUnauthorized.
func (a *AuthServiceImpl) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	result := "success"
	defer func() { metrics.LoginsTotal.WithLabelValues(result).Inc() }()

	if req.Email == "" || req.Password == "" {
		result = "failure"
		return nil, domain.ErrUnauthorized
	}

	account, err := a.Accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		result = "failure"
		return nil, domain.ErrUnauthorized
	}
	if !a.PasswordService.Compare(account.Password, req.Password) {
		result = "failure"
		return nil, domain.ErrUnauthorized
	}

	token, err := a.TokenService.SignAccess(account)
	if err != nil {
		result = "failure"
		return nil, err
	}

	slog.Info("login",
		"account_id", account.ID,
		"role", account.Role,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return &dto.LoginResponse{Account: account, Token: token}, nil
}

// RequestRecovery issues a fresh recovery token and overwrites the stored
// one, so only the most recent token can redeem. An unknown email fails with
// the same generic unauthorized as every other auth failure.
func (a *AuthServiceImpl) RequestRecovery(ctx context.Context, email string) error {
	result := "success"
	defer func() { metrics.RecoveryRequestsTotal.WithLabelValues("request", result).Inc() }()

	if email == "" {
		result = "failure"
		return domain.ErrUnauthorized
	}
	account, err := a.Accounts.GetByEmail(ctx, email)
	if err != nil {
		result = "failure"
		return domain.ErrUnauthorized
	}

	token, err := a.TokenService.SignRecovery(account.ID)
	if err != nil {
		result = "failure"
		return err
	}
	if err := a.Accounts.SetRecoveryToken(ctx, account.ID, &token); err != nil {
		result = "failure"
		return err
	}

	link := a.RecoveryLinkBase + "?token=" + token
	if err := a.Email.SendPasswordRecovery(ctx, account.Email, link); err != nil {
		result = "failure"
		return err
	}

	slog.Info("recovery requested",
		"account_id", account.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return nil
}

// ChangePassword redeems a recovery token: the signature and expiry must
// verify, and the presented token must textually match the stored one, which
// defeats replay of a superseded token that is still inside its own expiry.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, token, newPassword string) error {
	result := "success"
	defer func() { metrics.RecoveryRequestsTotal.WithLabelValues("change", result).Inc() }()

	if token == "" || newPassword == "" {
		result = "failure"
		return domain.ErrUnauthorized
	}

	claims, err := a.TokenService.VerifyRecovery(token)
	if err != nil {
		result = "failure"
		return domain.ErrUnauthorized
	}
	account, err := a.Accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		result = "failure"
		return domain.ErrUnauthorized
	}
	if account.RecoveryToken == nil || *account.RecoveryToken != token {
		result = "failure"
		return domain.ErrUnauthorized
	}

	hash, err := a.PasswordService.Hash(newPassword)
	if err != nil {
		result = "failure"
		if errors.Is(err, ErrPasswordLen) {
			return domain.Invalid("password must be at least 8 characters")
		}
		return domain.ErrUnauthorized
	}
	// SetPassword also nulls recovery_token: the token is single-use.
	if err := a.Accounts.SetPassword(ctx, account.ID, hash); err != nil {
		result = "failure"
		return err
	}

	slog.Info("password changed via recovery",
		"account_id", account.ID,
		"request_id", middleware.RequestIDFromContext(ctx),
	)
	return nil
}
