package service

import (
	"context"

	"emotrack/internal/dto"
)

type AuthService interface {
	// Login checks credentials and returns the sanitized account plus a signed
	// access token. Any failure is domain.ErrUnauthorized.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// RequestRecovery issues a recovery token, persists it on the account
	// (superseding any prior one) and mails the recovery link.
	RequestRecovery(ctx context.Context, email string) error
	// ChangePassword redeems a recovery token. The presented token must match
	// the account's stored one exactly; success clears it.
	ChangePassword(ctx context.Context, token, newPassword string) error
}
