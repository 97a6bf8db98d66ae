package service

import "emotrack/internal/domain"

// Claims is the verified payload of an access or recovery token.
type Claims struct {
	AccountID int64
	Role      domain.Role
}

type TokenService interface {
	// SignAccess mints the session token returned by login (sub = account id,
	// role claim).
	SignAccess(account *domain.Account) (string, error)
	// SignRecovery mints the short-lived password-recovery token (sub = account
	// id, separate secret).
	SignRecovery(accountID int64) (string, error)
	VerifyAccess(token string) (*Claims, error)
	VerifyRecovery(token string) (*Claims, error)
}
