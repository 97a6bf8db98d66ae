package impl

import (
	"strconv"
	"time"

	"emotrack/internal/domain"
	"emotrack/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenConfig struct {
	Issuer         string
	AccessTTL      time.Duration // e.g. 1h
	RecoveryTTL    time.Duration // e.g. 15m
	AccessSecret   []byte        // HS256 secret for session tokens
	RecoverySecret []byte        // separate HS256 secret for recovery tokens
}

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type recoveryClaims struct {
	jwt.RegisteredClaims
}

// TokenServiceImpl signs and verifies both token families with HS256. The
// recovery family uses its own secret, so an access token can never pass as a
// recovery token or vice versa.
type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) SignAccess(account *domain.Account) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Role: string(account.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   strconv.FormatInt(account.ID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.AccessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.AccessSecret)
}

func (t *TokenServiceImpl) SignRecovery(accountID int64) (string, error) {
	now := time.Now().UTC()
	claims := recoveryClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.RecoveryTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.RecoverySecret)
}

func (t *TokenServiceImpl) VerifyAccess(token string) (*service.Claims, error) {
	claims := &accessClaims{}
	if err := t.parse(token, claims, t.cfg.AccessSecret); err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &service.Claims{AccountID: id, Role: domain.Role(claims.Role)}, nil
}

func (t *TokenServiceImpl) VerifyRecovery(token string) (*service.Claims, error) {
	claims := &recoveryClaims{}
	if err := t.parse(token, claims, t.cfg.RecoverySecret); err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &service.Claims{AccountID: id}, nil
}

func (t *TokenServiceImpl) parse(token string, claims jwt.Claims, secret []byte) error {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithExpirationRequired(),
	)
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	// Expired, bad signature, bad issuer: all the same to the caller.
	if err != nil || !parsed.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}
