package http

import (
	"context"
	"net/http"
	"strings"

	"emotrack/internal/domain"
	"emotrack/internal/service"
)

type claimsKey struct{}

// Authenticator verifies the Bearer token and stashes its claims in the
// request context. Routes mounted behind it can assume a valid session.
func Authenticator(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			claims, err := tokens.VerifyAccess(token)
			if err != nil {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles gates a route group to the listed roles.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, r, domain.ErrUnauthorized)
		})
	}
}

func ClaimsFromContext(ctx context.Context) *service.Claims {
	if claims, ok := ctx.Value(claimsKey{}).(*service.Claims); ok {
		return claims
	}
	return nil
}
