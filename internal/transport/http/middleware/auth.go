package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"feedback360/internal/domain/auth"
	"feedback360/internal/transport/http/api"
)

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	ID       string
	Username string
	Email    string
	Role     string
}

// PrincipalStore resolves the user id encoded in a verified token.
type PrincipalStore interface {
	UserByID(ctx context.Context, id string) (auth.User, error)
}

// Authenticate verifies the bearer token and attaches the principal. A
// token whose user id no longer resolves is rejected outright rather
// than letting the request continue without a principal.
func Authenticate(secret string, store PrincipalStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication token required", GetRequestID(r.Context()))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "invalid_token", "invalid or expired token", GetRequestID(r.Context()))
				return
			}

			user, err := store.UserByID(r.Context(), claims.UserID)
			if errors.Is(err, auth.ErrUserNotFound) {
				api.Fail(w, http.StatusUnauthorized, "unauthenticated", "account no longer exists", GetRequestID(r.Context()))
				return
			}
			if err != nil {
				api.FailDetail(w, http.StatusInternalServerError, "internal", "failed to resolve user", err.Error(), GetRequestID(r.Context()))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal, Principal{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Role:     user.Role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetPrincipal(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return principal, ok
}
