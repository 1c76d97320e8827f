package middleware

import (
	"net/http"
	"slices"

	"feedback360/internal/transport/http/api"
)

// RequireRole authorizes the principal against the operation's declared
// role set. Authenticate must run earlier in the chain.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r.Context())
			if !ok {
				api.Fail(w, http.StatusUnauthorized, "unauthenticated", "authentication required", GetRequestID(r.Context()))
				return
			}

			if !slices.Contains(roles, principal.Role) {
				api.Fail(w, http.StatusForbidden, "forbidden", "you do not have permission to access this route", GetRequestID(r.Context()))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
