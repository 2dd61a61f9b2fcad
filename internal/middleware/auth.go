package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/coursecloud/service/internal/response"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

// principalKey is the context key for the authenticated principal.
const principalKey contextKey = "principal"

// TokenParser verifies a bearer token and returns the principal it names.
type TokenParser interface {
	Parse(token string) (string, error)
}

// RequireAuth returns middleware that validates a Bearer JWT and injects
// the principal into the request context.
func RequireAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "invalid authorization header format")
				return
			}

			principal, err := parser.Parse(parts[1])
			if err != nil {
				response.Unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// WithPrincipal returns a copy of ctx carrying principal.
func WithPrincipal(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// Principal returns the authenticated principal, or "" outside RequireAuth.
func Principal(ctx context.Context) string {
	p, _ := ctx.Value(principalKey).(string)
	return p
}
