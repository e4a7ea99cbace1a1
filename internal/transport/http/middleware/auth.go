package middleware

import (
	"context"
	"net/http"
	"strings"

	"fotofocus-backend/internal/httputil"
	"fotofocus-backend/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// identityKey is the context key for the authenticated caller
const identityKey contextKey = "identity"

// tokenVerifier decouples the middleware from the concrete token service.
type tokenVerifier interface {
	Verify(tokenString string) (*model.Identity, error)
}

// RequireAuth validates the Bearer token and rejects the request without one.
func RequireAuth(tokens tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := identityFromRequest(r, tokens)
			if !ok {
				httputil.WriteUnauthorized(w, "Missing or invalid authentication token")
				return
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but lets
// anonymous requests through. Used on read endpoints that personalize their
// response for signed-in callers.
func OptionalAuth(tokens tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, ok := identityFromRequest(r, tokens); ok {
				r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromRequest(r *http.Request, tokens tokenVerifier) (*model.Identity, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, false
	}
	identity, err := tokens.Verify(parts[1])
	if err != nil {
		return nil, false
	}
	return identity, true
}

// GetIdentity extracts the authenticated caller from the request context.
func GetIdentity(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*model.Identity)
	return identity, ok
}
