package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fotofocus-backend/internal/config"
	"fotofocus-backend/internal/service"
)

func newTestTokens(t *testing.T) *service.TokenService {
	t.Helper()
	return service.NewTokenService(&config.Config{JWTSecret: "test-secret", TokenMaxAgeSec: 3600})
}

func okHandler(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestRequireAuth_MissingHeader(t *testing.T) {
	tokens := newTestTokens(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireAuth(tokens)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	tokens := newTestTokens(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rr := httptest.NewRecorder()
	RequireAuth(tokens)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_NonBearerScheme(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue(42, "user@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic "+token)
	rr := httptest.NewRecorder()
	RequireAuth(tokens)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue(42, "user@example.com")
	require.NoError(t, err)

	var sawIdentity bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(42), identity.UserID)
		assert.Equal(t, "user@example.com", identity.Email)
		sawIdentity = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	RequireAuth(tokens)(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, sawIdentity)
}

func TestOptionalAuth_Anonymous(t *testing.T) {
	tokens := newTestTokens(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetIdentity(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	OptionalAuth(tokens)(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOptionalAuth_WithToken(t *testing.T) {
	tokens := newTestTokens(t)
	token, err := tokens.Issue(7, "viewer@example.com")
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		require.True(t, ok)
		assert.Equal(t, int64(7), identity.UserID)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	OptionalAuth(tokens)(next).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRateLimiter_BurstExceeded(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	var last int
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		rl.Limit(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
		last = rr.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)

	// A different IP has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rr := httptest.NewRecorder()
	rl.Limit(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
