package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"customer-service/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testSecret = "testsecret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	require.NoError(t, err, "failed to sign token")
	return tokenString
}

func validClaims(subject, role string) Claims {
	return Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.AuthConfig{
		Enabled:   true,
		JWTSecret: testSecret,
	}

	t.Run("should allow request when middleware is disabled", func(t *testing.T) {
		disabled := cfg
		disabled.Enabled = false

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		AuthMiddleware(disabled, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should reject request with missing Authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":{"message":"Unauthorized"}}`, rec.Body.String())
	})

	t.Run("should reject request with malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject request with invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer invalidtoken")
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject token signed with another secret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "other", validClaims("alice", "USER")))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject expired token", func(t *testing.T) {
		claims := validClaims("alice", "USER")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, claims))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("should allow request with valid token and expose claims", func(t *testing.T) {
		var gotSubject, gotRole string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			require.True(t, ok)
			gotSubject, gotRole = claims.Subject, claims.Role
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, validClaims("alice", "ADMIN")))
		rec := httptest.NewRecorder()

		AuthMiddleware(cfg, testLogger)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", gotSubject)
		assert.Equal(t, "ADMIN", gotRole)
	})
}

func TestAuthMiddleware_EmptySecretRejectsForgedAdminToken(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: ""}
	forged := signToken(t, "", validClaims("mallory", "ADMIN"))

	chain := AuthMiddleware(cfg, testLogger)(RequireRole(cfg, testLogger, "ADMIN")(okHandler()))

	req := httptest.NewRequest(http.MethodDelete, "/api/customers/123", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	cfg := config.AuthConfig{Enabled: true, JWTSecret: testSecret}

	serve := func(ctx context.Context, c config.AuthConfig) int {
		req := httptest.NewRequest(http.MethodDelete, "/", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		RequireRole(c, testLogger, "ADMIN")(okHandler()).ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("admin passes", func(t *testing.T) {
		claims := validClaims("root", "ADMIN")
		assert.Equal(t, http.StatusOK, serve(WithClaims(context.Background(), &claims), cfg))
	})

	t.Run("role match ignores case", func(t *testing.T) {
		claims := validClaims("root", "admin")
		assert.Equal(t, http.StatusOK, serve(WithClaims(context.Background(), &claims), cfg))
	})

	t.Run("other role is forbidden", func(t *testing.T) {
		claims := validClaims("bob", "USER")
		assert.Equal(t, http.StatusForbidden, serve(WithClaims(context.Background(), &claims), cfg))
	})

	t.Run("missing claims is unauthorized", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(context.Background(), cfg))
	})

	t.Run("disabled auth passes through", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(context.Background(), config.AuthConfig{}))
	})
}

func TestSubjectFromContext(t *testing.T) {
	_, ok := SubjectFromContext(context.Background())
	assert.False(t, ok)

	blank := validClaims("  ", "USER")
	_, ok = SubjectFromContext(WithClaims(context.Background(), &blank))
	assert.False(t, ok)

	claims := validClaims("alice", "USER")
	sub, ok := SubjectFromContext(WithClaims(context.Background(), &claims))
	assert.True(t, ok)
	assert.Equal(t, "alice", sub)
}
