package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"customer-service/internal/api/handler/dto"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Enabled:   true,
		JWTSecret: "test-jwt-secret-key",
		TokenTTL:  time.Hour,
		Users: []config.UserConfig{
			{Username: "admin", Password: "admin-pass", Role: "ADMIN"},
			{Username: "user", Password: "user-pass", Role: "USER"},
		},
	}
}

func postToken(h *AuthHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.GenerateBearerToken(rec, req)
	return rec
}

func TestGenerateBearerToken(t *testing.T) {
	cfg := newTestAuthConfig()
	handler := NewAuthHandler(cfg, testLogger)
	fixed := time.Now().Truncate(time.Second)
	handler.now = func() time.Time { return fixed }

	t.Run("successfully generates token with subject and role", func(t *testing.T) {
		rec := postToken(handler, `{"username":"admin","password":"admin-pass"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.True(t, strings.HasPrefix(resp.Token, "Bearer "))
		assert.Equal(t, int64(3600), resp.ExpiresIn)

		claims := &mw.Claims{}
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(resp.Token, "Bearer "), claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		require.NoError(t, err)
		assert.Equal(t, "admin", claims.Subject)
		assert.Equal(t, "ADMIN", claims.Role)
		assert.Equal(t, fixed.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec := postToken(handler, `{"username":"admin","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown user is unauthorized", func(t *testing.T) {
		rec := postToken(handler, `{"username":"mallory","password":"admin-pass"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("fails with invalid request body", func(t *testing.T) {
		rec := postToken(handler, "invalid json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var respBody dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respBody))
		assert.Equal(t, map[string]string{"payload": "invalid json"}, respBody.Error.Details)
	})

	t.Run("fails when username is missing", func(t *testing.T) {
		rec := postToken(handler, `{"password":"x"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var respBody dto.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &respBody))
		assert.Equal(t, "is required", respBody.Error.Details["username"])
	})

	t.Run("zero ttl falls back to default", func(t *testing.T) {
		noTTL := newTestAuthConfig()
		noTTL.TokenTTL = 0
		rec := postToken(NewAuthHandler(noTTL, testLogger), `{"username":"user","password":"user-pass"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp dto.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, int64(defaultTokenTTL.Seconds()), resp.ExpiresIn)
	})
}

func TestGenerateBearerToken_NoSigningSecret(t *testing.T) {
	cfg := newTestAuthConfig()
	cfg.JWTSecret = ""
	handler := NewAuthHandler(cfg, testLogger)

	rec := postToken(handler, `{"username":"admin","password":"admin-pass"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Bearer")
}
