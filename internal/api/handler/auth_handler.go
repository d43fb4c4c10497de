package handler

import (
	"crypto/subtle"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"customer-service/internal/api/handler/dto"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"
	"customer-service/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

type AuthHandler struct {
	cfg    config.AuthConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthHandler(cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
		now:    time.Now,
	}
}

// GenerateBearerToken issues a signed token for a configured user.
//
// @Summary Generate a JWT bearer token
// @Description Checks the credentials against the configured users and returns a bearer token carrying the username as subject and the user's role.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse "Token successfully generated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Failure 401 {object} dto.ErrorResponse "Unknown user or wrong password"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (h *AuthHandler) GenerateBearerToken(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", "error", err)
		respondInvalidPayload(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Token request validation failed", "error", err)
		respondInvalidPayload(w, err)
		return
	}

	user, ok := h.authenticate(req.Username, req.Password)
	if !ok {
		h.logger.WarnContext(r.Context(), "Rejected token request", "username", req.Username)
		respondError(w, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized))
		return
	}

	if h.cfg.JWTSecret == "" {
		h.logger.ErrorContext(r.Context(), "Refusing to issue token without a signing secret")
		respondError(w, fmt.Errorf("%w: token signing is not configured", apperrors.ErrInternalServer))
		return
	}

	ttl := h.cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := h.now()
	claims := mw.Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", "error", err)
		respondError(w, fmt.Errorf("%w: failed to sign token", apperrors.ErrInternalServer))
		return
	}

	h.logger.InfoContext(r.Context(), "Issued bearer token", "username", user.Username, "role", user.Role)
	respondJSON(w, http.StatusOK, dto.TokenResponse{
		Token:     fmt.Sprintf("Bearer %s", tokenString),
		ExpiresIn: int64(ttl.Seconds()),
	})
}

func (h *AuthHandler) authenticate(username, password string) (config.UserConfig, bool) {
	for _, u := range h.cfg.Users {
		if u.Username != username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return u, true
		}
		return config.UserConfig{}, false
	}
	return config.UserConfig{}, false
}
