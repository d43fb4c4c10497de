package dto

import "customer-service/internal/pkg/validation"

type ErrorDetail struct {
	Code    string            `json:"code,omitempty"`
	Message string            `json:"message"`
	Field   string            `json:"field,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type TokenRequest struct {
	Username string `json:"username" validate:"notblank" example:"admin"`
	Password string `json:"password" validate:"required" example:"admin"`
}

func (r *TokenRequest) Validate() error {
	return validation.Struct(r)
}

type TokenResponse struct {
	Token     string `json:"token" example:"Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresIn int64  `json:"expiresIn" example:"86400"`
}

type PingResponse struct {
	Message string `json:"message" example:"pong"`
	Subject string `json:"subject,omitempty" example:"admin"`
	Role    string `json:"role,omitempty" example:"ADMIN"`
}
