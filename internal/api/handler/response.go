package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
	"customer-service/internal/pkg/validation"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondInvalidPayload answers a request body that failed to decode or validate.
func respondInvalidPayload(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    "VALIDATION_FAILED",
			Message: "Request validation failed.",
			Details: validation.ToDetails(err),
		},
	})
}

func respondError(w http.ResponseWriter, err error) {
	status, code, message, field := http.StatusInternalServerError, "INTERNAL", "An unexpected error occurred.", ""
	var details map[string]string
	var fieldErrors apperrors.ValidationErrors
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &fieldErrors):
		status, code, message, details = http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed.", fieldErrors
	case errors.As(err, &validationError):
		status, code, message, field = http.StatusBadRequest, "VALIDATION_FAILED", validationError.Message, validationError.Field
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, "INVALID_ARGUMENT", err.Error()
	case errors.Is(err, customer.ErrNotFound), errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", "Resource not found."
	case errors.Is(err, customer.ErrUpdateConflict):
		status, code, message = http.StatusConflict, "CONFLICT", "Customer was modified concurrently, reload and retry."
	case errors.Is(err, customer.ErrDuplicateExternalIdentity), errors.Is(err, apperrors.ErrAlreadyExists), errors.Is(err, apperrors.ErrConflict):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized"
	case errors.Is(err, apperrors.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", "Forbidden"
	case errors.As(err, &appErr):
		slog.Default().Error("Internal error", "code", appErr.Code, "error", err)
		code, message = appErr.Code, "An internal error occurred while processing the request."
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Code:    code,
			Message: message,
			Field:   field,
			Details: details,
		},
	}
	respondJSON(w, status, resp)
}

// logLevelFor keeps expected client-side failures out of the error log.
func logLevelFor(err error) slog.Level {
	var fieldErrors apperrors.ValidationErrors
	switch {
	case errors.As(err, &fieldErrors),
		errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidArgument),
		errors.Is(err, customer.ErrNotFound),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, customer.ErrUpdateConflict),
		errors.Is(err, customer.ErrDuplicateExternalIdentity):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
