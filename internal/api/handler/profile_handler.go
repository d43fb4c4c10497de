package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

// ProfileHandler serves the customer profile bound to the authenticated
// caller. The token subject is the external identity.
type ProfileHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewProfileHandler(s customer.CustomerService, l *slog.Logger) *ProfileHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ProfileHandler{
		service: s,
		logger:  l.With("component", "ProfileHandler"),
	}
}

func subjectFromRequest(r *http.Request) (string, error) {
	sub, ok := mw.SubjectFromContext(r.Context())
	if !ok {
		return "", fmt.Errorf("%w: no authenticated subject", apperrors.ErrUnauthorized)
	}
	return sub, nil
}

// GetProfile handles GET /api/profile
// @Summary Get own profile
// @Description Returns the customer bound to the caller's identity.
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.CustomerResponse "Bound customer profile"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "No profile bound to the caller yet"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/profile [get]
// @Security BearerAuth
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromRequest(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Profile requested without identity")
		respondError(w, err)
		return
	}

	cust, found, err := h.service.FindByExternalIdentity(r.Context(), subject)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to find profile", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if !found {
		respondError(w, customer.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateProfile handles PUT /api/profile
// @Summary Create or update own profile
// @Description Updates the customer bound to the caller's identity. When none is bound yet a new customer is created and bound.
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Profile data"
// @Success 200 {object} dto.CustomerResponse "Profile updated"
// @Success 201 {object} dto.CustomerResponse "Profile created and bound"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 409 {object} dto.ErrorResponse "Profile was modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/profile [put]
// @Security BearerAuth
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	subject, err := subjectFromRequest(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Profile update without identity")
		respondError(w, err)
		return
	}
	logger := h.logger.With(slog.String("externalIdentity", subject))

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}

	_, found, err := h.service.FindByExternalIdentity(r.Context(), subject)
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to find profile", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if found {
		updated, err := h.service.UpdateByExternalIdentity(r.Context(), subject, req.ToData())
		if err != nil {
			logger.Log(r.Context(), logLevelFor(err), "Service failed to update profile", slog.Any("error", err))
			respondError(w, err)
			return
		}
		logger.InfoContext(r.Context(), "Profile updated", slog.String("customerID", updated.ID.String()))
		respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
		return
	}

	created, err := h.service.FindOrCreateByExternalIdentity(r.Context(), subject, req.ToData())
	if err != nil {
		logger.Log(r.Context(), logLevelFor(err), "Service failed to create profile", slog.Any("error", err))
		respondError(w, err)
		return
	}
	logger.InfoContext(r.Context(), "Profile created", slog.String("customerID", created.ID.String()))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}
