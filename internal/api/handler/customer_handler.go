package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CustomerHandler struct {
	service customer.CustomerService
	logger  *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service: s,
		logger:  l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateCustomer handles POST /api/customers
// @Summary Create a new customer
// @Description Creates a customer profile that is not bound to any external identity. Email addresses are not required to be unique.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer creation request"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error during creation"
// @Router /api/customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), req.ToData())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCustomerResponse(created)
	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.String("customerID", resp.ID))
	respondJSON(w, http.StatusCreated, resp)
}

// GetCustomer handles GET /api/customers/{customerID}
// @Summary Retrieve customer details
// @Description Retrieves a customer by ID.
// @Tags Customers
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	cust, found, err := h.service.FindByID(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}
	if !found {
		h.logger.DebugContext(r.Context(), "Customer not found", slog.String("customerID", customerID.String()))
		respondError(w, customer.ErrNotFound)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(cust))
}

// UpdateCustomer handles PUT /api/customers/{customerID}
// @Summary Update a customer
// @Description Replaces the first name, last name and email of a customer. The ID and any external identity binding are kept.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path string true "Customer ID" Format(uuid)
// @Param request body dto.CustomerRequest true "New customer data"
// @Success 200 {object} dto.CustomerResponse "Customer successfully updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID or request payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 409 {object} dto.ErrorResponse "Customer was modified concurrently"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}

	updated, err := h.service.Update(r.Context(), customerID, req.ToData())
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.String("customerID", customerID.String()))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /api/customers/{customerID}
// @Summary Delete a customer
// @Description Permanently removes a customer. Requires the ADMIN role.
// @Tags Customers
// @Param customerID path string true "Customer ID" Format(uuid)
// @Success 204 "Customer successfully deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 403 {object} dto.ErrorResponse "Caller lacks the ADMIN role"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.String("customerID", customerID.String()))
	respondJSON(w, http.StatusNoContent, nil)
}

// ListCustomers handles GET /api/customers
// @Summary List or search customers
// @Description Lists every customer, or only those whose fields contain all given filters (case-insensitive).
// @Tags Customers
// @Produce json
// @Param firstName query string false "Substring of the first name"
// @Param lastName query string false "Substring of the last name"
// @Param email query string false "Substring of the email"
// @Success 200 {array} dto.CustomerResponse "Matching customers"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.SearchCustomersRequest{
		FirstName: q.Get("firstName"),
		LastName:  q.Get("lastName"),
		Email:     q.Get("email"),
	}
	h.search(w, r, req)
}

// SearchCustomers handles POST /api/customers/search
// @Summary Search customers
// @Description Returns customers whose fields contain every non-empty filter (case-insensitive). An empty body or empty object returns all customers.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.SearchCustomersRequest true "Search filters"
// @Success 200 {array} dto.CustomerResponse "Matching customers"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid bearer token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/customers/search [post]
// @Security BearerAuth
func (h *CustomerHandler) SearchCustomers(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchCustomersRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondInvalidPayload(w, err)
		return
	}
	h.search(w, r, req)
}

func (h *CustomerHandler) search(w http.ResponseWriter, r *http.Request, req dto.SearchCustomersRequest) {
	customers, err := h.service.Search(r.Context(), req.ToCriteria())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to search customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Customers searched successfully", slog.Int("count", len(customers)))
	respondJSON(w, http.StatusOK, dto.NewCustomerListResponse(customers))
}
