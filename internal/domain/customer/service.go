package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"customer-service/internal/event"
	"customer-service/internal/pkg/apperrors"

	"github.com/google/uuid"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	Create(ctx context.Context, data CustomerData) (*Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, bool, error)
	Update(ctx context.Context, id uuid.UUID, data CustomerData) (*Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, criteria SearchCriteria) ([]*Customer, error)
	FindOrCreateByExternalIdentity(ctx context.Context, externalID string, data CustomerData) (*Customer, error)
	FindByExternalIdentity(ctx context.Context, externalID string) (*Customer, bool, error)
	UpdateByExternalIdentity(ctx context.Context, externalID string, data CustomerData) (*Customer, error)
	Count(ctx context.Context) (int64, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	if eventPublisher == nil {
		logger.Warn("Warning: No event publisher provided to NewCustomerService, events will be dropped")
		eventPublisher = event.NoopEventPublisher{}
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func NewCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID:       cust.ID.String(),
		FirstName:        cust.FirstName,
		LastName:         cust.LastName,
		Email:            cust.Email,
		ExternalIdentity: cust.ExternalIdentity,
		Version:          cust.Version,
		CreatedAt:        cust.CreatedAt,
		UpdatedAt:        cust.UpdatedAt,
	}
}

func (s *customerService) Create(ctx context.Context, data CustomerData) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	if err := data.Validate(); err != nil {
		s.logger.WarnContext(ctx, "Validation failed for new customer", slog.Any("error", err))
		return nil, err
	}
	s.logger.DebugContext(ctx, inputValidationPassed)

	return s.insert(ctx, NewCustomer(data))
}

func (s *customerService) FindByID(ctx context.Context, id uuid.UUID) (*Customer, bool, error) {
	logger := s.logger.With(slog.String("customerID", id.String()))
	logger.DebugContext(ctx, "Calling repository FindByID")

	cust, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.DebugContext(ctx, customerNotFound)
			return nil, false, nil
		}
		logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, false, fmt.Errorf("failed to get customer %s: %w", id, err)
	}

	return cust, true, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, data CustomerData) (*Customer, error) {
	logger := s.logger.With(slog.String("customerID", id.String()))
	logger.InfoContext(ctx, "Attempting to update customer")

	if err := data.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: no customer with ID %s", ErrNotFound, id)
		}
		logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %s: %w", id, err)
	}

	return s.replace(ctx, logger, cust, data)
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	logger := s.logger.With(slog.String("customerID", id.String()))
	logger.InfoContext(ctx, "Attempting to delete customer")

	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		logger.ErrorContext(ctx, "Repository error probing customer existence", slog.Any("error", err))
		return fmt.Errorf("failed to check customer %s: %w", id, err)
	}
	if !exists {
		logger.WarnContext(ctx, customerNotFound)
		return fmt.Errorf("%w: no customer with ID %s", ErrNotFound, id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %s: %w", id, err)
	}

	deleted := event.CustomerDeletedEvent{
		Timestamp:  time.Now(),
		CustomerID: id.String(),
	}
	if pubErr := s.pub.PublishCustomerDeleted(ctx, deleted); pubErr != nil {
		logger.ErrorContext(ctx, "Customer deleted, but FAILED to publish deletion event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

// Search scans every stored customer; the store does no filtering.
func (s *customerService) Search(ctx context.Context, criteria SearchCriteria) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Searching customers",
		slog.String("firstName", criteria.FirstName),
		slog.String("lastName", criteria.LastName),
		slog.String("email", criteria.Email),
	)

	all, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	if criteria.IsEmpty() {
		s.logger.DebugContext(ctx, "Empty search criteria, returning all customers", slog.Int("count", len(all)))
		return all, nil
	}

	results := make([]*Customer, 0, len(all))
	for _, c := range all {
		if criteria.Matches(c) {
			results = append(results, c)
		}
	}

	s.logger.DebugContext(ctx, "Found customers matching search criteria", slog.Int("count", len(results)))
	return results, nil
}

// FindOrCreateByExternalIdentity returns the customer bound to externalID
// unchanged when one exists; data is only used to create a new binding.
func (s *customerService) FindOrCreateByExternalIdentity(ctx context.Context, externalID string, data CustomerData) (*Customer, error) {
	externalID, err := normalizeExternalID(externalID)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(slog.String("externalIdentity", externalID))

	existing, err := s.repo.FindByExternalIdentity(ctx, externalID)
	if err == nil {
		logger.DebugContext(ctx, "Customer already bound to external identity", slog.String("customerID", existing.ID.String()))
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		logger.ErrorContext(ctx, "Repository error finding customer by external identity", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer for external identity %q: %w", externalID, err)
	}

	if err := data.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed for bound customer", slog.Any("error", err))
		return nil, err
	}

	logger.InfoContext(ctx, "No customer bound to external identity, creating one")
	return s.insert(ctx, NewBoundCustomer(externalID, data))
}

func (s *customerService) FindByExternalIdentity(ctx context.Context, externalID string) (*Customer, bool, error) {
	externalID, err := normalizeExternalID(externalID)
	if err != nil {
		return nil, false, err
	}

	cust, err := s.repo.FindByExternalIdentity(ctx, externalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, nil
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by external identity", slog.Any("error", err))
		return nil, false, fmt.Errorf("failed to find customer for external identity %q: %w", externalID, err)
	}
	return cust, true, nil
}

func (s *customerService) UpdateByExternalIdentity(ctx context.Context, externalID string, data CustomerData) (*Customer, error) {
	externalID, err := normalizeExternalID(externalID)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With(slog.String("externalIdentity", externalID))
	logger.InfoContext(ctx, "Attempting to update customer by external identity")

	if err := data.Validate(); err != nil {
		logger.WarnContext(ctx, "Validation failed for customer update", slog.Any("error", err))
		return nil, err
	}

	cust, err := s.repo.FindByExternalIdentity(ctx, externalID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.WarnContext(ctx, customerNotFound)
			return nil, fmt.Errorf("%w: no customer for external identity %q", ErrNotFound, externalID)
		}
		logger.ErrorContext(ctx, "Repository error finding customer by external identity", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer for external identity %q: %w", externalID, err)
	}

	return s.replace(ctx, logger.With(slog.String("customerID", cust.ID.String())), cust, data)
}

func (s *customerService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error counting customers", slog.Any("error", err))
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return n, nil
}

func (s *customerService) insert(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.DebugContext(ctx, "Calling repository Save")
	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	logger := s.logger.With(slog.String("customerID", cust.ID.String()))
	created := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, created); pubErr != nil {
		logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully created new customer")
	return cust, nil
}

func (s *customerService) replace(ctx context.Context, logger *slog.Logger, cust *Customer, data CustomerData) (*Customer, error) {
	cust.Apply(data)

	logger.DebugContext(ctx, "Calling repository Save", slog.Int64("version", cust.Version))
	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrUpdateConflict) {
			logger.WarnContext(ctx, "Customer was modified concurrently")
			return nil, ErrUpdateConflict
		}
		logger.ErrorContext(ctx, "Repository failed to save customer update", slog.Any("error", err))
		return nil, fmt.Errorf("failed to update customer %s: %w", cust.ID, err)
	}

	updated := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   NewCustomerEventPayload(cust),
	}
	if pubErr := s.pub.PublishCustomerUpdated(ctx, updated); pubErr != nil {
		logger.ErrorContext(ctx, "Customer updated, but FAILED to publish update event", slog.Any("error", pubErr))
	}

	logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func normalizeExternalID(externalID string) (string, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return "", apperrors.NewValidationError("externalIdentity", "is required")
	}
	return externalID, nil
}
