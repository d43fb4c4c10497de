package customer

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("customer not found")

	ErrUpdateConflict = errors.New("update conflict detected")

	ErrDuplicateExternalIdentity = errors.New("external identity already bound to another customer")
)

// CustomerRepository is the record store behind the customer service.
// Lookups return ErrNotFound when no record matches.
type CustomerRepository interface {
	// Save inserts the customer when its ID is unset, assigning ID and Version.
	// Otherwise it replaces the stored record, guarded by Version.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	FindByExternalIdentity(ctx context.Context, externalID string) (*Customer, error)

	FindAll(ctx context.Context) ([]*Customer, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	DeleteByID(ctx context.Context, id uuid.UUID) error

	Count(ctx context.Context) (int64, error)
}
