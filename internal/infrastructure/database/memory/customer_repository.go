// Package memory holds an in-process customer store. It keeps no data across
// restarts and is meant for local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]*customer.Customer
	byExternal map[string]uuid.UUID
	order      []uuid.UUID
	now        func() time.Time
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		byID:       make(map[uuid.UUID]*customer.Customer),
		byExternal: make(map[string]uuid.UUID),
		now:        time.Now,
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("customer cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cust.IsNew() {
		return r.insert(cust)
	}
	return r.update(cust)
}

func (r *CustomerRepository) insert(cust *customer.Customer) error {
	if cust.IsBound() {
		if _, taken := r.byExternal[*cust.ExternalIdentity]; taken {
			return customer.ErrDuplicateExternalIdentity
		}
	}

	now := r.now()
	cust.ID = uuid.New()
	cust.Version = 1
	cust.CreatedAt = now
	cust.UpdatedAt = now

	r.byID[cust.ID] = cust.Clone()
	r.order = append(r.order, cust.ID)
	if cust.IsBound() {
		r.byExternal[*cust.ExternalIdentity] = cust.ID
	}
	return nil
}

func (r *CustomerRepository) update(cust *customer.Customer) error {
	stored, ok := r.byID[cust.ID]
	if !ok || stored.Version != cust.Version {
		return customer.ErrUpdateConflict
	}

	stored.FirstName = cust.FirstName
	stored.LastName = cust.LastName
	stored.Email = cust.Email
	stored.Version++
	stored.UpdatedAt = r.now()

	cust.Version = stored.Version
	cust.UpdatedAt = stored.UpdatedAt
	cust.CreatedAt = stored.CreatedAt
	cust.ExternalIdentity = stored.Clone().ExternalIdentity
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return stored.Clone(), nil
}

func (r *CustomerRepository) FindByExternalIdentity(ctx context.Context, externalID string) (*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byExternal[externalID]
	if !ok {
		return nil, customer.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	customers := make([]*customer.Customer, 0, len(r.order))
	for _, id := range r.order {
		customers = append(customers, r.byID[id].Clone())
	}
	return customers, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return customer.ErrNotFound
	}

	delete(r.byID, id)
	if stored.IsBound() {
		delete(r.byExternal, *stored.ExternalIdentity)
	}
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}
