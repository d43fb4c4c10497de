package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"customer-service/internal/domain/customer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(first, last, email string) *customer.Customer {
	return customer.NewCustomer(customer.CustomerData{FirstName: first, LastName: last, Email: email})
}

func TestCustomerRepository_SaveInsert(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	c := newCustomer("John", "Doe", "john@example.com")
	require.NoError(t, repo.Save(ctx, c))

	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, int64(1), c.Version)
	assert.Equal(t, fixed, c.CreatedAt)
	assert.Equal(t, fixed, c.UpdatedAt)

	found, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, found)
	assert.NotSame(t, c, found)
}

func TestCustomerRepository_SaveUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	c := customer.NewBoundCustomer("octocat", customer.CustomerData{FirstName: "Octo", LastName: "Cat", Email: "octo@example.com"})
	require.NoError(t, repo.Save(ctx, c))

	t.Run("replaces fields and bumps version", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)

		loaded.Apply(customer.CustomerData{FirstName: "Mona", LastName: "Lisa", Email: "mona@example.com"})
		loaded.ExternalIdentity = nil
		require.NoError(t, repo.Save(ctx, loaded))
		assert.Equal(t, int64(2), loaded.Version)

		stored, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mona", stored.FirstName)
		require.NotNil(t, stored.ExternalIdentity)
		assert.Equal(t, "octocat", *stored.ExternalIdentity)
		assert.Equal(t, "octocat", *loaded.ExternalIdentity)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := c.Clone()
		stale.FirstName = "Stale"

		err := repo.Save(ctx, stale)
		assert.ErrorIs(t, err, customer.ErrUpdateConflict)

		stored, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mona", stored.FirstName)
	})

	t.Run("unknown id conflicts", func(t *testing.T) {
		ghost := newCustomer("Ghost", "Writer", "ghost@example.com")
		ghost.ID = uuid.New()
		ghost.Version = 1

		assert.ErrorIs(t, repo.Save(ctx, ghost), customer.ErrUpdateConflict)
	})
}

func TestCustomerRepository_ExternalIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	bound := customer.NewBoundCustomer("alice", customer.CustomerData{FirstName: "Alice", LastName: "Liddell", Email: "alice@example.com"})
	require.NoError(t, repo.Save(ctx, bound))

	found, err := repo.FindByExternalIdentity(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, bound.ID, found.ID)

	_, err = repo.FindByExternalIdentity(ctx, "bob")
	assert.ErrorIs(t, err, customer.ErrNotFound)

	dup := customer.NewBoundCustomer("alice", customer.CustomerData{FirstName: "Other", LastName: "Alice", Email: "other@example.com"})
	assert.ErrorIs(t, repo.Save(ctx, dup), customer.ErrDuplicateExternalIdentity)

	require.NoError(t, repo.DeleteByID(ctx, bound.ID))
	_, err = repo.FindByExternalIdentity(ctx, "alice")
	assert.ErrorIs(t, err, customer.ErrNotFound)
}

func TestCustomerRepository_UnboundCustomersDoNotClaimIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	first := newCustomer("Ann", "One", "ann@example.com")
	second := newCustomer("Ben", "Two", "ben@example.com")
	require.False(t, first.IsBound())

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	_, err := repo.FindByExternalIdentity(ctx, "")
	assert.ErrorIs(t, err, customer.ErrNotFound)

	require.NoError(t, repo.DeleteByID(ctx, first.ID))
	bound := customer.NewBoundCustomer("ann", customer.CustomerData{FirstName: "Ann", LastName: "One", Email: "ann@example.com"})
	require.NoError(t, repo.Save(ctx, bound))

	found, err := repo.FindByExternalIdentity(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, bound.ID, found.ID)
}

func TestCustomerRepository_FindAllKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	names := []string{"Charlie", "Alice", "Bob"}
	for _, n := range names {
		require.NoError(t, repo.Save(ctx, newCustomer(n, "Test", n+"@example.com")))
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, n := range names {
		assert.Equal(t, n, all[i].FirstName)
	}

	all[0].FirstName = "Mutated"
	again, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Charlie", again[0].FirstName)
}

func TestCustomerRepository_DeleteAndExists(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	a := newCustomer("A", "One", "a@example.com")
	b := newCustomer("B", "Two", "b@example.com")
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	exists, err := repo.ExistsByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.DeleteByID(ctx, a.ID))

	exists, err = repo.ExistsByID(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	assert.ErrorIs(t, repo.DeleteByID(ctx, a.ID), customer.ErrNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}

func TestCustomerRepository_CanceledContext(t *testing.T) {
	repo := NewCustomerRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, repo.Save(ctx, newCustomer("A", "B", "a@example.com")), context.Canceled)
	_, err := repo.FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCustomerRepository_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	repo := NewCustomerRepository()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Save(ctx, newCustomer("Load", "Test", "load@example.com"))
		}()
	}
	wg.Wait()

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}
