package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBPool is the subset of *pgxpool.Pool the repository needs.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ DBPool = (*pgxpool.Pool)(nil)

const uniqueViolation = "23505"

const (
	insertCustomerQuery = `
        INSERT INTO customers (first_name, last_name, email, external_identity, version, created_at, updated_at)
        VALUES ($1, $2, $3, $4, 1, NOW(), NOW())
        RETURNING id, version, created_at, updated_at`

	updateCustomerQuery = `
        UPDATE customers
        SET first_name = $1,
            last_name = $2,
            email = $3,
            version = version + 1,
            updated_at = NOW()
        WHERE id = $4 AND version = $5
        RETURNING external_identity, version, created_at, updated_at`

	selectCustomerColumns = `
        SELECT id, first_name, last_name, email, external_identity, version, created_at, updated_at
        FROM customers`

	findCustomerByIDQuery = selectCustomerColumns + `
        WHERE id = $1`

	findCustomerByExternalIdentityQuery = selectCustomerColumns + `
        WHERE external_identity = $1`

	findAllCustomersQuery = selectCustomerColumns + `
        ORDER BY created_at ASC, id ASC`

	existsCustomerQuery = `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`

	countCustomersQuery = `SELECT COUNT(*) FROM customers`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.IsNew() {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.DebugContext(ctx, "Attempting to insert new customer", slog.String("email", cust.Email))

	err := r.db.QueryRow(ctx, insertCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.ExternalIdentity,
	).Scan(
		&cust.ID,
		&cust.Version,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return r.translateDBError(ctx, "insert customer", err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.String("customerID", cust.ID.String()))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	logger := r.logger.With(slog.String("customerID", cust.ID.String()), slog.Int64("version", cust.Version))
	logger.DebugContext(ctx, "Attempting to update customer")

	err := r.db.QueryRow(ctx, updateCustomerQuery,
		cust.FirstName,
		cust.LastName,
		cust.Email,
		cust.ID,
		cust.Version,
	).Scan(
		&cust.ExternalIdentity,
		&cust.Version,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Update matched no row, customer missing or version is stale")
			return customer.ErrUpdateConflict
		}
		return r.translateDBError(ctx, "update customer", err)
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	cust, err := scanCustomer(r.db.QueryRow(ctx, findCustomerByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "Customer not found", slog.String("customerID", id.String()))
			return nil, customer.ErrNotFound
		}
		return nil, r.translateDBError(ctx, "get customer by ID", err)
	}
	return cust, nil
}

func (r *CustomerRepository) FindByExternalIdentity(ctx context.Context, externalID string) (*customer.Customer, error) {
	cust, err := scanCustomer(r.db.QueryRow(ctx, findCustomerByExternalIdentityQuery, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.DebugContext(ctx, "No customer bound to external identity", slog.String("externalIdentity", externalID))
			return nil, customer.ErrNotFound
		}
		return nil, r.translateDBError(ctx, "get customer by external identity", err)
	}
	return cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx, findAllCustomersQuery)
	if err != nil {
		return nil, r.translateDBError(ctx, "list customers", err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, r.translateDBError(ctx, "scan customer row", err)
		}
		customers = append(customers, cust)
	}

	if err := rows.Err(); err != nil {
		return nil, r.translateDBError(ctx, "iterate customer rows", err)
	}

	r.logger.DebugContext(ctx, "Listed customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsCustomerQuery, id).Scan(&exists); err != nil {
		return false, r.translateDBError(ctx, "check customer existence", err)
	}
	return exists, nil
}

func (r *CustomerRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, deleteCustomerQuery, id)
	if err != nil {
		return r.translateDBError(ctx, "delete customer", err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found", slog.String("customerID", id.String()))
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully", slog.String("customerID", id.String()))
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, countCustomersQuery).Scan(&n); err != nil {
		return 0, r.translateDBError(ctx, "count customers", err)
	}
	return n, nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.ID,
		&cust.FirstName,
		&cust.LastName,
		&cust.Email,
		&cust.ExternalIdentity,
		&cust.Version,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}

func (r *CustomerRepository) translateDBError(ctx context.Context, op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			r.logger.WarnContext(ctx, "Database unique constraint violation",
				slog.String("operation", op),
				slog.String("constraint", pgErr.ConstraintName),
				slog.String("detail", pgErr.Detail),
			)
			return fmt.Errorf("%w: %s", customer.ErrDuplicateExternalIdentity, pgErr.ConstraintName)
		}

		r.logger.ErrorContext(ctx, "PostgreSQL specific error",
			slog.String("operation", op),
			slog.String("code", pgErr.Code),
			slog.String("message", pgErr.Message),
		)
		return apperrors.WrapDatabaseError(pgErr, fmt.Sprintf("failed to %s: db error code %s", op, pgErr.Code))
	}

	r.logger.ErrorContext(ctx, "Generic database error", slog.String("operation", op), slog.Any("error", err))
	return apperrors.WrapDatabaseError(err, "failed to "+op)
}
