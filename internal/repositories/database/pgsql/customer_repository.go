package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	"github.com/bizbookhq/bizbook_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const customerColumns = `customer_id, business_id, name, phone, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.BusinessID,
		&m.Name,
		&m.Phone,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	cust := toDomainCustomer(m)
	return &cust, nil
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		customer.CustomerID, customer.BusinessID, customer.Name, customer.Phone, customer.IsActive,
		customer.CreatedAt, customer.CreatedBy, customer.LastUpdatedAt, customer.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer %s", apperrors.ErrDuplicate, customer.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer scoped to a business.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE business_id = $1 AND customer_id = $2;`
	cust, err := scanCustomer(r.Pool.QueryRow(ctx, query, businessID, customerID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	return cust, nil
}

// ListCustomers retrieves a paginated list of active customers for a business.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, businessID string, limit int, offset int) ([]domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE business_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query customers for business %s: %w", businessID, err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row for business %s: %w", businessID, err)
		}
		customers = append(customers, *cust)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows for business %s: %w", businessID, rows.Err())
	}
	return customers, nil
}

// FindPurchaseHistory retrieves the purchase rollup of a customer. A customer
// with no purchases yet gets a zero-valued rollup rather than an error.
func (r *PgxCustomerRepository) FindPurchaseHistory(ctx context.Context, customerID string) (*domain.CustomerPurchaseHistory, error) {
	query := `
		SELECT customer_id, total_purchase, outstanding_credit, last_purchase_at
		FROM customer_purchase_history
		WHERE customer_id = $1;
	`
	var m models.CustomerPurchaseHistory
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(&m.CustomerID, &m.TotalPurchase, &m.OutstandingCredit, &m.LastPurchaseAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.CustomerPurchaseHistory{
				CustomerID:        customerID,
				TotalPurchase:     decimal.Zero,
				OutstandingCredit: decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("failed to find purchase history for customer %s: %w", customerID, err)
	}
	return &domain.CustomerPurchaseHistory{
		CustomerID:        m.CustomerID,
		TotalPurchase:     m.TotalPurchase,
		OutstandingCredit: m.OutstandingCredit,
		LastPurchaseAt:    m.LastPurchaseAt,
	}, nil
}

// ApplyPurchaseInTx upserts the rollup row, adding the signed deltas to
// total_purchase and outstanding_credit and advancing last_purchase_at when
// purchasedAt is non-nil.
func (r *PgxCustomerRepository) ApplyPurchaseInTx(ctx context.Context, tx pgx.Tx, customerID string, purchaseDelta decimal.Decimal, creditDelta decimal.Decimal, purchasedAt *time.Time) error {
	query := `
		INSERT INTO customer_purchase_history (customer_id, total_purchase, outstanding_credit, last_purchase_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (customer_id)
		DO UPDATE SET
			total_purchase = customer_purchase_history.total_purchase + EXCLUDED.total_purchase,
			outstanding_credit = customer_purchase_history.outstanding_credit + EXCLUDED.outstanding_credit,
			last_purchase_at = COALESCE(EXCLUDED.last_purchase_at, customer_purchase_history.last_purchase_at);
	`
	_, err := tx.Exec(ctx, query, customerID, purchaseDelta, creditDelta, purchasedAt)
	if err != nil {
		return fmt.Errorf("failed to apply purchase rollup for customer %s: %w", customerID, err)
	}
	return nil
}
