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

type PgxSaleRepository struct {
	BaseRepository
}

// newPgxSaleRepository creates a new repository for sales and receivables.
func newPgxSaleRepository(pool *pgxpool.Pool) *PgxSaleRepository {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

func toDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:      m.SaleID,
		BusinessID:  m.BusinessID,
		CustomerID:  m.CustomerID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		Rate:        m.Rate,
		TotalAmount: m.TotalAmount,
		PaymentType: domain.PaymentType(m.PaymentType),
		AccountID:   m.AccountID,
		Status:      domain.SaleStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const saleColumns = `sale_id, business_id, customer_id, product_id, quantity, rate, total_amount, payment_type, account_id, status, created_at, created_by, last_updated_at, last_updated_by`

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.BusinessID,
		&m.CustomerID,
		&m.ProductID,
		&m.Quantity,
		&m.Rate,
		&m.TotalAmount,
		&m.PaymentType,
		&m.AccountID,
		&m.Status,
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
	sale := toDomainSale(m)
	return &sale, nil
}

// InsertSaleInTx persists a new sale row inside the caller's transaction.
func (r *PgxSaleRepository) InsertSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		sale.SaleID, sale.BusinessID, sale.CustomerID, sale.ProductID,
		sale.Quantity, sale.Rate, sale.TotalAmount, string(sale.PaymentType), sale.AccountID, string(sale.Status),
		sale.CreatedAt, sale.CreatedBy, sale.LastUpdatedAt, sale.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sale %s", apperrors.ErrDuplicate, sale.SaleID)
		}
		return fmt.Errorf("failed to insert sale %s: %w", sale.SaleID, err)
	}
	return nil
}

// UpdateSaleStatusInTx transitions a sale's status.
func (r *PgxSaleRepository) UpdateSaleStatusInTx(ctx context.Context, tx pgx.Tx, saleID string, status domain.SaleStatus, userID string, now time.Time) error {
	query := `
		UPDATE sales
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, saleID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of sale %s: %w", saleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindSaleByID retrieves a sale scoped to a business.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, businessID string, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE business_id = $1 AND sale_id = $2;`
	sale, err := scanSale(r.Pool.QueryRow(ctx, query, businessID, saleID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find sale %s: %w", saleID, err)
	}
	return sale, nil
}

// ListSalesByBusiness retrieves sales of a business, newest first.
func (r *PgxSaleRepository) ListSalesByBusiness(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE business_id = $1
		ORDER BY created_at DESC, sale_id DESC
		LIMIT $2 OFFSET $3;
	`
	return r.querySales(ctx, query, businessID, normalizeLimit(limit), normalizeOffset(offset))
}

// ListSalesByCustomer retrieves a customer's sales, newest first.
func (r *PgxSaleRepository) ListSalesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE business_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, sale_id DESC
		LIMIT $3 OFFSET $4;
	`
	return r.querySales(ctx, query, businessID, customerID, normalizeLimit(limit), normalizeOffset(offset))
}

func (r *PgxSaleRepository) querySales(ctx context.Context, query string, args ...any) ([]domain.Sale, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, *sale)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	return sales, nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// --- debit accounts (receivables) ---

func toDomainDebitAccount(m models.DebitAccount) domain.DebitAccount {
	return domain.DebitAccount{
		DebitAccountID: m.DebitAccountID,
		BusinessID:     m.BusinessID,
		SaleID:         m.SaleID,
		CustomerID:     m.CustomerID,
		Amount:         m.Amount,
		Recovered:      m.Recovered,
		Status:         domain.DebitAccountStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const debitAccountColumns = `debit_account_id, business_id, sale_id, customer_id, amount, recovered, status, created_at, created_by, last_updated_at, last_updated_by`

func scanDebitAccount(row pgx.Row) (*domain.DebitAccount, error) {
	var m models.DebitAccount
	err := row.Scan(
		&m.DebitAccountID,
		&m.BusinessID,
		&m.SaleID,
		&m.CustomerID,
		&m.Amount,
		&m.Recovered,
		&m.Status,
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
	debit := toDomainDebitAccount(m)
	return &debit, nil
}

// InsertDebitAccountInTx persists the receivable created by a debit sale.
func (r *PgxSaleRepository) InsertDebitAccountInTx(ctx context.Context, tx pgx.Tx, debit domain.DebitAccount) error {
	query := `
		INSERT INTO debit_accounts (` + debitAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		debit.DebitAccountID, debit.BusinessID, debit.SaleID, debit.CustomerID,
		debit.Amount, debit.Recovered, string(debit.Status),
		debit.CreatedAt, debit.CreatedBy, debit.LastUpdatedAt, debit.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: sale %s already has a receivable", apperrors.ErrDuplicate, debit.SaleID)
		}
		return fmt.Errorf("failed to insert receivable for sale %s: %w", debit.SaleID, err)
	}
	return nil
}

// FindDebitAccountBySaleForUpdate locks the receivable of a sale for the
// caller's transaction, serializing concurrent repayments.
func (r *PgxSaleRepository) FindDebitAccountBySaleForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.DebitAccount, error) {
	query := `SELECT ` + debitAccountColumns + ` FROM debit_accounts WHERE sale_id = $1 FOR UPDATE;`
	debit, err := scanDebitAccount(tx.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock receivable for sale %s: %w", saleID, err)
	}
	return debit, nil
}

// ApplyRepaymentInTx adds to recovered and sets the new status.
func (r *PgxSaleRepository) ApplyRepaymentInTx(ctx context.Context, tx pgx.Tx, debitAccountID string, amount decimal.Decimal, status domain.DebitAccountStatus, userID string, now time.Time) error {
	query := `
		UPDATE debit_accounts
		SET recovered = recovered + $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE debit_account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, debitAccountID, amount, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to apply repayment to receivable %s: %w", debitAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListDebitAccounts retrieves receivables for a business, optionally filtered
// to running ones.
func (r *PgxSaleRepository) ListDebitAccounts(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error) {
	query := `SELECT ` + debitAccountColumns + ` FROM debit_accounts WHERE business_id = $1`
	args := []any{businessID}
	if runningOnly {
		args = append(args, string(domain.DebitRunning))
		query += " AND status = $2"
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivables for business %s: %w", businessID, err)
	}
	defer rows.Close()

	debits := []domain.DebitAccount{}
	for rows.Next() {
		debit, err := scanDebitAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receivable row for business %s: %w", businessID, err)
		}
		debits = append(debits, *debit)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating receivable rows for business %s: %w", businessID, rows.Err())
	}
	return debits, nil
}
