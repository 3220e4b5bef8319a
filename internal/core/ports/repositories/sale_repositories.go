package repositories

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// SaleWriter defines write operations for sales. Sales are only created and
// status-transitioned inside workflow transactions.
type SaleWriter interface {
	// InsertSaleInTx persists a new sale row.
	InsertSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error

	// UpdateSaleStatusInTx transitions a sale's status.
	UpdateSaleStatusInTx(ctx context.Context, tx pgx.Tx, saleID string, status domain.SaleStatus, userID string, now time.Time) error
}

// SaleReader defines read operations for sales.
type SaleReader interface {
	FindSaleByID(ctx context.Context, businessID string, saleID string) (*domain.Sale, error)
	ListSalesByBusiness(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error)
	ListSalesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error)
}

// DebitAccountRepository defines operations for receivables.
type DebitAccountRepository interface {
	// InsertDebitAccountInTx persists the receivable created by a debit sale.
	InsertDebitAccountInTx(ctx context.Context, tx pgx.Tx, debit domain.DebitAccount) error

	// FindDebitAccountBySaleForUpdate locks the receivable of a sale.
	FindDebitAccountBySaleForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.DebitAccount, error)

	// ApplyRepaymentInTx adds to recovered and sets the new status.
	ApplyRepaymentInTx(ctx context.Context, tx pgx.Tx, debitAccountID string, amount decimal.Decimal, status domain.DebitAccountStatus, userID string, now time.Time) error

	// ListDebitAccounts retrieves receivables for a business, optionally
	// filtered to running ones.
	ListDebitAccounts(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error)
}

// SaleRepositoryFacade combines all sale-related repository interfaces.
type SaleRepositoryFacade interface {
	SaleWriter
	SaleReader
	DebitAccountRepository
}

// CustomerRepositoryFacade defines operations for customers and their
// purchase-history rollup.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, businessID string, limit int, offset int) ([]domain.Customer, error)
	FindPurchaseHistory(ctx context.Context, customerID string) (*domain.CustomerPurchaseHistory, error)

	// ApplyPurchaseInTx upserts the rollup row, adding the signed deltas to
	// total_purchase and outstanding_credit and advancing last_purchase_at
	// when purchasedAt is non-nil.
	ApplyPurchaseInTx(ctx context.Context, tx pgx.Tx, customerID string, purchaseDelta decimal.Decimal, creditDelta decimal.Decimal, purchasedAt *time.Time) error
}
