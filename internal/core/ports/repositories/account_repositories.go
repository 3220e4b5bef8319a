package repositories

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByRole retrieves the well-known account for a role within a
	// business. Returns apperrors.ErrNotFound if the business has no account
	// for that role.
	FindAccountByRole(ctx context.Context, businessID string, role domain.AccountRole) (*domain.Account, error)

	// ListAccounts retrieves active accounts for a business.
	ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// SaveAccountInTx persists a new account inside the caller's transaction.
	// Used by tenant setup, which seeds role accounts atomically.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error

	// UpdateAccount updates an existing account's mutable details (name, active flag).
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountTransactionSupport defines the in-transaction balance primitives.
// AdjustBalanceInTx is the only way an account balance changes.
type AccountTransactionSupport interface {
	// FindAccountForUpdate selects an account and locks its row for update.
	FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error)

	// AdjustBalanceInTx applies a signed delta to an account balance inside
	// the caller's transaction and returns the new balance.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
