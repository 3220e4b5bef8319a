package repositories

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionAppender defines the append-only journal primitives. Both calls
// must happen inside the same enclosing transaction; an append that commits
// without its business link is an integrity violation.
type TransactionAppender interface {
	// AppendInTx inserts an immutable transaction row and returns its ID.
	AppendInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (string, error)

	// LinkBusinessInTx inserts the business join row for a transaction.
	LinkBusinessInTx(ctx context.Context, tx pgx.Tx, transactionID string, businessID string) error
}

// TransactionReader defines read operations for the journal.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction scoped to a business.
	FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByBusiness retrieves journal rows for a business using
	// token-based pagination. Returns the rows and a token for the next page.
	ListTransactionsByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionsByAccount retrieves journal rows against one account.
	ListTransactionsByAccount(ctx context.Context, businessID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionRepositoryFacade combines journal read and append interfaces.
type TransactionRepositoryFacade interface {
	TransactionAppender
	TransactionReader
}
