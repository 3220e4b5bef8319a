package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for database transaction management.
// Every mutating workflow runs inside exactly one WithTx scope; a failure at
// any step rolls back the whole unit.
type TransactionManager interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction.
	Rollback(ctx context.Context, tx pgx.Tx) error

	// WithTx begins a transaction, runs fn, and commits if fn returns nil.
	// Any error from fn (or the commit) rolls the transaction back and is
	// returned to the caller.
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
