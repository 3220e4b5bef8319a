package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	"github.com/bizbookhq/bizbook_backend/internal/models"
	"github.com/bizbookhq/bizbook_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for journal data.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Amount:        d.Amount,
		Direction:     models.TransactionDirection(d.Direction),
		Notes:         d.Notes,
		OccurredAt:    d.OccurredAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Amount:        m.Amount,
		Direction:     domain.TransactionDirection(m.Direction),
		Notes:         m.Notes,
		OccurredAt:    m.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `t.transaction_id, t.account_id, t.amount, t.direction, t.notes, t.occurred_at, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Amount,
		&m.Direction,
		&m.Notes,
		&m.OccurredAt,
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
	txn := toDomainTransaction(m)
	return &txn, nil
}

// AppendInTx inserts an immutable journal row inside the caller's transaction
// and returns its ID. There is no corresponding update or delete.
func (r *PgxTransactionRepository) AppendInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (string, error) {
	m := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (transaction_id, account_id, amount, direction, notes, occurred_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.AccountID, m.Amount, m.Direction, m.Notes, m.OccurredAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return "", fmt.Errorf("failed to append transaction %s: %w", m.TransactionID, err)
	}
	return m.TransactionID, nil
}

// LinkBusinessInTx inserts the business join row for a transaction. Must run
// in the same enclosing transaction as AppendInTx.
func (r *PgxTransactionRepository) LinkBusinessInTx(ctx context.Context, tx pgx.Tx, transactionID string, businessID string) error {
	query := `INSERT INTO business_transactions (business_id, transaction_id) VALUES ($1, $2);`
	_, err := tx.Exec(ctx, query, businessID, transactionID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s already linked", apperrors.ErrDuplicate, transactionID)
		}
		return fmt.Errorf("failed to link transaction %s to business %s: %w", transactionID, businessID, err)
	}
	return nil
}

// FindTransactionByID retrieves a journal row scoped to a business. The join
// against business_transactions is the tenancy filter.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN business_transactions bt ON bt.transaction_id = t.transaction_id
		WHERE bt.business_id = $1 AND t.transaction_id = $2;
	`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, businessID, transactionID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactionsByBusiness retrieves journal rows for a business, newest
// first, using keyset pagination over (occurred_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactionsByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, businessID, nil, limit, nextToken)
}

// ListTransactionsByAccount retrieves journal rows against one account.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, businessID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	return r.listTransactions(ctx, businessID, &accountID, limit, nextToken)
}

func (r *PgxTransactionRepository) listTransactions(ctx context.Context, businessID string, accountID *string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN business_transactions bt ON bt.transaction_id = t.transaction_id
		WHERE bt.business_id = $1
	`
	args := []any{businessID}

	if accountID != nil {
		args = append(args, *accountID)
		query += fmt.Sprintf(" AND t.account_id = $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		occurredAt, lastID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, occurredAt, lastID)
		query += fmt.Sprintf(" AND (t.occurred_at, t.transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY t.occurred_at DESC, t.transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for business %s: %w", businessID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row for business %s: %w", businessID, err)
		}
		txns = append(txns, *txn)
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating transaction rows for business %s: %w", businessID, rows.Err())
	}

	var newNextToken *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.OccurredAt, last.TransactionID)
		newNextToken = &token
	}
	return txns, newNextToken, nil
}
