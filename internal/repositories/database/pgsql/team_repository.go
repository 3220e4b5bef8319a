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

type PgxTeamRepository struct {
	BaseRepository
}

// newPgxTeamRepository creates a new repository for employees, their
// sub-ledger accounts and salary transactions.
func newPgxTeamRepository(pool *pgxpool.Pool) *PgxTeamRepository {
	return &PgxTeamRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TeamRepositoryFacade = (*PgxTeamRepository)(nil)

func toDomainMember(m models.TeamMember) domain.TeamMember {
	return domain.TeamMember{
		MemberID:   m.MemberID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Phone:      m.Phone,
		Salary:     m.Salary,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const memberColumns = `member_id, business_id, name, phone, salary, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanMember(row pgx.Row) (*domain.TeamMember, error) {
	var m models.TeamMember
	err := row.Scan(
		&m.MemberID,
		&m.BusinessID,
		&m.Name,
		&m.Phone,
		&m.Salary,
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
	member := toDomainMember(m)
	return &member, nil
}

// SaveMember inserts a new team member.
func (r *PgxTeamRepository) SaveMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		INSERT INTO team_members (` + memberColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		member.MemberID, member.BusinessID, member.Name, member.Phone, member.Salary, member.IsActive,
		member.CreatedAt, member.CreatedBy, member.LastUpdatedAt, member.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: team member %s", apperrors.ErrDuplicate, member.MemberID)
		}
		return fmt.Errorf("failed to save team member %s: %w", member.MemberID, err)
	}
	return nil
}

// UpdateMember updates an existing team member's details.
func (r *PgxTeamRepository) UpdateMember(ctx context.Context, member domain.TeamMember) error {
	query := `
		UPDATE team_members
		SET name = $2, phone = $3, salary = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE member_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		member.MemberID, member.Name, member.Phone, member.Salary, member.IsActive,
		member.LastUpdatedAt, member.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update team member %s: %w", member.MemberID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindMemberByID retrieves a team member scoped to a business.
func (r *PgxTeamRepository) FindMemberByID(ctx context.Context, businessID string, memberID string) (*domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE business_id = $1 AND member_id = $2;`
	member, err := scanMember(r.Pool.QueryRow(ctx, query, businessID, memberID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find team member %s: %w", memberID, err)
	}
	return member, nil
}

// ListMembers retrieves all team members of a business.
func (r *PgxTeamRepository) ListMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE business_id = $1 ORDER BY name;`
	return r.queryMembers(ctx, query, businessID)
}

// ListActiveSalariedMembers retrieves active members with salary > 0, the
// population of an auto-distribution run.
func (r *PgxTeamRepository) ListActiveSalariedMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM team_members WHERE business_id = $1 AND is_active = TRUE AND salary > 0 ORDER BY name;`
	return r.queryMembers(ctx, query, businessID)
}

func (r *PgxTeamRepository) queryMembers(ctx context.Context, query string, args ...any) ([]domain.TeamMember, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query team members: %w", err)
	}
	defer rows.Close()

	members := []domain.TeamMember{}
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		members = append(members, *member)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating team member rows: %w", rows.Err())
	}
	return members, nil
}

// --- team accounts (per-employee sub-ledger) ---

// FindTeamAccount retrieves a member's sub-ledger account. A member with no
// salary events yet gets a zero-balance account rather than an error.
func (r *PgxTeamRepository) FindTeamAccount(ctx context.Context, memberID string) (*domain.TeamAccount, error) {
	query := `
		SELECT member_id, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM team_accounts
		WHERE member_id = $1;
	`
	var m models.TeamAccount
	err := r.Pool.QueryRow(ctx, query, memberID).Scan(
		&m.MemberID, &m.Balance, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.TeamAccount{MemberID: memberID, Balance: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("failed to find team account for member %s: %w", memberID, err)
	}
	return &domain.TeamAccount{
		MemberID: m.MemberID,
		Balance:  m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// AdjustTeamBalanceInTx applies a signed delta to a member's balance, creating
// the account row lazily. The balance may go negative; a negative balance is
// an advance against future salary.
func (r *PgxTeamRepository) AdjustTeamBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		INSERT INTO team_accounts (member_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $3, $4)
		ON CONFLICT (member_id)
		DO UPDATE SET balance = team_accounts.balance + EXCLUDED.balance, last_updated_at = $3, last_updated_by = $4
		RETURNING balance;
	`
	var newBalance decimal.Decimal
	if err := tx.QueryRow(ctx, query, memberID, delta, now, userID).Scan(&newBalance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to adjust team balance for member %s: %w", memberID, err)
	}
	return newBalance, nil
}

// --- salary transactions ---

// HasSalaryTransactionInTx reports whether an ADDITION salary transaction
// exists for (member, month); the idempotency check for auto distribution.
// Withdrawals do not count, so an advance paid out early in the month does
// not suppress that month's accrual.
func (r *PgxTeamRepository) HasSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, memberID string, month string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM salary_transactions WHERE member_id = $1 AND month = $2 AND txn_type = $3);`
	var exists bool
	if err := tx.QueryRow(ctx, query, memberID, month, string(domain.SalaryAddition)).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check salary transactions for member %s month %s: %w", memberID, month, err)
	}
	return exists, nil
}

// InsertSalaryTransactionInTx appends a salary sub-ledger row.
func (r *PgxTeamRepository) InsertSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.SalaryTransaction) error {
	query := `
		INSERT INTO salary_transactions (salary_txn_id, member_id, month, amount, txn_type, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		txn.SalaryTxnID, txn.MemberID, txn.Month, txn.Amount, string(txn.Type), txn.Notes,
		txn.CreatedAt, txn.CreatedBy, txn.LastUpdatedAt, txn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: salary transaction %s", apperrors.ErrDuplicate, txn.SalaryTxnID)
		}
		return fmt.Errorf("failed to insert salary transaction for member %s: %w", txn.MemberID, err)
	}
	return nil
}

// ListSalaryTransactionsByMember retrieves a member's salary history, newest first.
func (r *PgxTeamRepository) ListSalaryTransactionsByMember(ctx context.Context, memberID string) ([]domain.SalaryTransaction, error) {
	query := `
		SELECT salary_txn_id, member_id, month, amount, txn_type, notes, created_at, created_by, last_updated_at, last_updated_by
		FROM salary_transactions
		WHERE member_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary transactions for member %s: %w", memberID, err)
	}
	defer rows.Close()

	txns := []domain.SalaryTransaction{}
	for rows.Next() {
		var m models.SalaryTransaction
		err := rows.Scan(
			&m.SalaryTxnID, &m.MemberID, &m.Month, &m.Amount, &m.Type, &m.Notes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary transaction row for member %s: %w", memberID, err)
		}
		txns = append(txns, domain.SalaryTransaction{
			SalaryTxnID: m.SalaryTxnID,
			MemberID:    m.MemberID,
			Month:       m.Month,
			Amount:      m.Amount,
			Type:        domain.SalaryTransactionType(m.Type),
			Notes:       m.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     m.CreatedAt,
				CreatedBy:     m.CreatedBy,
				LastUpdatedAt: m.LastUpdatedAt,
				LastUpdatedBy: m.LastUpdatedBy,
			},
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating salary transaction rows for member %s: %w", memberID, rows.Err())
	}
	return txns, nil
}
