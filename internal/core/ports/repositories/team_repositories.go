package repositories

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TeamMemberRepository defines operations for employees.
type TeamMemberRepository interface {
	SaveMember(ctx context.Context, member domain.TeamMember) error
	UpdateMember(ctx context.Context, member domain.TeamMember) error
	FindMemberByID(ctx context.Context, businessID string, memberID string) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error)

	// ListActiveSalariedMembers retrieves active members with salary > 0,
	// the population of an auto-distribution run.
	ListActiveSalariedMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error)
}

// TeamAccountRepository defines operations for the per-employee sub-ledger.
type TeamAccountRepository interface {
	FindTeamAccount(ctx context.Context, memberID string) (*domain.TeamAccount, error)

	// AdjustTeamBalanceInTx applies a signed delta to a member's balance,
	// creating the account row lazily. The balance may go negative.
	AdjustTeamBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// SalaryTransactionRepository defines operations for the salary sub-ledger.
type SalaryTransactionRepository interface {
	// HasSalaryTransactionInTx reports whether any salary transaction exists
	// for (member, month); the idempotency check for auto distribution.
	HasSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, memberID string, month string) (bool, error)

	InsertSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.SalaryTransaction) error
	ListSalaryTransactionsByMember(ctx context.Context, memberID string) ([]domain.SalaryTransaction, error)
}

// TeamRepositoryFacade combines all payroll-related repository interfaces.
type TeamRepositoryFacade interface {
	TeamMemberRepository
	TeamAccountRepository
	SalaryTransactionRepository
}
