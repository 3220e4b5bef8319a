package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// LedgerSvcFacade defines journal-level workflows: expenses, transfers, and
// journal reads. Sales, payroll, and COGS payouts post through their own
// workflow services.
type LedgerSvcFacade interface {
	AddExpense(ctx context.Context, businessID string, req dto.AddExpenseRequest, userID string) (*domain.Transaction, error)
	Transfer(ctx context.Context, businessID string, req dto.TransferRequest, userID string) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, businessID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	ListAccountTransactions(ctx context.Context, businessID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}
