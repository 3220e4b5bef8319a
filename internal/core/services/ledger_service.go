package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ledgerService struct {
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates the ledger service for expenses, transfers, and
// journal reads.
func NewLedgerService(repos *portsrepo.RepositoryProvider) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txManager:   repos.TxManager,
		accountRepo: repos.AccountRepo,
		txnRepo:     repos.TxnRepo,
	}
}

// lockAccount locks an account row and verifies it belongs to the business
// and is active.
func (s *ledgerService) lockAccount(ctx context.Context, tx pgx.Tx, businessID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrConflict, accountID)
	}
	return account, nil
}

// AddExpense posts an outgoing amount against an account. Non-credit accounts
// must cover the amount; credit-role accounts may go arbitrarily negative.
func (s *ledgerService) AddExpense(ctx context.Context, businessID string, req dto.AddExpenseRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     &req.AccountID,
		Amount:        req.Amount,
		Direction:     domain.Outgoing,
		Notes:         req.Note,
		OccurredAt:    now,
		AuditFields:   newAuditFields(userID, now),
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		account, err := s.lockAccount(ctx, tx, businessID, req.AccountID)
		if err != nil {
			return err
		}
		if account.Role != domain.RoleCredit && account.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account holds %s, expense needs %s", apperrors.ErrInsufficientBalance, account.Balance, req.Amount)
		}
		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, req.AccountID, req.Amount.Neg(), userID, now); err != nil {
			return err
		}
		if _, err := s.txnRepo.AppendInTx(ctx, tx, txn); err != nil {
			return err
		}
		return s.txnRepo.LinkBusinessInTx(ctx, tx, txn.TransactionID, businessID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Expense posted", slog.String("account_id", req.AccountID), slog.String("amount", req.Amount.String()))
	return &txn, nil
}

// Transfer moves money between two accounts of the same business. A single
// journal row is recorded against the source account with a note naming the
// destination. Accounts are locked in ID order to avoid deadlocks between
// concurrent opposing transfers.
func (s *ledgerService) Transfer(ctx context.Context, businessID string, req dto.TransferRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	var txn domain.Transaction

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		first, second := req.FromAccountID, req.ToAccountID
		if second < first {
			first, second = second, first
		}
		locked := map[string]*domain.Account{}
		for _, id := range []string{first, second} {
			account, err := s.lockAccount(ctx, tx, businessID, id)
			if err != nil {
				return err
			}
			locked[id] = account
		}

		source := locked[req.FromAccountID]
		dest := locked[req.ToAccountID]
		if source.Role != domain.RoleCredit && source.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account holds %s, transfer needs %s", apperrors.ErrInsufficientBalance, source.Balance, req.Amount)
		}

		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, source.AccountID, req.Amount.Neg(), userID, now); err != nil {
			return err
		}
		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, dest.AccountID, req.Amount, userID, now); err != nil {
			return err
		}

		txn = domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     &source.AccountID,
			Amount:        req.Amount,
			Direction:     domain.Transfer,
			Notes:         fmt.Sprintf("Transfer to %s", dest.Name),
			OccurredAt:    now,
			AuditFields:   newAuditFields(userID, now),
		}
		if _, err := s.txnRepo.AppendInTx(ctx, tx, txn); err != nil {
			return err
		}
		return s.txnRepo.LinkBusinessInTx(ctx, tx, txn.TransactionID, businessID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Transfer posted",
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
		slog.String("amount", req.Amount.String()))
	return &txn, nil
}

// GetTransaction retrieves a journal row scoped to a business.
func (s *ledgerService) GetTransaction(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	return s.txnRepo.FindTransactionByID(ctx, businessID, transactionID)
}

// ListTransactions retrieves a page of journal rows for a business.
func (s *ledgerService) ListTransactions(ctx context.Context, businessID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.txnRepo.ListTransactionsByBusiness(ctx, businessID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return toListTransactionsResponse(txns, nextToken), nil
}

// ListAccountTransactions retrieves a page of journal rows against one account.
func (s *ledgerService) ListAccountTransactions(ctx context.Context, businessID string, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	txns, nextToken, err := s.txnRepo.ListTransactionsByAccount(ctx, businessID, accountID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return toListTransactionsResponse(txns, nextToken), nil
}

func toListTransactionsResponse(txns []domain.Transaction, nextToken *string) *dto.ListTransactionsResponse {
	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i]))
	}
	return resp
}
