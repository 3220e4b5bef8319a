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
	"github.com/shopspring/decimal"
)

type saleService struct {
	txManager    portsrepo.TransactionManager
	saleRepo     portsrepo.SaleRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	allocator    portssvc.CostAllocator
}

// NewSaleService creates the sale workflow service. The allocator is injected
// so the waterfall runs inside the sale's own transaction.
func NewSaleService(repos *portsrepo.RepositoryProvider, allocator portssvc.CostAllocator) portssvc.SaleSvcFacade {
	return &saleService{
		txManager:    repos.TxManager,
		saleRepo:     repos.SaleRepo,
		accountRepo:  repos.AccountRepo,
		txnRepo:      repos.TxnRepo,
		productRepo:  repos.ProductRepo,
		customerRepo: repos.CustomerRepo,
		allocator:    allocator,
	}
}

// CreateSale posts a sale end to end in one transaction: stock moves out,
// COGS is allocated through the waterfall, and either a payment account is
// credited (cash/bank/credit) or a receivable is opened (debit).
func (s *saleService) CreateSale(ctx context.Context, businessID string, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrValidation)
	}
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: rate must be positive", apperrors.ErrValidation)
	}
	if !req.TotalAmount.Equal(req.Quantity.Mul(req.Rate)) {
		return nil, fmt.Errorf("%w: total amount must equal quantity * rate", apperrors.ErrValidation)
	}
	paymentType := domain.PaymentType(req.PaymentType)
	if paymentType != domain.PaymentDebit && req.AccountID == nil {
		return nil, fmt.Errorf("%w: accountID is required for %s sales", apperrors.ErrValidation, paymentType)
	}

	if _, err := s.customerRepo.FindCustomerByID(ctx, businessID, req.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		BusinessID:  businessID,
		CustomerID:  req.CustomerID,
		ProductID:   req.ProductID,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		TotalAmount: req.TotalAmount,
		PaymentType: paymentType,
		AuditFields: newAuditFields(userID, now),
	}

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		product, err := s.productRepo.FindProductForUpdate(ctx, tx, businessID, req.ProductID)
		if err != nil {
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: product %s is inactive", apperrors.ErrConflict, product.ProductID)
		}
		if product.Stock.LessThan(req.Quantity) {
			return fmt.Errorf("%w: product holds %s, sale needs %s", apperrors.ErrInsufficientStock, product.Stock, req.Quantity)
		}
		if err := s.productRepo.AdjustStockInTx(ctx, tx, req.ProductID, req.Quantity.Neg(), userID, now); err != nil {
			return err
		}

		if paymentType == domain.PaymentDebit {
			return s.postDebitSaleInTx(ctx, tx, &sale, userID, now)
		}
		return s.postPaidSaleInTx(ctx, tx, &sale, *req.AccountID, req.TotalAmount, userID, now)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Sale created",
		slog.String("sale_id", sale.SaleID),
		slog.String("payment_type", string(sale.PaymentType)),
		slog.String("total", sale.TotalAmount.String()))
	return &sale, nil
}

// postPaidSaleInTx handles the cash/bank/credit path: allocate COGS, credit
// the payment account with revenue minus allocated cost plus any excess, and
// journal that credit as a single incoming row.
func (s *saleService) postPaidSaleInTx(ctx context.Context, tx pgx.Tx, sale *domain.Sale, accountID string, amount decimal.Decimal, userID string, now time.Time) error {
	account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, accountID)
	if err != nil {
		return err
	}
	if account.BusinessID != sale.BusinessID {
		return apperrors.ErrNotFound
	}
	if !account.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrConflict, accountID)
	}

	result, err := s.allocator.AllocateInTx(ctx, tx, sale.BusinessID, sale.ProductID, sale.Quantity, userID, now)
	if err != nil {
		return err
	}
	credit := amount.Sub(result.TotalCogs).Add(result.Excess)
	if credit.IsNegative() {
		return fmt.Errorf("%w: sale total %s is below allocated cost %s", apperrors.ErrValidation, amount, result.TotalCogs)
	}

	if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, accountID, credit, userID, now); err != nil {
		return err
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     &accountID,
		Amount:        credit,
		Direction:     domain.Incoming,
		Notes:         fmt.Sprintf("Sale %s", sale.SaleID),
		OccurredAt:    now,
		AuditFields:   newAuditFields(userID, now),
	}
	if _, err := s.txnRepo.AppendInTx(ctx, tx, txn); err != nil {
		return err
	}
	if err := s.txnRepo.LinkBusinessInTx(ctx, tx, txn.TransactionID, sale.BusinessID); err != nil {
		return err
	}

	sale.AccountID = &accountID
	sale.Status = domain.SalePosted
	if err := s.saleRepo.InsertSaleInTx(ctx, tx, *sale); err != nil {
		return err
	}
	return s.customerRepo.ApplyPurchaseInTx(ctx, tx, sale.CustomerID, sale.TotalAmount, decimal.Zero, &now)
}

// postDebitSaleInTx handles the debit path: revenue and allocation are
// deferred to repayment. The receivable role account grows by the sale total
// without a journal row; the journal records the money when it actually
// arrives.
func (s *saleService) postDebitSaleInTx(ctx context.Context, tx pgx.Tx, sale *domain.Sale, userID string, now time.Time) error {
	receivable, err := s.accountRepo.FindAccountByRole(ctx, sale.BusinessID, domain.RoleReceivable)
	if err != nil {
		return err
	}
	if _, err := s.accountRepo.FindAccountForUpdate(ctx, tx, receivable.AccountID); err != nil {
		return err
	}
	if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, receivable.AccountID, sale.TotalAmount, userID, now); err != nil {
		return err
	}

	sale.Status = domain.SalePending
	if err := s.saleRepo.InsertSaleInTx(ctx, tx, *sale); err != nil {
		return err
	}
	debit := domain.DebitAccount{
		DebitAccountID: uuid.NewString(),
		BusinessID:     sale.BusinessID,
		SaleID:         sale.SaleID,
		CustomerID:     sale.CustomerID,
		Amount:         sale.TotalAmount,
		Recovered:      decimal.Zero,
		Status:         domain.DebitRunning,
		AuditFields:    newAuditFields(userID, now),
	}
	if err := s.saleRepo.InsertDebitAccountInTx(ctx, tx, debit); err != nil {
		return err
	}
	return s.customerRepo.ApplyPurchaseInTx(ctx, tx, sale.CustomerID, sale.TotalAmount, sale.TotalAmount, &now)
}

// RecordPayment applies a repayment to a debit sale's receivable. The paid
// fraction of the sale goes through the same waterfall as a cash sale; the
// receivable account shrinks by the payment and the receivable row closes
// once fully recovered.
func (s *saleService) RecordPayment(ctx context.Context, businessID string, saleID string, req dto.RecordPaymentRequest, userID string) (*domain.DebitAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	var updated domain.DebitAccount

	err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		debit, err := s.saleRepo.FindDebitAccountBySaleForUpdate(ctx, tx, saleID)
		if err != nil {
			return err
		}
		if debit.BusinessID != businessID {
			return apperrors.ErrNotFound
		}
		if debit.Status == domain.DebitClosed {
			return fmt.Errorf("%w: receivable for sale %s is already closed", apperrors.ErrConflict, saleID)
		}
		outstanding := debit.Amount.Sub(debit.Recovered)
		if req.Amount.GreaterThan(outstanding) {
			return fmt.Errorf("%w: outstanding %s, payment %s", apperrors.ErrOverpayment, outstanding, req.Amount)
		}

		sale, err := s.saleRepo.FindSaleByID(ctx, businessID, saleID)
		if err != nil {
			return err
		}

		account, err := s.accountRepo.FindAccountForUpdate(ctx, tx, req.AccountID)
		if err != nil {
			return err
		}
		if account.BusinessID != businessID {
			return apperrors.ErrNotFound
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrConflict, req.AccountID)
		}

		// Allocate COGS for the fraction of the sold quantity this payment covers.
		paidQuantity := sale.Quantity.Mul(req.Amount).Div(sale.TotalAmount)
		result, err := s.allocator.AllocateInTx(ctx, tx, businessID, sale.ProductID, paidQuantity, userID, now)
		if err != nil {
			return err
		}
		credit := req.Amount.Sub(result.TotalCogs).Add(result.Excess)
		if credit.IsNegative() {
			return fmt.Errorf("%w: payment %s is below allocated cost %s", apperrors.ErrValidation, req.Amount, result.TotalCogs)
		}

		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, req.AccountID, credit, userID, now); err != nil {
			return err
		}
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     &req.AccountID,
			Amount:        credit,
			Direction:     domain.Incoming,
			Notes:         fmt.Sprintf("Repayment for sale %s", saleID),
			OccurredAt:    now,
			AuditFields:   newAuditFields(userID, now),
		}
		if _, err := s.txnRepo.AppendInTx(ctx, tx, txn); err != nil {
			return err
		}
		if err := s.txnRepo.LinkBusinessInTx(ctx, tx, txn.TransactionID, businessID); err != nil {
			return err
		}

		// Mirror the repayment on the receivable role account, no journal row.
		receivable, err := s.accountRepo.FindAccountByRole(ctx, businessID, domain.RoleReceivable)
		if err != nil {
			return err
		}
		if _, err := s.accountRepo.FindAccountForUpdate(ctx, tx, receivable.AccountID); err != nil {
			return err
		}
		if _, err := s.accountRepo.AdjustBalanceInTx(ctx, tx, receivable.AccountID, req.Amount.Neg(), userID, now); err != nil {
			return err
		}

		status := domain.DebitRunning
		if debit.Recovered.Add(req.Amount).GreaterThanOrEqual(debit.Amount) {
			status = domain.DebitClosed
		}
		if err := s.saleRepo.ApplyRepaymentInTx(ctx, tx, debit.DebitAccountID, req.Amount, status, userID, now); err != nil {
			return err
		}
		if status == domain.DebitClosed {
			if err := s.saleRepo.UpdateSaleStatusInTx(ctx, tx, saleID, domain.SalePaid, userID, now); err != nil {
				return err
			}
		}
		if err := s.customerRepo.ApplyPurchaseInTx(ctx, tx, debit.CustomerID, decimal.Zero, req.Amount.Neg(), nil); err != nil {
			return err
		}

		updated = *debit
		updated.Recovered = debit.Recovered.Add(req.Amount)
		updated.Status = status
		updated.LastUpdatedAt = now
		updated.LastUpdatedBy = userID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Repayment recorded",
		slog.String("sale_id", saleID),
		slog.String("amount", req.Amount.String()),
		slog.String("status", string(updated.Status)))
	return &updated, nil
}

// GetSale retrieves a sale scoped to a business.
func (s *saleService) GetSale(ctx context.Context, businessID string, saleID string) (*domain.Sale, error) {
	return s.saleRepo.FindSaleByID(ctx, businessID, saleID)
}

// ListSales retrieves a page of a business's sales.
func (s *saleService) ListSales(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error) {
	return s.saleRepo.ListSalesByBusiness(ctx, businessID, limit, offset)
}

// ListCustomerSales retrieves a page of one customer's sales.
func (s *saleService) ListCustomerSales(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, businessID, customerID); err != nil {
		return nil, err
	}
	return s.saleRepo.ListSalesByCustomer(ctx, businessID, customerID, limit, offset)
}

// ListReceivables retrieves the receivables of a business.
func (s *saleService) ListReceivables(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error) {
	return s.saleRepo.ListDebitAccounts(ctx, businessID, runningOnly)
}
