package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type costingService struct {
	txManager   portsrepo.TransactionManager
	costingRepo portsrepo.CostingRepositoryFacade
	productRepo portsrepo.ProductRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewCostingService creates the costing service, which owns cost
// classification, the allocation waterfall, and COGS pool payouts.
func NewCostingService(repos *portsrepo.RepositoryProvider) portssvc.CostingSvcFacade {
	return &costingService{
		txManager:   repos.TxManager,
		costingRepo: repos.CostingRepo,
		productRepo: repos.ProductRepo,
		txnRepo:     repos.TxnRepo,
	}
}

// AllocateInTx runs the allocation waterfall for a sold quantity inside the
// caller's transaction. Each allocation line is routed by its category:
// recurring categories accrue against the open monthly recovery row,
// asset-linked categories against the asset's remaining cost, and everything
// else accumulates in its COGS pool without bound. Amounts that overshoot a
// recovery target or asset cap come back as Excess for the caller to credit
// to the payment account.
func (s *costingService) AllocateInTx(ctx context.Context, tx pgx.Tx, businessID string, productID string, quantity decimal.Decimal, userID string, now time.Time) (portssvc.AllocationResult, error) {
	result := portssvc.AllocationResult{TotalCogs: decimal.Zero, Excess: decimal.Zero}

	lines, err := s.costingRepo.ListAllocationLines(ctx, tx, productID)
	if err != nil {
		return result, err
	}

	for _, line := range lines {
		amount := line.AmountPerUnit.Mul(quantity)
		if amount.IsZero() {
			continue
		}
		result.TotalCogs = result.TotalCogs.Add(amount)

		var applied decimal.Decimal
		switch {
		case line.Category.IsRecurring:
			applied, err = s.applyRecurring(ctx, tx, businessID, line.Category, amount, userID, now)
		default:
			applied, err = s.applyAssetOrPlain(ctx, tx, businessID, line.Category, amount, userID, now)
		}
		if err != nil {
			return result, err
		}
		result.Excess = result.Excess.Add(amount.Sub(applied))
	}
	return result, nil
}

// applyRecurring accrues against the open recovery row of the current month,
// capped at the remaining target. With no open row nothing is applied and the
// whole amount flows back to the caller as excess, same as a fulfilled row.
func (s *costingService) applyRecurring(ctx context.Context, tx pgx.Tx, businessID string, category domain.CostCategory, amount decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	recovery, err := s.costingRepo.FindRecoveryForUpdate(ctx, tx, category.CategoryID, utils.MonthKey(now))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	remaining := recovery.TargetAmount.Sub(recovery.RecoveredAmount)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	applied := decimal.Min(amount, remaining)
	status := domain.RecoveryInProgress
	if recovery.RecoveredAmount.Add(applied).GreaterThanOrEqual(recovery.TargetAmount) {
		status = domain.RecoveryFulfilled
	}
	if err := s.costingRepo.ApplyRecoveryInTx(ctx, tx, recovery.RecoveryID, applied, status, userID, now); err != nil {
		return decimal.Zero, err
	}
	if err := s.costingRepo.CreditCogsInTx(ctx, tx, businessID, category.CategoryID, applied, userID, now); err != nil {
		return decimal.Zero, err
	}
	return applied, nil
}

// applyAssetOrPlain accrues against the category's asset if it has one,
// capped at the asset's remaining cost. A category without an asset is a
// plain pool credit.
func (s *costingService) applyAssetOrPlain(ctx context.Context, tx pgx.Tx, businessID string, category domain.CostCategory, amount decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	asset, err := s.costingRepo.FindAssetByCategoryForUpdate(ctx, tx, category.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return amount, s.costingRepo.CreditCogsInTx(ctx, tx, businessID, category.CategoryID, amount, userID, now)
		}
		return decimal.Zero, err
	}

	remaining := asset.TotalCost.Sub(asset.Recovered)
	if remaining.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, nil
	}

	applied := decimal.Min(amount, remaining)
	if err := s.costingRepo.AddRecoveredInTx(ctx, tx, asset.AssetID, applied, userID, now); err != nil {
		return decimal.Zero, err
	}
	if err := s.costingRepo.CreditCogsInTx(ctx, tx, businessID, category.CategoryID, applied, userID, now); err != nil {
		return decimal.Zero, err
	}
	return applied, nil
}

// CreateCategory creates a cost category. A recurring category also opens its
// recovery row for the current month.
func (s *costingService) CreateCategory(ctx context.Context, businessID string, req dto.CreateCategoryRequest, userID string) (*domain.CostCategory, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purpose := domain.CategoryPurpose(req.Purpose)
	if purpose == "" {
		purpose = domain.PurposeGeneral
	}
	if purpose == domain.PurposeSalary {
		if _, err := s.costingRepo.FindCategoryByPurpose(ctx, businessID, domain.PurposeSalary); err == nil {
			return nil, fmt.Errorf("%w: business already has a salary category", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	if req.IsRecurring && (req.MonthlyTarget == nil || !req.MonthlyTarget.IsPositive()) {
		return nil, fmt.Errorf("%w: recurring category requires a positive monthly target", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	category := domain.CostCategory{
		CategoryID:    uuid.NewString(),
		BusinessID:    businessID,
		Name:          req.Name,
		CostType:      domain.CostType(req.CostType),
		Purpose:       purpose,
		IsRecurring:   req.IsRecurring,
		MonthlyTarget: req.MonthlyTarget,
		AuditFields:   newAuditFields(userID, now),
	}
	if err := s.costingRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}

	if category.IsRecurring {
		err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
			_, err := s.costingRepo.InsertRecoveryIfAbsentInTx(ctx, tx, domain.MonthlyCostRecovery{
				RecoveryID:      uuid.NewString(),
				CategoryID:      category.CategoryID,
				Month:           utils.MonthKey(now),
				TargetAmount:    *category.MonthlyTarget,
				RecoveredAmount: decimal.Zero,
				Status:          domain.RecoveryInProgress,
				AuditFields:     newAuditFields(userID, now),
			})
			return err
		})
		if err != nil {
			return nil, err
		}
	}

	logger.Info("Cost category created", slog.String("category_id", category.CategoryID), slog.String("cost_type", string(category.CostType)))
	return &category, nil
}

// ListCategories retrieves the cost categories of a business.
func (s *costingService) ListCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error) {
	return s.costingRepo.ListCategories(ctx, businessID)
}

// RegisterAllocation binds a product to a category. The per-unit sum across
// all of the product's allocations must never exceed the product price.
func (s *costingService) RegisterAllocation(ctx context.Context, businessID string, req dto.CreateAllocationRequest, userID string) (*domain.ProductCostAllocation, error) {
	if !req.AmountPerUnit.IsPositive() {
		return nil, fmt.Errorf("%w: amount per unit must be positive", apperrors.ErrValidation)
	}

	product, err := s.productRepo.FindProductByID(ctx, businessID, req.ProductID)
	if err != nil {
		return nil, err
	}
	category, err := s.costingRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	allocated, err := s.costingRepo.SumPerUnitExcluding(ctx, req.ProductID, "")
	if err != nil {
		return nil, err
	}
	if allocated.Add(req.AmountPerUnit).GreaterThan(product.Price) {
		return nil, fmt.Errorf("%w: allocating %s would exceed product price %s", apperrors.ErrCostLimitExceeded, req.AmountPerUnit, product.Price)
	}

	now := time.Now().UTC()
	allocation := domain.ProductCostAllocation{
		AllocationID:  uuid.NewString(),
		ProductID:     req.ProductID,
		CategoryID:    req.CategoryID,
		AmountPerUnit: req.AmountPerUnit,
		AuditFields:   newAuditFields(userID, now),
	}
	if err := s.costingRepo.SaveAllocation(ctx, allocation); err != nil {
		return nil, err
	}
	return &allocation, nil
}

// UpdateAllocation changes an allocation's per-unit amount under the same
// price cap as registration.
func (s *costingService) UpdateAllocation(ctx context.Context, businessID string, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.ProductCostAllocation, error) {
	if !req.AmountPerUnit.IsPositive() {
		return nil, fmt.Errorf("%w: amount per unit must be positive", apperrors.ErrValidation)
	}

	allocation, err := s.costingRepo.FindAllocationByID(ctx, allocationID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindProductByID(ctx, businessID, allocation.ProductID)
	if err != nil {
		return nil, err
	}

	others, err := s.costingRepo.SumPerUnitExcluding(ctx, allocation.ProductID, allocationID)
	if err != nil {
		return nil, err
	}
	if others.Add(req.AmountPerUnit).GreaterThan(product.Price) {
		return nil, fmt.Errorf("%w: allocating %s would exceed product price %s", apperrors.ErrCostLimitExceeded, req.AmountPerUnit, product.Price)
	}

	allocation.AmountPerUnit = req.AmountPerUnit
	allocation.LastUpdatedAt = time.Now().UTC()
	allocation.LastUpdatedBy = userID
	if err := s.costingRepo.UpdateAllocation(ctx, *allocation); err != nil {
		return nil, err
	}
	return allocation, nil
}

// ListAllocations retrieves a product's allocation rules.
func (s *costingService) ListAllocations(ctx context.Context, businessID string, productID string) ([]domain.ProductCostAllocation, error) {
	if _, err := s.productRepo.FindProductByID(ctx, businessID, productID); err != nil {
		return nil, err
	}
	return s.costingRepo.ListAllocationsByProduct(ctx, productID)
}

// CreateAsset registers a fixed-cost asset against a category. One asset per
// category; the allocation waterfall routes that category into the asset.
func (s *costingService) CreateAsset(ctx context.Context, businessID string, req dto.CreateAssetRequest, userID string) (*domain.FixedCostAsset, error) {
	if !req.TotalCost.IsPositive() {
		return nil, fmt.Errorf("%w: total cost must be positive", apperrors.ErrValidation)
	}

	category, err := s.costingRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	if category.IsRecurring {
		return nil, fmt.Errorf("%w: recurring categories recover through monthly targets, not assets", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	asset := domain.FixedCostAsset{
		AssetID:     uuid.NewString(),
		BusinessID:  businessID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		TotalCost:   req.TotalCost,
		Recovered:   decimal.Zero,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.costingRepo.SaveAsset(ctx, asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// ListAssets retrieves the assets of a business.
func (s *costingService) ListAssets(ctx context.Context, businessID string) ([]domain.FixedCostAsset, error) {
	return s.costingRepo.ListAssets(ctx, businessID)
}

// ListCogsAccounts retrieves the COGS pool balances of a business.
func (s *costingService) ListCogsAccounts(ctx context.Context, businessID string) ([]domain.CogsAccount, error) {
	return s.costingRepo.ListCogsAccounts(ctx, businessID)
}

// PayoutCogs pays an actual cost bill out of a category's COGS pool. The pool
// must cover the amount; the journal row carries no account reference because
// the money leaves a pool, not a balance-sheet account.
func (s *costingService) PayoutCogs(ctx context.Context, businessID string, req dto.CogsPayoutRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: payout amount must be positive", apperrors.ErrValidation)
	}
	category, err := s.costingRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     nil,
		Amount:        req.Amount,
		Direction:     domain.Outgoing,
		Notes:         req.Note,
		OccurredAt:    now,
		AuditFields:   newAuditFields(userID, now),
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		pool, err := s.costingRepo.FindCogsAccountForUpdate(ctx, tx, businessID, req.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: category %s has no COGS pool", apperrors.ErrInsufficientBalance, req.CategoryID)
			}
			return err
		}
		if pool.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: pool holds %s, payout needs %s", apperrors.ErrInsufficientBalance, pool.Balance, req.Amount)
		}
		if err := s.costingRepo.DebitCogsInTx(ctx, tx, pool.CogsAccountID, req.Amount, userID, now); err != nil {
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

	logger.Info("COGS payout posted", slog.String("category_id", req.CategoryID), slog.String("amount", req.Amount.String()))
	return &txn, nil
}
