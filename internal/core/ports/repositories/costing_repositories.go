package repositories

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AllocationLine pairs an allocation rule with its category, as consumed by
// the cost allocation engine.
type AllocationLine struct {
	AmountPerUnit decimal.Decimal
	Category      domain.CostCategory
}

// CostCategoryRepository defines operations for cost categories.
type CostCategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.CostCategory) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.CostCategory, error)
	ListCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error)

	// ListRecurringCategories retrieves the recurring categories of a
	// business, used by the monthly rollover.
	ListRecurringCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error)

	// FindCategoryByPurpose resolves a well-known category (e.g. the salary
	// pool) by its purpose tag.
	FindCategoryByPurpose(ctx context.Context, businessID string, purpose domain.CategoryPurpose) (*domain.CostCategory, error)
}

// AllocationRepository defines operations for product cost allocation rules.
type AllocationRepository interface {
	SaveAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error
	UpdateAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error
	FindAllocationByID(ctx context.Context, allocationID string) (*domain.ProductCostAllocation, error)
	ListAllocationsByProduct(ctx context.Context, productID string) ([]domain.ProductCostAllocation, error)

	// ListAllocationLines retrieves a product's allocation rules joined with
	// their categories, in a stable order, inside the caller's transaction.
	ListAllocationLines(ctx context.Context, tx pgx.Tx, productID string) ([]AllocationLine, error)

	// SumPerUnitExcluding returns the sum of amount_per_unit across a
	// product's allocations, excluding one allocation ID (empty string to
	// exclude none). Used by the price guard.
	SumPerUnitExcluding(ctx context.Context, productID string, excludeAllocationID string) (decimal.Decimal, error)
}

// CogsAccountRepository defines operations for per-category COGS pools.
type CogsAccountRepository interface {
	FindCogsAccountByCategory(ctx context.Context, businessID string, categoryID string) (*domain.CogsAccount, error)
	ListCogsAccounts(ctx context.Context, businessID string) ([]domain.CogsAccount, error)

	// FindCogsAccountForUpdate locks the pool row for the caller's transaction.
	FindCogsAccountForUpdate(ctx context.Context, tx pgx.Tx, businessID string, categoryID string) (*domain.CogsAccount, error)

	// CreditCogsInTx adds to a pool balance, creating the pool row lazily.
	CreditCogsInTx(ctx context.Context, tx pgx.Tx, businessID string, categoryID string, amount decimal.Decimal, userID string, now time.Time) error

	// DebitCogsInTx subtracts from an existing pool balance.
	DebitCogsInTx(ctx context.Context, tx pgx.Tx, cogsAccountID string, amount decimal.Decimal, userID string, now time.Time) error
}

// FixedCostAssetRepository defines operations for capital asset recovery.
type FixedCostAssetRepository interface {
	SaveAsset(ctx context.Context, asset domain.FixedCostAsset) error
	FindAssetByID(ctx context.Context, assetID string) (*domain.FixedCostAsset, error)
	ListAssets(ctx context.Context, businessID string) ([]domain.FixedCostAsset, error)

	// FindAssetByCategoryForUpdate locks the asset tied to a category, or
	// returns apperrors.ErrNotFound when the category has no asset.
	FindAssetByCategoryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string) (*domain.FixedCostAsset, error)

	// AddRecoveredInTx increases the asset's recovered amount.
	AddRecoveredInTx(ctx context.Context, tx pgx.Tx, assetID string, amount decimal.Decimal, userID string, now time.Time) error
}

// MonthlyRecoveryRepository defines operations for recurring-cost recovery rows.
type MonthlyRecoveryRepository interface {
	ListRecoveriesByCategory(ctx context.Context, categoryID string) ([]domain.MonthlyCostRecovery, error)

	// FindRecoveryForUpdate locks the (category, month) row, or returns
	// apperrors.ErrNotFound when no row is open for that month.
	FindRecoveryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string, month string) (*domain.MonthlyCostRecovery, error)

	// ApplyRecoveryInTx adds to recovered_amount and sets the new status.
	ApplyRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, amount decimal.Decimal, status domain.RecoveryStatus, userID string, now time.Time) error

	// CloseRecoveryInTx sets the terminal status of a prior-month row.
	CloseRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, status domain.RecoveryStatus, userID string, now time.Time) error

	// InsertRecoveryIfAbsentInTx opens a fresh row for (category, month),
	// doing nothing if one already exists. Returns true when a row was inserted.
	InsertRecoveryIfAbsentInTx(ctx context.Context, tx pgx.Tx, recovery domain.MonthlyCostRecovery) (bool, error)
}

// CostingRepositoryFacade combines all costing repository interfaces.
type CostingRepositoryFacade interface {
	CostCategoryRepository
	AllocationRepository
	CogsAccountRepository
	FixedCostAssetRepository
	MonthlyRecoveryRepository
}
