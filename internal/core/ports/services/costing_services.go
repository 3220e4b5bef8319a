package services

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AllocationResult reports what a waterfall run did with a sale's COGS.
type AllocationResult struct {
	// TotalCogs is the full cost attributable to the sold quantity:
	// sum(amount_per_unit * quantity) over the product's allocation rules.
	TotalCogs decimal.Decimal

	// Excess is the portion routed back to the payment account because a
	// recovery target or asset cap was already (or became) fully recovered.
	Excess decimal.Decimal
}

// CostAllocator is the engine interface consumed by the sale workflow. It
// runs inside the caller's transaction and performs all pool credits,
// recovery updates, and asset recovery itself; only the excess is left for
// the caller to credit to the payment account.
type CostAllocator interface {
	AllocateInTx(ctx context.Context, tx pgx.Tx, businessID string, productID string, quantity decimal.Decimal, userID string, now time.Time) (AllocationResult, error)
}

// CostingSvcFacade defines cost classification and allocation operations.
type CostingSvcFacade interface {
	CostAllocator

	CreateCategory(ctx context.Context, businessID string, req dto.CreateCategoryRequest, userID string) (*domain.CostCategory, error)
	ListCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error)

	RegisterAllocation(ctx context.Context, businessID string, req dto.CreateAllocationRequest, userID string) (*domain.ProductCostAllocation, error)
	UpdateAllocation(ctx context.Context, businessID string, allocationID string, req dto.UpdateAllocationRequest, userID string) (*domain.ProductCostAllocation, error)
	ListAllocations(ctx context.Context, businessID string, productID string) ([]domain.ProductCostAllocation, error)

	CreateAsset(ctx context.Context, businessID string, req dto.CreateAssetRequest, userID string) (*domain.FixedCostAsset, error)
	ListAssets(ctx context.Context, businessID string) ([]domain.FixedCostAsset, error)

	ListCogsAccounts(ctx context.Context, businessID string) ([]domain.CogsAccount, error)
	PayoutCogs(ctx context.Context, businessID string, req dto.CogsPayoutRequest, userID string) (*domain.Transaction, error)
}
