package domain

import "github.com/shopspring/decimal"

// CostType classifies how a category's allocated amounts accrue.
type CostType string

const (
	CostFixed    CostType = "FIXED"
	CostVariable CostType = "VARIABLE"
)

// CategoryPurpose marks categories that back a well-known pool. The salary
// pool is resolved through this enum rather than by matching category names.
type CategoryPurpose string

const (
	PurposeGeneral CategoryPurpose = "GENERAL"
	PurposeSalary  CategoryPurpose = "SALARY"
)

// CostCategory classifies cost within a business. A recurring category
// accrues against a monthly target; a category linked to a FixedCostAsset
// accrues against the asset's total cost; anything else accumulates in its
// COGS pool without bound.
type CostCategory struct {
	CategoryID    string           `json:"categoryID"` // Primary Key (UUID)
	BusinessID    string           `json:"businessID"`
	Name          string           `json:"name"`
	CostType      CostType         `json:"costType"`
	Purpose       CategoryPurpose  `json:"purpose"`
	IsRecurring   bool             `json:"isRecurring"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget"` // required when IsRecurring
	AuditFields
}

// ProductCostAllocation binds a product to a cost category with a per-unit
// amount. The sum of per-unit amounts across a product's allocations must
// never exceed the product's price.
type ProductCostAllocation struct {
	AllocationID  string          `json:"allocationID"` // Primary Key (UUID)
	ProductID     string          `json:"productID"`
	CategoryID    string          `json:"categoryID"`
	AmountPerUnit decimal.Decimal `json:"amountPerUnit"`
	AuditFields
}

// CogsAccount accumulates allocated-but-not-yet-paid-out COGS per
// (business, category) pair. Created lazily on first allocation.
type CogsAccount struct {
	CogsAccountID string          `json:"cogsAccountID"` // Primary Key (UUID)
	BusinessID    string          `json:"businessID"`
	CategoryID    string          `json:"categoryID"`
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}

// AssetStatus is derived from recovery progress, never stored.
type AssetStatus string

const (
	AssetActive  AssetStatus = "ACTIVE"
	AssetRetired AssetStatus = "RETIRED"
)

// FixedCostAsset is a capital asset recovered through sales allocations.
// Recovered is monotonically non-decreasing and capped at TotalCost.
type FixedCostAsset struct {
	AssetID    string          `json:"assetID"` // Primary Key (UUID)
	BusinessID string          `json:"businessID"`
	CategoryID string          `json:"categoryID"` // the allocation route into this asset
	Name       string          `json:"name"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	Recovered  decimal.Decimal `json:"recovered"`
	AuditFields
}

// Status reports ACTIVE until the asset is fully recovered.
func (a FixedCostAsset) Status() AssetStatus {
	if a.Recovered.GreaterThanOrEqual(a.TotalCost) {
		return AssetRetired
	}
	return AssetActive
}

// RecoveryStatus tracks a monthly recovery row through its lifecycle.
type RecoveryStatus string

const (
	RecoveryInProgress  RecoveryStatus = "IN_PROGRESS"
	RecoveryFulfilled   RecoveryStatus = "FULFILLED"
	RecoveryUnfulfilled RecoveryStatus = "UNFULFILLED" // terminal; set at month rollover
)

// MonthlyCostRecovery is the per (category, month) target for a recurring
// category. RecoveredAmount only grows while the row is IN_PROGRESS.
type MonthlyCostRecovery struct {
	RecoveryID      string          `json:"recoveryID"` // Primary Key (UUID)
	CategoryID      string          `json:"categoryID"`
	Month           string          `json:"month"` // calendar month key, "2006-01"
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	RecoveredAmount decimal.Decimal `json:"recoveredAmount"`
	Status          RecoveryStatus  `json:"status"`
	AuditFields
}
