package models

import "github.com/shopspring/decimal"

// CostCategory is the DB row shape for the cost_categories table.
type CostCategory struct {
	CategoryID    string           `db:"category_id"`
	BusinessID    string           `db:"business_id"`
	Name          string           `db:"name"`
	CostType      string           `db:"cost_type"`
	Purpose       string           `db:"purpose"`
	IsRecurring   bool             `db:"is_recurring"`
	MonthlyTarget *decimal.Decimal `db:"monthly_target"`
	AuditFields
}

// ProductCostAllocation is the DB row shape for product_cost_allocations.
type ProductCostAllocation struct {
	AllocationID  string          `db:"allocation_id"`
	ProductID     string          `db:"product_id"`
	CategoryID    string          `db:"category_id"`
	AmountPerUnit decimal.Decimal `db:"amount_per_unit"`
	AuditFields
}

// CogsAccount is the DB row shape for cogs_accounts.
type CogsAccount struct {
	CogsAccountID string          `db:"cogs_account_id"`
	BusinessID    string          `db:"business_id"`
	CategoryID    string          `db:"category_id"`
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}

// FixedCostAsset is the DB row shape for fixed_cost_assets.
type FixedCostAsset struct {
	AssetID    string          `db:"asset_id"`
	BusinessID string          `db:"business_id"`
	CategoryID string          `db:"category_id"`
	Name       string          `db:"name"`
	TotalCost  decimal.Decimal `db:"total_cost"`
	Recovered  decimal.Decimal `db:"recovered"`
	AuditFields
}

// MonthlyCostRecovery is the DB row shape for monthly_cost_recoveries.
type MonthlyCostRecovery struct {
	RecoveryID      string          `db:"recovery_id"`
	CategoryID      string          `db:"category_id"`
	Month           string          `db:"month"`
	TargetAmount    decimal.Decimal `db:"target_amount"`
	RecoveredAmount decimal.Decimal `db:"recovered_amount"`
	Status          string          `db:"status"`
	AuditFields
}
