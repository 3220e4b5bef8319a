package dto

import (
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest is the payload for creating a cost category.
type CreateCategoryRequest struct {
	Name          string           `json:"name" binding:"required"`
	CostType      string           `json:"costType" binding:"required,oneof=FIXED VARIABLE"`
	Purpose       string           `json:"purpose" binding:"omitempty,oneof=GENERAL SALARY"`
	IsRecurring   bool             `json:"isRecurring"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget"` // required when isRecurring
}

// CreateAllocationRequest is the payload for binding a product to a category.
type CreateAllocationRequest struct {
	ProductID     string          `json:"productID" binding:"required"`
	CategoryID    string          `json:"categoryID" binding:"required"`
	AmountPerUnit decimal.Decimal `json:"amountPerUnit" binding:"required"`
}

// UpdateAllocationRequest is the payload for changing an allocation's per-unit amount.
type UpdateAllocationRequest struct {
	AmountPerUnit decimal.Decimal `json:"amountPerUnit" binding:"required"`
}

// CreateAssetRequest is the payload for registering a fixed-cost asset.
type CreateAssetRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Name       string          `json:"name" binding:"required"`
	TotalCost  decimal.Decimal `json:"totalCost" binding:"required"`
}

// CategoryResponse is the API representation of a cost category.
type CategoryResponse struct {
	CategoryID    string           `json:"categoryID"`
	Name          string           `json:"name"`
	CostType      string           `json:"costType"`
	Purpose       string           `json:"purpose"`
	IsRecurring   bool             `json:"isRecurring"`
	MonthlyTarget *decimal.Decimal `json:"monthlyTarget,omitempty"`
}

// ToCategoryResponse maps a domain category to its API representation.
func ToCategoryResponse(c *domain.CostCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		CostType:      string(c.CostType),
		Purpose:       string(c.Purpose),
		IsRecurring:   c.IsRecurring,
		MonthlyTarget: c.MonthlyTarget,
	}
}

// AssetResponse is the API representation of a fixed-cost asset.
type AssetResponse struct {
	AssetID    string          `json:"assetID"`
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	Recovered  decimal.Decimal `json:"recovered"`
	Status     string          `json:"status"`
}

// ToAssetResponse maps a domain asset to its API representation.
func ToAssetResponse(a *domain.FixedCostAsset) AssetResponse {
	return AssetResponse{
		AssetID:    a.AssetID,
		CategoryID: a.CategoryID,
		Name:       a.Name,
		TotalCost:  a.TotalCost,
		Recovered:  a.Recovered,
		Status:     string(a.Status()),
	}
}

// CogsAccountResponse is the API representation of a COGS pool balance.
type CogsAccountResponse struct {
	CogsAccountID string          `json:"cogsAccountID"`
	CategoryID    string          `json:"categoryID"`
	Balance       decimal.Decimal `json:"balance"`
}

// ToCogsAccountResponse maps a domain COGS pool to its API representation.
func ToCogsAccountResponse(c *domain.CogsAccount) CogsAccountResponse {
	return CogsAccountResponse{
		CogsAccountID: c.CogsAccountID,
		CategoryID:    c.CategoryID,
		Balance:       c.Balance,
	}
}

// RecoveryResponse is the API representation of a monthly recovery row.
type RecoveryResponse struct {
	RecoveryID      string          `json:"recoveryID"`
	CategoryID      string          `json:"categoryID"`
	Month           string          `json:"month"`
	TargetAmount    decimal.Decimal `json:"targetAmount"`
	RecoveredAmount decimal.Decimal `json:"recoveredAmount"`
	Status          string          `json:"status"`
}

// ToRecoveryResponse maps a domain recovery row to its API representation.
func ToRecoveryResponse(r *domain.MonthlyCostRecovery) RecoveryResponse {
	return RecoveryResponse{
		RecoveryID:      r.RecoveryID,
		CategoryID:      r.CategoryID,
		Month:           r.Month,
		TargetAmount:    r.TargetAmount,
		RecoveredAmount: r.RecoveredAmount,
		Status:          string(r.Status),
	}
}

// MonthTransitionResponse summarizes a monthly rollover run.
type MonthTransitionResponse struct {
	Closed int `json:"closed"`
	Opened int `json:"opened"`
}
