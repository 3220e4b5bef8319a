package dto

import (
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the payload for adding a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// CustomerResponse is the API representation of a customer.
type CustomerResponse struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
}

// ToCustomerResponse maps a domain customer to its API representation.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		IsActive:   c.IsActive,
	}
}

// PurchaseHistoryResponse is the API representation of a customer rollup.
type PurchaseHistoryResponse struct {
	CustomerID        string          `json:"customerID"`
	TotalPurchase     decimal.Decimal `json:"totalPurchase"`
	OutstandingCredit decimal.Decimal `json:"outstandingCredit"`
	LastPurchaseAt    *time.Time      `json:"lastPurchaseAt,omitempty"`
}

// ToPurchaseHistoryResponse maps a domain rollup to its API representation.
func ToPurchaseHistoryResponse(h *domain.CustomerPurchaseHistory) PurchaseHistoryResponse {
	return PurchaseHistoryResponse{
		CustomerID:        h.CustomerID,
		TotalPurchase:     h.TotalPurchase,
		OutstandingCredit: h.OutstandingCredit,
		LastPurchaseAt:    h.LastPurchaseAt,
	}
}
