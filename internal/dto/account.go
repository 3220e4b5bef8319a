package dto

import (
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for creating a user-defined account.
type CreateAccountRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role" binding:"omitempty,oneof=CASH BANK CREDIT RECEIVABLE NONE"`
}

// UpdateAccountRequest is the payload for updating an account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	Role         string          `json:"role"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"`
	IsActive     bool            `json:"isActive"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		Role:         string(a.Role),
		CurrencyCode: a.CurrencyCode,
		Balance:      a.Balance,
		IsActive:     a.IsActive,
	}
}
