package dto

import (
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest is the payload for creating a sale.
type CreateSaleRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	ProductID   string          `json:"productID" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount" binding:"required"`
	PaymentType string          `json:"paymentType" binding:"required,oneof=CASH BANK CREDIT DEBIT"`
	AccountID   *string         `json:"accountID"` // required unless paymentType is DEBIT
}

// RecordPaymentRequest is the payload for a debit repayment.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	AccountID string          `json:"accountID" binding:"required"`
}

// SaleResponse is the API representation of a sale.
type SaleResponse struct {
	SaleID      string          `json:"saleID"`
	CustomerID  string          `json:"customerID"`
	ProductID   string          `json:"productID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentType string          `json:"paymentType"`
	AccountID   *string         `json:"accountID"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToSaleResponse maps a domain sale to its API representation.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	return SaleResponse{
		SaleID:      s.SaleID,
		CustomerID:  s.CustomerID,
		ProductID:   s.ProductID,
		Quantity:    s.Quantity,
		Rate:        s.Rate,
		TotalAmount: s.TotalAmount,
		PaymentType: string(s.PaymentType),
		AccountID:   s.AccountID,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
	}
}

// DebitAccountResponse is the API representation of a receivable.
type DebitAccountResponse struct {
	DebitAccountID string          `json:"debitAccountID"`
	SaleID         string          `json:"saleID"`
	CustomerID     string          `json:"customerID"`
	Amount         decimal.Decimal `json:"amount"`
	Recovered      decimal.Decimal `json:"recovered"`
	Status         string          `json:"status"`
}

// ToDebitAccountResponse maps a domain receivable to its API representation.
func ToDebitAccountResponse(d *domain.DebitAccount) DebitAccountResponse {
	return DebitAccountResponse{
		DebitAccountID: d.DebitAccountID,
		SaleID:         d.SaleID,
		CustomerID:     d.CustomerID,
		Amount:         d.Amount,
		Recovered:      d.Recovered,
		Status:         string(d.Status),
	}
}
