package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the DB row shape for the sales table.
type Sale struct {
	SaleID      string          `db:"sale_id"`
	BusinessID  string          `db:"business_id"`
	CustomerID  string          `db:"customer_id"`
	ProductID   string          `db:"product_id"`
	Quantity    decimal.Decimal `db:"quantity"`
	Rate        decimal.Decimal `db:"rate"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	PaymentType string          `db:"payment_type"`
	AccountID   *string         `db:"account_id"`
	Status      string          `db:"status"`
	AuditFields
}

// DebitAccount is the DB row shape for debit_accounts (receivables).
type DebitAccount struct {
	DebitAccountID string          `db:"debit_account_id"`
	BusinessID     string          `db:"business_id"`
	SaleID         string          `db:"sale_id"`
	CustomerID     string          `db:"customer_id"`
	Amount         decimal.Decimal `db:"amount"`
	Recovered      decimal.Decimal `db:"recovered"`
	Status         string          `db:"status"`
	AuditFields
}

// Customer is the DB row shape for the customers table.
type Customer struct {
	CustomerID string `db:"customer_id"`
	BusinessID string `db:"business_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}

// CustomerPurchaseHistory is the DB row shape for customer_purchase_history.
type CustomerPurchaseHistory struct {
	CustomerID        string          `db:"customer_id"`
	TotalPurchase     decimal.Decimal `db:"total_purchase"`
	OutstandingCredit decimal.Decimal `db:"outstanding_credit"`
	LastPurchaseAt    *time.Time      `db:"last_purchase_at"`
}
