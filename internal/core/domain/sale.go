package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType selects the sale workflow path.
type PaymentType string

const (
	PaymentCash   PaymentType = "CASH"
	PaymentBank   PaymentType = "BANK"
	PaymentCredit PaymentType = "CREDIT"
	PaymentDebit  PaymentType = "DEBIT" // sale on customer credit; revenue deferred to repayment
)

// SaleStatus tracks a sale through its lifecycle. Non-debit sales post
// immediately; debit sales stay PENDING until the receivable closes.
type SaleStatus string

const (
	SalePosted  SaleStatus = "POSTED"
	SalePending SaleStatus = "PENDING"
	SalePaid    SaleStatus = "PAID"
)

// Sale records one sale of a product to a customer.
type Sale struct {
	SaleID      string          `json:"saleID"` // Primary Key (UUID)
	BusinessID  string          `json:"businessID"`
	CustomerID  string          `json:"customerID"`
	ProductID   string          `json:"productID"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"` // unit price charged
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentType PaymentType     `json:"paymentType"`
	AccountID   *string         `json:"accountID"` // receiving account; nil for debit sales
	Status      SaleStatus      `json:"status"`
	AuditFields
}

// DebitAccountStatus tracks a receivable.
type DebitAccountStatus string

const (
	DebitRunning DebitAccountStatus = "RUNNING"
	DebitClosed  DebitAccountStatus = "CLOSED"
)

// DebitAccount is the receivable created by a debit sale. Amount is the total
// owed; Recovered grows with repayments and the row closes when
// Recovered >= Amount.
type DebitAccount struct {
	DebitAccountID string             `json:"debitAccountID"` // Primary Key (UUID)
	BusinessID     string             `json:"businessID"`
	SaleID         string             `json:"saleID"`
	CustomerID     string             `json:"customerID"`
	Amount         decimal.Decimal    `json:"amount"`
	Recovered      decimal.Decimal    `json:"recovered"`
	Status         DebitAccountStatus `json:"status"`
	AuditFields
}

// Customer is a party the business sells to.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	BusinessID string `json:"businessID"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	IsActive   bool   `json:"isActive"`
	AuditFields
}

// CustomerPurchaseHistory is a denormalized rollup kept consistent with the
// ledger inside every sale/payment transaction.
type CustomerPurchaseHistory struct {
	CustomerID        string          `json:"customerID"`
	TotalPurchase     decimal.Decimal `json:"totalPurchase"`
	OutstandingCredit decimal.Decimal `json:"outstandingCredit"`
	LastPurchaseAt    *time.Time      `json:"lastPurchaseAt"`
}
