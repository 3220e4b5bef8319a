package domain

import "github.com/shopspring/decimal"

// Product is a sellable item. Stock is decimal because partial units are
// legal for repayment-derived quantities.
type Product struct {
	ProductID  string          `json:"productID"` // Primary Key (UUID)
	BusinessID string          `json:"businessID"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"` // unit price; caps total per-unit COGS allocations
	Stock      decimal.Decimal `json:"stock"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
