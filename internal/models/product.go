package models

import "github.com/shopspring/decimal"

// Product is the DB row shape for the products table.
type Product struct {
	ProductID  string          `db:"product_id"`
	BusinessID string          `db:"business_id"`
	Name       string          `db:"name"`
	Price      decimal.Decimal `db:"price"`
	Stock      decimal.Decimal `db:"stock"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}
