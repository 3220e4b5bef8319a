package models

import "github.com/shopspring/decimal"

// AccountRole mirrors domain.AccountRole at the storage layer.
type AccountRole string

// Account is the DB row shape for the accounts table.
type Account struct {
	AccountID    string          `db:"account_id"`
	BusinessID   string          `db:"business_id"`
	Name         string          `db:"name"`
	Role         AccountRole     `db:"account_role"`
	CurrencyCode string          `db:"currency_code"`
	Balance      decimal.Decimal `db:"balance"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
