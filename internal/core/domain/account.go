package domain

import "github.com/shopspring/decimal"

// AccountRole identifies the well-known accounts a business holds. At most one
// account per role exists per business; role accounts are seeded at business
// setup with a zero balance.
type AccountRole string

const (
	RoleCash       AccountRole = "CASH"
	RoleBank       AccountRole = "BANK"
	RoleCredit     AccountRole = "CREDIT"
	RoleReceivable AccountRole = "RECEIVABLE" // books credit sales as an asset
	RoleNone       AccountRole = "NONE"       // user-defined extra account
)

// Account is a named balance bucket scoped to a business. Its balance may only
// change through AdjustBalanceInTx inside a journaling transaction.
type Account struct {
	AccountID    string          `json:"accountID"` // Primary Key (UUID)
	BusinessID   string          `json:"businessID"`
	Name         string          `json:"name"`
	Role         AccountRole     `json:"role"`
	CurrencyCode string          `json:"currencyCode"`
	Balance      decimal.Decimal `json:"balance"` // signed
	IsActive     bool            `json:"isActive"`
	AuditFields
}
