package domain

import "github.com/shopspring/decimal"

// TeamMember is an employee of a business.
type TeamMember struct {
	MemberID   string          `json:"memberID"` // Primary Key (UUID)
	BusinessID string          `json:"businessID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Salary     decimal.Decimal `json:"salary"` // monthly; zero excludes the member from auto distribution
	IsActive   bool            `json:"isActive"`
	AuditFields
}

// TeamAccount is the per-employee sub-ledger. The balance may go negative,
// representing an advance against future salary. Created lazily on the first
// salary event.
type TeamAccount struct {
	MemberID string          `json:"memberID"`
	Balance  decimal.Decimal `json:"balance"`
	AuditFields
}

// SalaryTransactionType classifies salary sub-ledger entries.
type SalaryTransactionType string

const (
	SalaryAddition   SalaryTransactionType = "ADDITION"
	SalaryWithdrawal SalaryTransactionType = "WITHDRAWAL"
)

// SalaryTransaction is an append-only record of salary additions and
// withdrawals. Withdrawals carry a negative amount so the per-member sum
// reconciles to the TeamAccount balance. (member, month) also serves as the
// idempotency key for auto distribution.
type SalaryTransaction struct {
	SalaryTxnID string                `json:"salaryTxnID"` // Primary Key (UUID)
	MemberID    string                `json:"memberID"`
	Month       string                `json:"month"` // calendar month key, "2006-01"
	Amount      decimal.Decimal       `json:"amount"`
	Type        SalaryTransactionType `json:"type"`
	Notes       string                `json:"notes"`
	AuditFields
}
