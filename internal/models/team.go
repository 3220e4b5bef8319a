package models

import "github.com/shopspring/decimal"

// TeamMember is the DB row shape for the team_members table.
type TeamMember struct {
	MemberID   string          `db:"member_id"`
	BusinessID string          `db:"business_id"`
	Name       string          `db:"name"`
	Phone      string          `db:"phone"`
	Salary     decimal.Decimal `db:"salary"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}

// TeamAccount is the DB row shape for the team_accounts table.
type TeamAccount struct {
	MemberID string          `db:"member_id"`
	Balance  decimal.Decimal `db:"balance"`
	AuditFields
}

// SalaryTransaction is the DB row shape for the salary_transactions table.
type SalaryTransaction struct {
	SalaryTxnID string          `db:"salary_txn_id"`
	MemberID    string          `db:"member_id"`
	Month       string          `db:"month"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"txn_type"`
	Notes       string          `db:"notes"`
	AuditFields
}
