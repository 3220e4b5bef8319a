package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection mirrors domain.TransactionDirection at the storage layer.
type TransactionDirection string

// Transaction is the DB row shape for the transactions table. AccountID is a
// pointer because pure COGS-pool movements carry no account reference.
type Transaction struct {
	TransactionID string               `db:"transaction_id"`
	AccountID     *string              `db:"account_id"`
	Amount        decimal.Decimal      `db:"amount"`
	Direction     TransactionDirection `db:"direction"`
	Notes         string               `db:"notes"`
	OccurredAt    time.Time            `db:"occurred_at"`
	AuditFields
}

// BusinessTransaction is the join row linking every transaction to exactly
// one business. A transaction without this row is an integrity violation.
type BusinessTransaction struct {
	BusinessID    string `db:"business_id"`
	TransactionID string `db:"transaction_id"`
}
