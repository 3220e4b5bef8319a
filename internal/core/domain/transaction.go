package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection classifies the movement recorded by a journal row.
type TransactionDirection string

const (
	Incoming TransactionDirection = "INCOMING" // revenue
	Outgoing TransactionDirection = "OUTGOING" // expense / payout
	Transfer TransactionDirection = "TRANSFER" // internal move between two accounts
)

// Transaction is an immutable journal entry. It is never updated or deleted;
// corrections are new offsetting transactions. AccountID is nil for pure
// COGS-pool movements, which keeps them off per-account balance sheets while
// staying auditable.
//
// A transfer is recorded as a single row against the source account with a
// note naming the destination, not as a matching debit/credit pair.
type Transaction struct {
	TransactionID string               `json:"transactionID"` // Primary Key (UUID)
	AccountID     *string              `json:"accountID"`     // nullable FK -> accounts.account_id
	Amount        decimal.Decimal      `json:"amount"`        // positive value
	Direction     TransactionDirection `json:"direction"`
	Notes         string               `json:"notes"`
	OccurredAt    time.Time            `json:"occurredAt"`
	AuditFields
}
