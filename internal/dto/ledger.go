package dto

import (
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddExpenseRequest is the payload for posting an expense against an account.
type AddExpenseRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Note      string          `json:"note" binding:"required"`
}

// TransferRequest is the payload for moving money between two accounts.
type TransferRequest struct {
	FromAccountID string          `json:"fromAccountID" binding:"required"`
	ToAccountID   string          `json:"toAccountID" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

// CogsPayoutRequest is the payload for paying out of a COGS pool.
type CogsPayoutRequest struct {
	CategoryID string          `json:"categoryID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Note       string          `json:"note" binding:"required"`
}

// TransactionResponse is the API representation of a journal row.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     *string         `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	Notes         string          `json:"notes"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		AccountID:     t.AccountID,
		Amount:        t.Amount,
		Direction:     string(t.Direction),
		Notes:         t.Notes,
		OccurredAt:    t.OccurredAt,
	}
}

// ListTransactionsParams carries pagination inputs for journal listings.
type ListTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse is a page of journal rows.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
