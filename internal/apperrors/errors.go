package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller lacks permission for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInsufficientBalance indicates a debit would take an account, a COGS pool,
// or an asset-style cap below zero.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInsufficientStock indicates a sale would take product stock negative.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrOverpayment indicates a repayment exceeds the outstanding receivable.
var ErrOverpayment = errors.New("payment exceeds outstanding amount")

// ErrCostLimitExceeded indicates a new cost allocation would push total
// per-unit COGS above the product price.
var ErrCostLimitExceeded = errors.New("cost allocation exceeds product price")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflicting state")

// ErrIntegrity indicates a ledger invariant was violated, e.g. a transaction
// row left without its business link. This signals a programming defect, not
// a user error.
var ErrIntegrity = errors.New("ledger integrity violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps an underlying error with a status code and a human-readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
