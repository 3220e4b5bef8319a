package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountSvcFacade defines account registry operations exposed to handlers
// and to other services.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error)
	GetBalance(ctx context.Context, businessID string, accountID string) (decimal.Decimal, error)
	ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, businessID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, businessID string, accountID string, userID string) error
}
