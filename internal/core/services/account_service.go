package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	businessRepo portsrepo.BusinessRepositoryFacade
}

// NewAccountService creates the account registry service.
func NewAccountService(repos *portsrepo.RepositoryProvider) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:  repos.AccountRepo,
		businessRepo: repos.BusinessRepo,
	}
}

// CreateAccount adds an account to a business. Role accounts are unique per
// business; user-defined accounts carry the NONE role.
func (s *accountService) CreateAccount(ctx context.Context, businessID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	role := domain.AccountRole(req.Role)
	if role == "" {
		role = domain.RoleNone
	}
	if role != domain.RoleNone {
		if _, err := s.accountRepo.FindAccountByRole(ctx, businessID, role); err == nil {
			return nil, fmt.Errorf("%w: business already has a %s account", apperrors.ErrDuplicate, role)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:    uuid.NewString(),
		BusinessID:   businessID,
		Name:         req.Name,
		Role:         role,
		CurrencyCode: business.CurrencyCode,
		Balance:      decimal.Zero,
		IsActive:     true,
		AuditFields:  newAuditFields(userID, now),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccountByID retrieves an account scoped to a business.
func (s *accountService) GetAccountByID(ctx context.Context, businessID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetBalance retrieves an account's current balance.
func (s *accountService) GetBalance(ctx context.Context, businessID string, accountID string) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, businessID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// ListAccounts retrieves a page of the business's active accounts.
func (s *accountService) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, businessID, limit, offset)
}

// UpdateAccount changes an account's name or active flag.
func (s *accountService) UpdateAccount(ctx context.Context, businessID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, businessID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.IsActive != nil {
		if !*req.IsActive && account.Role != domain.RoleNone {
			return nil, fmt.Errorf("%w: %s account cannot be deactivated", apperrors.ErrConflict, account.Role)
		}
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeactivateAccount marks a user-defined account inactive. Role accounts
// back the workflows and stay active for the life of the business.
func (s *accountService) DeactivateAccount(ctx context.Context, businessID string, accountID string, userID string) error {
	account, err := s.GetAccountByID(ctx, businessID, accountID)
	if err != nil {
		return err
	}
	if account.Role != domain.RoleNone {
		return fmt.Errorf("%w: %s account cannot be deactivated", apperrors.ErrConflict, account.Role)
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC())
}
