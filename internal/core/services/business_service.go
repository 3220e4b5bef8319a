package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/bizbookhq/bizbook_backend/internal/platform/cache"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// seededRoleAccounts are the role accounts every business starts with.
var seededRoleAccounts = []struct {
	name string
	role domain.AccountRole
}{
	{"Cash", domain.RoleCash},
	{"Bank", domain.RoleBank},
	{"Credit", domain.RoleCredit},
	{"Receivables", domain.RoleReceivable},
}

type businessService struct {
	txManager    portsrepo.TransactionManager
	businessRepo portsrepo.BusinessRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	permCache    *cache.TTLCache[string, []string]
	permCacheTTL time.Duration
}

// NewBusinessService creates the tenancy service. The permission cache is an
// injected component so expiry and invalidation are testable.
func NewBusinessService(repos *portsrepo.RepositoryProvider, permCache *cache.TTLCache[string, []string], permCacheTTL time.Duration) portssvc.BusinessSvcFacade {
	return &businessService{
		txManager:    repos.TxManager,
		businessRepo: repos.BusinessRepo,
		userRepo:     repos.UserRepo,
		accountRepo:  repos.AccountRepo,
		permCache:    permCache,
		permCacheTTL: permCacheTTL,
	}
}

// CreateBusiness creates the tenant, seeds its role accounts with zero
// balances, and assigns the creator as owner, all in one transaction.
func (s *businessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	creator, err := s.userRepo.FindUserByID(ctx, creatorUserID)
	if err != nil {
		return nil, err
	}
	if creator.BusinessID != nil {
		return nil, fmt.Errorf("%w: user already belongs to a business", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	business := domain.Business{
		BusinessID:   uuid.NewString(),
		Name:         req.Name,
		CurrencyCode: req.CurrencyCode,
		OwnerUserID:  creatorUserID,
		IsActive:     true,
		AuditFields:  newAuditFields(creatorUserID, now),
	}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		if err := s.businessRepo.SaveBusinessInTx(ctx, tx, business); err != nil {
			return err
		}
		for _, seed := range seededRoleAccounts {
			account := domain.Account{
				AccountID:    uuid.NewString(),
				BusinessID:   business.BusinessID,
				Name:         seed.name,
				Role:         seed.role,
				CurrencyCode: business.CurrencyCode,
				Balance:      decimal.Zero,
				IsActive:     true,
				AuditFields:  newAuditFields(creatorUserID, now),
			}
			if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
				return err
			}
		}
		return s.userRepo.AssignBusinessInTx(ctx, tx, creatorUserID, business.BusinessID, nil)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Business created", slog.String("business_id", business.BusinessID), slog.String("owner_user_id", creatorUserID))
	return &business, nil
}

// GetBusiness retrieves a business by its ID.
func (s *businessService) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	return s.businessRepo.FindBusinessByID(ctx, businessID)
}

// CreateRole defines a named permission set within a business.
func (s *businessService) CreateRole(ctx context.Context, businessID string, req dto.CreateRoleRequest, userID string) (*domain.Role, error) {
	now := time.Now().UTC()
	role := domain.Role{
		RoleID:      uuid.NewString(),
		BusinessID:  businessID,
		Name:        req.Name,
		Permissions: req.Permissions,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.businessRepo.SaveRole(ctx, role); err != nil {
		return nil, err
	}
	return &role, nil
}

// ListRoles retrieves the roles of a business.
func (s *businessService) ListRoles(ctx context.Context, businessID string) ([]domain.Role, error) {
	return s.businessRepo.ListRoles(ctx, businessID)
}

// HasPermission reports whether the user may perform the operation keyed by
// permKey within the business. The owner bypasses role checks entirely; other
// members are checked against their role's permission set, cached per role.
func (s *businessService) HasPermission(ctx context.Context, userID string, businessID string, permKey string) (bool, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user.BusinessID == nil || *user.BusinessID != businessID {
		return false, nil
	}

	business, err := s.businessRepo.FindBusinessByID(ctx, businessID)
	if err != nil {
		return false, err
	}
	if business.OwnerUserID == userID {
		return true, nil
	}
	if user.RoleID == nil {
		return false, nil
	}

	permissions, ok := s.permCache.Get(*user.RoleID)
	if !ok {
		role, err := s.businessRepo.FindRoleByID(ctx, *user.RoleID)
		if err != nil {
			return false, err
		}
		permissions = role.Permissions
		s.permCache.Set(*user.RoleID, permissions, s.permCacheTTL)
	}
	return slices.Contains(permissions, permKey), nil
}

// InvalidateRoleCache drops the cached permission set for a role. Called
// whenever a role's permissions change.
func (s *businessService) InvalidateRoleCache(roleID string) {
	s.permCache.Invalidate(roleID)
}
