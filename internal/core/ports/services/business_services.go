package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// BusinessSvcFacade defines tenancy and permission-gate operations.
type BusinessSvcFacade interface {
	// CreateBusiness creates the tenant, seeds its role accounts with zero
	// balances, and assigns the creator as owner.
	CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error)
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)

	CreateRole(ctx context.Context, businessID string, req dto.CreateRoleRequest, userID string) (*domain.Role, error)
	ListRoles(ctx context.Context, businessID string) ([]domain.Role, error)

	// HasPermission reports whether the user may perform the operation keyed
	// by permKey within the business. Owners always pass.
	HasPermission(ctx context.Context, userID string, businessID string, permKey string) (bool, error)

	// InvalidateRoleCache drops the cached permission set for a role.
	InvalidateRoleCache(roleID string)
}
