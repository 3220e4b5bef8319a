package repositories

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BusinessRepositoryFacade defines operations for businesses and roles.
type BusinessRepositoryFacade interface {
	SaveBusiness(ctx context.Context, business domain.Business) error

	// SaveBusinessInTx persists a new business inside the caller's transaction.
	SaveBusinessInTx(ctx context.Context, tx pgx.Tx, business domain.Business) error

	FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error)

	SaveRole(ctx context.Context, role domain.Role) error
	UpdateRole(ctx context.Context, role domain.Role) error
	FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error)
	ListRoles(ctx context.Context, businessID string) ([]domain.Role, error)
}

// UserRepositoryFacade defines operations for users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// AssignBusiness sets a user's business membership and role.
	AssignBusiness(ctx context.Context, userID string, businessID string, roleID *string) error

	// AssignBusinessInTx is AssignBusiness inside the caller's transaction.
	AssignBusinessInTx(ctx context.Context, tx pgx.Tx, userID string, businessID string, roleID *string) error
}
