package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	"github.com/bizbookhq/bizbook_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBusinessRepository struct {
	BaseRepository
}

// newPgxBusinessRepository creates a new repository for businesses and roles.
func newPgxBusinessRepository(pool *pgxpool.Pool) *PgxBusinessRepository {
	return &PgxBusinessRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BusinessRepositoryFacade = (*PgxBusinessRepository)(nil)

const businessColumns = `business_id, name, currency_code, owner_user_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBusiness(row pgx.Row) (*domain.Business, error) {
	var m models.Business
	err := row.Scan(
		&m.BusinessID,
		&m.Name,
		&m.CurrencyCode,
		&m.OwnerUserID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &domain.Business{
		BusinessID:   m.BusinessID,
		Name:         m.Name,
		CurrencyCode: m.CurrencyCode,
		OwnerUserID:  m.OwnerUserID,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// SaveBusiness inserts a new business.
func (r *PgxBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	return r.insertBusiness(ctx, r.Pool, business)
}

// SaveBusinessInTx inserts a new business inside the caller's transaction.
func (r *PgxBusinessRepository) SaveBusinessInTx(ctx context.Context, tx pgx.Tx, business domain.Business) error {
	return r.insertBusiness(ctx, tx, business)
}

func (r *PgxBusinessRepository) insertBusiness(ctx context.Context, q execer, business domain.Business) error {
	query := `
		INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := q.Exec(ctx, query,
		business.BusinessID, business.Name, business.CurrencyCode, business.OwnerUserID, business.IsActive,
		business.CreatedAt, business.CreatedBy, business.LastUpdatedAt, business.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: business %s", apperrors.ErrDuplicate, business.BusinessID)
		}
		return fmt.Errorf("failed to save business %s: %w", business.BusinessID, err)
	}
	return nil
}

// FindBusinessByID retrieves a business by its ID.
func (r *PgxBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE business_id = $1;`
	business, err := scanBusiness(r.Pool.QueryRow(ctx, query, businessID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find business %s: %w", businessID, err)
	}
	return business, nil
}

// --- roles ---

const roleColumns = `role_id, business_id, name, permissions, created_at, created_by, last_updated_at, last_updated_by`

func scanRole(row pgx.Row) (*domain.Role, error) {
	var m models.Role
	err := row.Scan(
		&m.RoleID,
		&m.BusinessID,
		&m.Name,
		&m.Permissions,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &domain.Role{
		RoleID:      m.RoleID,
		BusinessID:  m.BusinessID,
		Name:        m.Name,
		Permissions: m.Permissions,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// SaveRole inserts a new role. Permissions are stored as a text array.
func (r *PgxBusinessRepository) SaveRole(ctx context.Context, role domain.Role) error {
	query := `
		INSERT INTO roles (` + roleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		role.RoleID, role.BusinessID, role.Name, role.Permissions,
		role.CreatedAt, role.CreatedBy, role.LastUpdatedAt, role.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: role %s", apperrors.ErrDuplicate, role.Name)
		}
		return fmt.Errorf("failed to save role %s: %w", role.RoleID, err)
	}
	return nil
}

// UpdateRole replaces a role's name and permission set.
func (r *PgxBusinessRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	query := `
		UPDATE roles
		SET name = $2, permissions = $3, last_updated_at = $4, last_updated_by = $5
		WHERE role_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, role.RoleID, role.Name, role.Permissions, role.LastUpdatedAt, role.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update role %s: %w", role.RoleID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRoleByID retrieves a role by its ID.
func (r *PgxBusinessRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE role_id = $1;`
	role, err := scanRole(r.Pool.QueryRow(ctx, query, roleID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find role %s: %w", roleID, err)
	}
	return role, nil
}

// ListRoles retrieves all roles of a business.
func (r *PgxBusinessRepository) ListRoles(ctx context.Context, businessID string) ([]domain.Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE business_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles for business %s: %w", businessID, err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role row for business %s: %w", businessID, err)
		}
		roles = append(roles, *role)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating role rows for business %s: %w", businessID, rows.Err())
	}
	return roles, nil
}
