package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	"github.com/bizbookhq/bizbook_backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxCostingRepository struct {
	BaseRepository
}

// newPgxCostingRepository creates a new repository for cost categories,
// allocation rules, COGS pools, assets and monthly recovery rows.
func newPgxCostingRepository(pool *pgxpool.Pool) *PgxCostingRepository {
	return &PgxCostingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CostingRepositoryFacade = (*PgxCostingRepository)(nil)

// --- cost categories ---

func toDomainCategory(m models.CostCategory) domain.CostCategory {
	return domain.CostCategory{
		CategoryID:    m.CategoryID,
		BusinessID:    m.BusinessID,
		Name:          m.Name,
		CostType:      domain.CostType(m.CostType),
		Purpose:       domain.CategoryPurpose(m.Purpose),
		IsRecurring:   m.IsRecurring,
		MonthlyTarget: m.MonthlyTarget,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const categoryColumns = `category_id, business_id, name, cost_type, purpose, is_recurring, monthly_target, created_at, created_by, last_updated_at, last_updated_by`

func scanCategory(row pgx.Row) (*domain.CostCategory, error) {
	var m models.CostCategory
	err := row.Scan(
		&m.CategoryID,
		&m.BusinessID,
		&m.Name,
		&m.CostType,
		&m.Purpose,
		&m.IsRecurring,
		&m.MonthlyTarget,
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
	cat := toDomainCategory(m)
	return &cat, nil
}

// SaveCategory inserts a new cost category.
func (r *PgxCostingRepository) SaveCategory(ctx context.Context, category domain.CostCategory) error {
	query := `
		INSERT INTO cost_categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		category.CategoryID, category.BusinessID, category.Name, string(category.CostType),
		string(category.Purpose), category.IsRecurring, category.MonthlyTarget,
		category.CreatedAt, category.CreatedBy, category.LastUpdatedAt, category.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: cost category %s", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save cost category %s: %w", category.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a cost category by its ID.
func (r *PgxCostingRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.CostCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM cost_categories WHERE category_id = $1;`
	cat, err := scanCategory(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find cost category %s: %w", categoryID, err)
	}
	return cat, nil
}

// ListCategories retrieves all cost categories of a business.
func (r *PgxCostingRepository) ListCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM cost_categories WHERE business_id = $1 ORDER BY name;`
	return r.queryCategories(ctx, query, businessID)
}

// ListRecurringCategories retrieves the recurring categories of a business.
func (r *PgxCostingRepository) ListRecurringCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM cost_categories WHERE business_id = $1 AND is_recurring = TRUE ORDER BY name;`
	return r.queryCategories(ctx, query, businessID)
}

func (r *PgxCostingRepository) queryCategories(ctx context.Context, query string, args ...any) ([]domain.CostCategory, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.CostCategory{}
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost category row: %w", err)
		}
		categories = append(categories, *cat)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating cost category rows: %w", rows.Err())
	}
	return categories, nil
}

// FindCategoryByPurpose resolves a well-known category (e.g. the salary pool)
// by its purpose tag.
func (r *PgxCostingRepository) FindCategoryByPurpose(ctx context.Context, businessID string, purpose domain.CategoryPurpose) (*domain.CostCategory, error) {
	query := `SELECT ` + categoryColumns + ` FROM cost_categories WHERE business_id = $1 AND purpose = $2;`
	cat, err := scanCategory(r.Pool.QueryRow(ctx, query, businessID, string(purpose)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find %s category for business %s: %w", purpose, businessID, err)
	}
	return cat, nil
}

// --- product cost allocations ---

func toDomainAllocation(m models.ProductCostAllocation) domain.ProductCostAllocation {
	return domain.ProductCostAllocation{
		AllocationID:  m.AllocationID,
		ProductID:     m.ProductID,
		CategoryID:    m.CategoryID,
		AmountPerUnit: m.AmountPerUnit,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const allocationColumns = `allocation_id, product_id, category_id, amount_per_unit, created_at, created_by, last_updated_at, last_updated_by`

func scanAllocation(row pgx.Row) (*domain.ProductCostAllocation, error) {
	var m models.ProductCostAllocation
	err := row.Scan(
		&m.AllocationID,
		&m.ProductID,
		&m.CategoryID,
		&m.AmountPerUnit,
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
	alloc := toDomainAllocation(m)
	return &alloc, nil
}

// SaveAllocation inserts a new allocation rule.
func (r *PgxCostingRepository) SaveAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error {
	query := `
		INSERT INTO product_cost_allocations (` + allocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		allocation.AllocationID, allocation.ProductID, allocation.CategoryID, allocation.AmountPerUnit,
		allocation.CreatedAt, allocation.CreatedBy, allocation.LastUpdatedAt, allocation.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product %s already allocates category %s", apperrors.ErrDuplicate, allocation.ProductID, allocation.CategoryID)
		}
		return fmt.Errorf("failed to save allocation %s: %w", allocation.AllocationID, err)
	}
	return nil
}

// UpdateAllocation changes an allocation rule's per-unit amount.
func (r *PgxCostingRepository) UpdateAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error {
	query := `
		UPDATE product_cost_allocations
		SET amount_per_unit = $2, last_updated_at = $3, last_updated_by = $4
		WHERE allocation_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, allocation.AllocationID, allocation.AmountPerUnit, allocation.LastUpdatedAt, allocation.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update allocation %s: %w", allocation.AllocationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAllocationByID retrieves an allocation rule by its ID.
func (r *PgxCostingRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.ProductCostAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM product_cost_allocations WHERE allocation_id = $1;`
	alloc, err := scanAllocation(r.Pool.QueryRow(ctx, query, allocationID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find allocation %s: %w", allocationID, err)
	}
	return alloc, nil
}

// ListAllocationsByProduct retrieves a product's allocation rules.
func (r *PgxCostingRepository) ListAllocationsByProduct(ctx context.Context, productID string) ([]domain.ProductCostAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM product_cost_allocations WHERE product_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for product %s: %w", productID, err)
	}
	defer rows.Close()

	allocations := []domain.ProductCostAllocation{}
	for rows.Next() {
		alloc, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation row for product %s: %w", productID, err)
		}
		allocations = append(allocations, *alloc)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation rows for product %s: %w", productID, rows.Err())
	}
	return allocations, nil
}

// ListAllocationLines retrieves a product's allocation rules joined with their
// categories inside the caller's transaction. Ordered by rule creation time so
// the waterfall processes lines deterministically.
func (r *PgxCostingRepository) ListAllocationLines(ctx context.Context, tx pgx.Tx, productID string) ([]portsrepo.AllocationLine, error) {
	query := `
		SELECT a.amount_per_unit,
		       c.category_id, c.business_id, c.name, c.cost_type, c.purpose, c.is_recurring, c.monthly_target,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM product_cost_allocations a
		JOIN cost_categories c ON c.category_id = a.category_id
		WHERE a.product_id = $1
		ORDER BY a.created_at, a.allocation_id;
	`
	rows, err := tx.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation lines for product %s: %w", productID, err)
	}
	defer rows.Close()

	lines := []portsrepo.AllocationLine{}
	for rows.Next() {
		var line portsrepo.AllocationLine
		var m models.CostCategory
		err := rows.Scan(
			&line.AmountPerUnit,
			&m.CategoryID, &m.BusinessID, &m.Name, &m.CostType, &m.Purpose, &m.IsRecurring, &m.MonthlyTarget,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation line for product %s: %w", productID, err)
		}
		line.Category = toDomainCategory(m)
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating allocation lines for product %s: %w", productID, rows.Err())
	}
	return lines, nil
}

// SumPerUnitExcluding returns the per-unit allocation total of a product,
// excluding one allocation ID. Pass an empty string to exclude none.
func (r *PgxCostingRepository) SumPerUnitExcluding(ctx context.Context, productID string, excludeAllocationID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount_per_unit), 0)
		FROM product_cost_allocations
		WHERE product_id = $1 AND allocation_id <> $2;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, productID, excludeAllocationID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum allocations for product %s: %w", productID, err)
	}
	return sum, nil
}

// --- COGS pools ---

func toDomainCogs(m models.CogsAccount) domain.CogsAccount {
	return domain.CogsAccount{
		CogsAccountID: m.CogsAccountID,
		BusinessID:    m.BusinessID,
		CategoryID:    m.CategoryID,
		Balance:       m.Balance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const cogsColumns = `cogs_account_id, business_id, category_id, balance, created_at, created_by, last_updated_at, last_updated_by`

func scanCogs(row pgx.Row) (*domain.CogsAccount, error) {
	var m models.CogsAccount
	err := row.Scan(
		&m.CogsAccountID,
		&m.BusinessID,
		&m.CategoryID,
		&m.Balance,
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
	pool := toDomainCogs(m)
	return &pool, nil
}

// FindCogsAccountByCategory retrieves the COGS pool of a (business, category) pair.
func (r *PgxCostingRepository) FindCogsAccountByCategory(ctx context.Context, businessID string, categoryID string) (*domain.CogsAccount, error) {
	query := `SELECT ` + cogsColumns + ` FROM cogs_accounts WHERE business_id = $1 AND category_id = $2;`
	pool, err := scanCogs(r.Pool.QueryRow(ctx, query, businessID, categoryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find COGS pool for category %s: %w", categoryID, err)
	}
	return pool, nil
}

// ListCogsAccounts retrieves all COGS pools of a business.
func (r *PgxCostingRepository) ListCogsAccounts(ctx context.Context, businessID string) ([]domain.CogsAccount, error) {
	query := `SELECT ` + cogsColumns + ` FROM cogs_accounts WHERE business_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query COGS pools for business %s: %w", businessID, err)
	}
	defer rows.Close()

	pools := []domain.CogsAccount{}
	for rows.Next() {
		pool, err := scanCogs(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan COGS pool row for business %s: %w", businessID, err)
		}
		pools = append(pools, *pool)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating COGS pool rows for business %s: %w", businessID, rows.Err())
	}
	return pools, nil
}

// FindCogsAccountForUpdate locks the pool row for the caller's transaction.
func (r *PgxCostingRepository) FindCogsAccountForUpdate(ctx context.Context, tx pgx.Tx, businessID string, categoryID string) (*domain.CogsAccount, error) {
	query := `SELECT ` + cogsColumns + ` FROM cogs_accounts WHERE business_id = $1 AND category_id = $2 FOR UPDATE;`
	pool, err := scanCogs(tx.QueryRow(ctx, query, businessID, categoryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock COGS pool for category %s: %w", categoryID, err)
	}
	return pool, nil
}

// CreditCogsInTx adds to a pool balance, creating the pool row lazily on first
// allocation. The (business, category) unique constraint makes the upsert safe
// under concurrent sales.
func (r *PgxCostingRepository) CreditCogsInTx(ctx context.Context, tx pgx.Tx, businessID string, categoryID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		INSERT INTO cogs_accounts (cogs_account_id, business_id, category_id, balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $5, $6)
		ON CONFLICT (business_id, category_id)
		DO UPDATE SET balance = cogs_accounts.balance + EXCLUDED.balance, last_updated_at = $5, last_updated_by = $6;
	`
	_, err := tx.Exec(ctx, query, uuid.NewString(), businessID, categoryID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to credit COGS pool for category %s: %w", categoryID, err)
	}
	return nil
}

// DebitCogsInTx subtracts from an existing pool balance. Callers lock the row
// first and verify sufficient balance.
func (r *PgxCostingRepository) DebitCogsInTx(ctx context.Context, tx pgx.Tx, cogsAccountID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE cogs_accounts
		SET balance = balance - $2, last_updated_at = $3, last_updated_by = $4
		WHERE cogs_account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, cogsAccountID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to debit COGS pool %s: %w", cogsAccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- fixed cost assets ---

func toDomainAsset(m models.FixedCostAsset) domain.FixedCostAsset {
	return domain.FixedCostAsset{
		AssetID:    m.AssetID,
		BusinessID: m.BusinessID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		TotalCost:  m.TotalCost,
		Recovered:  m.Recovered,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const assetColumns = `asset_id, business_id, category_id, name, total_cost, recovered, created_at, created_by, last_updated_at, last_updated_by`

func scanAsset(row pgx.Row) (*domain.FixedCostAsset, error) {
	var m models.FixedCostAsset
	err := row.Scan(
		&m.AssetID,
		&m.BusinessID,
		&m.CategoryID,
		&m.Name,
		&m.TotalCost,
		&m.Recovered,
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
	asset := toDomainAsset(m)
	return &asset, nil
}

// SaveAsset inserts a new fixed cost asset.
func (r *PgxCostingRepository) SaveAsset(ctx context.Context, asset domain.FixedCostAsset) error {
	query := `
		INSERT INTO fixed_cost_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		asset.AssetID, asset.BusinessID, asset.CategoryID, asset.Name, asset.TotalCost, asset.Recovered,
		asset.CreatedAt, asset.CreatedBy, asset.LastUpdatedAt, asset.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category %s already has an asset", apperrors.ErrDuplicate, asset.CategoryID)
		}
		return fmt.Errorf("failed to save asset %s: %w", asset.AssetID, err)
	}
	return nil
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxCostingRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.FixedCostAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_cost_assets WHERE asset_id = $1;`
	asset, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find asset %s: %w", assetID, err)
	}
	return asset, nil
}

// ListAssets retrieves all assets of a business.
func (r *PgxCostingRepository) ListAssets(ctx context.Context, businessID string) ([]domain.FixedCostAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_cost_assets WHERE business_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets for business %s: %w", businessID, err)
	}
	defer rows.Close()

	assets := []domain.FixedCostAsset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row for business %s: %w", businessID, err)
		}
		assets = append(assets, *asset)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating asset rows for business %s: %w", businessID, rows.Err())
	}
	return assets, nil
}

// FindAssetByCategoryForUpdate locks the asset tied to a category. Returns
// apperrors.ErrNotFound when the category has no asset.
func (r *PgxCostingRepository) FindAssetByCategoryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string) (*domain.FixedCostAsset, error) {
	query := `SELECT ` + assetColumns + ` FROM fixed_cost_assets WHERE category_id = $1 FOR UPDATE;`
	asset, err := scanAsset(tx.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock asset for category %s: %w", categoryID, err)
	}
	return asset, nil
}

// AddRecoveredInTx increases the asset's recovered amount. Callers hold the
// row lock and cap the amount so recovered never exceeds total cost.
func (r *PgxCostingRepository) AddRecoveredInTx(ctx context.Context, tx pgx.Tx, assetID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE fixed_cost_assets
		SET recovered = recovered + $2, last_updated_at = $3, last_updated_by = $4
		WHERE asset_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, assetID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to add recovery to asset %s: %w", assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// --- monthly cost recoveries ---

func toDomainRecovery(m models.MonthlyCostRecovery) domain.MonthlyCostRecovery {
	return domain.MonthlyCostRecovery{
		RecoveryID:      m.RecoveryID,
		CategoryID:      m.CategoryID,
		Month:           m.Month,
		TargetAmount:    m.TargetAmount,
		RecoveredAmount: m.RecoveredAmount,
		Status:          domain.RecoveryStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const recoveryColumns = `recovery_id, category_id, month, target_amount, recovered_amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanRecovery(row pgx.Row) (*domain.MonthlyCostRecovery, error) {
	var m models.MonthlyCostRecovery
	err := row.Scan(
		&m.RecoveryID,
		&m.CategoryID,
		&m.Month,
		&m.TargetAmount,
		&m.RecoveredAmount,
		&m.Status,
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
	rec := toDomainRecovery(m)
	return &rec, nil
}

// ListRecoveriesByCategory retrieves recovery rows of a category, newest month first.
func (r *PgxCostingRepository) ListRecoveriesByCategory(ctx context.Context, categoryID string) ([]domain.MonthlyCostRecovery, error) {
	query := `SELECT ` + recoveryColumns + ` FROM monthly_cost_recoveries WHERE category_id = $1 ORDER BY month DESC;`
	rows, err := r.Pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recoveries for category %s: %w", categoryID, err)
	}
	defer rows.Close()

	recoveries := []domain.MonthlyCostRecovery{}
	for rows.Next() {
		rec, err := scanRecovery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recovery row for category %s: %w", categoryID, err)
		}
		recoveries = append(recoveries, *rec)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating recovery rows for category %s: %w", categoryID, rows.Err())
	}
	return recoveries, nil
}

// FindRecoveryForUpdate locks the (category, month) row. Returns
// apperrors.ErrNotFound when no row is open for that month.
func (r *PgxCostingRepository) FindRecoveryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string, month string) (*domain.MonthlyCostRecovery, error) {
	query := `SELECT ` + recoveryColumns + ` FROM monthly_cost_recoveries WHERE category_id = $1 AND month = $2 FOR UPDATE;`
	rec, err := scanRecovery(tx.QueryRow(ctx, query, categoryID, month))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock recovery for category %s month %s: %w", categoryID, month, err)
	}
	return rec, nil
}

// ApplyRecoveryInTx adds to recovered_amount and sets the new status.
func (r *PgxCostingRepository) ApplyRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, amount decimal.Decimal, status domain.RecoveryStatus, userID string, now time.Time) error {
	query := `
		UPDATE monthly_cost_recoveries
		SET recovered_amount = recovered_amount + $2, status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE recovery_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, recoveryID, amount, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to apply recovery %s: %w", recoveryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CloseRecoveryInTx sets the terminal status of a prior-month row.
func (r *PgxCostingRepository) CloseRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, status domain.RecoveryStatus, userID string, now time.Time) error {
	query := `
		UPDATE monthly_cost_recoveries
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE recovery_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, recoveryID, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to close recovery %s: %w", recoveryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// InsertRecoveryIfAbsentInTx opens a fresh row for (category, month), doing
// nothing if one already exists. The unique constraint on (category_id, month)
// makes the rollover idempotent. Returns true when a row was inserted.
func (r *PgxCostingRepository) InsertRecoveryIfAbsentInTx(ctx context.Context, tx pgx.Tx, recovery domain.MonthlyCostRecovery) (bool, error) {
	query := `
		INSERT INTO monthly_cost_recoveries (` + recoveryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (category_id, month) DO NOTHING;
	`
	cmdTag, err := tx.Exec(ctx, query,
		recovery.RecoveryID, recovery.CategoryID, recovery.Month, recovery.TargetAmount,
		recovery.RecoveredAmount, string(recovery.Status),
		recovery.CreatedAt, recovery.CreatedBy, recovery.LastUpdatedAt, recovery.LastUpdatedBy,
	)
	if err != nil {
		return false, fmt.Errorf("failed to open recovery for category %s month %s: %w", recovery.CategoryID, recovery.Month, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}
