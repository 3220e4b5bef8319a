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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for product data.
func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func toDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:  m.ProductID,
		BusinessID: m.BusinessID,
		Name:       m.Name,
		Price:      m.Price,
		Stock:      m.Stock,
		IsActive:   m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const productColumns = `product_id, business_id, name, price, stock, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.BusinessID,
		&m.Name,
		&m.Price,
		&m.Stock,
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
	product := toDomainProduct(m)
	return &product, nil
}

// SaveProduct inserts a new product.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.BusinessID, product.Name, product.Price, product.Stock, product.IsActive,
		product.CreatedAt, product.CreatedBy, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product %s", apperrors.ErrDuplicate, product.ProductID)
		}
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

// UpdateProduct updates an existing product's mutable details. Stock is not
// touched here; it only moves through AdjustStockInTx.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		product.ProductID, product.Name, product.Price, product.IsActive, product.LastUpdatedAt, product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindProductByID retrieves a product scoped to a business.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, businessID string, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 AND product_id = $2;`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, businessID, productID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts retrieves a paginated list of active products for a business.
func (r *PgxProductRepository) ListProducts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE business_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, businessID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to query products for business %s: %w", businessID, err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row for business %s: %w", businessID, err)
		}
		products = append(products, *product)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows for business %s: %w", businessID, rows.Err())
	}
	return products, nil
}

// FindProductForUpdate locks a product row inside the caller's transaction,
// serializing concurrent stock mutations.
func (r *PgxProductRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, businessID string, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE business_id = $1 AND product_id = $2 FOR UPDATE;`
	product, err := scanProduct(tx.QueryRow(ctx, query, businessID, productID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to lock product %s: %w", productID, err)
	}
	return product, nil
}

// AdjustStockInTx applies a signed delta to product stock.
func (r *PgxProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE products
		SET stock = stock + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, productID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust stock of product %s: %w", productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
