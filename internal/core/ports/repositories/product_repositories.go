package repositories

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepositoryFacade defines operations for products.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, businessID string, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Product, error)

	// FindProductForUpdate locks a product row inside the caller's
	// transaction, serializing concurrent stock mutations.
	FindProductForUpdate(ctx context.Context, tx pgx.Tx, businessID string, productID string) (*domain.Product, error)

	// AdjustStockInTx applies a signed delta to product stock.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, userID string, now time.Time) error
}
