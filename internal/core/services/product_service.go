package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type productService struct {
	txManager   portsrepo.TransactionManager
	productRepo portsrepo.ProductRepositoryFacade
	costingRepo portsrepo.CostingRepositoryFacade
}

// NewProductService creates the product catalog service.
func NewProductService(repos *portsrepo.RepositoryProvider) portssvc.ProductSvcFacade {
	return &productService{
		txManager:   repos.TxManager,
		productRepo: repos.ProductRepo,
		costingRepo: repos.CostingRepo,
	}
}

// CreateProduct adds a product to the catalog.
func (s *productService) CreateProduct(ctx context.Context, businessID string, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
	}
	if req.Stock.IsNegative() {
		return nil, fmt.Errorf("%w: stock cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	product := domain.Product{
		ProductID:   uuid.NewString(),
		BusinessID:  businessID,
		Name:        req.Name,
		Price:       req.Price,
		Stock:       req.Stock,
		IsActive:    true,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct changes a product's details. Lowering the price below the
// product's total per-unit allocations is rejected; stock changes go through
// the locked adjust path so they serialize with concurrent sales.
func (s *productService) UpdateProduct(ctx context.Context, businessID string, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, businessID, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			return nil, fmt.Errorf("%w: price must be positive", apperrors.ErrValidation)
		}
		allocated, err := s.costingRepo.SumPerUnitExcluding(ctx, productID, "")
		if err != nil {
			return nil, err
		}
		if req.Price.LessThan(allocated) {
			return nil, fmt.Errorf("%w: price %s is below allocated per-unit cost %s", apperrors.ErrCostLimitExceeded, req.Price, allocated)
		}
		product.Price = *req.Price
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = now
	product.LastUpdatedBy = userID

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		return nil, err
	}

	if req.Stock != nil {
		if req.Stock.IsNegative() {
			return nil, fmt.Errorf("%w: stock cannot be negative", apperrors.ErrValidation)
		}
		err := s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
			current, err := s.productRepo.FindProductForUpdate(ctx, tx, businessID, productID)
			if err != nil {
				return err
			}
			delta := req.Stock.Sub(current.Stock)
			if delta.IsZero() {
				return nil
			}
			return s.productRepo.AdjustStockInTx(ctx, tx, productID, delta, userID, now)
		})
		if err != nil {
			return nil, err
		}
		product.Stock = *req.Stock
	}
	return product, nil
}

// GetProduct retrieves a product scoped to a business.
func (s *productService) GetProduct(ctx context.Context, businessID string, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, businessID, productID)
}

// ListProducts retrieves a page of the business's active products.
func (s *productService) ListProducts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Product, error) {
	return s.productRepo.ListProducts(ctx, businessID, limit, offset)
}
