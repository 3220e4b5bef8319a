package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// ProductSvcFacade defines product catalog operations.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, businessID string, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, businessID string, productID string, req dto.UpdateProductRequest, userID string) (*domain.Product, error)
	GetProduct(ctx context.Context, businessID string, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Product, error)
}

// CustomerSvcFacade defines customer operations.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, businessID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)
	GetCustomer(ctx context.Context, businessID string, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, businessID string, limit int, offset int) ([]domain.Customer, error)
	GetPurchaseHistory(ctx context.Context, businessID string, customerID string) (*domain.CustomerPurchaseHistory, error)
}
