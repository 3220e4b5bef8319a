package dto

import (
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the payload for adding a product.
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
	Stock decimal.Decimal `json:"stock"`
}

// UpdateProductRequest is the payload for updating a product.
type UpdateProductRequest struct {
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Stock    *decimal.Decimal `json:"stock"`
	IsActive *bool            `json:"isActive"`
}

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     decimal.Decimal `json:"stock"`
	IsActive  bool            `json:"isActive"`
}

// ToProductResponse maps a domain product to its API representation.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		IsActive:  p.IsActive,
	}
}
