package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// SaleSvcFacade defines the sale and repayment workflows.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, businessID string, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)
	RecordPayment(ctx context.Context, businessID string, saleID string, req dto.RecordPaymentRequest, userID string) (*domain.DebitAccount, error)
	GetSale(ctx context.Context, businessID string, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error)
	ListCustomerSales(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error)
	ListReceivables(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error)
}
