package services

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/google/uuid"
)

type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

// NewCustomerService creates the customer service.
func NewCustomerService(repos *portsrepo.RepositoryProvider) portssvc.CustomerSvcFacade {
	return &customerService{customerRepo: repos.CustomerRepo}
}

// CreateCustomer adds a customer to a business.
func (s *customerService) CreateCustomer(ctx context.Context, businessID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		BusinessID:  businessID,
		Name:        req.Name,
		Phone:       req.Phone,
		IsActive:    true,
		AuditFields: newAuditFields(userID, now),
	}
	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetCustomer retrieves a customer scoped to a business.
func (s *customerService) GetCustomer(ctx context.Context, businessID string, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, businessID, customerID)
}

// ListCustomers retrieves a page of the business's active customers.
func (s *customerService) ListCustomers(ctx context.Context, businessID string, limit int, offset int) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, businessID, limit, offset)
}

// GetPurchaseHistory retrieves a customer's purchase rollup.
func (s *customerService) GetPurchaseHistory(ctx context.Context, businessID string, customerID string) (*domain.CustomerPurchaseHistory, error) {
	if _, err := s.customerRepo.FindCustomerByID(ctx, businessID, customerID); err != nil {
		return nil, err
	}
	return s.customerRepo.FindPurchaseHistory(ctx, customerID)
}
