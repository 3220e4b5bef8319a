package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// UserSvcFacade defines user registration and authentication lookups.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, username string, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade issues bearer tokens for authenticated users.
type TokenSvcFacade interface {
	Generate(user *domain.User) (string, error)
}
