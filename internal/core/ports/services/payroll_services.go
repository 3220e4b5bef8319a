package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// PayrollSvcFacade defines salary distribution and payout workflows plus
// team member management.
type PayrollSvcFacade interface {
	DistributeSalary(ctx context.Context, businessID string, req dto.DistributeSalaryRequest, userID string) error
	PayoutSalary(ctx context.Context, businessID string, req dto.PayoutSalaryRequest, userID string) error
	AutoDistributeSalaries(ctx context.Context, businessID string, userID string) (int, error)

	CreateMember(ctx context.Context, businessID string, req dto.CreateTeamMemberRequest, userID string) (*domain.TeamMember, error)
	UpdateMember(ctx context.Context, businessID string, memberID string, req dto.UpdateTeamMemberRequest, userID string) (*domain.TeamMember, error)
	ListMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error)
	GetMemberAccount(ctx context.Context, businessID string, memberID string) (*domain.TeamAccount, []domain.SalaryTransaction, error)
}
