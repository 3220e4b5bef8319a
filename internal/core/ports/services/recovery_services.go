package services

import (
	"context"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
)

// RecoverySvcFacade defines the monthly rollover of recurring-cost targets.
// The transition is triggered externally; there is no in-process timer.
type RecoverySvcFacade interface {
	TransitionToNewMonth(ctx context.Context, businessID string, userID string) (*dto.MonthTransitionResponse, error)
	ListRecoveries(ctx context.Context, businessID string, categoryID string) ([]domain.MonthlyCostRecovery, error)
}
