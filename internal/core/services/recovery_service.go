package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type recoveryService struct {
	txManager   portsrepo.TransactionManager
	costingRepo portsrepo.CostingRepositoryFacade
}

// NewRecoveryService creates the monthly rollover service for recurring-cost
// targets.
func NewRecoveryService(repos *portsrepo.RepositoryProvider) portssvc.RecoverySvcFacade {
	return &recoveryService{
		txManager:   repos.TxManager,
		costingRepo: repos.CostingRepo,
	}
}

// TransitionToNewMonth closes last month's recovery rows and opens rows for
// the current month across all recurring categories of a business, in one
// transaction. Opening is insert-if-absent keyed on (category, month), so
// running the transition twice in the same month is a no-op.
func (s *recoveryService) TransitionToNewMonth(ctx context.Context, businessID string, userID string) (*dto.MonthTransitionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	categories, err := s.costingRepo.ListRecurringCategories(ctx, businessID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	currentMonth := utils.MonthKey(now)
	previousMonth := utils.PrevMonthKey(now)
	resp := &dto.MonthTransitionResponse{}

	err = s.txManager.WithTx(ctx, func(tx pgx.Tx) error {
		for _, category := range categories {
			if category.MonthlyTarget == nil {
				continue
			}

			previous, err := s.costingRepo.FindRecoveryForUpdate(ctx, tx, category.CategoryID, previousMonth)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if err == nil && previous.Status == domain.RecoveryInProgress {
				status := domain.RecoveryUnfulfilled
				if previous.RecoveredAmount.GreaterThanOrEqual(previous.TargetAmount) {
					status = domain.RecoveryFulfilled
				}
				if err := s.costingRepo.CloseRecoveryInTx(ctx, tx, previous.RecoveryID, status, userID, now); err != nil {
					return err
				}
				resp.Closed++
			}

			inserted, err := s.costingRepo.InsertRecoveryIfAbsentInTx(ctx, tx, domain.MonthlyCostRecovery{
				RecoveryID:      uuid.NewString(),
				CategoryID:      category.CategoryID,
				Month:           currentMonth,
				TargetAmount:    *category.MonthlyTarget,
				RecoveredAmount: decimal.Zero,
				Status:          domain.RecoveryInProgress,
				AuditFields:     newAuditFields(userID, now),
			})
			if err != nil {
				return err
			}
			if inserted {
				resp.Opened++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Month transition completed",
		slog.String("month", currentMonth),
		slog.Int("closed", resp.Closed),
		slog.Int("opened", resp.Opened))
	return resp, nil
}

// ListRecoveries retrieves the recovery history of a recurring category.
func (s *recoveryService) ListRecoveries(ctx context.Context, businessID string, categoryID string) ([]domain.MonthlyCostRecovery, error) {
	category, err := s.costingRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category.BusinessID != businessID {
		return nil, apperrors.ErrNotFound
	}
	return s.costingRepo.ListRecoveriesByCategory(ctx, categoryID)
}
