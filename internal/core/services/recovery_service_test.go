package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/core/services"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RecoveryServiceTestSuite struct {
	suite.Suite
	mocks   *mockSet
	service portssvc.RecoverySvcFacade

	businessID    string
	userID        string
	currentMonth  string
	previousMonth string
}

func (suite *RecoveryServiceTestSuite) SetupTest() {
	provider, mocks := newMockProvider()
	suite.mocks = mocks
	suite.service = services.NewRecoveryService(provider)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	now := time.Now().UTC()
	suite.currentMonth = utils.MonthKey(now)
	suite.previousMonth = utils.PrevMonthKey(now)
}

func (suite *RecoveryServiceTestSuite) recurringCategory(target string) domain.CostCategory {
	t := decimal.RequireFromString(target)
	return domain.CostCategory{
		CategoryID:    uuid.NewString(),
		BusinessID:    suite.businessID,
		Name:          "Rent",
		CostType:      domain.CostFixed,
		IsRecurring:   true,
		MonthlyTarget: &t,
	}
}

func (suite *RecoveryServiceTestSuite) TestTransition_ClosesShortfallAsUnfulfilled() {
	ctx := context.Background()
	category := suite.recurringCategory("500")

	suite.mocks.costingRepo.On("ListRecurringCategories", ctx, suite.businessID).Return([]domain.CostCategory{category}, nil).Once()
	suite.mocks.costingRepo.On("FindRecoveryForUpdate", ctx, nil, category.CategoryID, suite.previousMonth).Return(&domain.MonthlyCostRecovery{
		RecoveryID:      "rec-prev",
		CategoryID:      category.CategoryID,
		Month:           suite.previousMonth,
		TargetAmount:    decimal.RequireFromString("500"),
		RecoveredAmount: decimal.RequireFromString("300"),
		Status:          domain.RecoveryInProgress,
	}, nil).Once()
	suite.mocks.costingRepo.On("CloseRecoveryInTx", ctx, nil, "rec-prev", domain.RecoveryUnfulfilled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.costingRepo.On("InsertRecoveryIfAbsentInTx", ctx, nil, mock.MatchedBy(func(r domain.MonthlyCostRecovery) bool {
		return r.Month == suite.currentMonth && r.Status == domain.RecoveryInProgress && r.TargetAmount.Equal(decimal.RequireFromString("500"))
	})).Return(true, nil).Once()

	resp, err := suite.service.TransitionToNewMonth(ctx, suite.businessID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Closed)
	suite.Equal(1, resp.Opened)
	suite.mocks.costingRepo.AssertExpectations(suite.T())
}

func (suite *RecoveryServiceTestSuite) TestTransition_ClosesMetTargetAsFulfilled() {
	ctx := context.Background()
	category := suite.recurringCategory("500")

	suite.mocks.costingRepo.On("ListRecurringCategories", ctx, suite.businessID).Return([]domain.CostCategory{category}, nil).Once()
	suite.mocks.costingRepo.On("FindRecoveryForUpdate", ctx, nil, category.CategoryID, suite.previousMonth).Return(&domain.MonthlyCostRecovery{
		RecoveryID:      "rec-prev",
		CategoryID:      category.CategoryID,
		Month:           suite.previousMonth,
		TargetAmount:    decimal.RequireFromString("500"),
		RecoveredAmount: decimal.RequireFromString("500"),
		Status:          domain.RecoveryInProgress,
	}, nil).Once()
	suite.mocks.costingRepo.On("CloseRecoveryInTx", ctx, nil, "rec-prev", domain.RecoveryFulfilled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.costingRepo.On("InsertRecoveryIfAbsentInTx", ctx, nil, mock.AnythingOfType("domain.MonthlyCostRecovery")).Return(true, nil).Once()

	resp, err := suite.service.TransitionToNewMonth(ctx, suite.businessID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, resp.Closed)
	suite.Equal(1, resp.Opened)
	suite.mocks.costingRepo.AssertExpectations(suite.T())
}

func (suite *RecoveryServiceTestSuite) TestTransition_SecondRunInSameMonthIsNoOp() {
	ctx := context.Background()
	category := suite.recurringCategory("500")

	suite.mocks.costingRepo.On("ListRecurringCategories", ctx, suite.businessID).Return([]domain.CostCategory{category}, nil).Once()
	// Previous month already closed by the first run.
	suite.mocks.costingRepo.On("FindRecoveryForUpdate", ctx, nil, category.CategoryID, suite.previousMonth).Return(&domain.MonthlyCostRecovery{
		RecoveryID:      "rec-prev",
		CategoryID:      category.CategoryID,
		Month:           suite.previousMonth,
		TargetAmount:    decimal.RequireFromString("500"),
		RecoveredAmount: decimal.RequireFromString("300"),
		Status:          domain.RecoveryUnfulfilled,
	}, nil).Once()
	suite.mocks.costingRepo.On("InsertRecoveryIfAbsentInTx", ctx, nil, mock.AnythingOfType("domain.MonthlyCostRecovery")).Return(false, nil).Once()

	resp, err := suite.service.TransitionToNewMonth(ctx, suite.businessID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Closed)
	suite.Equal(0, resp.Opened)
	suite.mocks.costingRepo.AssertNotCalled(suite.T(), "CloseRecoveryInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mocks.costingRepo.AssertExpectations(suite.T())
}

func (suite *RecoveryServiceTestSuite) TestTransition_NoPreviousRowStillOpensCurrent() {
	ctx := context.Background()
	category := suite.recurringCategory("500")

	suite.mocks.costingRepo.On("ListRecurringCategories", ctx, suite.businessID).Return([]domain.CostCategory{category}, nil).Once()
	suite.mocks.costingRepo.On("FindRecoveryForUpdate", ctx, nil, category.CategoryID, suite.previousMonth).Return(nil, apperrors.ErrNotFound).Once()
	suite.mocks.costingRepo.On("InsertRecoveryIfAbsentInTx", ctx, nil, mock.AnythingOfType("domain.MonthlyCostRecovery")).Return(true, nil).Once()

	resp, err := suite.service.TransitionToNewMonth(ctx, suite.businessID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, resp.Closed)
	suite.Equal(1, resp.Opened)
	suite.mocks.costingRepo.AssertExpectations(suite.T())
}

func (suite *RecoveryServiceTestSuite) TestListRecoveries_ForeignCategoryHidden() {
	ctx := context.Background()
	category := suite.recurringCategory("500")
	category.BusinessID = uuid.NewString()

	suite.mocks.costingRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(&category, nil).Once()

	recoveries, err := suite.service.ListRecoveries(ctx, suite.businessID, category.CategoryID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(recoveries)
	suite.mocks.costingRepo.AssertNotCalled(suite.T(), "ListRecoveriesByCategory", mock.Anything, mock.Anything)
}

func TestRecoveryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecoveryServiceTestSuite))
}
