package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/core/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SaleServiceTestSuite struct {
	suite.Suite
	mocks     *mockSet
	allocator *MockCostAllocator
	service   portssvc.SaleSvcFacade

	businessID string
	userID     string
	customerID string
	productID  string
	accountID  string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	provider, mocks := newMockProvider()
	suite.mocks = mocks
	suite.allocator = new(MockCostAllocator)
	suite.service = services.NewSaleService(provider, suite.allocator)

	suite.businessID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.customerID = uuid.NewString()
	suite.productID = uuid.NewString()
	suite.accountID = uuid.NewString()
}

func (suite *SaleServiceTestSuite) customer() *domain.Customer {
	return &domain.Customer{
		CustomerID: suite.customerID,
		BusinessID: suite.businessID,
		Name:       "Walk-in",
	}
}

func (suite *SaleServiceTestSuite) product(stock string) *domain.Product {
	return &domain.Product{
		ProductID:  suite.productID,
		BusinessID: suite.businessID,
		Name:       "Widget",
		Price:      decimal.RequireFromString("50"),
		Stock:      decimal.RequireFromString(stock),
		IsActive:   true,
	}
}

func (suite *SaleServiceTestSuite) account() *domain.Account {
	return &domain.Account{
		AccountID:  suite.accountID,
		BusinessID: suite.businessID,
		Name:       "Cash",
		Role:       domain.RoleCash,
		Balance:    decimal.RequireFromString("0"),
		IsActive:   true,
	}
}

func (suite *SaleServiceTestSuite) cashSaleRequest() dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID:  suite.customerID,
		ProductID:   suite.productID,
		Quantity:    decimal.RequireFromString("4"),
		Rate:        decimal.RequireFromString("50"),
		TotalAmount: decimal.RequireFromString("200"),
		PaymentType: "CASH",
		AccountID:   &suite.accountID,
	}
}

// --- CreateSale ---

func (suite *SaleServiceTestSuite) TestCreateSale_PaidPath() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mocks.customerRepo.On("FindCustomerByID", ctx, suite.businessID, suite.customerID).Return(suite.customer(), nil).Once()
	suite.mocks.productRepo.On("FindProductForUpdate", ctx, nil, suite.businessID, suite.productID).Return(suite.product("10"), nil).Once()
	suite.mocks.productRepo.On("AdjustStockInTx", ctx, nil, suite.productID, decEq("-4"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, suite.accountID).Return(suite.account(), nil).Once()
	suite.allocator.On("AllocateInTx", ctx, nil, suite.businessID, suite.productID, decEq("4"), suite.userID, mock.AnythingOfType("time.Time")).Return(portssvc.AllocationResult{
		TotalCogs: decimal.RequireFromString("30"),
		Excess:    decimal.RequireFromString("5"),
	}, nil).Once()
	// Credit = 200 - 30 + 5 = 175.
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, suite.accountID, decEq("175"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("175"), nil).Once()
	suite.mocks.txnRepo.On("AppendInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Direction == domain.Incoming && txn.Amount.Equal(decimal.RequireFromString("175")) && strings.HasPrefix(txn.Notes, "Sale ")
	})).Return("txn-1", nil).Once()
	suite.mocks.txnRepo.On("LinkBusinessInTx", ctx, nil, mock.AnythingOfType("string"), suite.businessID).Return(nil).Once()
	suite.mocks.saleRepo.On("InsertSaleInTx", ctx, nil, mock.MatchedBy(func(sale domain.Sale) bool {
		return sale.Status == domain.SalePosted && sale.AccountID != nil
	})).Return(nil).Once()
	suite.mocks.customerRepo.On("ApplyPurchaseInTx", ctx, nil, suite.customerID, decEq("200"), decEq("0"), mock.AnythingOfType("*time.Time")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.Equal(domain.SalePosted, sale.Status)
	suite.Equal(domain.PaymentCash, sale.PaymentType)
	suite.mocks.saleRepo.AssertExpectations(suite.T())
	suite.mocks.accountRepo.AssertExpectations(suite.T())
	suite.allocator.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_DebitPathOpensReceivable() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.PaymentType = "DEBIT"
	req.AccountID = nil

	receivable := &domain.Account{
		AccountID:  uuid.NewString(),
		BusinessID: suite.businessID,
		Name:       "Receivables",
		Role:       domain.RoleReceivable,
		IsActive:   true,
	}

	suite.mocks.customerRepo.On("FindCustomerByID", ctx, suite.businessID, suite.customerID).Return(suite.customer(), nil).Once()
	suite.mocks.productRepo.On("FindProductForUpdate", ctx, nil, suite.businessID, suite.productID).Return(suite.product("10"), nil).Once()
	suite.mocks.productRepo.On("AdjustStockInTx", ctx, nil, suite.productID, decEq("-4"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.accountRepo.On("FindAccountByRole", ctx, suite.businessID, domain.RoleReceivable).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, receivable.AccountID).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, receivable.AccountID, decEq("200"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("200"), nil).Once()
	suite.mocks.saleRepo.On("InsertSaleInTx", ctx, nil, mock.MatchedBy(func(sale domain.Sale) bool {
		return sale.Status == domain.SalePending && sale.AccountID == nil
	})).Return(nil).Once()
	suite.mocks.saleRepo.On("InsertDebitAccountInTx", ctx, nil, mock.MatchedBy(func(debit domain.DebitAccount) bool {
		return debit.Status == domain.DebitRunning && debit.Amount.Equal(decimal.RequireFromString("200")) && debit.Recovered.IsZero()
	})).Return(nil).Once()
	suite.mocks.customerRepo.On("ApplyPurchaseInTx", ctx, nil, suite.customerID, decEq("200"), decEq("200"), mock.AnythingOfType("*time.Time")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SalePending, sale.Status)
	// Revenue and allocation wait for repayment; no journal row yet.
	suite.mocks.txnRepo.AssertNotCalled(suite.T(), "AppendInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.allocator.AssertNotCalled(suite.T(), "AllocateInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mocks.saleRepo.AssertExpectations(suite.T())
	suite.mocks.accountRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_TotalMustEqualQuantityTimesRate() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.TotalAmount = decimal.RequireFromString("199")

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sale)
	suite.mocks.customerRepo.AssertNotCalled(suite.T(), "FindCustomerByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestCreateSale_AccountRequiredUnlessDebit() {
	ctx := context.Background()
	req := suite.cashSaleRequest()
	req.AccountID = nil

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sale)
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mocks.customerRepo.On("FindCustomerByID", ctx, suite.businessID, suite.customerID).Return(suite.customer(), nil).Once()
	suite.mocks.productRepo.On("FindProductForUpdate", ctx, nil, suite.businessID, suite.productID).Return(suite.product("3"), nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.Nil(sale)
	suite.mocks.productRepo.AssertNotCalled(suite.T(), "AdjustStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mocks.productRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_TotalBelowAllocatedCost() {
	ctx := context.Background()
	req := suite.cashSaleRequest()

	suite.mocks.customerRepo.On("FindCustomerByID", ctx, suite.businessID, suite.customerID).Return(suite.customer(), nil).Once()
	suite.mocks.productRepo.On("FindProductForUpdate", ctx, nil, suite.businessID, suite.productID).Return(suite.product("10"), nil).Once()
	suite.mocks.productRepo.On("AdjustStockInTx", ctx, nil, suite.productID, decEq("-4"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, suite.accountID).Return(suite.account(), nil).Once()
	suite.allocator.On("AllocateInTx", ctx, nil, suite.businessID, suite.productID, decEq("4"), suite.userID, mock.AnythingOfType("time.Time")).Return(portssvc.AllocationResult{
		TotalCogs: decimal.RequireFromString("250"),
		Excess:    decimal.RequireFromString("0"),
	}, nil).Once()

	sale, err := suite.service.CreateSale(ctx, suite.businessID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(sale)
	suite.mocks.accountRepo.AssertNotCalled(suite.T(), "AdjustBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- RecordPayment ---

func (suite *SaleServiceTestSuite) TestRecordPayment_PartialKeepsReceivableRunning() {
	ctx := context.Background()
	saleID := uuid.NewString()
	receivable := &domain.Account{
		AccountID:  uuid.NewString(),
		BusinessID: suite.businessID,
		Role:       domain.RoleReceivable,
		IsActive:   true,
	}
	debit := &domain.DebitAccount{
		DebitAccountID: uuid.NewString(),
		BusinessID:     suite.businessID,
		SaleID:         saleID,
		CustomerID:     suite.customerID,
		Amount:         decimal.RequireFromString("200"),
		Recovered:      decimal.RequireFromString("0"),
		Status:         domain.DebitRunning,
	}
	sale := &domain.Sale{
		SaleID:      saleID,
		BusinessID:  suite.businessID,
		CustomerID:  suite.customerID,
		ProductID:   suite.productID,
		Quantity:    decimal.RequireFromString("4"),
		Rate:        decimal.RequireFromString("50"),
		TotalAmount: decimal.RequireFromString("200"),
		PaymentType: domain.PaymentDebit,
		Status:      domain.SalePending,
	}

	suite.mocks.saleRepo.On("FindDebitAccountBySaleForUpdate", ctx, nil, saleID).Return(debit, nil).Once()
	suite.mocks.saleRepo.On("FindSaleByID", ctx, suite.businessID, saleID).Return(sale, nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, suite.accountID).Return(suite.account(), nil).Once()
	// 80 of 200 paid covers 1.6 of the 4 sold units.
	suite.allocator.On("AllocateInTx", ctx, nil, suite.businessID, suite.productID, decEq("1.6"), suite.userID, mock.AnythingOfType("time.Time")).Return(portssvc.AllocationResult{
		TotalCogs: decimal.RequireFromString("16"),
		Excess:    decimal.RequireFromString("0"),
	}, nil).Once()
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, suite.accountID, decEq("64"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("64"), nil).Once()
	suite.mocks.txnRepo.On("AppendInTx", ctx, nil, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Direction == domain.Incoming && txn.Amount.Equal(decimal.RequireFromString("64")) && strings.HasPrefix(txn.Notes, "Repayment for sale ")
	})).Return("txn-1", nil).Once()
	suite.mocks.txnRepo.On("LinkBusinessInTx", ctx, nil, mock.AnythingOfType("string"), suite.businessID).Return(nil).Once()
	suite.mocks.accountRepo.On("FindAccountByRole", ctx, suite.businessID, domain.RoleReceivable).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, receivable.AccountID).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, receivable.AccountID, decEq("-80"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("120"), nil).Once()
	suite.mocks.saleRepo.On("ApplyRepaymentInTx", ctx, nil, debit.DebitAccountID, decEq("80"), domain.DebitRunning, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.customerRepo.On("ApplyPurchaseInTx", ctx, nil, suite.customerID, decEq("0"), decEq("-80"), mock.Anything).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, saleID, dto.RecordPaymentRequest{
		Amount:    decimal.RequireFromString("80"),
		AccountID: suite.accountID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebitRunning, updated.Status)
	suite.True(updated.Recovered.Equal(decimal.RequireFromString("80")))
	suite.mocks.saleRepo.AssertNotCalled(suite.T(), "UpdateSaleStatusInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mocks.saleRepo.AssertExpectations(suite.T())
	suite.mocks.accountRepo.AssertExpectations(suite.T())
	suite.allocator.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordPayment_FinalPaymentClosesAndMarksSalePaid() {
	ctx := context.Background()
	saleID := uuid.NewString()
	receivable := &domain.Account{
		AccountID:  uuid.NewString(),
		BusinessID: suite.businessID,
		Role:       domain.RoleReceivable,
		IsActive:   true,
	}
	debit := &domain.DebitAccount{
		DebitAccountID: uuid.NewString(),
		BusinessID:     suite.businessID,
		SaleID:         saleID,
		CustomerID:     suite.customerID,
		Amount:         decimal.RequireFromString("200"),
		Recovered:      decimal.RequireFromString("120"),
		Status:         domain.DebitRunning,
	}
	sale := &domain.Sale{
		SaleID:      saleID,
		BusinessID:  suite.businessID,
		CustomerID:  suite.customerID,
		ProductID:   suite.productID,
		Quantity:    decimal.RequireFromString("4"),
		TotalAmount: decimal.RequireFromString("200"),
		PaymentType: domain.PaymentDebit,
		Status:      domain.SalePending,
	}

	suite.mocks.saleRepo.On("FindDebitAccountBySaleForUpdate", ctx, nil, saleID).Return(debit, nil).Once()
	suite.mocks.saleRepo.On("FindSaleByID", ctx, suite.businessID, saleID).Return(sale, nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, suite.accountID).Return(suite.account(), nil).Once()
	suite.allocator.On("AllocateInTx", ctx, nil, suite.businessID, suite.productID, decEq("1.6"), suite.userID, mock.AnythingOfType("time.Time")).Return(portssvc.AllocationResult{
		TotalCogs: decimal.RequireFromString("16"),
		Excess:    decimal.RequireFromString("0"),
	}, nil).Once()
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, suite.accountID, decEq("64"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("64"), nil).Once()
	suite.mocks.txnRepo.On("AppendInTx", ctx, nil, mock.AnythingOfType("domain.Transaction")).Return("txn-1", nil).Once()
	suite.mocks.txnRepo.On("LinkBusinessInTx", ctx, nil, mock.AnythingOfType("string"), suite.businessID).Return(nil).Once()
	suite.mocks.accountRepo.On("FindAccountByRole", ctx, suite.businessID, domain.RoleReceivable).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("FindAccountForUpdate", ctx, nil, receivable.AccountID).Return(receivable, nil).Once()
	suite.mocks.accountRepo.On("AdjustBalanceInTx", ctx, nil, receivable.AccountID, decEq("-80"), suite.userID, mock.AnythingOfType("time.Time")).Return(decimal.RequireFromString("0"), nil).Once()
	suite.mocks.saleRepo.On("ApplyRepaymentInTx", ctx, nil, debit.DebitAccountID, decEq("80"), domain.DebitClosed, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.saleRepo.On("UpdateSaleStatusInTx", ctx, nil, saleID, domain.SalePaid, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mocks.customerRepo.On("ApplyPurchaseInTx", ctx, nil, suite.customerID, decEq("0"), decEq("-80"), mock.Anything).Return(nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, saleID, dto.RecordPaymentRequest{
		Amount:    decimal.RequireFromString("80"),
		AccountID: suite.accountID,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.DebitClosed, updated.Status)
	suite.True(updated.Recovered.Equal(decimal.RequireFromString("200")))
	suite.mocks.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordPayment_Overpayment() {
	ctx := context.Background()
	saleID := uuid.NewString()
	debit := &domain.DebitAccount{
		DebitAccountID: uuid.NewString(),
		BusinessID:     suite.businessID,
		SaleID:         saleID,
		CustomerID:     suite.customerID,
		Amount:         decimal.RequireFromString("200"),
		Recovered:      decimal.RequireFromString("150"),
		Status:         domain.DebitRunning,
	}

	suite.mocks.saleRepo.On("FindDebitAccountBySaleForUpdate", ctx, nil, saleID).Return(debit, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, saleID, dto.RecordPaymentRequest{
		Amount:    decimal.RequireFromString("80"),
		AccountID: suite.accountID,
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrOverpayment)
	suite.Nil(updated)
	suite.mocks.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRecordPayment_ClosedReceivableRejected() {
	ctx := context.Background()
	saleID := uuid.NewString()
	debit := &domain.DebitAccount{
		DebitAccountID: uuid.NewString(),
		BusinessID:     suite.businessID,
		SaleID:         saleID,
		Amount:         decimal.RequireFromString("200"),
		Recovered:      decimal.RequireFromString("200"),
		Status:         domain.DebitClosed,
	}

	suite.mocks.saleRepo.On("FindDebitAccountBySaleForUpdate", ctx, nil, saleID).Return(debit, nil).Once()

	updated, err := suite.service.RecordPayment(ctx, suite.businessID, saleID, dto.RecordPaymentRequest{
		Amount:    decimal.RequireFromString("10"),
		AccountID: suite.accountID,
	}, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(updated)
	suite.mocks.saleRepo.AssertExpectations(suite.T())
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
