package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/apperrors"
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/dto"
	"github.com/bizbookhq/bizbook_backend/internal/handlers"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) CreateSale(ctx context.Context, businessID string, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) RecordPayment(ctx context.Context, businessID string, saleID string, req dto.RecordPaymentRequest, userID string) (*domain.DebitAccount, error) {
	args := m.Called(ctx, businessID, saleID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitAccount), args.Error(1)
}
func (m *MockSaleService) GetSale(ctx context.Context, businessID string, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, businessID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListCustomerSales(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, businessID, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListReceivables(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error) {
	args := m.Called(ctx, businessID, runningOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebitAccount), args.Error(1)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock UserService (BusinessResolver dependency) ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Authenticate(ctx context.Context, username string, password string) (*domain.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BusinessService (permission gate dependency) ---
type MockBusinessService struct {
	mock.Mock
}

func (m *MockBusinessService) CreateBusiness(ctx context.Context, req dto.CreateBusinessRequest, creatorUserID string) (*domain.Business, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}
func (m *MockBusinessService) CreateRole(ctx context.Context, businessID string, req dto.CreateRoleRequest, userID string) (*domain.Role, error) {
	args := m.Called(ctx, businessID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}
func (m *MockBusinessService) ListRoles(ctx context.Context, businessID string) ([]domain.Role, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}
func (m *MockBusinessService) HasPermission(ctx context.Context, userID string, businessID string, permKey string) (bool, error) {
	args := m.Called(ctx, userID, businessID, permKey)
	return args.Bool(0), args.Error(1)
}
func (m *MockBusinessService) InvalidateRoleCache(roleID string) {
	m.Called(roleID)
}

var _ portssvc.BusinessSvcFacade = (*MockBusinessService)(nil)

// --- Test Suite ---
type SaleHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockSaleService     *MockSaleService
	mockUserService     *MockUserService
	mockBusinessService *MockBusinessService
	jwtSecret           string

	userID     string
	businessID string
}

func (suite *SaleHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "bizbook-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockSaleService = new(MockSaleService)
	suite.mockUserService = new(MockUserService)
	suite.mockBusinessService = new(MockBusinessService)

	suite.userID = uuid.NewString()
	suite.businessID = uuid.NewString()

	saleHandler := handlers.NewSaleHandler(suite.mockSaleService)

	// Mirror the production route chain: auth, business resolution, permission gate.
	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret), middleware.BusinessResolver(suite.mockUserService))
	v1.POST("/sales", middleware.RequirePermission(suite.mockBusinessService, domain.PermSalesCreate), saleHandler.CreateSale)
	v1.POST("/sales/:saleID/payments", middleware.RequirePermission(suite.mockBusinessService, domain.PermSalesPayment), saleHandler.RecordPayment)
	v1.GET("/sales/:saleID", saleHandler.GetSale)
}

func (suite *SaleHandlerTestSuite) memberUser() *domain.User {
	return &domain.User{
		UserID:     suite.userID,
		Username:   "cashier",
		BusinessID: &suite.businessID,
		IsActive:   true,
	}
}

func (suite *SaleHandlerTestSuite) authedRequest(method, url, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	return req
}

func (suite *SaleHandlerTestSuite) TestCreateSale_Success() {
	saleID := uuid.NewString()
	accountID := uuid.NewString()
	expected := &domain.Sale{
		SaleID:      saleID,
		BusinessID:  suite.businessID,
		CustomerID:  uuid.NewString(),
		ProductID:   uuid.NewString(),
		Quantity:    decimal.NewFromInt(2),
		Rate:        decimal.NewFromInt(50),
		TotalAmount: decimal.NewFromInt(100),
		PaymentType: domain.PaymentCash,
		AccountID:   &accountID,
		Status:      domain.SalePosted,
	}

	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(suite.memberUser(), nil).Once()
	suite.mockBusinessService.On("HasPermission", mock.Anything, suite.userID, suite.businessID, domain.PermSalesCreate).Return(true, nil).Once()
	suite.mockSaleService.On("CreateSale", mock.Anything, suite.businessID, mock.MatchedBy(func(req dto.CreateSaleRequest) bool {
		return req.PaymentType == "CASH" && req.TotalAmount.Equal(decimal.NewFromInt(100))
	}), suite.userID).Return(expected, nil).Once()

	body := fmt.Sprintf(`{"customerID":%q,"productID":%q,"quantity":"2","rate":"50","totalAmount":"100","paymentType":"CASH","accountID":%q}`,
		expected.CustomerID, expected.ProductID, accountID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/sales", body))

	suite.Equal(http.StatusCreated, w.Code, "body: %s", w.Body.String())

	var resp dto.SaleResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(saleID, resp.SaleID)
	suite.Equal(string(domain.SalePosted), resp.Status)

	suite.mockSaleService.AssertExpectations(suite.T())
	suite.mockBusinessService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestCreateSale_PermissionDenied() {
	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(suite.memberUser(), nil).Once()
	suite.mockBusinessService.On("HasPermission", mock.Anything, suite.userID, suite.businessID, domain.PermSalesCreate).Return(false, nil).Once()

	body := `{"customerID":"c","productID":"p","quantity":"1","rate":"10","totalAmount":"10","paymentType":"CASH","accountID":"a"}`
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/sales", body))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockSaleService.AssertNotCalled(suite.T(), "CreateSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestCreateSale_MissingTokenRejected() {
	body := `{"customerID":"c","productID":"p","quantity":"1","rate":"10","totalAmount":"10","paymentType":"CASH","accountID":"a"}`
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *SaleHandlerTestSuite) TestRecordPayment_OverpaymentMapsTo422() {
	saleID := uuid.NewString()

	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(suite.memberUser(), nil).Once()
	suite.mockBusinessService.On("HasPermission", mock.Anything, suite.userID, suite.businessID, domain.PermSalesPayment).Return(true, nil).Once()
	suite.mockSaleService.On("RecordPayment", mock.Anything, suite.businessID, saleID, mock.AnythingOfType("dto.RecordPaymentRequest"), suite.userID).
		Return(nil, fmt.Errorf("%w: outstanding 50, payment 80", apperrors.ErrOverpayment)).Once()

	body := `{"amount":"80","accountID":"acct-1"}`
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/sales/"+saleID+"/payments", body))

	suite.Equal(http.StatusUnprocessableEntity, w.Code, "body: %s", w.Body.String())
	suite.mockSaleService.AssertExpectations(suite.T())
}

func (suite *SaleHandlerTestSuite) TestGetSale_NotFoundMapsTo404() {
	saleID := uuid.NewString()

	suite.mockUserService.On("GetUserByID", mock.Anything, suite.userID).Return(suite.memberUser(), nil).Once()
	suite.mockSaleService.On("GetSale", mock.Anything, suite.businessID, saleID).Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/sales/"+saleID, ""))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSaleService.AssertExpectations(suite.T())
}

func TestSaleHandler(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}
