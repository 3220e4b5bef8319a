package services_test

import (
	"context"
	"time"

	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTxManager runs the unit of work directly. The repositories are mocked,
// so no real transaction is needed.
type fakeTxManager struct{}

func (f *fakeTxManager) Begin(ctx context.Context) (pgx.Tx, error)       { return nil, nil }
func (f *fakeTxManager) Commit(ctx context.Context, tx pgx.Tx) error     { return nil }
func (f *fakeTxManager) Rollback(ctx context.Context, tx pgx.Tx) error   { return nil }
func (f *fakeTxManager) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// MockAccountRepository is a mock for the AccountRepositoryFacade interface.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByRole(ctx context.Context, businessID string, role domain.AccountRole) (*domain.Account, error) {
	args := m.Called(ctx, businessID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.Account) error {
	args := m.Called(ctx, tx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, accountID, delta, userID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockTransactionRepository is a mock for the TransactionRepositoryFacade interface.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) AppendInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) (string, error) {
	args := m.Called(ctx, tx, txn)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) LinkBusinessInTx(ctx context.Context, tx pgx.Tx, transactionID string, businessID string) error {
	args := m.Called(ctx, tx, transactionID, businessID)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, businessID string, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, businessID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByBusiness(ctx context.Context, businessID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, businessID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, businessID string, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, businessID, accountID, limit, nextToken)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

// MockCostingRepository is a mock for the CostingRepositoryFacade interface.
type MockCostingRepository struct {
	mock.Mock
}

func (m *MockCostingRepository) SaveCategory(ctx context.Context, category domain.CostCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCostingRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.CostCategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCategory), args.Error(1)
}

func (m *MockCostingRepository) ListCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCategory), args.Error(1)
}

func (m *MockCostingRepository) ListRecurringCategories(ctx context.Context, businessID string) ([]domain.CostCategory, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCategory), args.Error(1)
}

func (m *MockCostingRepository) FindCategoryByPurpose(ctx context.Context, businessID string, purpose domain.CategoryPurpose) (*domain.CostCategory, error) {
	args := m.Called(ctx, businessID, purpose)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCategory), args.Error(1)
}

func (m *MockCostingRepository) SaveAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockCostingRepository) UpdateAllocation(ctx context.Context, allocation domain.ProductCostAllocation) error {
	args := m.Called(ctx, allocation)
	return args.Error(0)
}

func (m *MockCostingRepository) FindAllocationByID(ctx context.Context, allocationID string) (*domain.ProductCostAllocation, error) {
	args := m.Called(ctx, allocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductCostAllocation), args.Error(1)
}

func (m *MockCostingRepository) ListAllocationsByProduct(ctx context.Context, productID string) ([]domain.ProductCostAllocation, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductCostAllocation), args.Error(1)
}

func (m *MockCostingRepository) ListAllocationLines(ctx context.Context, tx pgx.Tx, productID string) ([]portsrepo.AllocationLine, error) {
	args := m.Called(ctx, tx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AllocationLine), args.Error(1)
}

func (m *MockCostingRepository) SumPerUnitExcluding(ctx context.Context, productID string, excludeAllocationID string) (decimal.Decimal, error) {
	args := m.Called(ctx, productID, excludeAllocationID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCostingRepository) FindCogsAccountByCategory(ctx context.Context, businessID string, categoryID string) (*domain.CogsAccount, error) {
	args := m.Called(ctx, businessID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CogsAccount), args.Error(1)
}

func (m *MockCostingRepository) ListCogsAccounts(ctx context.Context, businessID string) ([]domain.CogsAccount, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CogsAccount), args.Error(1)
}

func (m *MockCostingRepository) FindCogsAccountForUpdate(ctx context.Context, tx pgx.Tx, businessID string, categoryID string) (*domain.CogsAccount, error) {
	args := m.Called(ctx, tx, businessID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CogsAccount), args.Error(1)
}

func (m *MockCostingRepository) CreditCogsInTx(ctx context.Context, tx pgx.Tx, businessID string, categoryID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, businessID, categoryID, amount, userID, now)
	return args.Error(0)
}

func (m *MockCostingRepository) DebitCogsInTx(ctx context.Context, tx pgx.Tx, cogsAccountID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, cogsAccountID, amount, userID, now)
	return args.Error(0)
}

func (m *MockCostingRepository) SaveAsset(ctx context.Context, asset domain.FixedCostAsset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockCostingRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.FixedCostAsset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedCostAsset), args.Error(1)
}

func (m *MockCostingRepository) ListAssets(ctx context.Context, businessID string) ([]domain.FixedCostAsset, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedCostAsset), args.Error(1)
}

func (m *MockCostingRepository) FindAssetByCategoryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string) (*domain.FixedCostAsset, error) {
	args := m.Called(ctx, tx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedCostAsset), args.Error(1)
}

func (m *MockCostingRepository) AddRecoveredInTx(ctx context.Context, tx pgx.Tx, assetID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, assetID, amount, userID, now)
	return args.Error(0)
}

func (m *MockCostingRepository) ListRecoveriesByCategory(ctx context.Context, categoryID string) ([]domain.MonthlyCostRecovery, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCostRecovery), args.Error(1)
}

func (m *MockCostingRepository) FindRecoveryForUpdate(ctx context.Context, tx pgx.Tx, categoryID string, month string) (*domain.MonthlyCostRecovery, error) {
	args := m.Called(ctx, tx, categoryID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyCostRecovery), args.Error(1)
}

func (m *MockCostingRepository) ApplyRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, amount decimal.Decimal, status domain.RecoveryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, recoveryID, amount, status, userID, now)
	return args.Error(0)
}

func (m *MockCostingRepository) CloseRecoveryInTx(ctx context.Context, tx pgx.Tx, recoveryID string, status domain.RecoveryStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, recoveryID, status, userID, now)
	return args.Error(0)
}

func (m *MockCostingRepository) InsertRecoveryIfAbsentInTx(ctx context.Context, tx pgx.Tx, recovery domain.MonthlyCostRecovery) (bool, error) {
	args := m.Called(ctx, tx, recovery)
	return args.Bool(0), args.Error(1)
}

// MockSaleRepository is a mock for the SaleRepositoryFacade interface.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) InsertSaleInTx(ctx context.Context, tx pgx.Tx, sale domain.Sale) error {
	args := m.Called(ctx, tx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleStatusInTx(ctx context.Context, tx pgx.Tx, saleID string, status domain.SaleStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, saleID, status, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, businessID string, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, businessID, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByBusiness(ctx context.Context, businessID string, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListSalesByCustomer(ctx context.Context, businessID string, customerID string, limit int, offset int) ([]domain.Sale, error) {
	args := m.Called(ctx, businessID, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) InsertDebitAccountInTx(ctx context.Context, tx pgx.Tx, debit domain.DebitAccount) error {
	args := m.Called(ctx, tx, debit)
	return args.Error(0)
}

func (m *MockSaleRepository) FindDebitAccountBySaleForUpdate(ctx context.Context, tx pgx.Tx, saleID string) (*domain.DebitAccount, error) {
	args := m.Called(ctx, tx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DebitAccount), args.Error(1)
}

func (m *MockSaleRepository) ApplyRepaymentInTx(ctx context.Context, tx pgx.Tx, debitAccountID string, amount decimal.Decimal, status domain.DebitAccountStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, debitAccountID, amount, status, userID, now)
	return args.Error(0)
}

func (m *MockSaleRepository) ListDebitAccounts(ctx context.Context, businessID string, runningOnly bool) ([]domain.DebitAccount, error) {
	args := m.Called(ctx, businessID, runningOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DebitAccount), args.Error(1)
}

// MockCustomerRepository is a mock for the CustomerRepositoryFacade interface.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, businessID string, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, businessID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, businessID string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindPurchaseHistory(ctx context.Context, customerID string) (*domain.CustomerPurchaseHistory, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerPurchaseHistory), args.Error(1)
}

func (m *MockCustomerRepository) ApplyPurchaseInTx(ctx context.Context, tx pgx.Tx, customerID string, purchaseDelta decimal.Decimal, creditDelta decimal.Decimal, purchasedAt *time.Time) error {
	args := m.Called(ctx, tx, customerID, purchaseDelta, creditDelta, purchasedAt)
	return args.Error(0)
}

// MockProductRepository is a mock for the ProductRepositoryFacade interface.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, businessID string, productID string) (*domain.Product, error) {
	args := m.Called(ctx, businessID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, businessID string, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, businessID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindProductForUpdate(ctx context.Context, tx pgx.Tx, businessID string, productID string) (*domain.Product, error) {
	args := m.Called(ctx, tx, businessID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, productID, delta, userID, now)
	return args.Error(0)
}

// MockTeamRepository is a mock for the TeamRepositoryFacade interface.
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) SaveMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) UpdateMember(ctx context.Context, member domain.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockTeamRepository) FindMemberByID(ctx context.Context, businessID string, memberID string) (*domain.TeamMember, error) {
	args := m.Called(ctx, businessID, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) ListMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) ListActiveSalariedMembers(ctx context.Context, businessID string) ([]domain.TeamMember, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}

func (m *MockTeamRepository) FindTeamAccount(ctx context.Context, memberID string) (*domain.TeamAccount, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeamAccount), args.Error(1)
}

func (m *MockTeamRepository) AdjustTeamBalanceInTx(ctx context.Context, tx pgx.Tx, memberID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, memberID, delta, userID, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTeamRepository) HasSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, memberID string, month string) (bool, error) {
	args := m.Called(ctx, tx, memberID, month)
	return args.Bool(0), args.Error(1)
}

func (m *MockTeamRepository) InsertSalaryTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.SalaryTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockTeamRepository) ListSalaryTransactionsByMember(ctx context.Context, memberID string) ([]domain.SalaryTransaction, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalaryTransaction), args.Error(1)
}

// MockBusinessRepository is a mock for the BusinessRepositoryFacade interface.
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) SaveBusiness(ctx context.Context, business domain.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) SaveBusinessInTx(ctx context.Context, tx pgx.Tx, business domain.Business) error {
	args := m.Called(ctx, tx, business)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindBusinessByID(ctx context.Context, businessID string) (*domain.Business, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *MockBusinessRepository) SaveRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockBusinessRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

func (m *MockBusinessRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockBusinessRepository) ListRoles(ctx context.Context, businessID string) ([]domain.Role, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

// MockUserRepository is a mock for the UserRepositoryFacade interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) AssignBusiness(ctx context.Context, userID string, businessID string, roleID *string) error {
	args := m.Called(ctx, userID, businessID, roleID)
	return args.Error(0)
}

func (m *MockUserRepository) AssignBusinessInTx(ctx context.Context, tx pgx.Tx, userID string, businessID string, roleID *string) error {
	args := m.Called(ctx, tx, userID, businessID, roleID)
	return args.Error(0)
}

// MockCostAllocator is a mock for the CostAllocator interface.
type MockCostAllocator struct {
	mock.Mock
}

func (m *MockCostAllocator) AllocateInTx(ctx context.Context, tx pgx.Tx, businessID string, productID string, quantity decimal.Decimal, userID string, now time.Time) (portssvc.AllocationResult, error) {
	args := m.Called(ctx, tx, businessID, productID, quantity, userID, now)
	return args.Get(0).(portssvc.AllocationResult), args.Error(1)
}

// decEq matches a decimal argument by value rather than representation, so
// "20" matches the result of 10 * 2 regardless of exponent.
func decEq(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}

// newMockProvider bundles fresh mocks into a repository provider.
func newMockProvider() (*portsrepo.RepositoryProvider, *mockSet) {
	set := &mockSet{
		accountRepo:  new(MockAccountRepository),
		txnRepo:      new(MockTransactionRepository),
		costingRepo:  new(MockCostingRepository),
		saleRepo:     new(MockSaleRepository),
		customerRepo: new(MockCustomerRepository),
		productRepo:  new(MockProductRepository),
		teamRepo:     new(MockTeamRepository),
		businessRepo: new(MockBusinessRepository),
		userRepo:     new(MockUserRepository),
	}
	provider := &portsrepo.RepositoryProvider{
		TxManager:    &fakeTxManager{},
		AccountRepo:  set.accountRepo,
		TxnRepo:      set.txnRepo,
		CostingRepo:  set.costingRepo,
		SaleRepo:     set.saleRepo,
		CustomerRepo: set.customerRepo,
		ProductRepo:  set.productRepo,
		TeamRepo:     set.teamRepo,
		BusinessRepo: set.businessRepo,
		UserRepo:     set.userRepo,
	}
	return provider, set
}

type mockSet struct {
	accountRepo  *MockAccountRepository
	txnRepo      *MockTransactionRepository
	costingRepo  *MockCostingRepository
	saleRepo     *MockSaleRepository
	customerRepo *MockCustomerRepository
	productRepo  *MockProductRepository
	teamRepo     *MockTeamRepository
	businessRepo *MockBusinessRepository
	userRepo     *MockUserRepository
}
