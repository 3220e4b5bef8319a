package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager    TransactionManager
	AccountRepo  AccountRepositoryFacade
	TxnRepo      TransactionRepositoryFacade
	CostingRepo  CostingRepositoryFacade
	SaleRepo     SaleRepositoryFacade
	CustomerRepo CustomerRepositoryFacade
	ProductRepo  ProductRepositoryFacade
	TeamRepo     TeamRepositoryFacade
	BusinessRepo BusinessRepositoryFacade
	UserRepo     UserRepositoryFacade
}
