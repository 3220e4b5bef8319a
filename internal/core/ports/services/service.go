package services

// ServiceContainer holds all service facades for dependency injection into
// the handler layer.
type ServiceContainer struct {
	Account  AccountSvcFacade
	Ledger   LedgerSvcFacade
	Costing  CostingSvcFacade
	Sale     SaleSvcFacade
	Payroll  PayrollSvcFacade
	Recovery RecoverySvcFacade
	Business BusinessSvcFacade
	User     UserSvcFacade
	Token    TokenSvcFacade
	Product  ProductSvcFacade
	Customer CustomerSvcFacade
}
