package services

import (
	"time"

	portsrepo "github.com/bizbookhq/bizbook_backend/internal/core/ports/repositories"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/platform/cache"
)

// ContainerConfig carries the non-repository dependencies of the service layer.
type ContainerConfig struct {
	JWTSecret    string
	JWTIssuer    string
	JWTExpiry    time.Duration
	PermCacheTTL time.Duration
}

// NewServiceContainer wires all services over the repository provider. The
// costing service is built first because the sale service consumes it as the
// cost allocator.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg ContainerConfig) *portssvc.ServiceContainer {
	costingSvc := NewCostingService(repos)
	permCache := cache.NewTTLCache[string, []string](nil)

	return &portssvc.ServiceContainer{
		Account:  NewAccountService(repos),
		Ledger:   NewLedgerService(repos),
		Costing:  costingSvc,
		Sale:     NewSaleService(repos, costingSvc),
		Payroll:  NewPayrollService(repos),
		Recovery: NewRecoveryService(repos),
		Business: NewBusinessService(repos, permCache, cfg.PermCacheTTL),
		User:     NewUserService(repos),
		Token:    NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiry),
		Product:  NewProductService(repos),
		Customer: NewCustomerService(repos),
	}
}
