package handlers

import (
	"github.com/bizbookhq/bizbook_backend/internal/core/domain"
	portssvc "github.com/bizbookhq/bizbook_backend/internal/core/ports/services"
	"github.com/bizbookhq/bizbook_backend/internal/middleware"
	"github.com/bizbookhq/bizbook_backend/internal/platform/config"
	"github.com/bizbookhq/bizbook_backend/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerCustomValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerAuthRoutes(r, services)
	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// registerCustomValidators binds the "monthkey" validation tag used by
// payroll payloads.
func registerCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("monthkey", func(fl validator.FieldLevel) bool {
			return utils.IsMonthKey(fl.Field().String())
		})
	}
}

// registerAuthRoutes sets up the public authentication routes. Login is
// rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	h := NewUserHandler(services.User, services.Token)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", limitMiddleware, h.Register)
	}
}

// setupAPIV1Routes configures the authenticated /api/v1 group. Routes that
// operate on a business additionally pass through BusinessResolver and a
// per-route permission gate.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	userHandler := NewUserHandler(services.User, services.Token)
	businessHandler := NewBusinessHandler(services.Business)

	// Routes available before the user belongs to a business.
	v1.GET("/users/me", userHandler.Me)
	v1.POST("/businesses", businessHandler.CreateBusiness)

	// Everything below requires a resolved business.
	biz := v1.Group("", middleware.BusinessResolver(services.User))

	perm := func(key string) gin.HandlerFunc {
		return middleware.RequirePermission(services.Business, key)
	}

	biz.GET("/businesses/me", businessHandler.GetBusiness)
	biz.POST("/roles", perm(domain.PermAccountsManage), businessHandler.CreateRole)
	biz.GET("/roles", businessHandler.ListRoles)

	accountHandler := NewAccountHandler(services.Account)
	biz.POST("/accounts", perm(domain.PermAccountsManage), accountHandler.CreateAccount)
	biz.GET("/accounts", accountHandler.ListAccounts)
	biz.GET("/accounts/:accountID", accountHandler.GetAccount)
	biz.GET("/accounts/:accountID/balance", accountHandler.GetBalance)
	biz.PUT("/accounts/:accountID", perm(domain.PermAccountsManage), accountHandler.UpdateAccount)
	biz.DELETE("/accounts/:accountID", perm(domain.PermAccountsManage), accountHandler.DeactivateAccount)

	ledgerHandler := NewLedgerHandler(services.Ledger)
	biz.POST("/transactions/expense", perm(domain.PermExpenseCreate), ledgerHandler.AddExpense)
	biz.POST("/transactions/transfer", perm(domain.PermTransferCreate), ledgerHandler.Transfer)
	biz.GET("/transactions", ledgerHandler.ListTransactions)
	biz.GET("/transactions/:transactionID", ledgerHandler.GetTransaction)
	biz.GET("/accounts/:accountID/transactions", ledgerHandler.ListAccountTransactions)

	costingHandler := NewCostingHandler(services.Costing)
	biz.POST("/cost-categories", perm(domain.PermCostingManage), costingHandler.CreateCategory)
	biz.GET("/cost-categories", costingHandler.ListCategories)
	biz.POST("/cost-allocations", perm(domain.PermCostingManage), costingHandler.CreateAllocation)
	biz.PUT("/cost-allocations/:allocationID", perm(domain.PermCostingManage), costingHandler.UpdateAllocation)
	biz.GET("/cost-allocations", costingHandler.ListAllocations)
	biz.POST("/assets", perm(domain.PermCostingManage), costingHandler.CreateAsset)
	biz.GET("/assets", costingHandler.ListAssets)
	biz.GET("/cogs-accounts", costingHandler.ListCogsAccounts)
	biz.POST("/cogs-accounts/payout", perm(domain.PermCogsPayout), costingHandler.PayoutCogs)

	saleHandler := NewSaleHandler(services.Sale)
	biz.POST("/sales", perm(domain.PermSalesCreate), saleHandler.CreateSale)
	biz.GET("/sales", saleHandler.ListSales)
	biz.GET("/sales/:saleID", saleHandler.GetSale)
	biz.POST("/sales/:saleID/payments", perm(domain.PermSalesPayment), saleHandler.RecordPayment)
	biz.GET("/receivables", saleHandler.ListReceivables)

	payrollHandler := NewPayrollHandler(services.Payroll)
	biz.POST("/payroll/distribute", perm(domain.PermPayrollManage), payrollHandler.DistributeSalary)
	biz.POST("/payroll/payout", perm(domain.PermPayrollManage), payrollHandler.PayoutSalary)
	biz.POST("/payroll/auto-distribute", perm(domain.PermPayrollManage), payrollHandler.AutoDistribute)
	biz.POST("/team/members", perm(domain.PermPayrollManage), payrollHandler.CreateMember)
	biz.PUT("/team/members/:memberID", perm(domain.PermPayrollManage), payrollHandler.UpdateMember)
	biz.GET("/team/members", payrollHandler.ListMembers)
	biz.GET("/team/members/:memberID/account", payrollHandler.GetMemberAccount)

	recoveryHandler := NewRecoveryHandler(services.Recovery)
	biz.POST("/recoveries/transition", perm(domain.PermCostingManage), recoveryHandler.TransitionMonth)
	biz.GET("/recoveries", recoveryHandler.ListRecoveries)

	productHandler := NewProductHandler(services.Product)
	biz.POST("/products", perm(domain.PermCatalogManage), productHandler.CreateProduct)
	biz.PUT("/products/:productID", perm(domain.PermCatalogManage), productHandler.UpdateProduct)
	biz.GET("/products", productHandler.ListProducts)
	biz.GET("/products/:productID", productHandler.GetProduct)

	customerHandler := NewCustomerHandler(services.Customer)
	biz.POST("/customers", perm(domain.PermCatalogManage), customerHandler.CreateCustomer)
	biz.GET("/customers", customerHandler.ListCustomers)
	biz.GET("/customers/:customerID", customerHandler.GetCustomer)
	biz.GET("/customers/:customerID/purchase-history", customerHandler.GetPurchaseHistory)
}

// setupSwaggerRoutes serves API docs outside production.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
