package domain

// Business is the tenant root. Every other entity is owned, directly or via a
// join row, by exactly one business.
type Business struct {
	BusinessID   string `json:"businessID"`   // Primary Key (UUID)
	Name         string `json:"name"`         // User-defined name
	CurrencyCode string `json:"currencyCode"` // e.g. "USD"
	OwnerUserID  string `json:"ownerUserID"`  // FK -> users.user_id; owner bypasses the permission gate
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// Role is a named permission set within a business. The owner does not need a
// role; every other member must hold exactly one.
type Role struct {
	RoleID      string   `json:"roleID"`
	BusinessID  string   `json:"businessID"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"` // permission keys, e.g. "sales:create"
	AuditFields
}

// Well-known permission keys checked by the handler layer before any workflow call.
const (
	PermSalesCreate    = "sales:create"
	PermSalesPayment   = "sales:payment"
	PermExpenseCreate  = "expense:create"
	PermTransferCreate = "transfer:create"
	PermCogsPayout     = "cogs:payout"
	PermPayrollManage  = "payroll:manage"
	PermCostingManage  = "costing:manage"
	PermAccountsManage = "accounts:manage"
	PermCatalogManage  = "catalog:manage"
)
