package models

// Business is the DB row shape for the businesses table.
type Business struct {
	BusinessID   string `db:"business_id"`
	Name         string `db:"name"`
	CurrencyCode string `db:"currency_code"`
	OwnerUserID  string `db:"owner_user_id"`
	IsActive     bool   `db:"is_active"`
	AuditFields
}

// Role is the DB row shape for the roles table. Permissions are stored as a
// text array.
type Role struct {
	RoleID      string   `db:"role_id"`
	BusinessID  string   `db:"business_id"`
	Name        string   `db:"name"`
	Permissions []string `db:"permissions"`
	AuditFields
}
