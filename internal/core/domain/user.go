package domain

// User represents an application user. Each user belongs to at most one
// business; the business is resolved into the request context by middleware.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`          // bcrypt hash, never serialized
	BusinessID   *string `json:"businessID"` // nil until the user creates or joins a business
	RoleID       *string `json:"roleID"`     // nil for business owners
	IsActive     bool    `json:"isActive"`
	AuditFields
}
