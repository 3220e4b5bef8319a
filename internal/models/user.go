package models

// User is the DB row shape for the users table.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	Name         string  `db:"name"`
	PasswordHash string  `db:"password_hash"`
	BusinessID   *string `db:"business_id"`
	RoleID       *string `db:"role_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}
