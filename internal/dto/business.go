package dto

import "github.com/bizbookhq/bizbook_backend/internal/core/domain"

// CreateBusinessRequest is the payload for business setup.
type CreateBusinessRequest struct {
	Name         string `json:"name" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// CreateRoleRequest is the payload for defining a role.
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

// BusinessResponse is the API representation of a business.
type BusinessResponse struct {
	BusinessID   string `json:"businessID"`
	Name         string `json:"name"`
	CurrencyCode string `json:"currencyCode"`
	OwnerUserID  string `json:"ownerUserID"`
}

// ToBusinessResponse maps a domain business to its API representation.
func ToBusinessResponse(b *domain.Business) BusinessResponse {
	return BusinessResponse{
		BusinessID:   b.BusinessID,
		Name:         b.Name,
		CurrencyCode: b.CurrencyCode,
		OwnerUserID:  b.OwnerUserID,
	}
}

// RoleResponse is the API representation of a role.
type RoleResponse struct {
	RoleID      string   `json:"roleID"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// ToRoleResponse maps a domain role to its API representation.
func ToRoleResponse(r *domain.Role) RoleResponse {
	return RoleResponse{
		RoleID:      r.RoleID,
		Name:        r.Name,
		Permissions: r.Permissions,
	}
}
