package dto

import "github.com/bizbookhq/bizbook_backend/internal/core/domain"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID     string  `json:"userID"`
	Username   string  `json:"username"`
	Name       string  `json:"name"`
	BusinessID *string `json:"businessID,omitempty"`
	RoleID     *string `json:"roleID,omitempty"`
}

// ToUserResponse maps a domain user to its API representation.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Username:   u.Username,
		Name:       u.Name,
		BusinessID: u.BusinessID,
		RoleID:     u.RoleID,
	}
}
