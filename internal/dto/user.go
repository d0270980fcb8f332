package dto

import (
	"time"

	"github.com/SscSPs/easyledger/internal/core/domain"
)

// LoginRequest is the body of a password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CreateUserRequest is used by the admin CLI to provision local accounts.
type CreateUserRequest struct {
	Email    string
	Name     string
	Password string
	Role     domain.UserRole
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID        string              `json:"userID"`
	Email         string              `json:"email"`
	Name          string              `json:"name"`
	Role          domain.UserRole     `json:"role"`
	AuthProvider  domain.AuthProvider `json:"authProvider"`
	EmailVerified bool                `json:"emailVerified"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		AuthProvider:  u.AuthProvider,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}
