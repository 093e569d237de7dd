package dto

import (
	"time"

	"github.com/splitsum/splitsum_app/internal/core/domain"
)

// --- User / auth DTOs ---

// RegisterRequest defines data for creating an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=3"`
}

// LoginRequest defines the credential check payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token for subsequent requests.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// UserResponse defines data returned for an account.
type UserResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUserResponse converts domain.User to DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
