// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/finwise/backend/internal/domain/entity"
)

// RegisterRequest represents the register endpoint request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login endpoint request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents a successful register or login.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// ToUserResponse converts a user entity to its response DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Plan:      string(user.Plan),
		CreatedAt: user.CreatedAt,
	}
}
