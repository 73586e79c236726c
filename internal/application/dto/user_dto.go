package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// RegisterUserRequest is the input DTO for creating a user account.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the output DTO for user data. It never carries credentials.
type UserResponse struct {
	CreatedAt time.Time `json:"created_at"`
	Email     string    `json:"email"`
	ID        uuid.UUID `json:"id"`
	Active    bool      `json:"is_active"`
}

// AuthenticateRequest is the input DTO for the token endpoint.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the output DTO for a successful authentication.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserFromModel maps a domain model to the response DTO.
func UserFromModel(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID(),
		Email:     u.Email(),
		Active:    u.Active(),
		CreatedAt: u.CreatedAt(),
	}
}
