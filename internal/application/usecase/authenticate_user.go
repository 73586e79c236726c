package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
	"github.com/thiagodifaria/Begriff/pkg/auth"
)

// ErrInvalidCredentials is returned for any authentication failure. The cause
// is never disclosed to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthenticateUser is the use case for exchanging credentials for an access
// token.
type AuthenticateUser struct {
	repo port.UserRepository
	jwt  *auth.JWTService
}

// NewAuthenticateUser creates a new AuthenticateUser use case.
func NewAuthenticateUser(repo port.UserRepository, jwt *auth.JWTService) *AuthenticateUser {
	return &AuthenticateUser{repo: repo, jwt: jwt}
}

// Execute verifies the credentials and issues a bearer token.
func (uc *AuthenticateUser) Execute(ctx context.Context, req dto.AuthenticateRequest) (dto.TokenResponse, error) {
	user, err := uc.repo.FindByEmail(ctx, req.Email)
	if err != nil || user == nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}
	if !user.Active() {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash()), []byte(req.Password)); err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := uc.jwt.GenerateToken(user.ID(), user.Email(), []string{auth.RoleCustomer})
	if err != nil {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	return dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}
