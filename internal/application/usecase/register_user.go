package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
)

// ErrEmailTaken is returned when registering with an email that already has
// an account.
var ErrEmailTaken = errors.New("email is already registered")

// RegisterUser is the use case for creating a new user account.
type RegisterUser struct {
	repo      port.UserRepository
	publisher port.EventPublisher
}

// NewRegisterUser creates a new RegisterUser use case.
func NewRegisterUser(repo port.UserRepository, publisher port.EventPublisher) *RegisterUser {
	return &RegisterUser{repo: repo, publisher: publisher}
}

// Execute hashes the password, creates the user, persists it and publishes
// the registration event.
func (uc *RegisterUser) Execute(ctx context.Context, req dto.RegisterUserRequest) (dto.UserResponse, error) {
	if len(req.Password) < 8 {
		return dto.UserResponse{}, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := uc.repo.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		return dto.UserResponse{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := model.NewUser(req.Email, string(hash))
	if err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uc.repo.Save(ctx, user); err != nil {
		return dto.UserResponse{}, fmt.Errorf("failed to save user: %w", err)
	}

	events := user.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, toAny(events)...); err != nil {
			return dto.UserResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.UserFromModel(user), nil
}
