// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdatableUserFields are the only keys a profile update may carry.
var UpdatableUserFields = []string{"name", "email", "password", "age"}

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Age      int
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput carries the fields present in a profile update; nil means untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
}

// --- Output DTOs ---

// AuthOutput returns the user together with a freshly issued session token.
type AuthOutput struct {
	User  *entity.User
	Token string
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
