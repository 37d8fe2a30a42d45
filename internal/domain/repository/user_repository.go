// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user. An email collision yields errors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// Update saves profile fields (name, email, password hash, age).
	// An email collision yields errors.ErrUserAlreadyExists.
	Update(ctx context.Context, user *entity.User) error

	// UpdateAvatar replaces the avatar bytes; nil clears it.
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatar []byte) error

	// Delete removes the user row.
	Delete(ctx context.Context, id uuid.UUID) error
}
