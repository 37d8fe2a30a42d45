package usecase

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase resolves bearer tokens and ends sessions.
type SessionUsecase interface {
	// Authenticate returns the owner of an active token, or ErrUnauthenticated.
	Authenticate(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, userID uuid.UUID, token string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}
