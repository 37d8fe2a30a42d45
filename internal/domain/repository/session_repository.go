package repository

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrSessionNotFound is returned when a token digest is not in the user's active list.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps the active session list of each user.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.SessionToken) error

	// FindByUserAndHash returns ErrSessionNotFound when the digest is not active for the user.
	FindByUserAndHash(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.SessionToken, error)

	// DeleteByUserAndHash ends exactly one session.
	DeleteByUserAndHash(ctx context.Context, userID uuid.UUID, tokenHash string) error

	// DeleteByUser ends every session of the user.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}
