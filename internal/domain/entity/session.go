package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is one active login of a user.
// Only a SHA-256 digest of the raw bearer token is kept.
type SessionToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
}
