// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. It owns tasks and any number of active sessions.
type User struct {
	ID           uuid.UUID // System-generated, immutable identifier.
	Name         string    // Display name, trimmed and non-empty.
	Email        string    // Login identifier, lower-cased and unique across users.
	Password     string    // Plaintext candidate; only set while a new password travels through the pipeline.
	PasswordHash string    // bcrypt hash of the password.
	Age          int       // Non-negative, defaults to 0.
	Avatar       []byte    // 250x250 PNG, nil when no avatar is set.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasAvatar reports whether the user has a stored avatar image.
func (u *User) HasAvatar() bool {
	return len(u.Avatar) > 0
}
