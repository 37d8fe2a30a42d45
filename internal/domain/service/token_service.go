package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the claims carried by a session token.
type Claims struct {
	UserID  uuid.UUID
	TokenID uuid.UUID
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
type TokenService interface {
	// GenerateToken signs a new session token for the user.
	GenerateToken(userID uuid.UUID) (string, error)

	// ValidateToken verifies signature, algorithm and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)

	// HashToken returns the digest under which a raw token is stored.
	HashToken(tokenString string) string
}
