package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// AvatarUpload is a file received for a user's avatar.
type AvatarUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// AvatarUsecase manages the profile picture of a user.
type AvatarUsecase interface {
	// Upload checks size and extension before any decoding, then stores a 250x250 PNG.
	Upload(ctx context.Context, userID uuid.UUID, upload *AvatarUpload) error
	Remove(ctx context.Context, userID uuid.UUID) error
	// Get returns the PNG bytes, or ErrAvatarNotFound.
	Get(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
