package service

import "io"

// ImageProcessor turns an uploaded picture into a stored avatar.
type ImageProcessor interface {
	// Thumbnail decodes src, resizes it to the avatar dimensions and returns PNG bytes.
	Thumbnail(src io.Reader) ([]byte, error)
}
