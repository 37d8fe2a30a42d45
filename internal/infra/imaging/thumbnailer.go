// Package imaging converts uploaded pictures into fixed-size PNG avatars.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	// Register decoders accepted for avatar uploads.
	_ "image/jpeg"

	"tasker/config"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

const (
	defaultSize = 250
	// maxSourcePixels bounds the decoded size of an upload.
	maxSourcePixels = 25_000_000
)

// thumbnailer resizes to a square using cover semantics: the source is scaled
// to fill the square and the overflow is cropped around the center.
type thumbnailer struct {
	size int
}

// NewThumbnailer builds the avatar ImageProcessor from avatar.size.
func NewThumbnailer(cfg *config.Config) service.ImageProcessor {
	size := defaultSize
	if cfg != nil && cfg.Avatar != nil && cfg.Avatar.Size > 0 {
		size = cfg.Avatar.Size
	}

	return &thumbnailer{size: size}
}

// Thumbnail decodes src and re-encodes it as a size x size PNG.
func (t *thumbnailer) Thumbnail(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read image")
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}
	if header.Width <= 0 || header.Height <= 0 || header.Width > maxSourcePixels/header.Height {
		return nil, errors.WithStack(domainerrors.ErrInvalidAvatar.WithDetails(
			fmt.Sprintf("Image dimensions %dx%d exceed the pixel limit", header.Width, header.Height)))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, t.size, t.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, coverRect(img.Bounds()), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, errors.Wrap(err, "failed to encode png")
	}

	return buf.Bytes(), nil
}

// coverRect returns the largest centered square inside bounds.
func coverRect(bounds image.Rectangle) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	side := min(w, h)
	x0 := bounds.Min.X + (w-side)/2
	y0 := bounds.Min.Y + (h-side)/2

	return image.Rect(x0, y0, x0+side, y0+side)
}
