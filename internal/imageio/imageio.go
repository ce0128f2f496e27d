// Package imageio decodes, scales and encodes rendered map images.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	WebP Format = "webp"
)

// DefaultQuality is used by lossy encoders when quality is not set.
const DefaultQuality = 85

var ErrUnsupportedFormat = errors.New("unsupported image format")

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "", "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "webp":
		return WebP, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case JPEG:
		return "image/jpeg"
	case WebP:
		return "image/webp"
	default:
		return "image/png"
	}
}

// Encode writes img to w. Quality applies to JPEG and WebP only.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	switch format {
	case PNG, "":
		return png.Encode(w, img)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	case WebP:
		return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: float32(quality)})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Bytes encodes img into memory.
func Bytes(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img to path in the format named by its extension, creating
// parent directories as needed.
func Save(path string, img image.Image, quality int) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, img, format, quality); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Str("format", string(format)).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("Image saved")

	return f.Close()
}

// Decode reads any registered format: png, jpeg, gif, bmp, tiff, webp.
func Decode(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode failed: %w", err)
	}
	return img, format, nil
}

// Load decodes the image stored at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := Decode(f)
	return img, err
}

// Scale resizes img to width keeping the aspect ratio.
// A width of zero or the current width returns img unchanged.
func Scale(img image.Image, width int) image.Image {
	b := img.Bounds()
	if width <= 0 || width == b.Dx() || b.Dx() == 0 {
		return img
	}

	height := b.Dy() * width / b.Dx()
	if height < 1 {
		height = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
