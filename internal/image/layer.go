// Package image provides source image loading, cell cropping and compositing.
package image

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"calgrid/internal/grid"
	"calgrid/pkg/geometry"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/tiff"
)

var (
	// ErrMissingInput is returned when the source image path does not exist.
	ErrMissingInput = errors.New("input file not found")
	// ErrUnsupportedFormat is returned for files without an image extension.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Layer is a loaded source image. The pixel data is read-only after Load.
type Layer struct {
	Path  string      // Original file path
	Image image.Image // Decoded image data
}

// NewLayer wraps an already decoded image.
func NewLayer(img image.Image) *Layer {
	return &Layer{Image: img}
}

// Load loads an image from the specified path and returns a Layer.
// EXIF orientation is applied so phone photos come out upright.
func Load(path string) (*Layer, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat,
			filepath.Base(path), strings.Join(SupportedFormats(), ", "))
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	layer := NewLayer(img)
	layer.Path = path
	return layer, nil
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (l *Layer) Size() geometry.Size {
	return geometry.Size{
		Width:  float64(l.Width()),
		Height: float64(l.Height()),
	}
}

// Stem returns the file name without directory or extension.
func (l *Layer) Stem() string {
	base := filepath.Base(l.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Crop copies the pixels inside r, given relative to the image origin.
// Parts of r outside the image are dropped; a rectangle with nothing left
// returns grid.ErrDegenerateCell.
func (l *Layer) Crop(r image.Rectangle) (image.Image, error) {
	if l.Image == nil {
		return nil, fmt.Errorf("crop %v: no image loaded", r)
	}
	bounds := l.Image.Bounds()
	abs := r.Add(bounds.Min)
	if abs.Intersect(bounds).Empty() {
		return nil, fmt.Errorf("%w: %v outside %dx%d image", grid.ErrDegenerateCell, r, bounds.Dx(), bounds.Dy())
	}
	return imaging.Crop(l.Image, abs), nil
}

// Scaled returns the image resampled by factor with a Lanczos filter. A
// factor of 1 or more returns the original image.
func (l *Layer) Scaled(factor float64) image.Image {
	if factor >= 1 || factor <= 0 || l.Image == nil {
		return l.Image
	}
	w := max(1, int(float64(l.Width())*factor))
	h := max(1, int(float64(l.Height())*factor))
	return imaging.Resize(l.Image, w, h, imaging.Lanczos)
}

// Save encodes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg", ".gif", ".bmp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
