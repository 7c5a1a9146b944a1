package grid

import (
	"fmt"
	"image"
	"math"

	"calgrid/pkg/geometry"
)

// Rect is a cell rectangle in display space.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.X2 - r.X1 }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Y2 - r.Y1 }

// Center returns the center point.
func (r Rect) Center() geometry.Point2D {
	return geometry.Point2D{X: (r.X1 + r.X2) / 2, Y: (r.Y1 + r.Y2) / 2}
}

// DisplayTransform maps display coordinates back to source pixels.
//
// Scale is the factor the source image was multiplied by for display
// (0 < Scale <= 1 when downscaled). Padding, in source pixels, shrinks every
// cell inward on all four sides.
type DisplayTransform struct {
	Scale   float64
	Padding int
}

// NewDisplayTransform creates a transform; a non-positive scale means the
// image is displayed at full size.
func NewDisplayTransform(scale float64, padding int) DisplayTransform {
	if scale <= 0 {
		scale = 1
	}
	return DisplayTransform{Scale: scale, Padding: padding}
}

func (t DisplayTransform) affine() geometry.AffineTransform {
	s := t.Scale
	if s <= 0 {
		s = 1
	}
	return geometry.Scale(1/s, 1/s)
}

// ToSourcePoint maps a display position to the nearest source pixel,
// without padding.
func (t DisplayTransform) ToSourcePoint(p geometry.Point2D) geometry.PointInt {
	return t.affine().Apply(p).Round()
}

// ToSource maps a display cell rectangle to a source pixel rectangle with
// padding applied to each side. A result with no positive width or height
// returns ErrDegenerateCell.
func (t DisplayTransform) ToSource(r Rect) (image.Rectangle, error) {
	lo := t.ToSourcePoint(geometry.Point2D{X: r.X1, Y: r.Y1})
	hi := t.ToSourcePoint(geometry.Point2D{X: r.X2, Y: r.Y2})

	x1, y1 := lo.X+t.Padding, lo.Y+t.Padding
	x2, y2 := hi.X-t.Padding, hi.Y-t.Padding
	if x2 <= x1 || y2 <= y1 {
		return image.Rectangle{}, fmt.Errorf("%w: (%d,%d)-(%d,%d) after padding %d",
			ErrDegenerateCell, x1, y1, x2, y2, t.Padding)
	}
	// image.Rect would silently swap inverted corners.
	return image.Rectangle{Min: image.Pt(x1, y1), Max: image.Pt(x2, y2)}, nil
}

// FitScale returns the factor that shrinks a width x height image to fit in
// maxWidth x maxHeight, or 1 if it already fits. Non-positive limits are
// treated as unlimited.
func FitScale(width, height, maxWidth, maxHeight int) float64 {
	scale := 1.0
	if maxWidth > 0 && width > maxWidth {
		scale = math.Min(scale, float64(maxWidth)/float64(width))
	}
	if maxHeight > 0 && height > maxHeight {
		scale = math.Min(scale, float64(maxHeight)/float64(height))
	}
	return scale
}
