// Package geometry provides the point, rectangle and transform types shared
// by the grid model and the page layout.
package geometry

import (
	"math"
)

// Point2D is a point in display or page space.
type Point2D struct {
	X, Y float64
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Round returns the point rounded to the nearest integer pixel.
func (p Point2D) Round() PointInt {
	return PointInt{X: int(math.Round(p.X)), Y: int(math.Round(p.Y))}
}

// PointInt is a pixel position in the source image.
type PointInt struct {
	X, Y int
}

// Rect is a rectangle in page points.
// Page layout uses it with a bottom-left origin, fpdf with top-left.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// FlipY mirrors the rectangle vertically inside a frame of the given height,
// converting between bottom-left and top-left origins.
func (r Rect) FlipY(frameHeight float64) Rect {
	return Rect{X: r.X, Y: frameHeight - r.Y - r.Height, Width: r.Width, Height: r.Height}
}

// Fit returns the largest rectangle with the aspect ratio of size that fits
// inside r, centered in r.
func (r Rect) Fit(size Size) Rect {
	if size.Width <= 0 || size.Height <= 0 || r.Width <= 0 || r.Height <= 0 {
		return Rect{X: r.X, Y: r.Y}
	}
	scale := math.Min(r.Width/size.Width, r.Height/size.Height)
	w := size.Width * scale
	h := size.Height * scale
	return Rect{
		X:      r.X + (r.Width-w)/2,
		Y:      r.Y + (r.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// AffineTransform represents a 2x3 affine transformation matrix.
// [a b tx]
// [c d ty]
type AffineTransform struct {
	A, B, TX float64
	C, D, TY float64
}

// Scale returns a scaling transform.
func Scale(sx, sy float64) AffineTransform {
	return AffineTransform{A: sx, D: sy}
}

// Apply applies the transform to a point.
func (t AffineTransform) Apply(p Point2D) Point2D {
	return Point2D{
		X: t.A*p.X + t.B*p.Y + t.TX,
		Y: t.C*p.X + t.D*p.Y + t.TY,
	}
}

// Size is a width and height in pixels or points.
type Size struct {
	Width, Height float64
}

// NewSize creates a new Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}
