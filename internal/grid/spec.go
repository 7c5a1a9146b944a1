// Package grid implements the calendar grid geometry: uniform partitioning,
// the manually adjusted line model, display/source coordinate mapping,
// cyclic re-indexing and start-cell numbering.
package grid

import "fmt"

// Default grid dimensions for a month calendar.
const (
	DefaultRows = 5
	DefaultCols = 7
)

// Spec describes how an image is divided into Rows x Cols cells.
// Margins are in pixels of the image the grid is laid over.
type Spec struct {
	Rows         int
	Cols         int
	MarginTop    int
	MarginBottom int
	MarginSides  int
}

// NewSpec creates a Spec with the given dimensions and no margins.
func NewSpec(rows, cols int) Spec {
	return Spec{Rows: rows, Cols: cols}
}

// Cells returns the total number of cells.
func (s Spec) Cells() int {
	return s.Rows * s.Cols
}

// Usable returns the area left for cells after the margins are removed.
func (s Spec) Usable(width, height int) (usableWidth, usableHeight int) {
	return width - 2*s.MarginSides, height - s.MarginTop - s.MarginBottom
}

// Validate checks the grid against an image of the given size.
func (s Spec) Validate(width, height int) error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d grid", ErrInvalidGridSpec, s.Rows, s.Cols)
	}
	if s.MarginTop < 0 || s.MarginBottom < 0 || s.MarginSides < 0 {
		return fmt.Errorf("%w: negative margin (top %d, bottom %d, sides %d)",
			ErrInvalidGridSpec, s.MarginTop, s.MarginBottom, s.MarginSides)
	}
	uw, uh := s.Usable(width, height)
	if uw <= 0 || uh <= 0 {
		return fmt.Errorf("%w: usable area %dx%d in %dx%d image",
			ErrInvalidGridSpec, uw, uh, width, height)
	}
	return nil
}

// Index returns the row-major linear index of a cell.
func Index(row, col, cols int) int {
	return row*cols + col
}

// RowCol splits a row-major linear index into row and column.
func RowCol(idx, cols int) (row, col int) {
	return idx / cols, idx % cols
}
