// Package layout positions cells on an output page.
//
// Page coordinates are in points with the origin at the bottom-left corner,
// as in PDF user space.
package layout

import (
	"fmt"
	"strings"

	"calgrid/internal/grid"
	"calgrid/pkg/geometry"
)

// PageSize represents standard page dimensions in points.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Standard page sizes in points
var (
	Letter = PageSize{Name: "letter", Width: 612, Height: 792}
	A4     = PageSize{Name: "a4", Width: 595.2756, Height: 841.8898}
)

// PageSizeNames lists the accepted page size names.
func PageSizeNames() []string {
	return []string{Letter.Name, A4.Name}
}

// ParsePageSize looks up a standard page size by name, case-insensitively.
func ParsePageSize(name string) (PageSize, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Letter.Name:
		return Letter, nil
	case A4.Name:
		return A4, nil
	default:
		return PageSize{}, fmt.Errorf("unknown page size %q (want one of %s)",
			name, strings.Join(PageSizeNames(), ", "))
	}
}

// Page is a page divided into uniform cell boxes.
type Page struct {
	Width      float64
	Height     float64
	Spec       grid.Spec
	CellWidth  float64
	CellHeight float64
}

// NewPage lays out spec on a width x height page. Margins are in points.
func NewPage(width, height float64, spec grid.Spec) (*Page, error) {
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d grid", grid.ErrInvalidGridSpec, spec.Rows, spec.Cols)
	}
	uw := width - 2*float64(spec.MarginSides)
	uh := height - float64(spec.MarginTop) - float64(spec.MarginBottom)
	if uw <= 0 || uh <= 0 {
		return nil, fmt.Errorf("%w: usable page area %.1fx%.1f", grid.ErrInvalidGridSpec, uw, uh)
	}
	return &Page{
		Width:      width,
		Height:     height,
		Spec:       spec,
		CellWidth:  uw / float64(spec.Cols),
		CellHeight: uh / float64(spec.Rows),
	}, nil
}

// NewStandardPage lays out spec on a standard page size.
func NewStandardPage(size PageSize, spec grid.Spec) (*Page, error) {
	return NewPage(size.Width, size.Height, spec)
}

// Placement is the box a cell occupies on the page.
type Placement struct {
	Index int
	Row   int
	Col   int
	Box   geometry.Rect
}

// LayerName returns the name of the document layer holding this cell.
func (p Placement) LayerName() string {
	return fmt.Sprintf("Cell_%d_%d", p.Row+1, p.Col+1)
}

// Place returns the box for cell idx. Row 0 is the top row: its box sits
// directly under the page height less the bottom margin.
func (p *Page) Place(idx int) Placement {
	row, col := grid.RowCol(idx, p.Spec.Cols)
	x := float64(p.Spec.MarginSides) + float64(col)*p.CellWidth
	y := p.Height - float64(p.Spec.MarginBottom) - float64(row+1)*p.CellHeight
	return Placement{
		Index: idx,
		Row:   row,
		Col:   col,
		Box:   geometry.NewRect(x, y, p.CellWidth, p.CellHeight),
	}
}

// Placements returns the boxes of all cells in row-major order.
func (p *Page) Placements() []Placement {
	out := make([]Placement, p.Spec.Cells())
	for i := range out {
		out[i] = p.Place(i)
	}
	return out
}
