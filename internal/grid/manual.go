package grid

import (
	"fmt"
	"math"
	"sort"
)

// DefaultSelectThreshold is the maximum perpendicular distance, in display
// pixels, at which a pointer press grabs a grid line.
const DefaultSelectThreshold = 10.0

// Orientation is the direction a grid line runs in.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// Line is a draggable grid line. Its pointer identity is stable while it
// moves; its rank among the other lines is not and must be recomputed by
// sorting on position.
type Line struct {
	Orientation Orientation
	Pos         float64
	Index       int
}

// Cell is one slot of a manual grid. Absent cells have no rectangle because
// the current line set cannot bound them.
type Cell struct {
	Index   int
	Row     int
	Col     int
	Rect    Rect
	Present bool
}

// Model holds the manually adjustable grid lines of one editing session.
type Model struct {
	rows, cols      int
	width, height   float64
	vertical        []*Line
	horizontal      []*Line
	startOffset     int
	selectThreshold float64
}

// NewModel creates a model with uniform lines for a canvas of the given size.
func NewModel(rows, cols int, width, height float64) (*Model, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("%w: %d columns", ErrInvalidGridSpec, cols)
	}
	m := &Model{cols: cols, selectThreshold: DefaultSelectThreshold}
	if err := m.Reset(rows, width, height); err != nil {
		return nil, err
	}
	return m, nil
}

// NewModelFromLines creates a model from explicit line positions. The line
// counts need not match rows and cols; cells the lines cannot bound are
// reported absent.
func NewModelFromLines(rows, cols int, width, height float64, vertical, horizontal []float64) *Model {
	m := &Model{
		rows:            rows,
		cols:            cols,
		width:           width,
		height:          height,
		selectThreshold: DefaultSelectThreshold,
	}
	m.vertical = makeLines(Vertical, vertical)
	m.horizontal = makeLines(Horizontal, horizontal)
	return m
}

func makeLines(o Orientation, positions []float64) []*Line {
	lines := make([]*Line, len(positions))
	for i, pos := range positions {
		lines[i] = &Line{Orientation: o, Pos: pos, Index: i}
	}
	return lines
}

// Reset discards all lines, lays out rows+1 horizontal and cols+1 vertical
// lines uniformly over the canvas and resets the start offset to 0.
func (m *Model) Reset(rows int, width, height float64) error {
	if rows <= 0 || m.cols <= 0 {
		return fmt.Errorf("%w: %dx%d grid", ErrInvalidGridSpec, rows, m.cols)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas %.0fx%.0f", ErrInvalidGridSpec, width, height)
	}
	m.rows = rows
	m.width = width
	m.height = height
	m.vertical = makeLines(Vertical, UniformLines(width, m.cols))
	m.horizontal = makeLines(Horizontal, UniformLines(height, rows))
	m.startOffset = 0
	return nil
}

// Rows returns the number of grid rows.
func (m *Model) Rows() int { return m.rows }

// Cols returns the number of grid columns.
func (m *Model) Cols() int { return m.cols }

// Total returns the number of cell slots.
func (m *Model) Total() int { return m.rows * m.cols }

// CanvasSize returns the canvas extent the lines are clamped to.
func (m *Model) CanvasSize() (width, height float64) { return m.width, m.height }

// Lines returns the vertical and horizontal lines in creation order.
func (m *Model) Lines() (vertical, horizontal []*Line) {
	return m.vertical, m.horizontal
}

// SetSelectThreshold changes the grab distance used by LineAt.
func (m *Model) SetSelectThreshold(threshold float64) {
	if threshold > 0 {
		m.selectThreshold = threshold
	}
}

// MoveLine moves a line to pos, clamped to the canvas on the line's axis.
// Lines may cross their neighbours.
func (m *Model) MoveLine(line *Line, pos float64) {
	if line == nil {
		return
	}
	extent := m.height
	if line.Orientation == Vertical {
		extent = m.width
	}
	line.Pos = math.Max(0, math.Min(pos, extent))
}

// SortedLines returns copies of the vertical and horizontal lines ordered
// by position. Cell boundaries are always derived from this ordering.
func (m *Model) SortedLines() (vertical, horizontal []Line) {
	return sortedCopy(m.vertical), sortedCopy(m.horizontal)
}

func sortedCopy(lines []*Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = *l
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos < out[j].Pos })
	return out
}

// CellRect returns the display rectangle of a cell. It reports false when
// the current lines cannot bound the cell.
func (m *Model) CellRect(row, col int) (Rect, bool) {
	v, h := m.SortedLines()
	return cellRect(v, h, row, col)
}

func cellRect(v, h []Line, row, col int) (Rect, bool) {
	if row < 0 || col < 0 || row+1 >= len(h) || col+1 >= len(v) {
		return Rect{}, false
	}
	return Rect{X1: v[col].Pos, Y1: h[row].Pos, X2: v[col+1].Pos, Y2: h[row+1].Pos}, true
}

// Cells returns every cell slot in row-major order.
func (m *Model) Cells() []Cell {
	v, h := m.SortedLines()
	cells := make([]Cell, 0, m.Total())
	for row := 0; row < m.rows; row++ {
		for col := 0; col < m.cols; col++ {
			rect, ok := cellRect(v, h, row, col)
			cells = append(cells, Cell{
				Index:   Index(row, col, m.cols),
				Row:     row,
				Col:     col,
				Rect:    rect,
				Present: ok,
			})
		}
	}
	return cells
}

// LineAt returns the line nearest to (x, y) whose perpendicular distance is
// strictly below the select threshold, or nil. Vertical lines are measured
// along x and horizontal lines along y; a horizontal line is preferred only
// when it is strictly closer.
func (m *Model) LineAt(x, y float64) *Line {
	closest := m.selectThreshold
	var selected *Line
	for _, l := range m.vertical {
		if d := math.Abs(x - l.Pos); d < closest {
			closest = d
			selected = l
		}
	}
	for _, l := range m.horizontal {
		if d := math.Abs(y - l.Pos); d < closest {
			closest = d
			selected = l
		}
	}
	return selected
}

// CellAt returns the index of the cell containing (x, y). Cells are
// half-open: a point on a shared boundary belongs to the right/lower cell.
func (m *Model) CellAt(x, y float64) (int, bool) {
	v, h := m.SortedLines()
	col := span(v, x)
	row := span(h, y)
	if col < 0 || row < 0 || row >= m.rows || col >= m.cols {
		return 0, false
	}
	return Index(row, col, m.cols), true
}

func span(lines []Line, pos float64) int {
	for i := 0; i+1 < len(lines); i++ {
		if lines[i].Pos <= pos && pos < lines[i+1].Pos {
			return i
		}
	}
	return -1
}

// StartOffset returns the index of the cell labelled 1.
func (m *Model) StartOffset() int { return m.startOffset }

// SetStartOffset marks cell idx as position 1.
func (m *Model) SetStartOffset(idx int) error {
	if idx < 0 || idx >= m.Total() {
		return fmt.Errorf("start cell %d outside grid of %d cells", idx, m.Total())
	}
	m.startOffset = idx
	return nil
}

// Label returns the 1-based label of cell idx relative to the start offset.
func (m *Model) Label(idx int) int {
	return Label(idx, m.startOffset, m.Total())
}
