// Package extract crops grid cells out of a source image, either on the
// uniform grid for the batch tool or from a manually fitted grid for export.
package extract

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"

	"calgrid/internal/grid"
	calimage "calgrid/internal/image"
)

// Options carries the optional hooks shared by both extraction paths.
type Options struct {
	// Logger receives per-cell diagnostics. Nil discards them.
	Logger *log.Logger
	// Progress is called after each cell slot is handled.
	Progress func(done, total int)
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

func (o Options) progress(done, total int) {
	if o.Progress != nil {
		o.Progress(done, total)
	}
}

// Batch is the result of a uniform extraction.
type Batch struct {
	// Cells holds one payload per slot in row-major order. Slots the grid
	// leaves empty are nil.
	Cells []image.Image
	Stats grid.SizeStats
}

// Uniform partitions layer with spec and crops every cell.
func Uniform(layer *calimage.Layer, spec grid.Spec, opts Options) (*Batch, error) {
	rects, err := grid.Partition(layer.Width(), layer.Height(), spec)
	if err != nil {
		return nil, err
	}
	logger := opts.logger()

	b := &Batch{
		Cells: make([]image.Image, len(rects)),
	}
	for i, r := range rects {
		if r.Empty() {
			logger.Printf("Skipping cell %d: empty rectangle %v", i+1, r)
		} else if cell, err := layer.Crop(r); err != nil {
			logger.Printf("Skipping cell %d: %v", i+1, err)
		} else {
			b.Cells[i] = cell
		}
		opts.progress(i+1, len(rects))
	}
	b.Stats = grid.Summarize(rects)
	return b, nil
}

// Present returns the number of non-nil cells.
func (b *Batch) Present() int {
	n := 0
	for _, c := range b.Cells {
		if c != nil {
			n++
		}
	}
	return n
}

// CellError records a cell that could not be written.
type CellError struct {
	Index int
	Label int
	Path  string
	Err   error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %d (label %d): %v", e.Index, e.Label, e.Err)
}

func (e *CellError) Unwrap() error { return e.Err }

// Result summarizes a manual export.
type Result struct {
	Total   int
	Saved   []string
	Skipped []int
	Failed  []*CellError
}

// Summary returns the user-facing completion message.
func (r Result) Summary() string {
	return fmt.Sprintf("Extracted %d of %d cells", len(r.Saved), r.Total)
}

// Exporter writes the cells of a manual grid as numbered PNG files.
type Exporter struct {
	Layer     *calimage.Layer
	Transform grid.DisplayTransform
	OutputDir string
	Options
}

// Export crops every present cell of m, maps it from display to source
// coordinates and saves it as <label>.png. Degenerate and absent cells are
// skipped; a failed write is recorded and the export continues. Only a
// failure to create the output directory is returned as an error.
func (e *Exporter) Export(m *grid.Model) (Result, error) {
	res := Result{Total: m.Total()}
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}
	logger := e.logger()

	for i, cell := range m.Cells() {
		path, err := e.exportCell(m, cell)
		var cellErr *CellError
		switch {
		case err == nil:
			res.Saved = append(res.Saved, path)
		case errors.As(err, &cellErr):
			logger.Printf("Error saving cell %d: %v", cellErr.Label, cellErr.Err)
			res.Failed = append(res.Failed, cellErr)
		default:
			logger.Printf("Skipping cell %d: %v", m.Label(cell.Index), err)
			res.Skipped = append(res.Skipped, cell.Index)
		}
		e.progress(i+1, res.Total)
	}
	return res, nil
}

var errAbsent = errors.New("not bounded by grid lines")

func (e *Exporter) exportCell(m *grid.Model, cell grid.Cell) (string, error) {
	if !cell.Present {
		return "", errAbsent
	}
	src, err := e.Transform.ToSource(cell.Rect)
	if err != nil {
		return "", err
	}
	img, err := e.Layer.Crop(src)
	if err != nil {
		return "", err
	}
	label := m.Label(cell.Index)
	path := filepath.Join(e.OutputDir, fmt.Sprintf("%d.png", label))
	if err := calimage.Save(img, path); err != nil {
		return "", &CellError{Index: cell.Index, Label: label, Path: path, Err: err}
	}
	return path, nil
}
