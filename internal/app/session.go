// Package app holds the state of one interactive grid adjustment session.
package app

import (
	"fmt"
	goimage "image"
	"io"
	"log"
	"path/filepath"
	"sync"

	"calgrid/internal/config"
	"calgrid/internal/extract"
	"calgrid/internal/grid"
	"calgrid/internal/image"
)

// MinLabelSize is the smallest display extent, in pixels, of a cell that
// gets a number drawn in it.
const MinLabelSize = 20.0

// EventType identifies different session events.
type EventType int

const (
	EventGridChanged EventType = iota
	EventStartChanged
	EventPaddingChanged
	EventExported
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Session is the editing state behind the adjuster window: the loaded
// image, its display rendition and the manual grid laid over it.
type Session struct {
	mu sync.RWMutex

	Layer     *image.Layer
	Display   goimage.Image
	Scale     float64
	Model     *grid.Model
	Padding   int
	OutputDir string
	Logger    *log.Logger

	selected  *grid.Line
	listeners map[EventType][]EventListener
}

// NewSession prepares layer for editing. The display image is downscaled to
// fit the configured maximum size and a rows x cols uniform grid is laid
// over it. An empty outputDir selects a directory named after the image,
// next to it.
func NewSession(layer *image.Layer, cfg *config.Config, outputDir string) (*Session, error) {
	scale := grid.FitScale(layer.Width(), layer.Height(), cfg.Adjust.MaxDisplayWidth, cfg.Adjust.MaxDisplayHeight)
	display := layer.Scaled(scale)
	b := display.Bounds()

	model, err := grid.NewModel(cfg.Grid.Rows, cfg.Grid.Cols, float64(b.Dx()), float64(b.Dy()))
	if err != nil {
		return nil, err
	}
	model.SetSelectThreshold(cfg.Adjust.SelectThreshold)

	if outputDir == "" {
		outputDir = DefaultOutputDir(layer.Path)
	}
	return &Session{
		Layer:     layer,
		Display:   display,
		Scale:     scale,
		Model:     model,
		Padding:   cfg.Adjust.Padding,
		OutputDir: outputDir,
		Logger:    log.New(io.Discard, "", 0),
		listeners: make(map[EventType][]EventListener),
	}, nil
}

// DefaultOutputDir returns the directory next to imagePath named after its
// stem.
func DefaultOutputDir(imagePath string) string {
	base := filepath.Base(imagePath)
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(filepath.Dir(imagePath), stem)
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// DisplaySize returns the size of the display image in pixels.
func (s *Session) DisplaySize() (width, height int) {
	b := s.Display.Bounds()
	return b.Dx(), b.Dy()
}

// PointerDown grabs the grid line near (x, y), if any, and reports whether
// one was grabbed.
func (s *Session) PointerDown(x, y float64) bool {
	s.mu.Lock()
	s.selected = s.Model.LineAt(x, y)
	grabbed := s.selected != nil
	s.mu.Unlock()
	return grabbed
}

// PointerMove drags the grabbed line to the pointer position.
func (s *Session) PointerMove(x, y float64) {
	s.mu.Lock()
	line := s.selected
	if line != nil {
		pos := y
		if line.Orientation == grid.Vertical {
			pos = x
		}
		s.Model.MoveLine(line, pos)
	}
	s.mu.Unlock()

	if line != nil {
		s.Emit(EventGridChanged, line)
	}
}

// PointerUp releases the grabbed line.
func (s *Session) PointerUp() {
	s.mu.Lock()
	s.selected = nil
	s.mu.Unlock()
}

// Selected returns the grabbed line, or nil.
func (s *Session) Selected() *grid.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// PickStart marks the cell under (x, y) as day 1. Points outside the grid
// are ignored and reported as false.
func (s *Session) PickStart(x, y float64) bool {
	s.mu.Lock()
	idx, ok := s.Model.CellAt(x, y)
	if ok {
		ok = s.Model.SetStartOffset(idx) == nil
	}
	s.mu.Unlock()

	if ok {
		s.Emit(EventStartChanged, idx)
	}
	return ok
}

// ResetGrid lays out a fresh uniform grid with the given number of rows.
func (s *Session) ResetGrid(rows int) error {
	w, h := s.DisplaySize()
	s.mu.Lock()
	s.selected = nil
	err := s.Model.Reset(rows, float64(w), float64(h))
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.Emit(EventGridChanged, nil)
	return nil
}

// SetPadding sets the inset, in source pixels, applied to each cell on export.
func (s *Session) SetPadding(padding int) {
	if padding < 0 {
		padding = 0
	}
	s.mu.Lock()
	s.Padding = padding
	s.mu.Unlock()
	s.Emit(EventPaddingChanged, padding)
}

// Overlay is the label drawn in one cell of the grid.
type Overlay struct {
	Index int
	Label int
	Rect  grid.Rect
	Start bool
}

// Overlays returns the labels for every present cell large enough to hold
// one, in row-major order.
func (s *Session) Overlays() []Overlay {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Overlay
	for _, c := range s.Model.Cells() {
		if !c.Present || c.Rect.Width() <= MinLabelSize || c.Rect.Height() <= MinLabelSize {
			continue
		}
		label := s.Model.Label(c.Index)
		out = append(out, Overlay{Index: c.Index, Label: label, Rect: c.Rect, Start: label == 1})
	}
	return out
}

// Export writes every cell of the current grid to the output directory.
func (s *Session) Export() (extract.Result, error) {
	s.mu.RLock()
	e := &extract.Exporter{
		Layer:     s.Layer,
		Transform: grid.NewDisplayTransform(s.Scale, s.Padding),
		OutputDir: s.OutputDir,
		Options:   extract.Options{Logger: s.Logger},
	}
	s.mu.RUnlock()

	s.Logger.Printf("Extracting cells to %s...", s.OutputDir)
	res, err := e.Export(s.Model)
	if err != nil {
		return res, fmt.Errorf("export failed: %w", err)
	}
	s.Emit(EventExported, res)
	return res, nil
}
