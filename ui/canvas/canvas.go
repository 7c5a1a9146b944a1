// Package canvas provides the grid adjustment canvas: the display image
// with draggable grid lines and cell numbers.
package canvas

import (
	"image"

	"calgrid/internal/app"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// GridCanvas shows a session's display image and forwards pointer input to
// it. Left-drag moves grid lines; right-click or Ctrl+click picks day 1.
type GridCanvas struct {
	widget.BaseWidget

	session *app.Session
	raster  *fynecanvas.Raster

	onPick func(idx int)
}

var (
	_ fyne.Widget        = (*GridCanvas)(nil)
	_ fyne.Draggable     = (*GridCanvas)(nil)
	_ desktop.Mouseable  = (*GridCanvas)(nil)
	_ desktop.Cursorable = (*GridCanvas)(nil)
)

// NewGridCanvas creates a canvas for s and redraws it whenever the grid or
// start cell changes.
func NewGridCanvas(s *app.Session) *GridCanvas {
	gc := &GridCanvas{session: s}
	gc.raster = fynecanvas.NewRaster(gc.draw)
	gc.raster.ScaleMode = fynecanvas.ImageScalePixels

	w, h := s.DisplaySize()
	gc.raster.SetMinSize(fyne.NewSize(float32(w), float32(h)))

	redraw := func(interface{}) { gc.Refresh() }
	s.On(app.EventGridChanged, redraw)
	s.On(app.EventStartChanged, redraw)

	gc.ExtendBaseWidget(gc)
	return gc
}

// OnPick sets a callback for start cell picks.
func (gc *GridCanvas) OnPick(callback func(idx int)) {
	gc.onPick = callback
}

func (gc *GridCanvas) draw(w, h int) image.Image {
	return RenderGrid(gc.session, w, h)
}

// toDisplay converts a widget position to display image pixels.
func (gc *GridCanvas) toDisplay(pos fyne.Position) (x, y float64) {
	w, h := gc.session.DisplaySize()
	return ToDisplay(pos, gc.Size(), w, h)
}

// ToDisplay maps pos within a widget of the given size onto a display image
// of w x h pixels.
func ToDisplay(pos fyne.Position, size fyne.Size, w, h int) (x, y float64) {
	if size.Width <= 0 || size.Height <= 0 {
		return float64(pos.X), float64(pos.Y)
	}
	x = float64(pos.X) * float64(w) / float64(size.Width)
	y = float64(pos.Y) * float64(h) / float64(size.Height)
	return x, y
}

// MouseDown grabs a line, or picks the start cell on a secondary or
// Ctrl+primary press.
func (gc *GridCanvas) MouseDown(ev *desktop.MouseEvent) {
	x, y := gc.toDisplay(ev.Position)

	pick := ev.Button == desktop.MouseButtonSecondary ||
		(ev.Button == desktop.MouseButtonPrimary && ev.Modifier&fyne.KeyModifierControl != 0)
	if pick {
		if gc.session.PickStart(x, y) && gc.onPick != nil {
			gc.onPick(gc.session.Model.StartOffset())
		}
		return
	}
	if ev.Button == desktop.MouseButtonPrimary {
		gc.session.PointerDown(x, y)
	}
}

// MouseUp releases the grabbed line.
func (gc *GridCanvas) MouseUp(*desktop.MouseEvent) {
	gc.session.PointerUp()
}

// Dragged moves the grabbed line with the pointer.
func (gc *GridCanvas) Dragged(ev *fyne.DragEvent) {
	gc.session.PointerMove(gc.toDisplay(ev.Position))
}

// DragEnd releases the grabbed line.
func (gc *GridCanvas) DragEnd() {
	gc.session.PointerUp()
}

// Cursor implements desktop.Cursorable.
func (gc *GridCanvas) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// Refresh redraws the raster.
func (gc *GridCanvas) Refresh() {
	gc.raster.Refresh()
}

// MinSize keeps the canvas at least as large as the display image.
func (gc *GridCanvas) MinSize() fyne.Size {
	return gc.raster.MinSize()
}

// CreateRenderer implements fyne.Widget.
func (gc *GridCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(gc.raster)
}
