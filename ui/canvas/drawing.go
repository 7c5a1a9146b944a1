package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"calgrid/internal/app"
	"calgrid/internal/grid"
	"calgrid/pkg/colorutil"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	lineThickness  = 2
	startInset     = 2
	startThickness = 3
	startTextScale = 2
	startFillAlpha = 48
)

// RenderGrid draws the session's display image scaled to w x h with the
// grid lines and cell numbers on top.
func RenderGrid(s *app.Session, w, h int) *image.RGBA {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(output, output.Bounds(), image.NewUniform(colorutil.Backdrop), image.Point{}, draw.Src)
	if s == nil || s.Display == nil || w <= 0 || h <= 0 {
		return output
	}

	dw, dh := s.DisplaySize()
	if dw == 0 || dh == 0 {
		return output
	}
	xdraw.ApproxBiLinear.Scale(output, output.Bounds(), s.Display, s.Display.Bounds(), xdraw.Src, nil)

	sx := float64(w) / float64(dw)
	sy := float64(h) / float64(dh)

	vertical, horizontal := s.Model.Lines()
	for _, l := range vertical {
		x := int(l.Pos * sx)
		drawLine(output, x, 0, x, h-1, colorutil.GridLine, lineThickness)
	}
	for _, l := range horizontal {
		y := int(l.Pos * sy)
		drawLine(output, 0, y, w-1, y, colorutil.GridLine, lineThickness)
	}

	for _, o := range s.Overlays() {
		c := o.Rect.Center()
		center := image.Pt(int(c.X*sx), int(c.Y*sy))
		if o.Start {
			r := scaleRect(o.Rect, sx, sy).Inset(startInset)
			fillRect(output, r, colorutil.WithAlpha(colorutil.StartCell, startFillAlpha))
			drawRect(output, r, colorutil.StartCell, startThickness)
			drawText(output, strconv.Itoa(o.Label), center, colorutil.StartCell, startTextScale)
		} else {
			drawText(output, strconv.Itoa(o.Label), center, colorutil.Label, 1)
		}
	}
	return output
}

func scaleRect(r grid.Rect, sx, sy float64) image.Rectangle {
	return image.Rect(int(r.X1*sx), int(r.Y1*sy), int(r.X2*sx), int(r.Y2*sy))
}

// fillRect blends tint over every pixel of r.
func fillRect(output *image.RGBA, r image.Rectangle, tint color.NRGBA) {
	r = r.Intersect(output.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			under := color.NRGBAModel.Convert(output.RGBAAt(x, y)).(color.NRGBA)
			output.Set(x, y, colorutil.Blend(under, tint))
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.Color, thickness int) {
	bounds := output.Bounds()

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t < thickness-thickness/2; t++ {
			for s := -thickness / 2; s < thickness-thickness/2; s++ {
				px, py := x1+s, y1+t
				if image.Pt(px, py).In(bounds) {
					output.Set(px, py, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawRect outlines r, growing the stroke inward.
func drawRect(output *image.RGBA, r image.Rectangle, col color.Color, thickness int) {
	for i := 0; i < thickness; i++ {
		x1, y1 := r.Min.X+i, r.Min.Y+i
		x2, y2 := r.Max.X-1-i, r.Max.Y-1-i
		if x2 < x1 || y2 < y1 {
			return
		}
		drawLine(output, x1, y1, x2, y1, col, 1)
		drawLine(output, x1, y2, x2, y2, col, 1)
		drawLine(output, x1, y1, x1, y2, col, 1)
		drawLine(output, x2, y1, x2, y2, col, 1)
	}
}

// drawText centres label on center using the 7x13 bitmap font, enlarged by
// an integer factor.
func drawText(output *image.RGBA, label string, center image.Point, col color.Color, scale int) {
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	tw := d.MeasureString(label).Ceil()
	th := face.Metrics().Height.Ceil()

	glyphs := image.NewRGBA(image.Rect(0, 0, tw, th))
	d.Dst = glyphs
	d.Src = image.NewUniform(col)
	d.Dot = fixed.P(0, face.Metrics().Ascent.Ceil())
	d.DrawString(label)

	if scale < 1 {
		scale = 1
	}
	cx, cy := center.X, center.Y
	dst := image.Rect(cx-tw*scale/2, cy-th*scale/2, cx-tw*scale/2+tw*scale, cy-th*scale/2+th*scale)
	xdraw.NearestNeighbor.Scale(output, dst, glyphs, glyphs.Bounds(), xdraw.Over, nil)
}
