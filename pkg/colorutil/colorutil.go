// Package colorutil provides the overlay palette shared by the grid canvas
// and the window theme.
package colorutil

import "image/color"

// Overlay colors.
var (
	GridLine  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	StartCell = color.NRGBA{R: 0, G: 0, B: 255, A: 255}
	Label     = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	Save      = color.NRGBA{R: 0, G: 128, B: 0, A: 255}
	Backdrop  = color.NRGBA{R: 238, G: 238, B: 238, A: 255}
	White     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// WithAlpha returns c, un-premultiplied, with its alpha replaced.
func WithAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}

// Blend mixes src over dst using src's alpha.
func Blend(dst, src color.NRGBA) color.NRGBA {
	if src.A == 255 {
		return src
	}
	a := uint32(src.A)
	mix := func(d, s uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	return color.NRGBA{
		R: mix(dst.R, src.R),
		G: mix(dst.G, src.G),
		B: mix(dst.B, src.B),
		A: 255,
	}
}
