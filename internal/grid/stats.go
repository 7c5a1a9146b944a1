package grid

import (
	"image"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SizeStats summarizes the pixel sizes of a set of cells.
type SizeStats struct {
	Count      int
	MeanWidth  float64
	MeanHeight float64
	StdWidth   float64
	StdHeight  float64
	MinWidth   float64
	MaxWidth   float64
	MinHeight  float64
	MaxHeight  float64
}

// Summarize computes size statistics over the non-empty rectangles.
func Summarize(rects []image.Rectangle) SizeStats {
	widths := make([]float64, 0, len(rects))
	heights := make([]float64, 0, len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		widths = append(widths, float64(r.Dx()))
		heights = append(heights, float64(r.Dy()))
	}

	s := SizeStats{Count: len(widths)}
	if s.Count == 0 {
		return s
	}
	s.MeanWidth, s.StdWidth = meanStd(widths)
	s.MeanHeight, s.StdHeight = meanStd(heights)
	s.MinWidth, s.MaxWidth = floats.Min(widths), floats.Max(widths)
	s.MinHeight, s.MaxHeight = floats.Min(heights), floats.Max(heights)
	return s
}

// meanStd returns the mean and sample standard deviation; a single value
// has zero deviation.
func meanStd(x []float64) (mean, std float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// Uniform reports whether every cell has the same size.
func (s SizeStats) Uniform() bool {
	return s.MinWidth == s.MaxWidth && s.MinHeight == s.MaxHeight
}
