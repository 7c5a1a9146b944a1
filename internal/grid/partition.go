package grid

import (
	"image"
	"math"
)

// Partition divides a width x height image into spec.Rows*spec.Cols
// rectangles in row-major order.
//
// Every edge is computed from the cumulative fraction of the usable extent,
// so neighbouring cells share their boundary exactly and the cells tile the
// usable area with no gaps. Rounding differences land on individual cells
// (some are one pixel wider) instead of accumulating along the row.
func Partition(width, height int, spec Spec) ([]image.Rectangle, error) {
	if err := spec.Validate(width, height); err != nil {
		return nil, err
	}
	uw, uh := spec.Usable(width, height)

	rects := make([]image.Rectangle, 0, spec.Cells())
	for row := 0; row < spec.Rows; row++ {
		y1 := spec.MarginTop + row*uh/spec.Rows
		y2 := spec.MarginTop + (row+1)*uh/spec.Rows
		for col := 0; col < spec.Cols; col++ {
			x1 := spec.MarginSides + col*uw/spec.Cols
			x2 := spec.MarginSides + (col+1)*uw/spec.Cols
			rects = append(rects, image.Rect(x1, y1, x2, y2))
		}
	}
	return rects, nil
}

// UniformLines returns the n+1 edge positions that split extent into n
// equal parts, floored to whole pixels the same way Partition does.
func UniformLines(extent float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	lines := make([]float64, n+1)
	for i := range lines {
		lines[i] = math.Floor(float64(i) * extent / float64(n))
	}
	return lines
}
