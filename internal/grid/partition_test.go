package grid

import (
	"errors"
	"image"
	"testing"
)

func TestPartition_FullImage(t *testing.T) {
	rects, err := Partition(1000, 1400, NewSpec(5, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rects) != 35 {
		t.Fatalf("expected 35 cells, got %d", len(rects))
	}

	if rects[0] != image.Rect(0, 0, 142, 280) {
		t.Errorf("expected first cell 142x280 at origin, got %v", rects[0])
	}
	if last := rects[34]; last.Max != image.Pt(1000, 1400) {
		t.Errorf("expected last cell to end at image corner, got %v", last)
	}

	area := 0
	for i, r := range rects {
		if r.Dy() != 280 {
			t.Errorf("cell %d: expected height 280, got %d", i, r.Dy())
		}
		if r.Dx() != 142 && r.Dx() != 143 {
			t.Errorf("cell %d: expected width 142 or 143, got %d", i, r.Dx())
		}
		area += r.Dx() * r.Dy()
	}
	if area != 1000*1400 {
		t.Errorf("cells cover %d pixels, want %d", area, 1000*1400)
	}
}

func TestPartition_Margins(t *testing.T) {
	spec := Spec{Rows: 5, Cols: 7, MarginSides: 20, MarginBottom: 50}
	rects, err := Partition(1000, 1400, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rects[0] != image.Rect(20, 0, 157, 270) {
		t.Errorf("unexpected first cell %v", rects[0])
	}
	if last := rects[len(rects)-1]; last.Max != image.Pt(980, 1350) {
		t.Errorf("expected last cell to stop at the margins, got %v", last)
	}
}

func TestPartition_MarginTop(t *testing.T) {
	spec := Spec{Rows: 2, Cols: 2, MarginTop: 10, MarginBottom: 10}
	rects, err := Partition(100, 120, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rects[0].Min.Y != 10 || rects[3].Max.Y != 110 {
		t.Errorf("top margin not honoured: %v", rects)
	}
}

func TestPartition_SharedBoundaries(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {7, 5}, {13, 29}, {1000, 1400}, {1023, 767}}
	margins := []struct{ sides, bottom int }{{0, 0}, {3, 0}, {0, 4}, {20, 50}}

	for _, size := range sizes {
		for _, m := range margins {
			for rows := 1; rows <= 6; rows++ {
				for cols := 1; cols <= 8; cols++ {
					spec := Spec{Rows: rows, Cols: cols, MarginSides: m.sides, MarginBottom: m.bottom}
					rects, err := Partition(size.w, size.h, spec)
					if err != nil {
						if !errors.Is(err, ErrInvalidGridSpec) {
							t.Fatalf("unexpected error type: %v", err)
						}
						continue
					}
					checkTiling(t, rects, spec, size.w, size.h)
				}
			}
		}
	}
}

func checkTiling(t *testing.T, rects []image.Rectangle, spec Spec, w, h int) {
	t.Helper()
	if len(rects) != spec.Cells() {
		t.Fatalf("%dx%d in %dx%d: expected %d cells, got %d",
			spec.Rows, spec.Cols, w, h, spec.Cells(), len(rects))
	}
	for idx, r := range rects {
		row, col := RowCol(idx, spec.Cols)
		if col+1 < spec.Cols {
			right := rects[Index(row, col+1, spec.Cols)]
			if r.Max.X != right.Min.X {
				t.Errorf("%dx%d in %dx%d: gap between cell %d and its right neighbour (%d != %d)",
					spec.Rows, spec.Cols, w, h, idx, r.Max.X, right.Min.X)
			}
		}
		if row+1 < spec.Rows {
			below := rects[Index(row+1, col, spec.Cols)]
			if r.Max.Y != below.Min.Y {
				t.Errorf("%dx%d in %dx%d: gap between cell %d and the cell below (%d != %d)",
					spec.Rows, spec.Cols, w, h, idx, r.Max.Y, below.Min.Y)
			}
		}
	}
	uw, uh := spec.Usable(w, h)
	first, last := rects[0], rects[len(rects)-1]
	if first.Min.X != spec.MarginSides || last.Max.X != spec.MarginSides+uw {
		t.Errorf("columns do not span the usable width: %v .. %v", first, last)
	}
	if first.Min.Y != spec.MarginTop || last.Max.Y != spec.MarginTop+uh {
		t.Errorf("rows do not span the usable height: %v .. %v", first, last)
	}
}

func TestPartition_Invalid(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		spec Spec
	}{
		{"zero rows", 100, 100, Spec{Rows: 0, Cols: 7}},
		{"negative cols", 100, 100, Spec{Rows: 5, Cols: -1}},
		{"sides consume width", 40, 100, Spec{Rows: 5, Cols: 7, MarginSides: 20}},
		{"bottom consumes height", 100, 50, Spec{Rows: 5, Cols: 7, MarginBottom: 50}},
		{"negative margin", 100, 100, Spec{Rows: 5, Cols: 7, MarginSides: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects, err := Partition(tt.w, tt.h, tt.spec)
			if !errors.Is(err, ErrInvalidGridSpec) {
				t.Errorf("expected ErrInvalidGridSpec, got %v", err)
			}
			if rects != nil {
				t.Errorf("expected no cells, got %d", len(rects))
			}
		})
	}
}

func TestUniformLines(t *testing.T) {
	got := UniformLines(1000, 7)
	want := []float64{0, 142, 285, 428, 571, 714, 857, 1000}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if UniformLines(100, 0) != nil {
		t.Error("expected no lines for zero divisions")
	}
}

func TestRowColIndex(t *testing.T) {
	for idx := 0; idx < 35; idx++ {
		row, col := RowCol(idx, 7)
		if Index(row, col, 7) != idx {
			t.Errorf("index %d did not round-trip through (%d, %d)", idx, row, col)
		}
	}
	if row, col := RowCol(10, 7); row != 1 || col != 3 {
		t.Errorf("expected (1, 3), got (%d, %d)", row, col)
	}
}
