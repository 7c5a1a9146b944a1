package layout

import (
	"errors"
	"math"
	"testing"

	"calgrid/internal/grid"
)

func nearly(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParsePageSize(t *testing.T) {
	tests := []struct {
		in      string
		want    PageSize
		wantErr bool
	}{
		{"letter", Letter, false},
		{"A4", A4, false},
		{" a4 ", A4, false},
		{"legal", PageSize{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePageSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePageSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePageSize(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPage_Place(t *testing.T) {
	spec := grid.Spec{Rows: 5, Cols: 7, MarginSides: 20, MarginBottom: 50}
	page, err := NewPage(1000, 1400, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nearly(page.CellWidth, 960.0/7.0) || !nearly(page.CellHeight, 270) {
		t.Fatalf("unexpected cell size %vx%v", page.CellWidth, page.CellHeight)
	}

	first := page.Place(0)
	if !nearly(first.Box.X, 20) || !nearly(first.Box.Y, 1400-50-270) {
		t.Errorf("unexpected first box %+v", first.Box)
	}
	if first.LayerName() != "Cell_1_1" {
		t.Errorf("unexpected layer name %q", first.LayerName())
	}

	p := page.Place(10)
	if p.Row != 1 || p.Col != 3 {
		t.Fatalf("expected row 1 col 3, got %d %d", p.Row, p.Col)
	}
	wantX := 20 + 3*960.0/7.0
	wantY := 1400 - 50 - 2*270.0
	if !nearly(p.Box.X, wantX) || !nearly(p.Box.Y, wantY) {
		t.Errorf("expected (%v, %v), got (%v, %v)", wantX, wantY, p.Box.X, p.Box.Y)
	}
	if !nearly(p.Box.Width, page.CellWidth) || !nearly(p.Box.Height, page.CellHeight) {
		t.Errorf("box should have the uniform cell size, got %+v", p.Box)
	}
	if p.LayerName() != "Cell_2_4" {
		t.Errorf("unexpected layer name %q", p.LayerName())
	}
}

func TestPage_Placements(t *testing.T) {
	page, err := NewStandardPage(Letter, grid.Spec{Rows: 5, Cols: 7, MarginSides: 20, MarginBottom: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := page.Placements()
	if len(all) != 35 {
		t.Fatalf("expected 35 placements, got %d", len(all))
	}
	last := all[34].Box
	if !nearly(last.X+last.Width, 612-20) || !nearly(last.Y, 0) {
		t.Errorf("last box should touch the right margin and page bottom, got %+v", last)
	}
}

func TestNewPage_Invalid(t *testing.T) {
	if _, err := NewPage(30, 100, grid.Spec{Rows: 1, Cols: 1, MarginSides: 15}); !errors.Is(err, grid.ErrInvalidGridSpec) {
		t.Errorf("expected ErrInvalidGridSpec, got %v", err)
	}
	if _, err := NewPage(100, 100, grid.Spec{Rows: 0, Cols: 1}); !errors.Is(err, grid.ErrInvalidGridSpec) {
		t.Errorf("expected ErrInvalidGridSpec, got %v", err)
	}
}
