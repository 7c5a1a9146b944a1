package canvas

import (
	goimage "image"
	"image/color"
	"testing"

	"calgrid/internal/app"
	"calgrid/internal/config"
	"calgrid/internal/image"
	"calgrid/pkg/colorutil"

	"fyne.io/fyne/v2"
)

func newSession(t *testing.T) *app.Session {
	t.Helper()
	img := goimage.NewNRGBA(goimage.Rect(0, 0, 700, 500))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	s, err := app.NewSession(image.NewLayer(img), config.Default(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestRenderGrid_Lines(t *testing.T) {
	s := newSession(t)
	out := RenderGrid(s, 700, 500)

	red := rgba(colorutil.GridLine)
	if got := out.RGBAAt(100, 50); got != red {
		t.Errorf("expected grid line at x=100, got %v", got)
	}
	if got := out.RGBAAt(50, 100); got != red {
		t.Errorf("expected grid line at y=100, got %v", got)
	}
	if got := out.RGBAAt(30, 30); got != rgba(colorutil.White) {
		t.Errorf("expected image pixel inside a cell, got %v", got)
	}
}

func TestRenderGrid_StartCell(t *testing.T) {
	s := newSession(t)
	s.PickStart(350, 150)
	out := RenderGrid(s, 700, 500)

	blue := rgba(colorutil.StartCell)
	// Start cell spans (300,100)-(400,200); its outline is inset by 2px.
	if got := out.RGBAAt(302, 150); got != blue {
		t.Errorf("expected start outline at (302,150), got %v", got)
	}
	if got := out.RGBAAt(102, 150); got == blue {
		t.Error("only the start cell should be outlined")
	}

	tint := rgba(colorutil.Blend(colorutil.White, colorutil.WithAlpha(colorutil.StartCell, startFillAlpha)))
	if got := out.RGBAAt(315, 115); got != tint {
		t.Errorf("expected tinted start cell at (315,115), want %v, got %v", tint, got)
	}
	if got := out.RGBAAt(115, 115); got != rgba(colorutil.White) {
		t.Errorf("other cells should stay untinted, got %v", got)
	}
}

func TestRenderGrid_Scaled(t *testing.T) {
	s := newSession(t)
	out := RenderGrid(s, 1400, 1000)
	if out.Bounds().Dx() != 1400 {
		t.Fatalf("unexpected bounds %v", out.Bounds())
	}
	if got := out.RGBAAt(200, 500); got != rgba(colorutil.GridLine) {
		t.Errorf("expected scaled grid line at x=200, got %v", got)
	}
}

func TestRenderGrid_NoSession(t *testing.T) {
	out := RenderGrid(nil, 10, 10)
	if got := out.RGBAAt(5, 5); got != rgba(colorutil.Backdrop) {
		t.Errorf("expected backdrop, got %v", got)
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		pos   fyne.Position
		size  fyne.Size
		wantX float64
		wantY float64
	}{
		{fyne.NewPos(100, 50), fyne.NewSize(700, 500), 100, 50},
		{fyne.NewPos(100, 50), fyne.NewSize(350, 250), 200, 100},
		{fyne.NewPos(10, 20), fyne.NewSize(0, 0), 10, 20},
	}
	for _, tt := range tests {
		x, y := ToDisplay(tt.pos, tt.size, 700, 500)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("ToDisplay(%v, %v) = (%v, %v), want (%v, %v)", tt.pos, tt.size, x, y, tt.wantX, tt.wantY)
		}
	}
}
