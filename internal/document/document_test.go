package document

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calgrid/internal/grid"
	"calgrid/internal/layout"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func testCells(n, w, h int) []image.Image {
	cells := make([]image.Image, n)
	for i := range cells {
		cells[i] = solid(w, h, color.NRGBA{R: uint8(i * 7), G: 100, B: 200, A: 255})
	}
	return cells
}

func TestPreviewPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shifted_calendar.pdf", "shifted_calendar.png"},
		{"out/cal.PDF", "out/cal.png"},
		{"noext", "noext.png"},
		{"already.png", "already.png"},
	}
	for _, tt := range tests {
		if got := PreviewPath(tt.in); got != tt.want {
			t.Errorf("PreviewPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComposePreview(t *testing.T) {
	spec := grid.Spec{Rows: 2, Cols: 3, MarginSides: 5, MarginBottom: 10}
	cells := testCells(6, 4, 6)
	cells[4] = nil

	img, err := ComposePreview(cells, spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Bounds().Dx() != 3*4+2*5 || img.Bounds().Dy() != 2*6+10 {
		t.Fatalf("unexpected canvas %v", img.Bounds())
	}

	white := color.NRGBA{255, 255, 255, 255}
	if got := img.NRGBAAt(0, 0); got != white {
		t.Errorf("margin should be white, got %v", got)
	}
	// Cell 1 sits at row 0, col 1.
	if got := img.NRGBAAt(5+4+1, 1); got != cells[1].(*image.NRGBA).NRGBAAt(0, 0) {
		t.Errorf("cell 1 misplaced, got %v", got)
	}
	// Cell 4 is missing and leaves its slot blank.
	if got := img.NRGBAAt(5+4+1, 6+1); got != white {
		t.Errorf("missing cell should leave background, got %v", got)
	}
	if got := img.NRGBAAt(5, 2*6+5); got != white {
		t.Errorf("bottom margin should be white, got %v", got)
	}
}

func TestComposePreview_Errors(t *testing.T) {
	if _, err := ComposePreview(make([]image.Image, 4), grid.NewSpec(2, 2)); !errors.Is(err, ErrNoCells) {
		t.Errorf("expected ErrNoCells, got %v", err)
	}
	if _, err := ComposePreview(testCells(1, 2, 2), grid.Spec{}); !errors.Is(err, grid.ErrInvalidGridSpec) {
		t.Errorf("expected ErrInvalidGridSpec, got %v", err)
	}
}

func TestWritePreview(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cal.pdf")
	if err := WritePreview(out, testCells(4, 3, 3), grid.NewSpec(2, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "cal.png")); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}

func TestWritePDF(t *testing.T) {
	spec := grid.Spec{Rows: 2, Cols: 2, MarginSides: 20, MarginBottom: 50}
	page, err := layout.NewPage(400, 600, spec)
	if err != nil {
		t.Fatal(err)
	}
	cells := testCells(4, 20, 30)
	cells[3] = nil

	tests := []struct {
		name    string
		layers  bool
		wantOCG bool
	}{
		{"layered", true, true},
		{"flat", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.pdf")
			drawn, err := WritePDF(path, cells, page, PDFOptions{Layers: tt.layers})
			if err != nil {
				t.Fatalf("WritePDF failed: %v", err)
			}
			if drawn != 3 {
				t.Errorf("expected 3 cells drawn, got %d", drawn)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(data, []byte("%PDF-")) {
				t.Fatalf("output is not a PDF")
			}
			if got := bytes.Contains(data, []byte("/OCG")); got != tt.wantOCG {
				t.Errorf("optional content present = %v, want %v", got, tt.wantOCG)
			}
		})
	}
}

func TestWritePDF_SkipsCellThatFailsToEncode(t *testing.T) {
	spec := grid.Spec{Rows: 1, Cols: 3}
	page, err := layout.NewPage(300, 100, spec)
	if err != nil {
		t.Fatal(err)
	}
	cells := testCells(3, 20, 30)
	// PNG cannot encode an image with no pixels.
	cells[1] = image.NewNRGBA(image.Rect(0, 0, 0, 0))

	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "out.pdf")
	drawn, err := WritePDF(path, cells, page, PDFOptions{Layers: true, Logger: log.New(&logs, "", 0)})
	if err != nil {
		t.Fatalf("one bad cell should not fail the document: %v", err)
	}
	if drawn != 2 {
		t.Errorf("expected 2 cells drawn, got %d", drawn)
	}
	if !strings.Contains(logs.String(), "Skipping cell 2") {
		t.Errorf("expected the bad cell to be logged, got %q", logs.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}
