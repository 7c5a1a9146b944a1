package document

import (
	"errors"
	"image"
	"path/filepath"
	"strings"

	calimage "calgrid/internal/image"
	"calgrid/internal/grid"
)

// ErrNoCells is returned when there is nothing to draw a preview from.
var ErrNoCells = errors.New("no cells to preview")

// PreviewPath returns output with its extension replaced by .png.
func PreviewPath(output string) string {
	return strings.TrimSuffix(output, filepath.Ext(output)) + ".png"
}

// ComposePreview pastes cells into a flat image on a white background.
// Every cell slot is sized like the first present cell; the canvas keeps
// the side margins and the bottom margin of spec.
func ComposePreview(cells []image.Image, spec grid.Spec) (*image.NRGBA, error) {
	if spec.Rows <= 0 || spec.Cols <= 0 {
		return nil, grid.ErrInvalidGridSpec
	}
	var ref image.Image
	for _, c := range cells {
		if c != nil {
			ref = c
			break
		}
	}
	if ref == nil {
		return nil, ErrNoCells
	}
	cw, ch := ref.Bounds().Dx(), ref.Bounds().Dy()

	comp := calimage.NewComposite(
		spec.Cols*cw+2*spec.MarginSides,
		spec.MarginTop+spec.Rows*ch+spec.MarginBottom,
	)
	for idx, cell := range cells {
		row, col := grid.RowCol(idx, spec.Cols)
		if row >= spec.Rows {
			break
		}
		comp.AddLayer(cell, spec.MarginSides+col*cw, spec.MarginTop+row*ch)
	}
	return comp.Render(), nil
}

// WritePreview composes the preview and saves it as PNG.
func WritePreview(path string, cells []image.Image, spec grid.Spec) error {
	img, err := ComposePreview(cells, spec)
	if err != nil {
		return err
	}
	return calimage.Save(img, PreviewPath(path))
}
