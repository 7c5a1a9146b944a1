// Package document renders re-indexed cells into output documents: a PDF
// with one optional-content layer per cell, or a flat preview raster.
package document

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"

	"calgrid/internal/layout"
	"calgrid/pkg/geometry"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
)

// PDFOptions controls PDF output.
type PDFOptions struct {
	// Layers puts each cell on its own toggleable layer. When false all
	// cells are drawn directly on the page.
	Layers bool
	// Logger receives cells that could not be embedded. Nil discards them.
	Logger *log.Logger
}

func (o PDFOptions) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// WritePDF draws cells onto a single page laid out by page and writes it to
// path. cells[i] goes into the box of position i; nil cells leave their box
// empty. Each image keeps its aspect ratio, centred in its box.
//
// A cell that fails to encode or embed is logged and left blank. WritePDF
// returns the number of cells drawn.
func WritePDF(path string, cells []image.Image, page *layout.Page, opts PDFOptions) (int, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)

	layerIDs := make(map[int]int, len(cells))
	if opts.Layers {
		for idx, cell := range cells {
			if cell == nil {
				continue
			}
			layerIDs[idx] = pdf.AddLayer(page.Place(idx).LayerName(), true)
		}
		pdf.OpenLayerPane()
	}

	pdf.AddPage()
	logger := opts.logger()
	drawn := 0
	for idx, cell := range cells {
		if cell == nil {
			continue
		}
		if err := drawCell(pdf, idx, cell, page, layerIDs); err != nil {
			logger.Printf("Skipping cell %d: %v", idx+1, err)
			// fpdf errors are sticky; clear so the rest of the page renders.
			pdf.ClearError()
			continue
		}
		drawn++
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return drawn, fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return drawn, nil
}

func drawCell(pdf *fpdf.Fpdf, idx int, cell image.Image, page *layout.Page, layerIDs map[int]int) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, cell, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode cell %d: %w", idx, err)
	}

	name := fmt.Sprintf("cell_%d", idx)
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to embed cell %d: %w", idx, err)
	}

	b := cell.Bounds()
	box := page.Place(idx).Box.Fit(geometry.NewSize(float64(b.Dx()), float64(b.Dy())))
	// fpdf measures y from the top of the page.
	top := box.FlipY(page.Height)

	id, layered := layerIDs[idx]
	if layered {
		pdf.BeginLayer(id)
	}
	pdf.ImageOptions(name, top.X, top.Y, top.Width, top.Height, false, imgOpts, 0, "")
	if layered {
		pdf.EndLayer()
	}
	return pdf.Error()
}
