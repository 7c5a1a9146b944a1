package image

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Composite pastes cell images onto a flat canvas.
type Composite struct {
	Width     int
	Height    int
	Layers    []*CompositeLayer
	BackColor color.Color
}

// CompositeLayer is one image placed at an offset on the canvas.
type CompositeLayer struct {
	Image   image.Image
	OffsetX int
	OffsetY int
}

// NewComposite creates a new Composite with the specified dimensions.
func NewComposite(width, height int) *Composite {
	return &Composite{
		Width:     width,
		Height:    height,
		BackColor: color.White,
	}
}

// AddLayer places img with its top-left corner at (offsetX, offsetY).
// Nil images are ignored.
func (c *Composite) AddLayer(img image.Image, offsetX, offsetY int) {
	if img == nil {
		return
	}
	c.Layers = append(c.Layers, &CompositeLayer{
		Image:   img,
		OffsetX: offsetX,
		OffsetY: offsetY,
	})
}

// Render produces the final composited image. Later layers replace the
// pixels of earlier ones; anything outside the canvas is clipped.
func (c *Composite) Render() *image.NRGBA {
	result := imaging.New(c.Width, c.Height, c.BackColor)
	for _, cl := range c.Layers {
		result = imaging.Paste(result, cl.Image, image.Pt(cl.OffsetX, cl.OffsetY))
	}
	return result
}
