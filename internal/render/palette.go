package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/mazznoer/colorgrad"

	"wavescape/internal/field"
)

// PaletteSize is the number of entries in a HeightPalette lookup table.
const PaletteSize = 256

// HeightPalette maps normalised heights in [0, 1] to colours, deep blue for
// troughs through green to white for peaks.
type HeightPalette struct {
	lut []color.RGBA
}

// DefaultStops are the gradient stops used by NewHeightPalette.
var DefaultStops = []color.Color{
	color.RGBA{8, 24, 88, 255},
	color.RGBA{0, 120, 200, 255},
	color.RGBA{34, 170, 34, 255},
	color.RGBA{200, 180, 80, 255},
	color.RGBA{255, 255, 255, 255},
}

// NewHeightPalette builds a palette from DefaultStops.
func NewHeightPalette() (*HeightPalette, error) {
	return NewHeightPaletteFrom(DefaultStops...)
}

// NewHeightPaletteFrom builds a palette through the given colour stops.
func NewHeightPaletteFrom(stops ...color.Color) (*HeightPalette, error) {
	grad, err := colorgrad.NewGradient().Colors(stops...).Build()
	if err != nil {
		return nil, fmt.Errorf("render: build height palette: %w", err)
	}
	p := &HeightPalette{lut: make([]color.RGBA, PaletteSize)}
	for i := range p.lut {
		r, g, b := grad.At(float64(i) / float64(PaletteSize-1)).RGB255()
		p.lut[i] = color.RGBA{r, g, b, 255}
	}
	return p, nil
}

// At returns the colour for t, clamped to [0, 1]. NaN maps to transparent.
func (p *HeightPalette) At(t float64) color.RGBA {
	if math.IsNaN(t) {
		return color.RGBA{}
	}
	t = math.Max(0, math.Min(1, t))
	return p.lut[int(math.Round(t*float64(PaletteSize-1)))]
}

// FillHeightRGBA writes one RGBA pixel per grid cell into buf, normalising
// heights between the grid's finite min and max. A flat grid maps to the
// middle of the palette. Non-finite cells become transparent.
func FillHeightRGBA(buf []byte, g *field.Grid, p *HeightPalette) {
	lo, hi := g.MinMax()
	span := hi - lo
	for i, v := range g.Cells() {
		base := i * 4
		var col color.RGBA
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
		case span == 0:
			col = p.At(0.5)
		default:
			col = p.At((v - lo) / span)
		}
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// HeightImage renders g into a new image, row 0 at the top.
func HeightImage(g *field.Grid, p *HeightPalette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.W, g.H))
	FillHeightRGBA(img.Pix, g, p)
	return img
}
