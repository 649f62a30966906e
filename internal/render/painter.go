//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wavescape/internal/field"
)

// Painter strokes a Frame onto an ebiten image.
type Painter struct {
	LineWidth float32
}

// NewPainter returns a painter with one pixel wide lines.
func NewPainter() *Painter { return &Painter{LineWidth: 1} }

// Draw clears dst to the frame background and paints segments then points.
func (p *Painter) Draw(dst *ebiten.Image, f Frame) {
	dst.Fill(f.Background)
	for _, s := range f.Segments {
		vector.StrokeLine(dst,
			float32(s.A[0]), float32(s.A[1]), float32(s.B[0]), float32(s.B[1]),
			p.LineWidth, s.Color, true)
	}
	for _, pt := range f.Points {
		vector.DrawFilledCircle(dst, float32(pt.P[0]), float32(pt.P[1]), float32(pt.Radius), pt.Color, true)
	}
}

// HeightPainter uploads a height field into a single RGBA image.
type HeightPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette *HeightPalette
}

// NewHeightPainter allocates a painter for a w x h grid.
func NewHeightPainter(w, h int, palette *HeightPalette) *HeightPainter {
	hp := &HeightPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: palette}
	hp.img = ebiten.NewImage(w, h)
	return hp
}

// Blit colours g through the palette and draws it at (x, y) scaled by scale.
func (hp *HeightPainter) Blit(dst *ebiten.Image, g *field.Grid, x, y, scale float64) {
	if g == nil || g.W != hp.w || g.H != hp.h {
		return
	}
	FillHeightRGBA(hp.buf, g, hp.palette)
	hp.img.WritePixels(hp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(hp.img, op)
}

// Size returns the dimensions of the underlying image.
func (hp *HeightPainter) Size() (int, int) { return hp.w, hp.h }
