//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"wavescape/internal/core"
	"wavescape/internal/render"
)

// Overlay draws the page indicator and, when toggled with H, a colour-mapped
// inset of the scene's height field.
type Overlay struct {
	scene   core.Scene
	label   string
	page    int
	pages   int
	show    bool
	palette *render.HeightPalette
	painter *render.HeightPainter
}

// NewOverlay constructs an overlay for scene. A nil palette disables the inset.
func NewOverlay(scene core.Scene, palette *render.HeightPalette) *Overlay {
	return &Overlay{scene: scene, palette: palette}
}

// SetPage records the active route for the page indicator.
func (o *Overlay) SetPage(label string, page, pages int) {
	o.label, o.page, o.pages = label, page, pages
}

// SetScene switches the scene the inset reads from.
func (o *Overlay) SetScene(scene core.Scene) {
	o.scene = scene
	o.painter = nil
}

// Visible reports whether the inset is shown.
func (o *Overlay) Visible() bool { return o.show }

// Update toggles the inset.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.show = !o.show
	}
}

// Draw renders the overlay onto a viewW x viewH region of screen.
func (o *Overlay) Draw(screen *ebiten.Image, viewW, viewH int) {
	face := basicfont.Face7x13
	if o.pages > 0 {
		for i := 1; i <= o.pages; i++ {
			c := color.RGBA{R: 90, G: 90, B: 100, A: 255}
			if i == o.page {
				c = color.RGBA{R: 240, G: 240, B: 250, A: 255}
			}
			text.Draw(screen, fmt.Sprint(i), face, InsetMargin+(i-1)*16, InsetMargin+12, c)
		}
		text.Draw(screen, o.label, face, InsetMargin+o.pages*16+8, InsetMargin+12, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	}
	if !o.show || o.palette == nil {
		return
	}
	provider, ok := o.scene.(core.HeightFieldProvider)
	if !ok {
		return
	}
	g := provider.HeightField()
	if g == nil {
		return
	}
	if o.painter == nil {
		o.painter = render.NewHeightPainter(g.W, g.H, o.palette)
	} else if w, h := o.painter.Size(); w != g.W || h != g.H {
		o.painter = render.NewHeightPainter(g.W, g.H, o.palette)
	}
	x, y, scale := InsetLayout(g.W, g.H, viewW, viewH)
	if scale <= 0 {
		return
	}
	o.painter.Blit(screen, g, x, y, scale)
	vector.StrokeRect(screen, float32(x)-1, float32(y)-1, float32(scale*float64(g.W))+2, float32(scale*float64(g.H))+2, 1, color.RGBA{R: 200, G: 200, B: 210, A: 255}, false)
	lo, hi := g.MinMax()
	text.Draw(screen, fmt.Sprintf("h %.2f .. %.2f", lo, hi), face, int(x), int(y)-6, color.RGBA{R: 200, G: 200, B: 210, A: 255})
}
