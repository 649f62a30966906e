//go:build !ebiten

package ui

import (
	"wavescape/internal/core"
	"wavescape/internal/render"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Scene, *render.HeightPalette) *Overlay { return &Overlay{} }

// SetPage is a no-op in headless builds.
func (o *Overlay) SetPage(string, int, int) {}

// SetScene is a no-op in headless builds.
func (o *Overlay) SetScene(core.Scene) {}

// Visible always reports false in headless builds.
func (o *Overlay) Visible() bool { return false }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any, int, int) {}
