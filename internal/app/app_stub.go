//go:build !ebiten

package app

import (
	"context"
	"errors"

	"wavescape/internal/router"
)

// ErrNoGUI is returned by New in builds without the ebiten tag.
var ErrNoGUI = errors.New("app: the GUI requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(context.Context, *Config) (*Game, error) { return nil, ErrNoGUI }

// Close is a no-op placeholder.
func (g *Game) Close() {}

// Route returns the zero route in the headless build.
func (g *Game) Route() router.Route { return router.Route{} }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
