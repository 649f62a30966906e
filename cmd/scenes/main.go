//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"wavescape/internal/app"
	_ "wavescape/internal/scenes/gerstner"
	_ "wavescape/internal/scenes/hills"
	_ "wavescape/internal/scenes/lorenz"
	_ "wavescape/internal/scenes/simplex"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	game, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	defer game.Close()

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(int(float64(cfg.Width+max(cfg.HUD, 0))*cfg.Scale), int(float64(cfg.Height)*cfg.Scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
