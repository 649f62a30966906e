package app

import (
	"flag"

	"wavescape/internal/router"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Route       string
	Scale       float64
	TPS         int
	Seed        int64
	HUD         int
	Width       int
	Height      int
	HillsSource string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Route:       router.DefaultHash,
		Scale:       1,
		TPS:         60,
		Seed:        42,
		HUD:         240,
		Width:       960,
		Height:      640,
		HillsSource: "opensimplex",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Route, "route", c.Route, "initial route hash, e.g. #/scene2")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second for input and camera easing")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene reset")
	fs.IntVar(&c.HUD, "hud", c.HUD, "parameter panel width in pixels (0 hides it)")
	fs.IntVar(&c.Width, "width", c.Width, "scene view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "scene view height in pixels")
	fs.StringVar(&c.HillsSource, "hills-source", c.HillsSource, "noise source for the hills scene (opensimplex or perlin)")
}

// SceneConfig returns the per-scene configuration maps derived from flags.
func (c *Config) SceneConfig() map[string]map[string]string {
	return map[string]map[string]string{
		"hills": {"source": c.HillsSource},
	}
}
