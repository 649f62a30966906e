package hills

import (
	"context"
	"image/color"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/core"
	"wavescape/internal/field"
	"wavescape/internal/noise"
	"wavescape/internal/scenegraph"
	"wavescape/internal/scenes/surface"
)

// Config controls the static hill terrain.
type Config struct {
	Source    string
	Seed      int64
	Cols      int
	Rows      int
	Size      float64
	Scale     float64
	Amplitude float64
	// Drift moves the perlin source along x in units per second.
	Drift   float64
	FogNear float64
	FogFar  float64
	Workers int
}

// DefaultConfig returns a 50x50 unit opensimplex terrain.
func DefaultConfig() Config {
	return Config{
		Source:    "opensimplex",
		Seed:      1,
		Cols:      51,
		Rows:      51,
		Size:      50,
		Scale:     0.1,
		Amplitude: 1,
		FogNear:   2,
		FogFar:    8,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["source"]; ok && (v == "opensimplex" || v == "perlin") {
		c.Source = v
	}
	seed := int(c.Seed)
	core.ParseConfig(cfg,
		map[string]*float64{
			"size":      &c.Size,
			"scale":     &c.Scale,
			"amplitude": &c.Amplitude,
			"drift":     &c.Drift,
			"fog_near":  &c.FogNear,
			"fog_far":   &c.FogFar,
		},
		map[string]*int{"cols": &c.Cols, "rows": &c.Rows, "workers": &c.Workers, "seed": &seed},
	)
	c.Seed = int64(seed)
	if c.Cols < 2 {
		c.Cols = 2
	}
	if c.Rows < 2 {
		c.Rows = 2
	}
	if c.FogFar < c.FogNear {
		c.FogFar = c.FogNear
	}
	return c
}

// NewSource builds the configured height source for seed.
func (c Config) NewSource(seed int64) noise.Source {
	if c.Source == "perlin" {
		p := noise.NewPerlin(seed, c.Scale, c.Amplitude)
		p.Drift = c.Drift
		return p
	}
	return noise.NewOpenSimplex(seed, c.Scale, c.Amplitude)
}

// Scene renders a green hill plane under fog. The terrain is sampled once
// per reset unless the source drifts.
type Scene struct {
	cfg  Config
	surf *surface.Surface

	mu    sync.Mutex
	seed  int64
	src   noise.Source
	dirty bool
}

// New creates a hills scene.
func New(cfg Config) *Scene {
	sun := &scenegraph.Light{Name: "sun", Kind: scenegraph.LightDirectional, Color: scenegraph.White, Intensity: 1, Direction: mgl64.Vec3{-1, -1, -1}}
	fog := &scenegraph.Other{Name: "fog", Value: scenegraph.Fog{Color: color.RGBA{A: 255}, Near: cfg.FogNear, Far: cfg.FogFar}}
	s := &Scene{
		cfg:  cfg,
		surf: surface.New("hills", cfg.Size, cfg.Cols, cfg.Rows, color.RGBA{R: 0x22, G: 0xaa, B: 0x22, A: 255}, cfg.Workers, sun, fog),
	}
	s.Reset(cfg.Seed)
	return s
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "hills" }

// Interval returns the 10 Hz update period.
func (s *Scene) Interval() time.Duration { return time.Second / 10 }

// Reset reseeds the source. A zero seed keeps the configured one.
func (s *Scene) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.surf.Flatten()
	s.mu.Lock()
	s.seed = seed
	s.src = s.cfg.NewSource(seed)
	s.dirty = true
	s.mu.Unlock()
}

// Seed returns the seed of the current terrain.
func (s *Scene) Seed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Tick samples the terrain when it changed since the last tick. A cancelled
// sample leaves the terrain marked for the next tick.
func (s *Scene) Tick(ctx context.Context, elapsed time.Duration) error {
	s.mu.Lock()
	src := s.src
	if !s.dirty && s.cfg.Drift == 0 {
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	s.mu.Unlock()

	t := elapsed.Seconds()
	err := s.surf.Update(ctx, func(col, row int) float64 {
		x, y := s.surf.VertexXY(col, row)
		return src.Height(x, y, t)
	}, nil)
	if err != nil {
		s.mu.Lock()
		if s.src == src {
			s.dirty = true
		}
		s.mu.Unlock()
	}
	return err
}

// View exposes the scene graph under the scene lock.
func (s *Scene) View(fn func(root scenegraph.Node)) { s.surf.View(fn) }

// HeightField returns a copy of the current heights.
func (s *Scene) HeightField() *field.Grid { return s.surf.HeightField() }

// Camera looks straight down from five units above the origin.
func (s *Scene) Camera() core.CameraPose {
	return core.CameraPose{Position: mgl64.Vec3{0, 0, 5}, Up: mgl64.Vec3{0, 1, 0}, FOV: 75}
}

// Parameters reports the terrain settings.
func (s *Scene) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name:    "Terrain",
			Summary: s.cfg.Source,
			Params: []core.Parameter{
				core.Int64Param("seed", "Seed", s.Seed()),
				core.FloatParam("scale", "Scale", s.cfg.Scale),
				core.FloatParam("amplitude", "Amplitude", s.cfg.Amplitude),
			},
		},
		{
			Name: "Fog",
			Params: []core.Parameter{
				core.FloatParam("fog_near", "Near", s.cfg.FogNear),
				core.FloatParam("fog_far", "Far", s.cfg.FogFar),
			},
		},
	}}
}

func init() {
	core.Register("hills", func(cfg map[string]string) core.Scene {
		return New(FromMap(cfg))
	})
}
