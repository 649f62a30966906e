package simplex

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

// Config controls the periodic simplex terrain.
type Config struct {
	Cols    int
	Rows    int
	Size    float64
	Workers int
	Field   noise.PeriodicField
}

// DefaultConfig returns the standard configuration: a 10x10 plane with
// 100x100 vertices tiled every 50 noise units.
func DefaultConfig() Config {
	return Config{Cols: 100, Rows: 100, Size: 10, Field: noise.DefaultPeriodicField()}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.ParseConfig(cfg,
		map[string]*float64{
			"size":       &c.Size,
			"frequency":  &c.Field.Frequency,
			"amplitude":  &c.Field.Amplitude,
			"time_speed": &c.Field.TimeSpeed,
			"period_x":   &c.Field.Period[0],
			"period_y":   &c.Field.Period[1],
		},
		map[string]*int{"cols": &c.Cols, "rows": &c.Rows, "workers": &c.Workers},
	)
	if c.Cols < 2 {
		c.Cols = 2
	}
	if c.Rows < 2 {
		c.Rows = 2
	}
	if c.Field.Period[0] < 0 {
		c.Field.Period[0] = 0
	}
	if c.Field.Period[1] < 0 {
		c.Field.Period[1] = 0
	}
	return c
}

var controls = []core.ParameterControl{
	core.FloatSlider("frequency", "Frequency", 0.01, 0.5, 0.01),
	core.FloatSlider("amplitude", "Amplitude", 0, 1, 0.05),
	core.FloatSlider("time_speed", "Time Speed", 0.1, 3, 0.1),
}

// Scene animates a wireframe plane with periodic simplex noise.
type Scene struct {
	cfg  Config
	surf *surface.Surface

	mu    sync.RWMutex
	field noise.PeriodicField
}

// New creates a simplex scene.
func New(cfg Config) *Scene {
	ambient := &scenegraph.Light{Name: "ambient", Kind: scenegraph.LightAmbient, Color: scenegraph.White, Intensity: 0.4}
	sun := &scenegraph.Light{Name: "sun", Kind: scenegraph.LightDirectional, Color: scenegraph.White, Intensity: 0.8, Direction: mgl64.Vec3{-0.3, 0.5, -1}}
	return &Scene{
		cfg:   cfg,
		surf:  surface.New("simplex", cfg.Size, cfg.Cols, cfg.Rows, color.RGBA{R: 255, A: 255}, cfg.Workers, ambient, sun),
		field: cfg.Field,
	}
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "simplex" }

// Interval returns the 30 Hz update period.
func (s *Scene) Interval() time.Duration { return time.Second / 30 }

// Reset restores the configured parameters and flattens the plane. The
// field is seedless, so seed is ignored.
func (s *Scene) Reset(int64) {
	s.mu.Lock()
	s.field = s.cfg.Field
	s.mu.Unlock()
	s.surf.Flatten()
}

// Field returns the current noise parameters.
func (s *Scene) Field() noise.PeriodicField {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.field
}

// Tick resamples the plane at elapsed seconds and sets each vertex normal
// from the analytic noise gradient.
func (s *Scene) Tick(ctx context.Context, elapsed time.Duration) error {
	f := s.Field()
	t := elapsed.Seconds()
	cols, rows := s.surf.Cols(), s.surf.Rows()
	grads := make([]mgl64.Vec2, cols*rows)
	sample := func(col, row int) float64 {
		r := f.Sample(float64(col), float64(row), t)
		grads[row*cols+col] = r.Gradient
		return r.Value
	}
	dx, dy := s.surf.Spacing()
	return s.surf.Update(ctx, sample, func(p *scenegraph.Plane) {
		// Columns advance along +X, rows along -Y.
		for i, g := range grads {
			p.SetNormalFromSlope(i, g[0]/dx, -g[1]/dy)
		}
	})
}

// View exposes the scene graph under the scene lock.
func (s *Scene) View(fn func(root scenegraph.Node)) { s.surf.View(fn) }

// HeightField returns a copy of the current heights.
func (s *Scene) HeightField() *field.Grid { return s.surf.HeightField() }

// Camera returns the starting camera above the -Y edge of the plane.
func (s *Scene) Camera() core.CameraPose {
	return core.CameraPose{Position: mgl64.Vec3{0, -7, 5}, Up: mgl64.Vec3{0, 0, 1}, FOV: 75}
}

// ParameterControls exposes the GUI sliders.
func (s *Scene) ParameterControls() []core.ParameterControl { return controls }

// SetFloatParameter updates a slider value; edits apply on the next tick.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range controls {
		if c.Key != key {
			continue
		}
		value = c.Clamp(value)
		switch key {
		case "frequency":
			s.field.Frequency = value
		case "amplitude":
			s.field.Amplitude = value
		case "time_speed":
			s.field.TimeSpeed = value
		}
		return true
	}
	return false
}

// Parameters reports the current field settings.
func (s *Scene) Parameters() core.ParameterSnapshot {
	f := s.Field()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Noise",
			Params: []core.Parameter{
				core.FloatParam("frequency", "Frequency", f.Frequency),
				core.FloatParam("amplitude", "Amplitude", f.Amplitude),
				core.FloatParam("time_speed", "Time Speed", f.TimeSpeed),
			},
		},
		{
			Name: "Plane",
			Params: []core.Parameter{
				core.IntParam("cols", "Columns", s.cfg.Cols),
				core.IntParam("rows", "Rows", s.cfg.Rows),
				core.FloatParam("period_x", "Period X", f.Period[0]),
				core.FloatParam("period_y", "Period Y", f.Period[1]),
			},
		},
	}}
}

func init() {
	core.Register("simplex", func(cfg map[string]string) core.Scene {
		return New(FromMap(cfg))
	})
}
