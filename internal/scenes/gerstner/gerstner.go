package gerstner

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/core"
	"wavescape/internal/field"
	"wavescape/internal/noise"
	"wavescape/internal/scenegraph"
	"wavescape/internal/scenes/surface"
)

// Config controls the ocean plane.
type Config struct {
	Cols    int
	Rows    int
	Size    float64
	Workers int
	Waves   noise.WaveTrain
}

// DefaultConfig returns a 100x100 vertex plane with the five default waves.
func DefaultConfig() Config {
	return Config{Cols: 100, Rows: 100, Size: 10, Waves: noise.DefaultWaves()}
}

// FromMap populates a Config from a string map. Wave fields use keys of the
// form wave<N>_<field>, for example wave2_wavelength.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	floats := map[string]*float64{"size": &c.Size}
	for i := range c.Waves {
		w := &c.Waves[i]
		floats[waveKey(i, "amplitude")] = &w.Amplitude
		floats[waveKey(i, "wavelength")] = &w.Wavelength
		floats[waveKey(i, "speed")] = &w.Speed
		floats[waveKey(i, "direction_x")] = &w.Direction[0]
		floats[waveKey(i, "direction_y")] = &w.Direction[1]
	}
	core.ParseConfig(cfg, floats, map[string]*int{"cols": &c.Cols, "rows": &c.Rows, "workers": &c.Workers})
	if c.Cols < 2 {
		c.Cols = 2
	}
	if c.Rows < 2 {
		c.Rows = 2
	}
	return c
}

func waveKey(i int, field string) string {
	return fmt.Sprintf("wave%d_%s", i+1, field)
}

// parseWaveKey splits wave<N>_<field> into a zero-based index and field name.
func parseWaveKey(key string) (int, string, bool) {
	rest, ok := strings.CutPrefix(key, "wave")
	if !ok {
		return 0, "", false
	}
	num, name, ok := strings.Cut(rest, "_")
	if !ok {
		return 0, "", false
	}
	var n int
	if _, err := fmt.Sscanf(num, "%d", &n); err != nil || n < 1 {
		return 0, "", false
	}
	return n - 1, name, true
}

var waveBounds = []struct {
	field, label   string
	min, max, step float64
}{
	{"amplitude", "Amplitude", 0, 1, 0.01},
	{"wavelength", "Wavelength", 1, 20, 0.5},
	{"speed", "Speed", 0, 2, 0.05},
	{"direction_x", "Direction X", -1, 1, 0.1},
	{"direction_y", "Direction Y", -1, 1, 0.1},
}

// Scene animates a wireframe plane with a sum of Gerstner waves.
type Scene struct {
	cfg      Config
	surf     *surface.Surface
	controls []core.ParameterControl

	mu    sync.RWMutex
	waves noise.WaveTrain
}

// New creates a gerstner scene.
func New(cfg Config) *Scene {
	ambient := &scenegraph.Light{Name: "ambient", Kind: scenegraph.LightAmbient, Color: scenegraph.White, Intensity: 0.4}
	sun := &scenegraph.Light{Name: "sun", Kind: scenegraph.LightDirectional, Color: scenegraph.White, Intensity: 0.8, Direction: mgl64.Vec3{0.2, 0.6, -1}}
	s := &Scene{
		cfg:   cfg,
		surf:  surface.New("gerstner", cfg.Size, cfg.Cols, cfg.Rows, color.RGBA{G: 255, A: 255}, cfg.Workers, ambient, sun),
		waves: append(noise.WaveTrain(nil), cfg.Waves...),
	}
	for i := range cfg.Waves {
		for _, b := range waveBounds {
			s.controls = append(s.controls, core.FloatSlider(waveKey(i, b.field), fmt.Sprintf("Wave %d %s", i+1, b.label), b.min, b.max, b.step))
		}
	}
	return s
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "gerstner" }

// Interval returns the 30 Hz update period.
func (s *Scene) Interval() time.Duration { return time.Second / 30 }

// Reset restores the configured waves and flattens the plane.
func (s *Scene) Reset(int64) {
	s.mu.Lock()
	s.waves = append(s.waves[:0], s.cfg.Waves...)
	s.mu.Unlock()
	s.surf.Flatten()
}

// Waves returns a copy of the current wave train.
func (s *Scene) Waves() noise.WaveTrain {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(noise.WaveTrain(nil), s.waves...)
}

// Tick evaluates the wave train at every vertex rest position.
func (s *Scene) Tick(ctx context.Context, elapsed time.Duration) error {
	waves := s.Waves()
	t := elapsed.Seconds()
	return s.surf.Update(ctx, func(col, row int) float64 {
		x, y := s.surf.VertexXY(col, row)
		return waves.Height(x, y, t)
	}, nil)
}

// View exposes the scene graph under the scene lock.
func (s *Scene) View(fn func(root scenegraph.Node)) { s.surf.View(fn) }

// HeightField returns a copy of the current heights.
func (s *Scene) HeightField() *field.Grid { return s.surf.HeightField() }

// Camera returns the same starting pose as the simplex plane.
func (s *Scene) Camera() core.CameraPose {
	return core.CameraPose{Position: mgl64.Vec3{0, -7, 5}, Up: mgl64.Vec3{0, 0, 1}, FOV: 75}
}

// ParameterControls exposes five sliders per wave.
func (s *Scene) ParameterControls() []core.ParameterControl { return s.controls }

// SetFloatParameter updates one field of one wave.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	idx, name, ok := parseWaveKey(key)
	if !ok {
		return false
	}
	var ctrl *core.ParameterControl
	for i := range s.controls {
		if s.controls[i].Key == key {
			ctrl = &s.controls[i]
			break
		}
	}
	if ctrl == nil {
		return false
	}
	value = ctrl.Clamp(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx >= len(s.waves) {
		return false
	}
	w := &s.waves[idx]
	switch name {
	case "amplitude":
		w.Amplitude = value
	case "wavelength":
		w.Wavelength = value
	case "speed":
		w.Speed = value
	case "direction_x":
		w.Direction[0] = value
	case "direction_y":
		w.Direction[1] = value
	default:
		return false
	}
	return true
}

// Parameters reports one group per wave.
func (s *Scene) Parameters() core.ParameterSnapshot {
	waves := s.Waves()
	groups := make([]core.ParameterGroup, 0, len(waves))
	for i, w := range waves {
		groups = append(groups, core.ParameterGroup{
			Name: fmt.Sprintf("Wave %d", i+1),
			Params: []core.Parameter{
				core.FloatParam(waveKey(i, "amplitude"), "Amplitude", w.Amplitude),
				core.FloatParam(waveKey(i, "wavelength"), "Wavelength", w.Wavelength),
				core.FloatParam(waveKey(i, "speed"), "Speed", w.Speed),
				core.FloatParam(waveKey(i, "direction_x"), "Direction X", w.Direction[0]),
				core.FloatParam(waveKey(i, "direction_y"), "Direction Y", w.Direction[1]),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

func init() {
	core.Register("gerstner", func(cfg map[string]string) core.Scene {
		return New(FromMap(cfg))
	})
}
