package lorenz

import (
	"context"
	"image/color"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/core"
	"wavescape/internal/lorenz"
	"wavescape/internal/scenegraph"
)

// Config controls the attractor scene.
type Config struct {
	Params lorenz.Params
	Speed  float64
	Trail  int
}

// DefaultConfig returns the classic parameters with a 1000 point trail.
func DefaultConfig() Config {
	return Config{Params: lorenz.DefaultParams(), Speed: 1, Trail: 1000}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	core.ParseConfig(cfg,
		map[string]*float64{
			"sigma": &c.Params.Sigma,
			"rho":   &c.Params.Rho,
			"beta":  &c.Params.Beta,
			"dt":    &c.Params.Dt,
			"speed": &c.Speed,
		},
		map[string]*int{"trail": &c.Trail},
	)
	c.Speed = speedControl.Clamp(c.Speed)
	c.Trail = int(trailControl.Clamp(float64(c.Trail)))
	return c
}

var (
	speedControl = core.FloatSlider("speed", "Speed", lorenz.MinSpeed, 5, 0.1)
	trailControl = core.ParameterControl{
		Key: "trail", Label: "Trail", Type: core.ParamTypeInt,
		Step: 100, Min: 100, Max: 2000, HasMin: true, HasMax: true,
	}
)

var blue = color.RGBA{B: 255, A: 255}

// Scene traces the Lorenz attractor with a dot and a fading trail.
type Scene struct {
	cfg Config

	mu     sync.RWMutex
	sys    *lorenz.System
	trail  *lorenz.Trail
	speed  float64
	dot    *scenegraph.Mesh
	line   *scenegraph.Mesh
	root   *scenegraph.Group
	frames int
}

// New creates a lorenz scene.
func New(cfg Config) *Scene {
	s := &Scene{
		cfg:   cfg,
		sys:   lorenz.NewSystem(cfg.Params),
		speed: cfg.Speed,
		dot: &scenegraph.Mesh{
			Name:      "dot",
			Positions: make([]mgl64.Vec3, 1),
			Color:     blue,
			PointSize: 0.5,
			Visible:   true,
		},
		line: &scenegraph.Mesh{Name: "trail", Color: blue, Visible: true},
	}
	s.root = &scenegraph.Group{Name: "lorenz-root"}
	s.root.Add(
		s.dot,
		s.line,
		&scenegraph.Light{Name: "ambient", Kind: scenegraph.LightAmbient, Color: scenegraph.White, Intensity: 10},
	)
	s.resizeTrail(cfg.Trail)
	s.dot.Positions[0] = s.sys.Position()
	return s
}

// resizeTrail replaces the trail and its mesh. Callers hold mu or own s.
func (s *Scene) resizeTrail(n int) {
	s.trail = lorenz.NewTrail(n)
	s.line.Positions = s.trail.Points()
	s.line.Alpha = make([]float64, n)
	s.line.Edges = make([][2]int32, 0, n-1)
	for i := 0; i+1 < n; i++ {
		s.line.Edges = append(s.line.Edges, [2]int32{int32(i), int32(i + 1)})
	}
	s.frames = 0
	s.syncAlpha()
}

// syncAlpha folds the trail's decay and the per-segment fade into the mesh
// opacity. Slots not yet filled since the last reset stay invisible.
func (s *Scene) syncAlpha() {
	n := s.trail.Len()
	count := min(s.frames, n)
	for i, a := range s.trail.Alpha() {
		if i >= count {
			s.line.Alpha[i] = 0
			continue
		}
		metal, _ := lorenz.SegmentFade(i, count, n)
		s.line.Alpha[i] = a * (1 - metal)
	}
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "lorenz" }

// Interval returns the 60 Hz update period.
func (s *Scene) Interval() time.Duration { return time.Second / 60 }

// Reset restarts the attractor at (1, 1, 1) with an empty trail. The
// system is deterministic, so seed is ignored.
func (s *Scene) Reset(int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sys.Reset()
	s.trail.Reset()
	s.frames = 0
	s.speed = s.cfg.Speed
	s.dot.Positions[0] = s.sys.Position()
	s.syncAlpha()
}

// Tick advances the attractor by one step at the current speed.
func (s *Scene) Tick(ctx context.Context, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.sys.Step(s.speed)
	s.trail.Push(p)
	s.frames++
	s.dot.Positions[0] = p
	s.syncAlpha()
	return nil
}

// Position returns the attractor state.
func (s *Scene) Position() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sys.Position()
}

// Speed returns the integration speed multiplier.
func (s *Scene) Speed() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// View exposes the scene graph under the scene lock.
func (s *Scene) View(fn func(root scenegraph.Node)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.root)
}

// Camera returns the starting pose looking back at the attractor's wings.
func (s *Scene) Camera() core.CameraPose {
	return core.CameraPose{
		Position: mgl64.Vec3{76.44, -39.98, 83.50},
		Target:   mgl64.Vec3{0, 0, 25},
		Up:       mgl64.Vec3{0, 1, 0},
		FOV:      75,
	}
}

// ParameterControls exposes the speed slider and trail length.
func (s *Scene) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{speedControl, trailControl}
}

// SetFloatParameter updates the speed.
func (s *Scene) SetFloatParameter(key string, value float64) bool {
	if key != speedControl.Key {
		return false
	}
	s.mu.Lock()
	s.speed = speedControl.Clamp(value)
	s.mu.Unlock()
	return true
}

// SetIntParameter resizes the trail, discarding its history.
func (s *Scene) SetIntParameter(key string, value int) bool {
	if key != trailControl.Key {
		return false
	}
	n := int(trailControl.Clamp(float64(value)))
	s.mu.Lock()
	defer s.mu.Unlock()
	if n != s.trail.Len() {
		s.resizeTrail(n)
	}
	return true
}

// Parameters reports the system coefficients and live state.
func (s *Scene) Parameters() core.ParameterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p := s.sys.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "System",
			Params: []core.Parameter{
				core.FloatParam("sigma", "Sigma", p.Sigma),
				core.FloatParam("rho", "Rho", p.Rho),
				core.FloatParam("beta", "Beta", p.Beta),
				core.FloatParam("dt", "Dt", p.Dt),
			},
		},
		{
			Name: "Animation",
			Params: []core.Parameter{
				core.FloatParam("speed", "Speed", s.speed),
				core.IntParam("trail", "Trail", s.trail.Len()),
				core.IntParam("steps", "Steps", s.frames),
			},
		},
	}}
}

func init() {
	core.Register("lorenz", func(cfg map[string]string) core.Scene {
		return New(FromMap(cfg))
	})
}
