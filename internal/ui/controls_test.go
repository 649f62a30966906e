package ui

import (
	"context"
	"testing"
	"time"

	"wavescape/internal/core"
	"wavescape/internal/scenegraph"
)

type fakeScene struct {
	speed float64
	trail int
	sets  int
}

func (f *fakeScene) Name() string                              { return "lorenz" }
func (f *fakeScene) Reset(int64)                               {}
func (f *fakeScene) Tick(context.Context, time.Duration) error { return nil }
func (f *fakeScene) Interval() time.Duration                   { return time.Second }
func (f *fakeScene) View(fn func(root scenegraph.Node))        { fn(&scenegraph.Group{}) }

func (f *fakeScene) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		core.FloatSlider("speed", "Speed", 0.1, 5, 0.1),
		{Key: "trail", Label: "Trail", Type: core.ParamTypeInt, Step: 100, Min: 100, Max: 2000, HasMin: true, HasMax: true},
		core.FloatSlider("missing", "Missing", 0, 1, 0.1),
	}
}

func (f *fakeScene) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "Animation",
		Params: []core.Parameter{
			core.FloatParam("speed", "Speed", f.speed),
			core.IntParam("trail", "Trail", f.trail),
		},
	}}}
}

func (f *fakeScene) SetFloatParameter(key string, v float64) bool {
	if key != "speed" {
		return false
	}
	f.speed = v
	f.sets++
	return true
}

func (f *fakeScene) SetIntParameter(key string, v int) bool {
	if key != "trail" {
		return false
	}
	f.trail = v
	f.sets++
	return true
}

func TestControlsRefresh(t *testing.T) {
	c := NewControls(&fakeScene{speed: 1, trail: 1000})
	if c.Title() != "Lorenz Controls" {
		t.Fatalf("Title() = %q", c.Title())
	}
	if c.Len() != 3 {
		t.Fatalf("Len() = %d", c.Len())
	}
	if s := c.State(0); !s.HasValue || s.Value != "1.0" {
		t.Fatalf("speed state = %+v", s)
	}
	if s := c.State(1); !s.HasValue || s.IntValue != 1000 {
		t.Fatalf("trail state = %+v", s)
	}
	if s := c.State(2); s.HasValue || s.Value != "--" {
		t.Fatalf("missing param state = %+v", s)
	}
}

func TestControlsAdjustClamps(t *testing.T) {
	scene := &fakeScene{speed: 4.95, trail: 1950}
	c := NewControls(scene)
	if !c.AdjustKey("speed", 1) || scene.speed != 5 {
		t.Fatalf("speed = %v, want clamp to 5", scene.speed)
	}
	if c.CanAdjust(0, 1) {
		t.Fatal("speed at max should not step up")
	}
	if c.AdjustKey("speed", 1) {
		t.Fatal("adjust past max should report no change")
	}
	if !c.Adjust(1, 1) || scene.trail != 2000 {
		t.Fatalf("trail = %d", scene.trail)
	}
	if !c.Adjust(1, -1) || scene.trail != 1900 {
		t.Fatalf("trail = %d", scene.trail)
	}
	if c.Adjust(2, 1) || c.AdjustKey("nope", 1) || c.Adjust(9, 1) {
		t.Fatal("controls without a value must not adjust")
	}
	if scene.sets != 3 {
		t.Fatalf("setter called %d times", scene.sets)
	}
}

func TestControlsWithoutProvider(t *testing.T) {
	c := NewControls(plainScene{})
	if c.Len() != 0 || c.Title() != "Controls" {
		t.Fatalf("plain scene: len %d title %q", c.Len(), c.Title())
	}
	if c.AdjustKey("speed", 1) {
		t.Fatal("nothing to adjust")
	}
}

type plainScene struct{}

func (plainScene) Name() string                              { return "" }
func (plainScene) Reset(int64)                               {}
func (plainScene) Tick(context.Context, time.Duration) error { return nil }
func (plainScene) Interval() time.Duration                   { return time.Second }
func (plainScene) View(func(root scenegraph.Node))           {}

func TestFormatFloatPrecision(t *testing.T) {
	cases := map[float64]string{0.5: "0.1", 0.05: "0.12", 0.005: "0.123", 0.0005: "0.1230"}
	for step, want := range cases {
		got := formatFloat(core.FloatSlider("k", "K", 0, 1, step), 0.123)
		if got != want {
			t.Errorf("step %v: got %q, want %q", step, got, want)
		}
	}
}

func TestInsetLayout(t *testing.T) {
	x, y, scale := InsetLayout(100, 100, 800, 600)
	if scale != 1.5 {
		t.Fatalf("scale = %v", scale)
	}
	if x != InsetMargin || y != 600-InsetMargin-150 {
		t.Fatalf("corner = (%v, %v)", x, y)
	}
	if _, _, s := InsetLayout(10, 10, 800, 600); s != 4 {
		t.Fatalf("small grids should cap at 4x, got %v", s)
	}
	if _, _, s := InsetLayout(0, 10, 800, 600); s != 0 {
		t.Fatal("empty grid should have zero scale")
	}
}
