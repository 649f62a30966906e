package core

import (
	"context"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"wavescape/internal/field"
	"wavescape/internal/scenegraph"
)

// Scene defines the contract every animated scene implements.
//
// Tick runs on the scene's repeating task goroutine while View is called
// from the render loop, so implementations guard their state internally.
type Scene interface {
	Name() string
	Reset(seed int64)
	// Tick advances the animation to elapsed time since the scene started.
	// It returns ctx.Err() when ctx is cancelled before the frame is
	// committed, leaving the previous frame in place.
	Tick(ctx context.Context, elapsed time.Duration) error
	// Interval is the period between ticks.
	Interval() time.Duration
	// View calls fn with the scene graph root while holding the scene's read lock.
	View(fn func(root scenegraph.Node))
}

// CameraPose places the initial camera.
type CameraPose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
	FOV      float64
}

// CameraProvider is implemented by scenes with a preferred starting camera.
type CameraProvider interface {
	Camera() CameraPose
}

// HeightFieldProvider exposes a copy of a scene's current height field.
type HeightFieldProvider interface {
	HeightField() *field.Grid
}

// Factory constructs a Scene using an optional configuration map.
type Factory func(cfg map[string]string) Scene

var scenes = map[string]Factory{}

// Register adds a scene factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	scenes[name] = f
}

// Scenes exposes the registry of available scene factories.
func Scenes() map[string]Factory {
	return scenes
}

// SceneNames lists the registered scene names in sorted order.
func SceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
