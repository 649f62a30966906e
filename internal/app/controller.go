package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"wavescape/internal/core"
	"wavescape/internal/router"
	"wavescape/internal/task"
)

// ErrUnknownScene is returned when a route names a scene that is not registered.
var ErrUnknownScene = errors.New("app: unknown scene")

// Controller owns the active scene and its tick task. Navigating to a new
// route cancels the previous scene's task before the next one starts.
type Controller struct {
	router    *router.Router
	sceneCfg  map[string]map[string]string
	factories map[string]core.Factory

	mu     sync.Mutex
	ctx    context.Context
	tasks  task.Controller
	scene  core.Scene
	route  router.Route
	seed   int64
	seeds  *core.SeedSequence
	paused bool
	// clock holds the animation time of the latest tick of the current run.
	clock *atomic.Int64
}

// NewController builds a controller over r using the global scene registry.
// sceneCfg supplies optional FromMap overrides keyed by scene name.
func NewController(r *router.Router, seed int64, sceneCfg map[string]map[string]string) *Controller {
	return &Controller{
		router:    r,
		sceneCfg:  sceneCfg,
		factories: core.Scenes(),
		seed:      seed,
		seeds:     core.NewSeedSequence(seed),
		ctx:       context.Background(),
	}
}

// Navigate resolves hash, builds and resets its scene, and starts the
// scene's tick task in place of the previous one. The scene is ticked once
// at time zero before Navigate returns; if that tick fails the scene stays
// installed but no task is started.
func (c *Controller) Navigate(ctx context.Context, hash string) (router.Route, error) {
	rt, err := c.router.Resolve(hash)
	if err != nil {
		return router.Route{}, err
	}
	factory, ok := c.factories[rt.Scene]
	if !ok {
		return router.Route{}, fmt.Errorf("%w %q for route %s", ErrUnknownScene, rt.Scene, rt.Hash())
	}
	scene := factory(c.sceneCfg[rt.Scene])

	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks.Stop()
	c.ctx = ctx
	c.scene = scene
	c.route = rt
	c.scene.Reset(c.seed)
	if err := c.restartLocked(); err != nil {
		return rt, fmt.Errorf("app: first tick of %s: %w", rt.Scene, err)
	}
	return rt, nil
}

// restartLocked ticks the scene at time zero and, unless paused, starts a
// fresh task. c.mu must be held.
func (c *Controller) restartLocked() error {
	c.clock = new(atomic.Int64)
	if err := c.scene.Tick(c.ctx, 0); err != nil {
		return err
	}
	if !c.paused {
		c.startLocked()
	}
	return nil
}

// startLocked runs the scene's task from the current clock. The clock only
// advances on committed ticks. The task never takes c.mu, so stopping it
// while holding c.mu cannot deadlock.
func (c *Controller) startLocked() {
	scene, clock := c.scene, c.clock
	offset := time.Duration(clock.Load())
	h := task.Every(c.ctx, scene.Interval(), func(ctx context.Context, elapsed time.Duration) {
		total := offset + elapsed
		if err := scene.Tick(ctx, total); err != nil {
			return
		}
		clock.Store(int64(total))
	})
	c.tasks.Replace(h)
}

// Scene returns the active scene, or nil before the first navigation.
func (c *Controller) Scene() core.Scene {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene
}

// Route returns the active route.
func (c *Controller) Route() router.Route {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// Elapsed returns the animation time of the last tick.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.clock == nil {
		return 0
	}
	return time.Duration(c.clock.Load())
}

// Running reports whether a tick task is active.
func (c *Controller) Running() bool { return c.tasks.Running() }

// Paused reports whether ticking is suspended.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// SetPaused suspends or resumes ticking. Resuming continues from the
// animation time reached before the pause.
func (c *Controller) SetPaused(paused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused == paused {
		return
	}
	c.paused = paused
	if c.scene == nil {
		return
	}
	if paused {
		c.tasks.Stop()
		return
	}
	c.startLocked()
}

// Reset reseeds the active scene and restarts its animation clock.
func (c *Controller) Reset(seed int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seed = seed
	if c.scene == nil {
		return nil
	}
	c.tasks.Stop()
	c.scene.Reset(seed)
	return c.restartLocked()
}

// Reseed resets the active scene with the next seed of the sequence rooted
// at the controller's starting seed and returns it.
func (c *Controller) Reseed() (int64, error) {
	c.mu.Lock()
	seed := c.seeds.Next()
	c.mu.Unlock()
	return seed, c.Reset(seed)
}

// Seed returns the seed used by the last reset.
func (c *Controller) Seed() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seed
}

// Close stops the active task.
func (c *Controller) Close() {
	c.tasks.Stop()
}
