// Package task runs cancellable repeating work, such as a scene's animation
// tick, and hands ownership of the running handle to a single controller.
package task

import (
	"context"
	"sync"
	"time"
)

// Handle is a running repeating task.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every calls fn every interval until ctx is cancelled or Stop is called.
// fn receives the task's context, which Stop cancels, and the time elapsed
// since the task started. It never runs concurrently with itself.
func Every(ctx context.Context, interval time.Duration, fn func(ctx context.Context, elapsed time.Duration)) *Handle {
	if interval <= 0 {
		interval = time.Second / 30
	}
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	start := time.Now()
	go func() {
		defer close(h.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				fn(ctx, now.Sub(start))
			}
		}
	}()
	return h
}

// Stop cancels the task and waits for an in-flight call to return. It is
// safe to call more than once and on a nil Handle.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed once the task has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Controller owns at most one running Handle.
type Controller struct {
	mu      sync.Mutex
	current *Handle
}

// Replace stops the currently owned task, if any, and takes ownership of h.
func (c *Controller) Replace(h *Handle) {
	c.mu.Lock()
	prev := c.current
	c.current = h
	c.mu.Unlock()
	if prev != nil && prev != h {
		prev.Stop()
	}
}

// Stop stops and releases the owned task.
func (c *Controller) Stop() {
	c.Replace(nil)
}

// Running reports whether the controller owns a task.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current != nil
}
