package lorenz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MinSpeed is the slowest integration speed multiplier accepted by Step.
const MinSpeed = 0.1

// Params holds the Lorenz system coefficients and the base time step.
type Params struct {
	Sigma float64
	Rho   float64
	Beta  float64
	Dt    float64
}

// DefaultParams returns the classic chaotic configuration.
func DefaultParams() Params {
	return Params{Sigma: 10, Rho: 28, Beta: 8.0 / 3.0, Dt: 0.01}
}

// System integrates the Lorenz equations with explicit Euler steps.
type System struct {
	Params Params
	pos    mgl64.Vec3
}

// NewSystem returns a system starting at (1, 1, 1).
func NewSystem(p Params) *System {
	s := &System{Params: p}
	s.Reset()
	return s
}

// Reset moves the state back to (1, 1, 1).
func (s *System) Reset() { s.pos = mgl64.Vec3{1, 1, 1} }

// Position returns the current state.
func (s *System) Position() mgl64.Vec3 { return s.pos }

// Step advances the state by Dt*speed and returns the new position.
func (s *System) Step(speed float64) mgl64.Vec3 {
	speed = math.Max(speed, MinSpeed)
	dt := s.Params.Dt * speed
	x, y, z := s.pos[0], s.pos[1], s.pos[2]
	dx := s.Params.Sigma * (y - x) * dt
	dy := (x*(s.Params.Rho-z) - y) * dt
	dz := (x*y - s.Params.Beta*z) * dt
	s.pos = mgl64.Vec3{x + dx, y + dy, z + dz}
	return s.pos
}

// TrailDecay is the per-push alpha multiplier applied to older trail points.
const TrailDecay = 0.999

// Trail is a fixed-length polyline, newest point first, whose opacity fades
// with age.
type Trail struct {
	points []mgl64.Vec3
	alpha  []float64
}

// NewTrail allocates a trail of n points at the origin with a linear alpha ramp.
func NewTrail(n int) *Trail {
	if n < 1 {
		n = 1
	}
	t := &Trail{points: make([]mgl64.Vec3, n), alpha: make([]float64, n)}
	t.Reset()
	return t
}

// Reset collapses the trail to the origin and restores the initial ramp.
func (t *Trail) Reset() {
	n := len(t.points)
	for i := range t.points {
		t.points[i] = mgl64.Vec3{}
		t.alpha[i] = float64(i) / float64(n)
	}
}

// Push shifts every point one slot older and stores p as the newest point.
func (t *Trail) Push(p mgl64.Vec3) {
	for i := len(t.points) - 1; i > 0; i-- {
		t.points[i] = t.points[i-1]
		t.alpha[i] = t.alpha[i-1] * TrailDecay
	}
	t.points[0] = p
	t.alpha[0] = 1
}

// Len returns the number of points in the trail.
func (t *Trail) Len() int { return len(t.points) }

// Points exposes the trail positions, newest first.
func (t *Trail) Points() []mgl64.Vec3 { return t.points }

// Alpha exposes the per-point opacities, newest first.
func (t *Trail) Alpha() []float64 { return t.alpha }

// SegmentFade returns the metalness and transmission of a segment that is
// age pushes old in a trail of count segments capped at max.
func SegmentFade(age, count, max int) (metalness, transmission float64) {
	if max <= 0 {
		return 0, 0
	}
	metalness = math.Max(float64(age)/float64(max), 0)
	transmission = math.Max(float64(count-age)/float64(max), 0)
	return metalness, transmission
}
