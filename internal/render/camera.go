package render

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV = 75
	// Near and Far bound the perspective frustum.
	Near = 0.1
	Far  = 1000

	maxPitch = math.Pi/2 - 0.01
	minDist  = 0.5
)

// axisSpring eases one camera coordinate towards its target.
type axisSpring struct {
	pos, vel, target float64
}

func (a *axisSpring) step(s harmonica.Spring) {
	a.pos, a.vel = s.Update(a.pos, a.vel, a.target)
}

func (a *axisSpring) settle(v float64) {
	a.pos, a.vel, a.target = v, 0, v
}

// OrbitCamera circles a target point. Orbit and Zoom set goals that Update
// approaches with critically damped springs.
type OrbitCamera struct {
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FOV    float64

	forward, side mgl64.Vec3
	yaw, pitch    axisSpring
	dist          axisSpring
	spring        harmonica.Spring
}

// NewOrbitCamera places a camera at position looking at target. fps is the
// rate Update is called at.
func NewOrbitCamera(position, target, up mgl64.Vec3, fov float64, fps int) *OrbitCamera {
	if fov <= 0 {
		fov = DefaultFOV
	}
	if fps <= 0 {
		fps = 60
	}
	c := &OrbitCamera{FOV: fov, spring: harmonica.NewSpring(harmonica.FPS(fps), 8, 1)}
	c.Place(position, target, up)
	return c
}

// Place snaps the camera to a new pose without easing.
func (c *OrbitCamera) Place(position, target, up mgl64.Vec3) {
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 0, 1}
	}
	u := up.Normalize()
	off := position.Sub(target)
	d := off.Len()
	if d < minDist {
		d = minDist
		off = u.Mul(d)
	}
	// Split the offset into a component along up and a horizontal heading.
	h := off.Sub(u.Mul(off.Dot(u)))
	if h.Len() < 1e-9 {
		h = anyPerpendicular(u)
	}
	c.Target = target
	c.Up = u
	c.forward = h.Normalize()
	c.side = u.Cross(c.forward)
	c.yaw.settle(0)
	c.pitch.settle(math.Max(-maxPitch, math.Min(maxPitch, math.Asin(off.Dot(u)/d))))
	c.dist.settle(d)
}

func anyPerpendicular(u mgl64.Vec3) mgl64.Vec3 {
	ref := mgl64.Vec3{1, 0, 0}
	if math.Abs(u.Dot(ref)) > 0.9 {
		ref = mgl64.Vec3{0, 1, 0}
	}
	return ref.Sub(u.Mul(ref.Dot(u)))
}

// Orbit turns the goal heading by dyaw and tilts it by dpitch radians.
func (c *OrbitCamera) Orbit(dyaw, dpitch float64) {
	c.yaw.target += dyaw
	c.pitch.target = math.Max(-maxPitch, math.Min(maxPitch, c.pitch.target+dpitch))
}

// Zoom scales the goal distance by factor.
func (c *OrbitCamera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.dist.target = math.Max(minDist, math.Min(Far/2, c.dist.target*factor))
}

// Update advances the springs by one frame.
func (c *OrbitCamera) Update() {
	c.yaw.step(c.spring)
	c.pitch.step(c.spring)
	c.dist.step(c.spring)
}

// Distance returns the current distance to the target.
func (c *OrbitCamera) Distance() float64 { return c.dist.pos }

// Eye returns the current camera position.
func (c *OrbitCamera) Eye() mgl64.Vec3 {
	cy, sy := math.Cos(c.yaw.pos), math.Sin(c.yaw.pos)
	cp, sp := math.Cos(c.pitch.pos), math.Sin(c.pitch.pos)
	dir := c.forward.Mul(cp * cy).Add(c.side.Mul(cp * sy)).Add(c.Up.Mul(sp))
	return c.Target.Add(dir.Mul(c.dist.pos))
}

// View returns the world-to-camera matrix.
func (c *OrbitCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, c.Up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *OrbitCamera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, Near, Far)
}

// Projector maps world points to pixels for one frame.
type Projector struct {
	mvp   mgl64.Mat4
	w, h  float64
	focal float64
}

// Projector freezes the camera into a projector for a w x h viewport.
func (c *OrbitCamera) Projector(w, h int) Projector {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	aspect := float64(w) / float64(h)
	return Projector{
		mvp:   c.Projection(aspect).Mul4(c.View()),
		w:     float64(w),
		h:     float64(h),
		focal: float64(h) / 2 / math.Tan(mgl64.DegToRad(c.FOV)/2),
	}
}

// Project returns the pixel position of p and its distance along the view
// axis. ok is false when p lies behind the near plane.
func (p Projector) Project(v mgl64.Vec3) (screen mgl64.Vec2, depth float64, ok bool) {
	clip := p.mvp.Mul4x1(v.Vec4(1))
	if clip[3] < Near {
		return mgl64.Vec2{}, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	return mgl64.Vec2{(ndc[0] + 1) / 2 * p.w, (1 - ndc[1]) / 2 * p.h}, clip[3], true
}

// PixelRadius converts a world-space radius at depth into pixels.
func (p Projector) PixelRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * p.focal / depth
}

// Project is a convenience wrapper around Projector for a single point.
func Project(c *OrbitCamera, v mgl64.Vec3, w, h int) (mgl64.Vec2, float64, bool) {
	return c.Projector(w, h).Project(v)
}
