package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrNegativePeriod is returned by EvalStrict when a period component is below zero.
var ErrNegativePeriod = errors.New("noise: negative period")

const (
	// valueScale normalizes the summed corner contributions to roughly [-1, 1].
	valueScale = 10.9
	// falloff is the squared radius at which a corner stops contributing.
	falloff = 0.8
	// hashAngle converts a corner hash in [0, 289) to radians.
	hashAngle = 0.07482
)

// Result is a noise sample and its partial derivatives with respect to x and y.
type Result struct {
	Value    float64
	Gradient mgl64.Vec2
}

// Eval samples 2D periodic simplex noise with rotating gradients at p.
//
// A period component of zero disables wrapping along that axis; a positive
// component tiles the field with that period. alpha rotates every corner
// gradient by the same angle, which is how callers animate the field.
// Inputs are not validated: non-finite coordinates or negative periods yield
// NaN or meaningless output.
func Eval(p, period mgl64.Vec2, alpha float64) Result {
	// Skew into the axis-aligned triangular lattice.
	u := p[0] + p[1]*0.5
	v := p[1]

	i0u, i0v := math.Floor(u), math.Floor(v)
	fu, fv := u-i0u, v-i0v

	o1u, o1v := 0.0, 1.0
	if fv < fu {
		o1u, o1v = 1.0, 0.0
	}

	iu := [3]float64{i0u, i0u + o1u, i0u + 1}
	iv := [3]float64{i0v, i0v + o1v, i0v + 1}

	v0 := mgl64.Vec2{i0u - i0v*0.5, i0v}
	corners := [3]mgl64.Vec2{
		v0,
		{v0[0] + o1u - o1v*0.5, v0[1] + o1v},
		{v0[0] + 0.5, v0[1] + 1},
	}

	if period[0] > 0 || period[1] > 0 {
		for k, c := range corners {
			xw, yw := c[0], c[1]
			if period[0] > 0 {
				xw = wrap(xw, period[0])
			}
			if period[1] > 0 {
				yw = wrap(yw, period[1])
			}
			// The +0.5 bias absorbs rounding noise from the wrap.
			iu[k] = math.Floor(xw + 0.5*yw + 0.5)
			iv[k] = math.Floor(yw + 0.5)
		}
	}

	var (
		n    float64
		grad mgl64.Vec2
	)
	for k := range corners {
		x := p.Sub(corners[k])

		psi := cornerHash(iu[k], iv[k])*hashAngle + alpha
		g := mgl64.Vec2{math.Cos(psi), math.Sin(psi)}

		w := math.Max(falloff-x.Dot(x), 0)
		w2 := w * w
		w3 := w2 * w
		w4 := w2 * w2

		gdotx := g.Dot(x)
		n += w4 * gdotx
		grad = grad.Add(g.Mul(w4)).Add(x.Mul(-8 * w3 * gdotx))
	}

	return Result{Value: valueScale * n, Gradient: grad.Mul(valueScale)}
}

// EvalStrict behaves like Eval but rejects negative period components.
func EvalStrict(p, period mgl64.Vec2, alpha float64) (Result, error) {
	for axis, c := range period {
		if c < 0 {
			return Result{}, fmt.Errorf("%w: axis %d is %g", ErrNegativePeriod, axis, c)
		}
	}
	return Eval(p, period, alpha), nil
}

// cornerHash mixes lattice indices into a pseudo-random value in (-289, 289).
func cornerHash(iu, iv float64) float64 {
	h := math.Mod(math.Mod(iu, 289)+iv, 289)
	h = math.Mod((h*51+2)*h+iv, 289)
	return math.Mod((h*34+10)*h, 289)
}

// wrap returns x modulo period in [0, period).
func wrap(x, period float64) float64 {
	return x - period*math.Floor(x/period)
}
