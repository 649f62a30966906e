package noise

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestEvalDeterministic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for i := 0; i < 1000; i++ {
		p := mgl64.Vec2{rng.Float64()*200 - 100, rng.Float64()*200 - 100}
		period := mgl64.Vec2{float64(rng.IntN(3)) * 25, float64(rng.IntN(3)) * 25}
		alpha := rng.Float64() * 2 * math.Pi
		a := Eval(p, period, alpha)
		b := Eval(p, period, alpha)
		if math.Float64bits(a.Value) != math.Float64bits(b.Value) ||
			math.Float64bits(a.Gradient[0]) != math.Float64bits(b.Gradient[0]) ||
			math.Float64bits(a.Gradient[1]) != math.Float64bits(b.Gradient[1]) {
			t.Fatalf("Eval(%v, %v, %v) not bit-identical: %+v vs %+v", p, period, alpha, a, b)
		}
	}
}

func TestEvalGoldenOrigin(t *testing.T) {
	got := Eval(mgl64.Vec2{0, 0}, mgl64.Vec2{0, 0}, 0)
	if got.Value != 0 {
		t.Fatalf("value at origin = %v, want 0", got.Value)
	}
	want := mgl64.Vec2{4.464640000000002, 0}
	if math.Abs(got.Gradient[0]-want[0]) > 1e-12 || math.Abs(got.Gradient[1]-want[1]) > 1e-12 {
		t.Fatalf("gradient at origin = %v, want %v", got.Gradient, want)
	}
}

func TestEvalGoldenSamples(t *testing.T) {
	cases := []struct {
		p, period mgl64.Vec2
		alpha     float64
		value     float64
		grad      mgl64.Vec2
	}{
		{mgl64.Vec2{1.23, 4.56}, mgl64.Vec2{50, 50}, 0, -0.4103619055373713, mgl64.Vec2{-0.365497167152117, 1.4808870174266953}},
		{mgl64.Vec2{0.7, 0.2}, mgl64.Vec2{0, 0}, 0.5, -0.10065433234519468, mgl64.Vec2{0.1936125886422087, 1.7760515077724788}},
		{mgl64.Vec2{3.25, -1.75}, mgl64.Vec2{8, 8}, 1.0, 0.4016801969499318, mgl64.Vec2{-1.9928778714438227, 1.1764184745820851}},
		{mgl64.Vec2{10, 7}, mgl64.Vec2{50, 50}, 0.25, 0.06379886531851674, mgl64.Vec2{4.289816775202051, 1.132153239557235}},
	}
	for _, tc := range cases {
		got := Eval(tc.p, tc.period, tc.alpha)
		if math.Abs(got.Value-tc.value) > 1e-9 {
			t.Errorf("Eval(%v, %v, %v).Value = %.17g, want %.17g", tc.p, tc.period, tc.alpha, got.Value, tc.value)
		}
		if math.Abs(got.Gradient[0]-tc.grad[0]) > 1e-9 || math.Abs(got.Gradient[1]-tc.grad[1]) > 1e-9 {
			t.Errorf("Eval(%v, %v, %v).Gradient = %v, want %v", tc.p, tc.period, tc.alpha, got.Gradient, tc.grad)
		}
	}
}

func TestCornerHashUsesOwnRow(t *testing.T) {
	// (1, 2) and (3, 0) share the first mixing stage; the second stage must
	// add each corner's own row index.
	if got := cornerHash(1, 2); got != 199 {
		t.Fatalf("cornerHash(1, 2) = %v, want 199", got)
	}
	if got := cornerHash(3, 0); got != 94 {
		t.Fatalf("cornerHash(3, 0) = %v, want 94", got)
	}
}

func TestEvalSharedFirstStageHash(t *testing.T) {
	// With period 3 two corners of this simplex collide after the first
	// mixing stage while sitting on different rows. Reusing the first
	// corner's row for both would give -0.44405377578932265.
	got := Eval(mgl64.Vec2{0.047, 2.681}, mgl64.Vec2{3, 3}, 0)
	if want := -0.22588451834910997; math.Abs(got.Value-want) > 1e-9 {
		t.Fatalf("value = %.17g, want %.17g", got.Value, want)
	}
}

func TestEvalPeriodicScenario(t *testing.T) {
	period := mgl64.Vec2{50, 50}
	a := Eval(mgl64.Vec2{1.23, 4.56}, period, 0)
	b := Eval(mgl64.Vec2{1.23 + 50, 4.56}, period, 0)
	if math.Abs(a.Value-b.Value) > 1e-6 {
		t.Fatalf("tile mismatch: %v vs %v", a.Value, b.Value)
	}
}

func TestEvalPeriodicity(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 0))
	for _, P := range []float64{8, 16, 50} {
		period := mgl64.Vec2{P, P}
		for i := 0; i < 5000; i++ {
			p := mgl64.Vec2{rng.Float64()*4*P - 2*P, rng.Float64()*4*P - 2*P}
			alpha := rng.Float64() * 6
			base := Eval(p, period, alpha).Value
			dx := Eval(p.Add(mgl64.Vec2{P, 0}), period, alpha).Value
			dy := Eval(p.Add(mgl64.Vec2{0, P}), period, alpha).Value
			if math.Abs(base-dx) > 1e-6 || math.Abs(base-dy) > 1e-6 {
				t.Fatalf("P=%v p=%v: base %v, +x %v, +y %v", P, p, base, dx, dy)
			}
		}
	}
}

// referenceEval is a direct non-periodic rendition that always hashes the
// raw simplex corner indices.
func referenceEval(x, y, alpha float64) float64 {
	u := x + y*0.5
	i0u, i0v := math.Floor(u), math.Floor(y)
	o1u, o1v := 0.0, 1.0
	if y-i0v < u-i0u {
		o1u, o1v = 1, 0
	}
	cu := [3]float64{i0u, i0u + o1u, i0u + 1}
	cv := [3]float64{i0v, i0v + o1v, i0v + 1}
	var n float64
	for k := 0; k < 3; k++ {
		vx := cu[k] - cv[k]*0.5
		ox, oy := x-vx, y-cv[k]
		h := math.Mod(math.Mod(cu[k], 289)+cv[k], 289)
		h = math.Mod((h*51+2)*h+cv[k], 289)
		h = math.Mod((h*34+10)*h, 289)
		psi := h*0.07482 + alpha
		w := math.Max(0.8-(ox*ox+oy*oy), 0)
		n += w * w * w * w * (math.Cos(psi)*ox + math.Sin(psi)*oy)
	}
	return 10.9 * n
}

func TestEvalNonPeriodicMatchesReference(t *testing.T) {
	points := []mgl64.Vec2{
		{0, 0}, {0.5, 0.5}, {0.3, 0.9}, {1.7, 2.2}, {-3.4, 5.1},
		{12.25, -7.75}, {99.9, 0.01}, {-0.5, -0.5}, {42, 17},
	}
	for _, p := range points {
		for _, alpha := range []float64{0, 0.7, 3.1} {
			got := Eval(p, mgl64.Vec2{}, alpha).Value
			want := referenceEval(p[0], p[1], alpha)
			if math.Abs(got-want) > 1e-12 {
				t.Errorf("Eval(%v, 0, %v) = %v, reference %v", p, alpha, got, want)
			}
		}
	}
}

func TestEvalLargePeriodMatchesUnwrapped(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 0))
	for i := 0; i < 2000; i++ {
		p := mgl64.Vec2{rng.Float64()*100 + 1, rng.Float64()*100 + 1}
		a := Eval(p, mgl64.Vec2{}, 0.4)
		b := Eval(p, mgl64.Vec2{1 << 20, 1 << 20}, 0.4)
		if a != b {
			t.Fatalf("p=%v: unwrapped %+v, huge period %+v", p, a, b)
		}
	}
}

func TestEvalRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 0))
	for i := 0; i < 100000; i++ {
		p := mgl64.Vec2{rng.Float64()*400 - 200, rng.Float64()*400 - 200}
		v := Eval(p, mgl64.Vec2{}, rng.Float64()*2*math.Pi).Value
		if v < -1.1 || v > 1.1 {
			t.Fatalf("Eval(%v) = %v, out of [-1.1, 1.1]", p, v)
		}
	}
}

func TestEvalContinuousAcrossEdges(t *testing.T) {
	// The diagonal x = 0.5y crosses the u-step/v-step boundary inside each
	// cell; a horizontal line crosses the cell edges at integer v.
	const step = 1e-4
	lines := []struct{ origin, dir mgl64.Vec2 }{
		{mgl64.Vec2{-2, 0.37}, mgl64.Vec2{1, 0}},
		{mgl64.Vec2{0.2, -2}, mgl64.Vec2{0, 1}},
		{mgl64.Vec2{-1, -1}, mgl64.Vec2{0.6, 0.8}},
	}
	for _, line := range lines {
		prev := Eval(line.origin, mgl64.Vec2{}, 0.3).Value
		for i := 1; i <= 60000; i++ {
			p := line.origin.Add(line.dir.Mul(float64(i) * step))
			v := Eval(p, mgl64.Vec2{}, 0.3).Value
			if math.Abs(v-prev) > 1e-2 {
				t.Fatalf("jump of %v at %v", v-prev, p)
			}
			prev = v
		}
	}
}

func TestEvalGradientMatchesFiniteDifference(t *testing.T) {
	const h = 1e-4
	rng := rand.New(rand.NewPCG(9, 0))
	for i := 0; i < 2000; i++ {
		p := mgl64.Vec2{rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		alpha := rng.Float64() * 6
		period := mgl64.Vec2{}
		if i%2 == 1 {
			period = mgl64.Vec2{50, 50}
			p = p.Add(mgl64.Vec2{20, 20})
		}
		g := Eval(p, period, alpha).Gradient
		fx := (Eval(p.Add(mgl64.Vec2{h, 0}), period, alpha).Value - Eval(p.Sub(mgl64.Vec2{h, 0}), period, alpha).Value) / (2 * h)
		fy := (Eval(p.Add(mgl64.Vec2{0, h}), period, alpha).Value - Eval(p.Sub(mgl64.Vec2{0, h}), period, alpha).Value) / (2 * h)
		if math.Abs(fx-g[0]) > 1e-3 || math.Abs(fy-g[1]) > 1e-3 {
			t.Fatalf("p=%v alpha=%v: analytic %v, finite difference (%v, %v)", p, alpha, g, fx, fy)
		}
	}
}

func TestEvalPropagatesNaN(t *testing.T) {
	got := Eval(mgl64.Vec2{math.NaN(), 1}, mgl64.Vec2{}, 0)
	if !math.IsNaN(got.Value) {
		t.Fatalf("expected NaN value, got %v", got.Value)
	}
}

func TestEvalStrict(t *testing.T) {
	if _, err := EvalStrict(mgl64.Vec2{1, 2}, mgl64.Vec2{-1, 0}, 0); !errors.Is(err, ErrNegativePeriod) {
		t.Fatalf("expected ErrNegativePeriod, got %v", err)
	}
	got, err := EvalStrict(mgl64.Vec2{1, 2}, mgl64.Vec2{50, 0}, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := Eval(mgl64.Vec2{1, 2}, mgl64.Vec2{50, 0}, 0.2); got != want {
		t.Fatalf("EvalStrict = %+v, Eval = %+v", got, want)
	}
}
