package lorenz

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFirstStep(t *testing.T) {
	s := NewSystem(DefaultParams())
	got := s.Step(1)
	// From (1,1,1): dx = 0, dy = 0.26, dz = (1 - 8/3) * 0.01.
	want := mgl64.Vec3{1, 1.26, 1 + (1-8.0/3.0)*0.01}
	if !got.ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("first step = %v, want %v", got, want)
	}
}

func TestSpeedScalesStep(t *testing.T) {
	a := NewSystem(DefaultParams())
	b := NewSystem(DefaultParams())
	pa := a.Step(2)
	p := DefaultParams()
	p.Dt *= 2
	b.Params = p
	pb := b.Step(1)
	if !pa.ApproxEqualThreshold(pb, 1e-12) {
		t.Fatalf("speed 2 step %v differs from doubled dt %v", pa, pb)
	}
}

func TestSpeedClampedToMinimum(t *testing.T) {
	a := NewSystem(DefaultParams())
	b := NewSystem(DefaultParams())
	if pa, pb := a.Step(-4), b.Step(MinSpeed); pa != pb {
		t.Fatalf("negative speed should clamp to %v: %v vs %v", MinSpeed, pa, pb)
	}
}

func TestAttractorStaysBounded(t *testing.T) {
	s := NewSystem(DefaultParams())
	for i := 0; i < 20000; i++ {
		p := s.Step(1)
		if math.Abs(p[0]) > 30 || math.Abs(p[1]) > 40 || p[2] < -1 || p[2] > 60 {
			t.Fatalf("step %d escaped the attractor: %v", i, p)
		}
	}
	s.Reset()
	if s.Position() != (mgl64.Vec3{1, 1, 1}) {
		t.Fatalf("Reset left position at %v", s.Position())
	}
}

func TestTrailShiftAndFade(t *testing.T) {
	tr := NewTrail(4)
	if a := tr.Alpha(); a[0] != 0 || a[3] != 0.75 {
		t.Fatalf("initial ramp = %v", a)
	}
	tr.Push(mgl64.Vec3{1, 0, 0})
	tr.Push(mgl64.Vec3{2, 0, 0})
	pts := tr.Points()
	if pts[0][0] != 2 || pts[1][0] != 1 || pts[2] != (mgl64.Vec3{}) {
		t.Fatalf("points after two pushes = %v", pts)
	}
	a := tr.Alpha()
	if a[0] != 1 || math.Abs(a[1]-TrailDecay) > 1e-15 {
		t.Fatalf("alpha after two pushes = %v", a)
	}
	if want := 0.25 * TrailDecay * TrailDecay; math.Abs(a[3]-want) > 1e-15 {
		t.Fatalf("oldest alpha = %v, want %v", a[3], want)
	}
}

func TestSegmentFade(t *testing.T) {
	m, tr := SegmentFade(500, 2000, 2000)
	if m != 0.25 || tr != 0.75 {
		t.Fatalf("SegmentFade(500, 2000, 2000) = (%v, %v)", m, tr)
	}
	if m, tr := SegmentFade(3, 1, 0); m != 0 || tr != 0 {
		t.Fatalf("zero cap should disable fading, got (%v, %v)", m, tr)
	}
}
