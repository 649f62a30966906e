package field

import (
	"context"
	"errors"
	"math"
	"slices"
	"testing"

	"wavescape/internal/noise"
)

func TestGridWrapAndIndex(t *testing.T) {
	g := NewGrid(4, 3)
	if x, y := g.Wrap(-1, 3); x != 3 || y != 0 {
		t.Fatalf("Wrap(-1, 3) = (%d, %d), want (3, 0)", x, y)
	}
	g.Set(2, 1, 1.5)
	if g.Cells()[g.Index(2, 1)] != 1.5 || g.At(2, 1) != 1.5 {
		t.Fatalf("Set/At mismatch: %v", g.Cells())
	}
	g.Clear()
	if g.At(2, 1) != 0 {
		t.Fatal("Clear did not zero the grid")
	}
	if z := NewGrid(0, -2); z.W != 1 || z.H != 1 {
		t.Fatalf("degenerate grid should clamp to 1x1, got %dx%d", z.W, z.H)
	}
}

func TestGridMinMaxSkipsNonFinite(t *testing.T) {
	g := NewGrid(3, 1)
	copy(g.Cells(), []float64{math.NaN(), -0.5, 2})
	lo, hi := g.MinMax()
	if lo != -0.5 || hi != 2 {
		t.Fatalf("MinMax = (%v, %v), want (-0.5, 2)", lo, hi)
	}
	copy(g.Cells(), []float64{math.NaN(), math.Inf(1), math.NaN()})
	if lo, hi := g.MinMax(); lo != 0 || hi != 0 {
		t.Fatalf("MinMax of non-finite grid = (%v, %v)", lo, hi)
	}
}

func TestSampleMatchesSerial(t *testing.T) {
	src := noise.DefaultPeriodicField()
	g := NewGrid(100, 100)
	if err := SampleSource(context.Background(), g, 8, src, 1.25); err != nil {
		t.Fatalf("SampleSource: %v", err)
	}
	want := make([]float64, 100*100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			want[y*100+x] = src.Height(float64(x), float64(y), 1.25)
		}
	}
	if !slices.Equal(g.Cells(), want) {
		t.Fatal("parallel sampling differs from serial evaluation")
	}

	single := NewGrid(100, 100)
	if err := SampleSource(context.Background(), single, 1, src, 1.25); err != nil {
		t.Fatalf("SampleSource single worker: %v", err)
	}
	if !slices.Equal(single.Cells(), want) {
		t.Fatal("single-worker sampling differs from serial evaluation")
	}
}

func TestSampleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGrid(16, 16)
	err := Sample(ctx, g, 2, func(x, y int) float64 { return 1 })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
