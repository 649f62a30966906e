package field

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"wavescape/internal/noise"
)

// Grid stores a 2D height field in row-major order.
type Grid struct {
	W, H int
	data []float64
}

// NewGrid allocates a grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// At returns the height stored at (x, y).
func (g *Grid) At(x, y int) float64 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *Grid) Set(x, y int, v float64) { g.data[y*g.W+x] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// MinMax returns the smallest and largest finite heights. An all-NaN grid
// reports (0, 0).
func (g *Grid) MinMax() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Sample fills g by calling fn for every cell. Rows are evaluated in parallel
// on at most workers goroutines (runtime.NumCPU when workers <= 0); fn must
// be safe for concurrent use.
func Sample(ctx context.Context, g *Grid, workers int, fn func(x, y int) float64) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for y := 0; y < g.H; y++ {
		if gctx.Err() != nil {
			break
		}
		y := y
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := g.data[y*g.W : (y+1)*g.W]
			for x := range row {
				row[x] = fn(x, y)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// SampleSource fills g with src evaluated at integer grid coordinates at time t.
func SampleSource(ctx context.Context, g *Grid, workers int, src noise.Source, t float64) error {
	return Sample(ctx, g, workers, func(x, y int) float64 {
		return src.Height(float64(x), float64(y), t)
	})
}
