package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"wavescape/internal/field"
	"wavescape/internal/noise"
	"wavescape/internal/render"
)

type options struct {
	source  string
	w, h    int
	t       float64
	workers int
	seed    int64
	out     string
	stats   bool
	frames  int
	dt      float64
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.source, "source", "psrd", "height source: "+strings.Join(noise.SourceNames(), ", "))
	fs.IntVar(&o.w, "w", 256, "grid width in samples")
	fs.IntVar(&o.h, "h", 256, "grid height in samples")
	fs.Float64Var(&o.t, "t", 0, "time in seconds")
	fs.IntVar(&o.workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	fs.Int64Var(&o.seed, "seed", 1, "seed for seeded sources")
	fs.StringVar(&o.out, "out", "", "PNG output path; with -frames > 1 it must contain a %d verb")
	fs.BoolVar(&o.stats, "stats", false, "print min/max/mean and, for psrd, the periodicity error")
	fs.IntVar(&o.frames, "frames", 1, "number of frames to render")
	fs.Float64Var(&o.dt, "dt", 1.0/30, "seconds between frames")
}

func (o *options) validate() error {
	if o.w <= 0 || o.h <= 0 {
		return fmt.Errorf("grid size %dx%d must be positive", o.w, o.h)
	}
	if o.frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", o.frames)
	}
	if o.frames > 1 && o.out != "" && !framePattern(o.out) {
		return fmt.Errorf("-out %q needs an integer verb such as %%d when rendering more than one frame", o.out)
	}
	if o.out == "" && !o.stats {
		return errors.New("nothing to do: set -out and/or -stats")
	}
	return nil
}

// framePattern reports whether pattern formats distinct frame numbers to
// distinct, well-formed paths.
func framePattern(pattern string) bool {
	first, second := fmt.Sprintf(pattern, 0), fmt.Sprintf(pattern, 1)
	return first != second && !strings.Contains(first, "%!")
}

type gridStats struct {
	Min, Max, Mean float64
	NonFinite      int
	// PeriodError is the largest height difference between the grid and the
	// grid shifted by one spatial period; NaN when the source is not periodic.
	PeriodError float64
}

func (s gridStats) String() string {
	line := fmt.Sprintf("min=%.6f max=%.6f mean=%.6f", s.Min, s.Max, s.Mean)
	if s.NonFinite > 0 {
		line += fmt.Sprintf(" nonfinite=%d", s.NonFinite)
	}
	if !math.IsNaN(s.PeriodError) {
		line += fmt.Sprintf(" period_err=%.3g", s.PeriodError)
	}
	return line
}

func computeStats(ctx context.Context, g *field.Grid, src noise.Source, t float64, workers int) (gridStats, error) {
	s := gridStats{PeriodError: math.NaN()}
	s.Min, s.Max = g.MinMax()
	var sum float64
	var n int
	for _, v := range g.Cells() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			s.NonFinite++
			continue
		}
		sum += v
		n++
	}
	if n > 0 {
		s.Mean = sum / float64(n)
	}

	pf, ok := src.(noise.PeriodicField)
	if !ok || pf.Frequency == 0 {
		return s, nil
	}
	sx, sy := pf.Period[0]/pf.Frequency, pf.Period[1]/pf.Frequency
	if sx == 0 && sy == 0 {
		return s, nil
	}
	shifted := field.NewGrid(g.W, g.H)
	err := field.Sample(ctx, shifted, workers, func(x, y int) float64 {
		return src.Height(float64(x)+sx, float64(y)+sy, t)
	})
	if err != nil {
		return s, err
	}
	var worst float64
	for i, v := range shifted.Cells() {
		worst = math.Max(worst, math.Abs(v-g.Cells()[i]))
	}
	s.PeriodError = worst
	return s, nil
}

func writePNG(path string, g *field.Grid, p *render.HeightPalette) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, render.HeightImage(g, p)); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func run(ctx context.Context, o options, stdout io.Writer) error {
	if err := o.validate(); err != nil {
		return err
	}
	src, err := noise.NewSource(o.source, o.seed)
	if err != nil {
		return err
	}
	var palette *render.HeightPalette
	if o.out != "" {
		if palette, err = render.NewHeightPalette(); err != nil {
			return err
		}
	}

	g := field.NewGrid(o.w, o.h)
	for frame := 0; frame < o.frames; frame++ {
		t := o.t + float64(frame)*o.dt
		start := time.Now()
		if err := field.SampleSource(ctx, g, o.workers, src, t); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		elapsed := time.Since(start)

		if o.out != "" {
			path := o.out
			if o.frames > 1 {
				path = fmt.Sprintf(o.out, frame)
			}
			if err := writePNG(path, g, palette); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "wrote %s (%dx%d, t=%.3f, %s)\n", path, o.w, o.h, t, elapsed.Round(time.Microsecond))
		}
		if o.stats {
			s, err := computeStats(ctx, g, src, t, o.workers)
			if err != nil {
				return fmt.Errorf("frame %d stats: %w", frame, err)
			}
			fmt.Fprintf(stdout, "%s t=%.3f %s\n", o.source, t, s)
		}
	}
	return nil
}

func main() {
	var o options
	o.bind(flag.CommandLine)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.Fatalf("heightmap: %v", err)
	}
}
