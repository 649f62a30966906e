package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownSource is returned by NewSource for unrecognised names.
var ErrUnknownSource = errors.New("noise: unknown source")

// Source produces a height for a plane coordinate at time t (seconds).
type Source interface {
	Height(x, y, t float64) float64
}

// PeriodicField drives Eval the way the simplex scene does: coordinates are
// scaled by Frequency, time by TimeSpeed, and the value by Amplitude.
type PeriodicField struct {
	Frequency float64
	Amplitude float64
	TimeSpeed float64
	Period    mgl64.Vec2
}

// DefaultPeriodicField returns the simplex scene's starting parameters.
func DefaultPeriodicField() PeriodicField {
	return PeriodicField{Frequency: 0.1, Amplitude: 0.2, TimeSpeed: 1, Period: mgl64.Vec2{50, 50}}
}

// Sample evaluates the field and scales both value and gradient into the
// caller's coordinate space.
func (f PeriodicField) Sample(x, y, t float64) Result {
	r := Eval(mgl64.Vec2{x * f.Frequency, y * f.Frequency}, f.Period, t*f.TimeSpeed)
	r.Value *= f.Amplitude
	r.Gradient = r.Gradient.Mul(f.Amplitude * f.Frequency)
	return r
}

// Height implements Source.
func (f PeriodicField) Height(x, y, t float64) float64 {
	return f.Sample(x, y, t).Value
}

// OpenSimplex is a static, non-periodic simplex plane.
type OpenSimplex struct {
	Scale     float64
	Amplitude float64
	noise     opensimplex.Noise
}

// NewOpenSimplex seeds an OpenSimplex source.
func NewOpenSimplex(seed int64, scale, amplitude float64) *OpenSimplex {
	return &OpenSimplex{Scale: scale, Amplitude: amplitude, noise: opensimplex.New(seed)}
}

// Height implements Source. Time is ignored.
func (o *OpenSimplex) Height(x, y, _ float64) float64 {
	return o.Amplitude * o.noise.Eval2(x*o.Scale, y*o.Scale)
}

// Perlin is a classic multi-octave Perlin plane that drifts along x over time.
type Perlin struct {
	Scale     float64
	Amplitude float64
	Drift     float64
	p         *perlin.Perlin
}

// NewPerlin seeds a Perlin source with three octaves.
func NewPerlin(seed int64, scale, amplitude float64) *Perlin {
	return &Perlin{Scale: scale, Amplitude: amplitude, p: perlin.NewPerlin(2, 2, 3, seed)}
}

// Height implements Source.
func (p *Perlin) Height(x, y, t float64) float64 {
	return p.Amplitude * p.p.Noise2D((x+p.Drift*t)*p.Scale, y*p.Scale)
}

// SourceNames lists the names NewSource accepts.
func SourceNames() []string {
	return []string{"psrd", "opensimplex", "perlin", "gerstner"}
}

// NewSource builds a Source by name with default parameters.
func NewSource(name string, seed int64) (Source, error) {
	switch name {
	case "psrd":
		return DefaultPeriodicField(), nil
	case "opensimplex":
		return NewOpenSimplex(seed, 0.1, 1), nil
	case "perlin":
		return NewPerlin(seed, 0.1, 1), nil
	case "gerstner":
		return DefaultWaves(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownSource, name)
	}
}
