package noise

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Wave describes a single travelling Gerstner wave.
type Wave struct {
	Amplitude  float64
	Wavelength float64
	Speed      float64
	Direction  mgl64.Vec2
}

// DefaultWaves returns the five-wave ocean used by the gerstner scene.
func DefaultWaves() WaveTrain {
	return WaveTrain{
		{Amplitude: 0.2, Wavelength: 3, Speed: 1, Direction: mgl64.Vec2{1, 0}},
		{Amplitude: 0.1, Wavelength: 5, Speed: 1.5, Direction: mgl64.Vec2{0, 1}},
		{Amplitude: 0.06, Wavelength: 7, Speed: 0.8, Direction: mgl64.Vec2{1, 1}},
		{Amplitude: 0.02, Wavelength: 15, Speed: 0.4, Direction: mgl64.Vec2{0, 1}},
		{Amplitude: 0.14, Wavelength: 9, Speed: 1, Direction: mgl64.Vec2{0.5, 1}},
	}
}

// Gerstner returns the height of w at plane position p and time t (seconds).
// Speed advances the phase in radians per second. The direction is
// normalized; a zero direction leaves the wave spatially constant.
func Gerstner(p mgl64.Vec2, t float64, w Wave) float64 {
	if w.Wavelength <= 0 {
		return 0
	}
	k := 2 * math.Pi / w.Wavelength
	d := w.Direction
	if l := d.Len(); l > 0 {
		d = d.Mul(1 / l)
	}
	return w.Amplitude * math.Sin(k*d.Dot(p)+w.Speed*t)
}

// WaveTrain is a sum of Gerstner waves.
type WaveTrain []Wave

// Height implements Source.
func (wt WaveTrain) Height(x, y, t float64) float64 {
	p := mgl64.Vec2{x, y}
	var h float64
	for _, w := range wt {
		h += Gerstner(p, t, w)
	}
	return h
}
