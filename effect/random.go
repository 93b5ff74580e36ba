package effect

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Source draws uniform values in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewRand returns a seeded math/rand source
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Noise parameters
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noiseStride  = 0.137 // avoid integer lattice points, where Perlin noise is zero
	noiseGain    = 1.6
)

// NoiseSource walks a 1D Perlin curve, so successive draws are correlated.
// Neighbouring particles get similar lifetimes and targets, which makes the
// text break up in drifting bands rather than uniform dust.
type NoiseSource struct {
	noise *perlin.Perlin
	pos   float64
}

// NewNoiseSource creates a Perlin-backed source
func NewNoiseSource(seed int64) *NoiseSource {
	return &NoiseSource{
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Float64 returns the next noise sample mapped to [0,1)
func (n *NoiseSource) Float64() float64 {
	v := n.noise.Noise1D(n.pos)
	n.pos += noiseStride

	v = (v*noiseGain + 1) / 2
	if v < 0 {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
