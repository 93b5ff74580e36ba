package effect

import "math"

// Particle is one sampled grid cell of the rasterized text
type Particle struct {
	Alpha     float64 // current opacity
	Longevity float64 // lifetime in ms
	X, Y      float64 // current position

	InitialX, InitialY float64 // grid position at sample time
	FinalX, FinalY     float64 // dispersal target
}

// Sample scans s on a density-step grid and emits a particle for every cell
// whose sampled alpha is non-zero. Each emitted particle draws three values
// from rnd: longevity, final X, final Y.
func Sample(s *Surface, opts Options, rnd Source) []Particle {
	opts = opts.WithDefaults()
	density := opts.Density
	duration := opts.Duration
	w, h := s.Width(), s.Height()

	scatterX := float64(w)
	scatterY := float64(w)
	if opts.SymmetricScatter {
		scatterY = float64(h)
	}

	var particles []Particle
	for y := 0; y < h-density/2; y += density {
		for x := 0; x < w-density/2; x += density {
			a := s.Alpha(x+density/4, y+density/4)
			if a == 0 {
				continue
			}
			fx, fy := float64(x), float64(y)
			longevity := math.Min(duration*0.25+rnd.Float64()*duration*0.75, duration-1)
			finalX := fx + 2*(rnd.Float64()-0.5)*scatterX
			finalY := fy + 2*(rnd.Float64()-0.5)*scatterY
			particles = append(particles, Particle{
				Alpha:     float64(a) / 255,
				Longevity: longevity,
				X:         fx,
				Y:         fy,
				InitialX:  fx,
				InitialY:  fy,
				FinalX:    finalX,
				FinalY:    finalY,
			})
		}
	}
	return particles
}
