package effect

import (
	"image/color"
	"math"
)

// visibilityWindow caps the step range (ms) in which the original text is toggled
const visibilityWindow = 500.0

// Visibility receives hide/show requests for the original text
type Visibility interface {
	SetHidden(hidden bool)
}

// Animator advances the particle simulation one frame at a time.
// It is not safe for concurrent use; frames must arrive from a single loop.
type Animator struct {
	particles []Particle
	canvas    Canvas
	vis       Visibility
	color     color.Color
	opts      Options

	phase   Phase
	step    float64
	t0      float64
	latched bool
}

// NewAnimator creates an animator painting particles onto canvas. vis may be nil.
func NewAnimator(particles []Particle, canvas Canvas, vis Visibility, c color.Color, opts Options) *Animator {
	return &Animator{
		particles: particles,
		canvas:    canvas,
		vis:       vis,
		color:     c,
		opts:      opts.WithDefaults(),
	}
}

// Reset unlatches the half-cycle anchor; the next frame relatches it
func (a *Animator) Reset() {
	a.latched = false
}

// Step returns the motion model time argument for the next frame
func (a *Animator) Step() float64 {
	return a.step
}

// Phase returns the current direction
func (a *Animator) Phase() Phase {
	return a.phase
}

// Particles returns the particle set. Callers must not modify it.
func (a *Animator) Particles() []Particle {
	return a.particles
}

// Frame runs one frame for the host timestamp t in ms
func (a *Animator) Frame(t float64) {
	if !a.latched {
		a.t0 = t
		a.latched = true
	}
	elapsed := t - a.t0
	duration := a.opts.Duration

	if a.vis != nil && math.Abs(a.step) < math.Min(visibilityWindow, duration*0.5) {
		a.vis.SetHidden(a.phase == Dispersing)
	}

	a.update()
	a.paint()

	a.step = step(a.phase, elapsed, duration)

	next, done := Advance(a.phase, elapsed, duration)
	a.phase = next
	if done {
		a.latched = false
	}
}

// update recomputes every particle from the current step
func (a *Animator) update() {
	for i := range a.particles {
		p := &a.particles[i]
		p.Alpha = Opacity(p.Longevity, a.step)
		p.X = Position(p.InitialX, p.FinalX, p.Longevity, a.step)
		p.Y = Position(p.InitialY, p.FinalY, p.Longevity, a.step)
	}
}

func (a *Animator) paint() {
	if a.canvas == nil {
		return
	}
	a.canvas.Clear()
	size := float64(a.opts.Density)
	for _, p := range a.particles {
		a.canvas.FillSquare(p.X, p.Y, size, a.color, p.Alpha)
	}
}
