package effect

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"
)

var (
	ErrNoScheduler = errors.New("effect: no frame scheduler")
	ErrNoFonts     = errors.New("effect: no font source")
	ErrInitialized = errors.New("effect: already initialised")
)

// Config wires a Controller to its host
type Config struct {
	Text     string
	FontSize float64 // nominal size; the face is built at FontSize*Scale
	Color    color.Color
	Options  Options

	Scheduler  Scheduler
	Fonts      Fonts
	Visibility Visibility // optional
	Random     Source     // optional, time-seeded math/rand by default

	// Canvas optionally replaces the surface as paint target.
	// It is called once with the surface size in device pixels.
	Canvas func(width, height int) Canvas

	Logger *log.Logger // optional, log.Default() otherwise
}

// Controller sequences initialisation and owns the frame callback chain
type Controller struct {
	cfg    Config
	opts   Options
	rnd    Source
	logger *log.Logger

	style   Style
	box     TextBox
	surface *Surface
	anim    *Animator

	frameID FrameID
	running bool
}

// NewController validates the host capabilities and returns an idle controller
func NewController(cfg Config) (*Controller, error) {
	if cfg.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if cfg.Fonts == nil {
		return nil, ErrNoFonts
	}
	if cfg.Color == nil {
		cfg.Color = color.Black
	}
	c := &Controller{
		cfg:    cfg,
		opts:   cfg.Options.WithDefaults(),
		rnd:    cfg.Random,
		logger: cfg.Logger,
	}
	if c.rnd == nil {
		c.rnd = NewRand(time.Now().UnixNano())
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c, nil
}

// Init waits for fonts, rasterizes and samples the text, then starts the loop.
// It runs once; later calls return ErrInitialized.
func (c *Controller) Init(ctx context.Context) error {
	if c.anim != nil {
		return ErrInitialized
	}
	select {
	case <-c.cfg.Fonts.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}

	face, err := c.cfg.Fonts.Face(c.cfg.FontSize * float64(c.opts.Scale))
	if err != nil {
		return fmt.Errorf("load face: %w", err)
	}
	c.style = Style{Face: face, Color: c.cfg.Color}
	c.box = MeasureBox(face, c.cfg.Text, c.opts.Scale)

	c.surface = NewSurface(c.box, c.opts)
	c.surface.DrawText(c.cfg.Text, c.style)
	particles := Sample(c.surface, c.opts, c.rnd)

	var canvas Canvas = c.surface
	if c.cfg.Canvas != nil {
		canvas = c.cfg.Canvas(c.surface.Width(), c.surface.Height())
	}
	c.anim = NewAnimator(particles, canvas, c.cfg.Visibility, c.cfg.Color, c.opts)

	c.logger.Printf("disintegrator: %q box %.0fx%.0f surface %dx%d, %d particles",
		c.cfg.Text, c.box.Width, c.box.Height, c.surface.Width(), c.surface.Height(), len(particles))

	c.Start()
	return nil
}

// Start begins scheduling frames. It returns false if the controller is
// already running or not initialised.
func (c *Controller) Start() bool {
	if c.running || c.anim == nil {
		return false
	}
	c.anim.Reset()
	c.running = true
	c.frameID = c.cfg.Scheduler.RequestFrame(c.frame)
	c.logger.Printf("disintegrator: started (%s)", c.anim.Phase())
	return true
}

// Stop cancels the pending frame. The last painted frame stays on the canvas.
func (c *Controller) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.cfg.Scheduler.CancelFrame(c.frameID)
	c.frameID = 0
	c.logger.Printf("disintegrator: stopped (%s, step %.0f)", c.anim.Phase(), c.anim.Step())
}

// Running reports whether frames are being scheduled
func (c *Controller) Running() bool {
	return c.running
}

// Surface returns the raster surface, nil before Init
func (c *Controller) Surface() *Surface {
	return c.surface
}

// Box returns the measured text box in user pixels
func (c *Controller) Box() TextBox {
	return c.box
}

// Options returns the merged options
func (c *Controller) Options() Options {
	return c.opts
}

// Animator returns the animator, nil before Init
func (c *Controller) Animator() *Animator {
	return c.anim
}

func (c *Controller) frame(t float64) {
	if !c.running {
		return
	}
	c.anim.Frame(t)
	// the frame may have stopped us through the visibility signal
	if !c.running {
		return
	}
	c.frameID = c.cfg.Scheduler.RequestFrame(c.frame)
}
