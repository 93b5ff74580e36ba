package main

import (
	"context"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/text-disintegrator/effect"
)

// ConfigFile is where S saves the current options
const ConfigFile = "config.json"

// particleCanvas paints particles on an offscreen ebiten image
type particleCanvas struct {
	img *ebiten.Image
}

func newParticleCanvas(width, height int) *particleCanvas {
	return &particleCanvas{img: ebiten.NewImage(max(width, 1), max(height, 1))}
}

// Clear empties the canvas
func (c *particleCanvas) Clear() {
	c.img.Clear()
}

// FillSquare draws one particle
func (c *particleCanvas) FillSquare(x, y, size float64, clr color.Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	r, g, b, _ := clr.RGBA()
	col := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(alpha * 255)}
	vector.DrawFilledRect(c.img, float32(x), float32(y), float32(size), float32(size), col, false)
}

// Game is the ebiten host: it ticks the frame queue from Update and shows
// the original text until the animation hides it
type Game struct {
	ctrl    *effect.Controller
	queue   *effect.FrameQueue
	canvas  *particleCanvas
	textImg *ebiten.Image
	hidden  bool
	start   time.Time
	width   int
	height  int
}

// NewGame creates a game around a fresh frame queue. Call Init before running.
func NewGame(cfg effect.Config) (*Game, error) {
	g := &Game{
		queue: effect.NewFrameQueue(),
		start: time.Now(),
	}
	cfg.Scheduler = g.queue
	cfg.Visibility = g
	cfg.Canvas = func(width, height int) effect.Canvas {
		g.canvas = newParticleCanvas(width, height)
		return g.canvas
	}

	ctrl, err := effect.NewController(cfg)
	if err != nil {
		return nil, err
	}
	g.ctrl = ctrl
	return g, nil
}

// Init runs the controller's initialisation and snapshots the rasterized text
func (g *Game) Init(ctx context.Context) error {
	if err := g.ctrl.Init(ctx); err != nil {
		return err
	}
	s := g.ctrl.Surface()
	g.width, g.height = max(s.Width(), 1), max(s.Height(), 1)
	if s.Width() > 0 && s.Height() > 0 {
		g.textImg = ebiten.NewImageFromImage(s.Image())
	}
	return nil
}

// WindowSize returns the window size in user pixels
func (g *Game) WindowSize() (int, int) {
	scale := g.ctrl.Options().Scale
	return max(g.width/scale, 1), max(g.height/scale, 1)
}

// SetHidden implements effect.Visibility
func (g *Game) SetHidden(hidden bool) {
	g.hidden = hidden
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	g.handleInput()
	g.queue.Tick(float64(time.Since(g.start).Microseconds()) / 1000)
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	if !g.hidden && g.textImg != nil {
		screen.DrawImage(g.textImg, nil)
	}
	if g.canvas != nil {
		screen.DrawImage(g.canvas.img, nil)
	}
}

// Layout returns the surface size; the window is scaled down by the oversampling factor
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// handleInput processes keyboard input
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.ctrl.Running() {
			g.ctrl.Stop()
		} else {
			g.ctrl.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := effect.SaveOptions(ConfigFile, g.ctrl.Options()); err != nil {
			log.Printf("save options: %v", err)
		}
	}
}
