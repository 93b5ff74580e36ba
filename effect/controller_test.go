package effect

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"log"
	"testing"

	"golang.org/x/image/font"
)

var testLogger = log.New(io.Discard, "", 0)

// blockedFonts never becomes ready
type blockedFonts struct{}

func (blockedFonts) Ready() <-chan struct{} { return make(chan struct{}) }

func (blockedFonts) Face(float64) (font.Face, error) { return nil, errors.New("not ready") }

// stoppingVisibility stops the controller from inside a frame
type stoppingVisibility struct {
	ctrl *Controller
}

func (s *stoppingVisibility) SetHidden(bool) {
	s.ctrl.Stop()
}

func newTestController(t *testing.T, text string, canvas *recordingCanvas) (*Controller, *FrameQueue) {
	t.Helper()
	q := NewFrameQueue()
	cfg := Config{
		Text:      text,
		FontSize:  24,
		Color:     color.Black,
		Options:   Options{Padding: 20, Density: 4, Duration: 1000},
		Scheduler: q,
		Fonts:     LoadFont(""),
		Random:    NewRand(3),
		Logger:    testLogger,
	}
	if canvas != nil {
		cfg.Canvas = func(int, int) Canvas { return canvas }
	}
	c, err := NewController(cfg)
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	return c, q
}

func TestNewControllerRequiresHostCapabilities(t *testing.T) {
	if _, err := NewController(Config{Fonts: LoadFont("")}); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("Expected ErrNoScheduler, got %v", err)
	}
	if _, err := NewController(Config{Scheduler: NewFrameQueue()}); !errors.Is(err, ErrNoFonts) {
		t.Errorf("Expected ErrNoFonts, got %v", err)
	}
}

func TestControllerInitStartsLoop(t *testing.T) {
	canvas := &recordingCanvas{}
	c, q := newTestController(t, "Dust", canvas)

	if c.Start() {
		t.Error("Expected Start to refuse before Init")
	}
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !c.Running() || q.Pending() != 1 {
		t.Fatalf("Expected running with one pending frame, got running=%v pending=%d", c.Running(), q.Pending())
	}
	if len(c.Animator().Particles()) == 0 {
		t.Fatal("Expected sampled particles")
	}
	if c.Box().Width <= 0 || c.Box().Height <= 0 {
		t.Errorf("Expected a measured text box, got %+v", c.Box())
	}

	if c.Start() {
		t.Error("Expected a second Start to be refused")
	}
	if q.Pending() != 1 {
		t.Errorf("Expected a single frame chain, got %d pending", q.Pending())
	}

	for ts := 0.0; ts < 160; ts += 16 {
		q.Tick(ts)
	}
	if canvas.clears != 10 {
		t.Errorf("Expected 10 painted frames, got %d", canvas.clears)
	}
	if q.Pending() != 1 {
		t.Errorf("Expected the loop to reschedule itself, got %d pending", q.Pending())
	}
}

func TestControllerStop(t *testing.T) {
	canvas := &recordingCanvas{}
	c, q := newTestController(t, "Dust", canvas)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	q.Tick(0)
	q.Tick(16)

	c.Stop()
	painted := canvas.clears
	q.Tick(32)
	q.Tick(48)

	if canvas.clears != painted {
		t.Errorf("Expected no frames after Stop, got %d more", canvas.clears-painted)
	}
	if c.Running() || q.Pending() != 0 {
		t.Errorf("Expected stopped with nothing pending, got running=%v pending=%d", c.Running(), q.Pending())
	}

	// restart relatches the half-cycle
	if !c.Start() {
		t.Fatal("Expected Start after Stop to succeed")
	}
	q.Tick(5000)
	q.Tick(5100)
	if got := c.Animator().Step(); got != 100 {
		t.Errorf("Expected step 100 after restart, got %v", got)
	}
}

func TestControllerStopDuringFrame(t *testing.T) {
	q := NewFrameQueue()
	vis := &stoppingVisibility{}
	c, err := NewController(Config{
		Text:       "Dust",
		FontSize:   24,
		Options:    Options{Padding: 20, Duration: 1000},
		Scheduler:  q,
		Fonts:      LoadFont(""),
		Visibility: vis,
		Random:     NewRand(3),
		Logger:     testLogger,
	})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	vis.ctrl = c
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	q.Tick(0)
	if c.Running() || q.Pending() != 0 {
		t.Errorf("Expected a frame that stops the controller not to reschedule, pending=%d", q.Pending())
	}
}

func TestControllerInitCancelled(t *testing.T) {
	c, err := NewController(Config{Scheduler: NewFrameQueue(), Fonts: blockedFonts{}, Logger: testLogger})
	if err != nil {
		t.Fatalf("NewController failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.Init(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if c.Running() {
		t.Error("Expected controller not to start")
	}
}

func TestControllerEmptyText(t *testing.T) {
	c, q := newTestController(t, "", nil)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if n := len(c.Animator().Particles()); n != 0 {
		t.Errorf("Expected no particles for empty text, got %d", n)
	}
	for ts := 0.0; ts < 100; ts += 16 {
		q.Tick(ts)
	}
	if !c.Running() {
		t.Error("Expected the empty loop to keep running")
	}
}

func TestControllerStopKeepsLastFrame(t *testing.T) {
	c, q := newTestController(t, "Dust", nil)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	q.Tick(0)
	q.Tick(600)
	c.Stop()

	pixels := append([]byte(nil), c.Surface().Image().Pix...)
	particles := append([]Particle(nil), c.Animator().Particles()...)

	q.Tick(616)
	q.Tick(1200)

	if !bytes.Equal(pixels, c.Surface().Image().Pix) {
		t.Error("Expected the surface to keep its last painted frame after Stop")
	}
	after := c.Animator().Particles()
	if len(after) != len(particles) {
		t.Fatalf("Expected a fixed particle set, got %d -> %d", len(particles), len(after))
	}
	for i := range after {
		if after[i] != particles[i] {
			t.Fatalf("Particle %d changed while stopped: %+v -> %+v", i, particles[i], after[i])
		}
	}
}

func TestControllerInitOnce(t *testing.T) {
	c, q := newTestController(t, "Dust", nil)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	surface, anim := c.Surface(), c.Animator()
	q.Tick(0)
	q.Tick(300)

	if err := c.Init(context.Background()); !errors.Is(err, ErrInitialized) {
		t.Fatalf("Expected ErrInitialized, got %v", err)
	}
	if c.Surface() != surface || c.Animator() != anim {
		t.Error("Expected a repeated Init to keep the surface and animator")
	}
	if q.Pending() != 1 {
		t.Errorf("Expected a single frame chain, got %d pending", q.Pending())
	}
	q.Tick(400)
	if got := anim.Step(); got != 400 {
		t.Errorf("Expected the running half-cycle to continue at step 400, got %v", got)
	}
}
