// Command textdust-term runs the disintegrator in a terminal using half-block cells.
package main

import (
	"context"
	"flag"
	"image"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/olivierh59500/text-disintegrator/effect"
	"github.com/olivierh59500/text-disintegrator/internal/cli"
)

const frameInterval = 33 * time.Millisecond // ~30 FPS

type rgb struct {
	r, g, b uint8
}

// termHost shows the controller's surface on a tcell screen
type termHost struct {
	screen tcell.Screen
	ctrl   *effect.Controller
	queue  *effect.FrameQueue
	text   string
	color  rgb
	hidden bool
	start  time.Time
}

func main() {
	settings := cli.Register(flag.CommandLine)
	logPath := flag.String("log", "", "write log output to this file")
	flag.Parse()

	if err := run(settings, *logPath); err != nil {
		log.Fatal(err)
	}
}

func run(settings *cli.Settings, logPath string) error {
	// the screen owns stdout while running
	logger := log.New(io.Discard, "", log.LstdFlags)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	fonts := effect.LoadFont(settings.FontPath)
	cfg, err := settings.EffectConfig(fonts)
	if err != nil {
		return err
	}

	r, g, b, _ := cfg.Color.RGBA()
	h := &termHost{
		queue: effect.NewFrameQueue(),
		text:  settings.Text,
		color: rgb{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)},
		start: time.Now(),
	}
	cfg.Scheduler = h.queue
	cfg.Visibility = h
	cfg.Logger = logger

	ctrl, err := effect.NewController(cfg)
	if err != nil {
		return err
	}
	h.ctrl = ctrl
	if err := ctrl.Init(context.Background()); err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	h.screen = screen

	h.loop()
	return nil
}

// SetHidden implements effect.Visibility
func (h *termHost) SetHidden(hidden bool) {
	h.hidden = hidden
}

func (h *termHost) loop() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !h.handleInput(ev) {
				return
			}
		case <-ticker.C:
			h.queue.Tick(float64(time.Since(h.start).Microseconds()) / 1000)
			h.draw()
		}
	}
}

func (h *termHost) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			if h.ctrl.Running() {
				h.ctrl.Stop()
			} else {
				h.ctrl.Start()
			}
		}
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

// viewport maps surface pixels to half-block cells with a uniform scale
type viewport struct {
	cell       float64 // surface pixels per half cell
	offX, offY float64 // surface pixel at cell (0, 0)
}

func fit(sw, sh, cols, rows int) viewport {
	cell := max(float64(sw)/float64(cols), float64(sh)/float64(rows*2))
	return viewport{
		cell: cell,
		offX: (float64(sw) - cell*float64(cols)) / 2,
		offY: (float64(sh) - cell*float64(rows*2)) / 2,
	}
}

func (h *termHost) draw() {
	h.screen.Clear()
	cols, rows := h.screen.Size()
	s := h.ctrl.Surface()
	if cols == 0 || rows == 0 || s.Width() == 0 || s.Height() == 0 {
		h.screen.Show()
		return
	}
	vp := fit(s.Width(), s.Height(), cols, rows)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := vp.offX + float64(col)*vp.cell
			top := coverage(s.Image(), x, vp.offY+float64(2*row)*vp.cell, vp.cell)
			bottom := coverage(s.Image(), x, vp.offY+float64(2*row+1)*vp.cell, vp.cell)
			if top == 0 && bottom == 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(h.shade(top)).Background(h.shade(bottom))
			h.screen.SetContent(col, row, '▀', nil, style)
		}
	}

	if !h.hidden {
		h.drawText(vp, rows)
	}
	h.screen.Show()
}

// drawText writes the original string where the text box sits on the surface
func (h *termHost) drawText(vp viewport, rows int) {
	opts := h.ctrl.Options()
	box := h.ctrl.Box()
	sc := float64(opts.Scale)
	x := sc * float64(opts.Padding)
	y := sc * (float64(opts.Padding) + box.Height/2)

	col := int((x - vp.offX) / vp.cell)
	row := int((y - vp.offY) / (2 * vp.cell))
	if row < 0 || row >= rows {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(h.color.r), int32(h.color.g), int32(h.color.b)))
	for _, ch := range h.text {
		h.screen.SetContent(col, row, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}

func (h *termHost) shade(a float64) tcell.Color {
	return tcell.NewRGBColor(
		int32(float64(h.color.r)*a),
		int32(float64(h.color.g)*a),
		int32(float64(h.color.b)*a),
	)
}

// coverage averages alpha over a size×size block, sampling at most 4×4 points
func coverage(img *image.RGBA, x, y, size float64) float64 {
	stride := max(size/4, 1)
	var sum, n float64
	for sy := y; sy < y+size; sy += stride {
		for sx := x; sx < x+size; sx += stride {
			p := image.Point{int(sx), int(sy)}
			n++
			if p.In(img.Rect) {
				sum += float64(img.RGBAAt(p.X, p.Y).A)
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n / 255
}
