package effect

import (
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts is the font-readiness signal of the host. Face blocks until ready.
type Fonts interface {
	Ready() <-chan struct{}
	Face(size float64) (font.Face, error)
}

// Style is the resolved font and colour the text is drawn with
type Style struct {
	Face  font.Face
	Color color.Color
}

// TextBox is the content box of the source text in user (unscaled) pixels
type TextBox struct {
	Width, Height float64
}

// FontLoader parses a font file in the background and closes Ready when done
type FontLoader struct {
	ready chan struct{}
	font  *opentype.Font
	err   error
}

// LoadFont starts loading the font at path. An empty path selects Go Regular.
func LoadFont(path string) *FontLoader {
	l := &FontLoader{ready: make(chan struct{})}
	go func() {
		defer close(l.ready)
		l.font, l.err = parseFont(path)
	}()
	return l
}

func parseFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return fnt, nil
}

// Ready is closed once the font is parsed (or failed to parse)
func (l *FontLoader) Ready() <-chan struct{} {
	return l.ready
}

// Face returns a face of the given pixel size
func (l *FontLoader) Face(size float64) (font.Face, error) {
	<-l.ready
	if l.err != nil {
		return nil, l.err
	}
	return opentype.NewFace(l.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// MeasureBox returns the unscaled box of text drawn with a face that was
// created at scale times the nominal size
func MeasureBox(face font.Face, text string, scale int) TextBox {
	if text == "" || scale <= 0 {
		return TextBox{}
	}
	m := face.Metrics()
	s := float64(scale)
	return TextBox{
		Width:  float64(font.MeasureString(face, text).Ceil()) / s,
		Height: float64((m.Ascent + m.Descent).Ceil()) / s,
	}
}

// ParseColor parses a hex colour like "#e0e0e0"
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}
