package effect

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Canvas is a paint target for particles
type Canvas interface {
	Clear()
	FillSquare(x, y, size float64, c color.Color, alpha float64)
}

// Surface is the oversampled raster the text is drawn on, sampled from,
// and (by default) repainted with particles every frame
type Surface struct {
	img     *image.RGBA
	box     TextBox
	padding int
	scale   int
}

// SurfaceSize returns the device pixel size of the padded, oversampled surface
func SurfaceSize(box TextBox, opts Options) (int, int) {
	if box.Width <= 0 || box.Height <= 0 {
		return 0, 0
	}
	s := float64(opts.Scale)
	p := float64(opts.Padding)
	return int(math.Ceil(s * (box.Width + 2*p))), int(math.Ceil(s * (box.Height + 2*p)))
}

// NewSurface allocates a transparent surface for box
func NewSurface(box TextBox, opts Options) *Surface {
	opts = opts.WithDefaults()
	w, h := SurfaceSize(box, opts)
	return &Surface{
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		box:     box,
		padding: opts.Padding,
		scale:   opts.Scale,
	}
}

// Image exposes the backing pixels
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Width returns the width in device pixels
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the height in device pixels
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Scale returns the oversampling factor
func (s *Surface) Scale() int {
	return s.scale
}

// DrawText draws text once with the given style. The face is expected to be
// sized for the surface scale. Glyphs start at the left padding and the
// bottom of the em box lands where the original text box ends.
func (s *Surface) DrawText(text string, style Style) {
	if text == "" || s.Width() == 0 || s.Height() == 0 {
		return
	}
	sc := float64(s.scale)
	// ideographic baseline in user space, then back to the alphabetic one
	ideographic := (float64(s.Height())/sc + s.box.Height) / 2
	baseline := fixed.Int26_6(ideographic*sc*64) - style.Face.Metrics().Descent

	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(style.Color),
		Face: style.Face,
		Dot:  fixed.Point26_6{X: fixed.I(s.padding * s.scale), Y: baseline},
	}
	d.DrawString(text)
}

// Alpha returns the alpha channel at (x, y), or 0 outside the surface
func (s *Surface) Alpha(x, y int) uint8 {
	if !(image.Point{x, y}.In(s.img.Rect)) {
		return 0
	}
	return s.img.RGBAAt(x, y).A
}

// Clear resets every pixel to transparent
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// FillSquare composites an axis-aligned square at (x, y) with the given opacity
func (s *Surface) FillSquare(x, y, size float64, c color.Color, alpha float64) {
	if alpha <= 0 || size <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	r := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+size)), int(math.Round(y+size)),
	).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(s.img, r, image.NewUniform(c), image.Point{}, mask, image.Point{}, draw.Over)
}
