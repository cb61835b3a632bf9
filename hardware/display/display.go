// Package display draws on a small color panel over linux fbdev.
// Primitives only; what to draw is decided upstairs.
package display

import (
	"image"
	"image/color"
	"strings"

	"github.com/juju/errors"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/moodbox/moodbox/hardware/display/framebuffer"
)

var (
	Black = color.RGBA{0, 0, 0, 0xff}
	White = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

type Display struct {
	fb   *framebuffer.Framebuffer
	pix  []color.RGBA
	size image.Point
}

func NewFb(dev string) (*Display, error) {
	fb, err := framebuffer.New(dev)
	if err != nil {
		return nil, errors.Annotatef(err, "framebuffer device=%s", dev)
	}
	size := fb.Size()
	d := &Display{
		fb:   fb,
		pix:  make([]color.RGBA, size.X*size.Y),
		size: size,
	}
	return d, nil
}

// NewMock draws into memory only, String2() shows the result.
// Starts from the same state as a cleared panel.
func NewMock(size image.Point) *Display {
	d := &Display{
		pix:  make([]color.RGBA, size.X*size.Y),
		size: size,
	}
	d.Fill(Black)
	return d
}

func (d *Display) Size() image.Point { return d.size }

func (d *Display) Fill(c color.RGBA) {
	for i := range d.pix {
		d.pix[i] = c
	}
}

func (d *Display) Clear() error {
	d.Fill(Black)
	return d.Flush()
}

func (d *Display) Flush() error {
	if d.fb != nil {
		if err := d.fb.Update(d.pix); err != nil {
			return err
		}
		return d.fb.Flush()
	}
	return nil
}

func (d *Display) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= d.size.X || y >= d.size.Y {
		return
	}
	d.pix[y*d.size.X+x] = c
}

func (d *Display) Get(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= d.size.X || y >= d.size.Y {
		return color.RGBA{}
	}
	return d.pix[y*d.size.X+x]
}

func (d *Display) Box(x0, y0, w, h int, c color.RGBA) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			d.Set(x, y, c)
		}
	}
}

// Disc draws a filled circle.
func (d *Display) Disc(cx, cy, r int, c color.RGBA) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				d.Set(cx+x, cy+y, c)
			}
		}
	}
}

// Ring draws a circle outline of the given thickness.
func (d *Display) Ring(cx, cy, r, thick int, c color.RGBA) {
	rin := r - thick
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			rr := x*x + y*y
			if rr <= r*r && rr >= rin*rin {
				d.Set(cx+x, cy+y, c)
			}
		}
	}
}

// Text draws 5x7 glyphs scaled by scale, input is uppercased.
// Unknown runes render as '?'.
func (d *Display) Text(x0, y0, scale int, s string, c color.RGBA) {
	if scale < 1 {
		scale = 1
	}
	x := x0
	for _, r := range strings.ToUpper(s) {
		if r == '\n' {
			x = x0
			y0 += 8 * scale
			continue
		}
		glyph, ok := font5x7[r]
		if !ok {
			glyph = font5x7['?']
		}
		for col := 0; col < 5; col++ {
			bits := glyph[col]
			for row := 0; row < 7; row++ {
				if bits&(1<<uint(row)) != 0 {
					d.Box(x+col*scale, y0+row*scale, scale, scale, c)
				}
			}
		}
		x += 6 * scale
	}
}

// TextWidth returns pixel width of s at scale, for centering.
func TextWidth(s string, scale int) int {
	if scale < 1 {
		scale = 1
	}
	return len(s)*6*scale - scale
}

func (d *Display) QR(text string, border bool, level qrcode.RecoveryLevel) error {
	qr, err := qrcode.New(text, level)
	if err != nil {
		return errors.Annotate(err, "QR")
	}
	qr.DisableBorder = !border
	minSize := minInt(d.size.X, d.size.Y)
	img := qr.Image(minSize).(*image.Paletted)
	if !img.Rect.In(image.Rectangle{Max: d.size}) {
		return errors.Errorf("QR image size=%s > display size=%s", img.Bounds().Max.String(), d.size.String())
	}
	d.palleted2(img)
	return d.Flush()
}

// String2 renders the buffer as ASCII blocks, test/debug helper.
func (d *Display) String2() string {
	b := strings.Builder{}
	b.Grow((d.size.X + 1) * d.size.Y) // +1 for \n
	for y := 0; y < d.size.Y; y++ {
		for x := 0; x < d.size.X; x++ {
			c := d.Get(x, y)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				b.WriteString("  ")
			} else {
				b.WriteString("██")
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}

func (d *Display) palleted2(img *image.Paletted) {
	min, max := img.Bounds().Min, img.Bounds().Max
	bg := toRGBA(img.Palette[0])
	fg := toRGBA(img.Palette[1])
	for y := min.Y; y < max.Y; y++ {
		for x := min.X; x < max.X; x++ {
			palidx := img.Pix[img.PixOffset(x, y)]
			c := bg
			if palidx != 0 {
				c = fg
			}
			d.Set(x, y, c)
		}
	}
}

func minInt(i1, i2 int) int {
	if i1 <= i2 {
		return i1
	}
	return i2
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r), uint8(g), uint8(b), uint8(a)}
}
