package ui

import (
	"image/color"

	"github.com/moodbox/moodbox/hardware/display"
)

// moodPalette cycles by mood index, chosen for the RGB565 panel.
var moodPalette = []color.RGBA{
	{0xff, 0xd7, 0x00, 0xff}, // gold
	{0x00, 0xb0, 0xf0, 0xff}, // sky
	{0xff, 0x40, 0x40, 0xff}, // red
	{0x40, 0xe0, 0x40, 0xff}, // green
	{0xc0, 0x60, 0xff, 0xff}, // violet
}

func moodColor(idx int) color.RGBA {
	return moodPalette[idx%len(moodPalette)]
}

// panelDrawer is what the render scheduler needs from the secondary
// display; one call per owed redraw.
type panelDrawer interface {
	Idle(frame uint32)
	MoodIcon(idx int, mood string)
	Confirm(idx int, message string)
}

// panelRenderer owns all drawing on the secondary graphical panel.
type panelRenderer struct {
	d *display.Display
}

var _ panelDrawer = &panelRenderer{}

func newPanelRenderer(d *display.Display) *panelRenderer {
	return &panelRenderer{d: d}
}

// Idle draws a breathing ring while the kiosk waits for name/class
// input. frame advances every UI tick.
func (self *panelRenderer) Idle(frame uint32) {
	size := self.d.Size()
	cx, cy := size.X/2, size.Y/2
	rmax := minInt(size.X, size.Y)/2 - 4

	// triangle wave, period 64 frames
	phase := int(frame % 64)
	if phase >= 32 {
		phase = 64 - phase
	}
	r := rmax/2 + phase*rmax/64

	self.d.Fill(display.Black)
	self.d.Ring(cx, cy, r, 3, color.RGBA{0x30, 0x80, 0xc0, 0xff})
	_ = self.d.Flush()
}

// MoodIcon fills the panel with the mood's color disc and its label.
func (self *panelRenderer) MoodIcon(idx int, mood string) {
	size := self.d.Size()
	cx := size.X / 2
	c := moodColor(idx)

	self.d.Fill(display.Black)
	self.d.Disc(cx, size.Y/2-8, minInt(size.X, size.Y)/3, c)
	self.text(mood, size.Y-12, 1, display.White)
	_ = self.d.Flush()
}

// Confirm shows the mood-aligned message over the mood color.
func (self *panelRenderer) Confirm(idx int, message string) {
	c := moodColor(idx)
	size := self.d.Size()

	self.d.Fill(display.Black)
	self.d.Box(0, 0, size.X, 8, c)
	self.d.Box(0, size.Y-8, size.X, 8, c)
	self.text(message, size.Y/2-4, 2, display.White)
	_ = self.d.Flush()
}

// text draws one centered line, dropping to scale 1 when it overflows.
func (self *panelRenderer) text(s string, y, scale int, c color.RGBA) {
	size := self.d.Size()
	for scale > 1 && display.TextWidth(s, scale) > size.X {
		scale--
	}
	x := (size.X - display.TextWidth(s, scale)) / 2
	if x < 0 {
		x = 0
	}
	self.d.Text(x, y, scale, s, c)
}

func minInt(i1, i2 int) int {
	if i1 <= i2 {
		return i1
	}
	return i2
}
