package state

import (
	"image"
	"time"

	"github.com/juju/errors"

	"github.com/moodbox/moodbox/hardware/button"
	"github.com/moodbox/moodbox/hardware/display"
	"github.com/moodbox/moodbox/hardware/lcd"
	"github.com/moodbox/moodbox/hardware/rotary"
	"github.com/moodbox/moodbox/hardware/text_display"
	"github.com/moodbox/moodbox/internal/types"
)

type hardware struct {
	Knob  types.Knob
	Text  *text_display.TextDisplay
	Panel *display.Display
}

const defaultScrollDelay = 210 * time.Millisecond

// mockPanelSize matches the shipped 160x128 SPI panel.
var mockPanelSize = image.Point{X: 160, Y: 128}

// gpioKnob pairs the quadrature decoder with the push button.
type gpioKnob struct {
	rotary *rotary.Rotary
	button *button.Button
}

func (self *gpioKnob) TakeDelta() int32 { return self.rotary.Take() }
func (self *gpioKnob) Pressed() bool    { return self.button.Poll() }
func (self *gpioKnob) Close() {
	self.rotary.Close()
	self.button.Close()
}

// initInput builds the knob from rotary+button GPIO config. Without
// pins configured the knob is a script-driven mock, so the UI runs on
// a dev machine too.
func (g *Global) initInput() error {
	rconf := &g.Config.Hardware.Rotary
	bconf := &g.Config.Hardware.Button
	if rconf.PinChip == "" {
		g.Log.Debugf("init input: rotary pin_chip not set, using mock knob")
		g.Hardware.Knob = types.NewKnobMock()
		return nil
	}

	r := rotary.NewRotary(g.Log)
	if err := r.Init(*rconf); err != nil {
		return errors.Annotate(err, "init input rotary")
	}
	b := button.NewButton(g.Log, nil, nil, 0)
	if err := b.Init(*bconf); err != nil {
		r.Close()
		return errors.Annotate(err, "init input button")
	}
	g.Hardware.Knob = &gpioKnob{rotary: r, button: b}
	return nil
}

// initTextDisplay brings up the primary two-line display.
// A disabled hd44780 gets a mock-backed buffer of the same width, the
// UI never branches on hardware presence.
func (g *Global) initTextDisplay() error {
	conf := &g.Config.Hardware.HD44780
	width := conf.Width
	if width <= 0 {
		width = 16
	}
	scrollDelay := defaultScrollDelay
	if conf.ScrollDelay != 0 {
		scrollDelay = time.Duration(conf.ScrollDelay) * time.Millisecond
	}
	tdconf := &text_display.TextDisplayConfig{
		Codepage:    conf.Codepage,
		ScrollDelay: scrollDelay,
		Width:       uint32(width),
	}

	td, err := text_display.NewTextDisplay(tdconf)
	if err != nil {
		return errors.Annotate(err, "init text display")
	}
	if conf.Enable {
		dev := new(lcd.LCD)
		if err := dev.Init(conf.PinChip, conf.Pinmap, conf.Page1, width); err != nil {
			return errors.Annotate(err, "init hd44780")
		}
		td.SetDevice(dev)
	} else {
		td.SetDevice(text_display.MockDevicer{})
	}
	go td.Run()
	g.Hardware.Text = td
	return nil
}

// initPanel brings up the secondary graphical panel over fbdev.
func (g *Global) initPanel() error {
	conf := &g.Config.Hardware.Framebuffer
	if !conf.Enable {
		g.Hardware.Panel = display.NewMock(mockPanelSize)
		return nil
	}
	dev := conf.Device
	if dev == "" {
		dev = "/dev/fb1"
	}
	d, err := display.NewFb(dev)
	if err != nil {
		return errors.Annotate(err, "init panel")
	}
	if err := d.Clear(); err != nil {
		return errors.Annotate(err, "init panel clear")
	}
	g.Hardware.Panel = d
	return nil
}
