// Package button turns a raw GPIO level into discrete press events.
package button

import (
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	gpio "github.com/temoto/gpio-cdev-go"

	"github.com/moodbox/moodbox/log2"
)

const DefaultDebounce = 200 * time.Millisecond

type Config struct {
	PinChip    string `hcl:"pin_chip"`
	Pin        string `hcl:"pin"`
	ActiveLow  bool   `hcl:"active_low"`
	DebounceMs int    `hcl:"debounce_ms"`
}

// ReadFunc samples the raw input, true means asserted (pressed).
type ReadFunc func() (bool, error)

// Button accepts at most one press per debounce window.
//
// Known quirk, kept on purpose: detection is level-triggered with
// throttling, not edge-triggered. A button held down re-fires every
// window. The shipped devices behave this way and the UI depends on
// presses being cheap to repeat.
type Button struct {
	log      *log2.Log
	read     ReadFunc
	now      func() int64 // nanoseconds
	debounce time.Duration
	// nanoseconds of the last accepted press, far past = none yet
	lastAccepted int64 // atomic

	chip gpio.Chiper
	ev   gpio.Eventer
}

// NewButton with explicit read/now is the constructor for tests and
// emulation; Init wires the real GPIO line.
func NewButton(log *log2.Log, read ReadFunc, now func() int64, debounce time.Duration) *Button {
	if now == nil {
		now = atomic_clock.Source
	}
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	return &Button{
		log:      log,
		read:     read,
		now:      now,
		debounce: debounce,
		// the source may read near zero right after boot; seed far in
		// the past so the first press is never swallowed
		lastAccepted: math.MinInt64 / 2,
	}
}

func (self *Button) Init(conf Config) error {
	chip, err := gpio.Open(conf.PinChip, "button")
	if err != nil {
		return errors.Annotatef(err, "button chip=%s", conf.PinChip)
	}
	self.chip = chip

	line64, err := strconv.ParseUint(conf.Pin, 10, 32)
	if err != nil {
		return errors.Annotatef(err, "button pin='%s'", conf.Pin)
	}
	var flag gpio.RequestFlag
	if conf.ActiveLow {
		flag = gpio.GPIOHANDLE_REQUEST_ACTIVE_LOW
	}
	// event request gives a level-readable fd without reserving a
	// whole handle; edges themselves are not consumed here
	self.ev, err = chip.GetLineEvent(uint32(line64), flag, gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "button")
	if err != nil {
		return errors.Annotatef(err, "button line=%d", line64)
	}
	self.read = func() (bool, error) {
		v, err := self.ev.Read()
		return v != 0, err
	}
	self.debounce = DefaultDebounce
	if conf.DebounceMs != 0 {
		self.debounce = time.Duration(conf.DebounceMs) * time.Millisecond
	}
	return nil
}

func (self *Button) Close() {
	if self.ev != nil {
		self.ev.Close()
	}
	if self.chip != nil {
		self.chip.Close()
	}
}

// Poll returns true for at most one press per debounce window.
// Never errors out to the caller: a read failure is logged and counts
// as not pressed.
func (self *Button) Poll() bool {
	level, err := self.read()
	if err != nil {
		self.log.Errorf("button read err=%v", err)
		return false
	}
	if !level {
		return false
	}
	now := self.now()
	if now-atomic.LoadInt64(&self.lastAccepted) < int64(self.debounce) {
		return false
	}
	atomic.StoreInt64(&self.lastAccepted, now)
	return true
}
