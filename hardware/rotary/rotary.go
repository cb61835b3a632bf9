// Package rotary reconstructs signed rotation from a two-signal
// quadrature encoder knob.
package rotary

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	gpio "github.com/temoto/gpio-cdev-go"

	"github.com/moodbox/moodbox/log2"
)

// grayStep classifies a 4-bit transition code (previous 2-bit sample
// shifted left, new sample in low bits) into a step direction.
// 8 codes are valid single steps, everything else is contact noise.
var grayStep = [16]int8{
	0b0000: 0,
	0b0001: +1,
	0b0010: -1,
	0b0011: 0,
	0b0100: -1,
	0b0101: 0,
	0b0110: 0,
	0b0111: +1,
	0b1000: +1,
	0b1001: 0,
	0b1010: 0,
	0b1011: -1,
	0b1100: 0,
	0b1101: -1,
	0b1110: +1,
	0b1111: 0,
}

// Decoder accumulates valid quadrature steps into a signed counter.
//
// Edge() must be called from a single goroutine (the edge watcher plays
// the interrupt handler role). Take() may be called from any other
// single consumer; the atomic swap is the only synchronization between
// the two contexts.
type Decoder struct {
	delta int32 // atomic
	last  uint8 // 2-bit (A<<1 | B), edge context only
}

// Reset seeds the previous sample, e.g. from initial line levels.
func (self *Decoder) Reset(a, b bool) {
	self.last = sample(a, b)
	atomic.StoreInt32(&self.delta, 0)
}

// Edge consumes one electrical transition with both current levels.
// Invalid codes change nothing, not even the stored sample.
func (self *Decoder) Edge(a, b bool) {
	cur := sample(a, b)
	code := self.last<<2 | cur
	if step := grayStep[code]; step != 0 {
		atomic.AddInt32(&self.delta, int32(step))
		self.last = cur
	}
}

// Take drains the accumulated delta, read-and-clear as one atomic unit.
func (self *Decoder) Take() int32 {
	return atomic.SwapInt32(&self.delta, 0)
}

func sample(a, b bool) uint8 {
	var s uint8
	if a {
		s |= 0b10
	}
	if b {
		s |= 0b01
	}
	return s
}

type Config struct {
	PinChip string `hcl:"pin_chip"`
	PinA    string `hcl:"pin_a"`
	PinB    string `hcl:"pin_b"`
}

const waitTimeout = 500 * time.Millisecond

// Rotary binds a Decoder to two GPIO lines watched for both edges.
// Edges from both lines funnel into one goroutine so decoding stays
// single-threaded.
type Rotary struct {
	Decoder

	log    *log2.Log
	alive  *alive.Alive
	chip   gpio.Chiper
	evA    gpio.Eventer
	evB    gpio.Eventer
	levelA bool
	levelB bool
}

func NewRotary(log *log2.Log) *Rotary {
	return &Rotary{
		log:   log,
		alive: alive.NewAlive(),
	}
}

func (self *Rotary) Init(conf Config) error {
	chip, err := gpio.Open(conf.PinChip, "rotary")
	if err != nil {
		return errors.Annotatef(err, "rotary chip=%s", conf.PinChip)
	}
	self.chip = chip

	lineA, err := parseLine(conf.PinA)
	if err != nil {
		return errors.Annotate(err, "rotary pin_a")
	}
	lineB, err := parseLine(conf.PinB)
	if err != nil {
		return errors.Annotate(err, "rotary pin_b")
	}

	if self.evA, err = chip.GetLineEvent(lineA, 0, gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "rotary-a"); err != nil {
		return errors.Annotatef(err, "rotary line=%d", lineA)
	}
	if self.evB, err = chip.GetLineEvent(lineB, 0, gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "rotary-b"); err != nil {
		return errors.Annotatef(err, "rotary line=%d", lineB)
	}

	va, err := self.evA.Read()
	if err != nil {
		return errors.Annotate(err, "rotary read a")
	}
	vb, err := self.evB.Read()
	if err != nil {
		return errors.Annotate(err, "rotary read b")
	}
	self.levelA = va != 0
	self.levelB = vb != 0
	self.Reset(self.levelA, self.levelB)

	edgech := make(chan edge, 16)
	go self.watch(self.evA, lineTagA, edgech)
	go self.watch(self.evB, lineTagB, edgech)
	go self.decodeLoop(edgech)
	return nil
}

func (self *Rotary) Close() {
	self.alive.Stop()
	if self.evA != nil {
		self.evA.Close()
	}
	if self.evB != nil {
		self.evB.Close()
	}
	if self.chip != nil {
		self.chip.Close()
	}
}

type lineTag uint8

const (
	lineTagA lineTag = iota
	lineTagB
)

type edge struct {
	tag   lineTag
	level bool
}

func (self *Rotary) watch(ev gpio.Eventer, tag lineTag, edgech chan<- edge) {
	if !self.alive.Add(1) {
		return
	}
	defer self.alive.Done()

	stopch := self.alive.StopChan()
	for self.alive.IsRunning() {
		ed, err := ev.Wait(waitTimeout)
		if err == gpio.ErrTimeout {
			continue
		}
		if gpio.IsClosed(err) {
			return
		}
		if err != nil {
			self.log.Errorf("rotary watch tag=%d err=%v", tag, err)
			continue
		}
		// decodeLoop exits on stop and leaves edgech unread, the send
		// must not outlive it
		select {
		case edgech <- edge{tag: tag, level: ed.ID == gpio.GPIOEVENT_EVENT_RISING_EDGE}:
		case <-stopch:
			return
		}
	}
}

// decodeLoop is the single decode context, it alone touches line levels
// and feeds Decoder.Edge.
func (self *Rotary) decodeLoop(edgech <-chan edge) {
	if !self.alive.Add(1) {
		return
	}
	defer self.alive.Done()

	stopch := self.alive.StopChan()
	for {
		select {
		case e := <-edgech:
			switch e.tag {
			case lineTagA:
				self.levelA = e.level
			case lineTagB:
				self.levelB = e.level
			}
			self.Edge(self.levelA, self.levelB)

		case <-stopch:
			return
		}
	}
}

func parseLine(s string) (uint32, error) {
	x, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Annotatef(err, "gpio line='%s'", s)
	}
	return uint32(x), nil
}
