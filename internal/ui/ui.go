// Package ui runs the kiosk interaction: turn the knob to pick a name,
// class and mood, push to advance, watch the confirmation, start over.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/temoto/atomic_clock"

	"github.com/moodbox/moodbox/hardware/text_display"
	"github.com/moodbox/moodbox/internal/state"
	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/internal/types"
	"github.com/moodbox/moodbox/log2"
)

type State uint32

const (
	StateInvalid State = iota
	StateSelectName
	StateSelectClass
	StateSelectMood

	// StateSubmit is transient, the same tick carries on to Confirm.
	StateSubmit

	StateConfirm
	StateStop
)

func (s State) String() string {
	switch s {
	case StateInvalid:
		return "Invalid"
	case StateSelectName:
		return "SelectName"
	case StateSelectClass:
		return "SelectClass"
	case StateSelectMood:
		return "SelectMood"
	case StateSubmit:
		return "Submit"
	case StateConfirm:
		return "Confirm"
	case StateStop:
		return "Stop"
	}
	return fmt.Sprintf("unknown(%d)", uint32(s))
}

const (
	defaultTick         = 20 * time.Millisecond
	defaultConfirmDelay = 3 * time.Second
)

const (
	defaultPromptName  = "Who are you?"
	defaultPromptClass = "Your class?"
	defaultPromptMood  = "How do you feel?"
	defaultSubmitted   = "Thank you!"
)

// selection phases in order, indexes into UI.options / UI.sel
const (
	pickName = iota
	pickClass
	pickMood
	pickCount
)

type UI struct { //nolint:maligned
	g       *state.Global
	log     *log2.Log
	knob    types.Knob
	display *text_display.TextDisplay
	panel   panelDrawer

	options [pickCount][]string
	prompts [pickCount]string

	moodMessages []string
	msgSubmitted string

	tickd        time.Duration
	confirmDelay time.Duration
	// monotonic nanoseconds, swappable in tests
	now     func() int64
	wallNow func() time.Time

	state        State
	sel          [pickCount]int
	confirmUntil int64
	frame        uint32

	lastText  textSnapshot
	lastPanel panelSnapshot
}

var _ types.UIer = &UI{}

func NewUI(ctx context.Context) *UI {
	g := state.GetGlobal(ctx)
	self := &UI{
		g:       g,
		log:     log2.ContextValueLogger(ctx),
		knob:    g.Hardware.Knob,
		display: g.Hardware.Text,
		panel:   newPanelRenderer(g.Hardware.Panel),
		now:     atomic_clock.Source,
		wallNow: time.Now,
	}

	conf := &g.Config.UI
	self.options[pickName] = conf.Names
	self.options[pickClass] = conf.Classes
	self.options[pickMood] = conf.Moods
	self.moodMessages = conf.MoodMessages

	self.prompts = [pickCount]string{defaultPromptName, defaultPromptClass, defaultPromptMood}
	if conf.Front.MsgPromptName != "" {
		self.prompts[pickName] = conf.Front.MsgPromptName
	}
	if conf.Front.MsgPromptClass != "" {
		self.prompts[pickClass] = conf.Front.MsgPromptClass
	}
	if conf.Front.MsgPromptMood != "" {
		self.prompts[pickMood] = conf.Front.MsgPromptMood
	}
	self.msgSubmitted = defaultSubmitted
	if conf.Front.MsgSubmitted != "" {
		self.msgSubmitted = conf.Front.MsgSubmitted
	}

	self.tickd = defaultTick
	if conf.Front.TickMs != 0 {
		self.tickd = time.Duration(conf.Front.TickMs) * time.Millisecond
	}
	self.confirmDelay = defaultConfirmDelay
	if conf.Front.ConfirmSec != 0 {
		self.confirmDelay = time.Duration(conf.Front.ConfirmSec) * time.Second
	}

	self.state = StateSelectName
	return self
}

func (self *UI) State() State { return self.state }

// Loop polls the knob on a fixed tick until stopped.
func (self *UI) Loop(ctx context.Context) {
	self.g.Tele.State(tele.StateNominal)
	self.render()

	tmr := time.NewTicker(self.tickd)
	defer tmr.Stop()
	stopch := self.g.Alive.StopChan()

	for self.state != StateStop {
		select {
		case <-tmr.C:
			self.Tick()
		case <-stopch:
			self.transition(StateStop)
		case <-ctx.Done():
			self.transition(StateStop)
		}
	}
	self.display.Clear()
}

// Tick consumes all input accumulated since the previous tick and
// redraws what changed. Exported for tests and the emulator, the real
// loop calls it on a timer.
func (self *UI) Tick() {
	delta := self.knob.TakeDelta()
	pressed := self.knob.Pressed()
	self.frame++

	switch self.state {
	case StateSelectName, StateSelectClass, StateSelectMood:
		if delta != 0 {
			i := self.pick()
			self.sel[i] = wrapIndex(self.sel[i], delta, len(self.options[i]))
		}
		if pressed {
			self.advance()
		}

	case StateConfirm:
		// turned or pressed during confirmation: input is discarded
		if self.now() >= self.confirmUntil {
			self.reset()
		}
	}

	self.render()
}

func (self *UI) pick() int {
	switch self.state {
	case StateSelectName:
		return pickName
	case StateSelectClass:
		return pickClass
	case StateSelectMood:
		return pickMood
	}
	panic("code error ui.pick() state=" + self.state.String())
}

func (self *UI) advance() {
	switch self.state {
	case StateSelectName:
		self.transition(StateSelectClass)
	case StateSelectClass:
		self.transition(StateSelectMood)
	case StateSelectMood:
		self.transition(StateSubmit)
		self.submit()
		self.confirmUntil = self.now() + int64(self.confirmDelay)
		self.transition(StateConfirm)
	}
}

// reset returns to the first phase with all selections at the top.
func (self *UI) reset() {
	for i := range self.sel {
		self.sel[i] = 0
	}
	self.transition(StateSelectName)
}

func (self *UI) transition(next State) {
	if self.state == next {
		return
	}
	self.log.Debugf("ui transition %s -> %s", self.state.String(), next.String())
	self.state = next
}

// wrapIndex moves cur by delta of any magnitude, wrapping in [0,n).
func wrapIndex(cur int, delta int32, n int) int {
	if n <= 0 {
		return 0
	}
	x := (cur + int(delta)) % n
	if x < 0 {
		x += n
	}
	return x
}

// moodMessage returns the operator text paired with the mood, falling
// back to the mood itself when no messages are configured.
func (self *UI) moodMessage() string {
	i := self.sel[pickMood]
	if i < len(self.moodMessages) {
		return self.moodMessages[i]
	}
	return self.options[pickMood][i]
}
