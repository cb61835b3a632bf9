// Shared small types, avoids import cycles between state and ui.
package types

import "context"

// Knob is the one physical input of the kiosk: turn and push.
//
// TakeDelta drains rotation accumulated since the previous call as one
// atomic read-and-clear; Pressed reports a debounced press event.
type Knob interface {
	TakeDelta() int32
	Pressed() bool
	Close()
}

type UIer interface {
	Loop(ctx context.Context)
}

// KnobMock scripts knob input for tests and the emulator CLI.
// Safe for one writer and one reader goroutine.
type KnobMock struct {
	deltach chan int32
	pressch chan struct{}
}

func NewKnobMock() *KnobMock {
	return &KnobMock{
		deltach: make(chan int32, 64),
		pressch: make(chan struct{}, 64),
	}
}

func (self *KnobMock) Turn(delta int32) { self.deltach <- delta }
func (self *KnobMock) Push()            { self.pressch <- struct{}{} }

func (self *KnobMock) TakeDelta() int32 {
	var sum int32
	for {
		select {
		case d := <-self.deltach:
			sum += d
		default:
			return sum
		}
	}
}

func (self *KnobMock) Pressed() bool {
	select {
	case <-self.pressch:
		return true
	default:
		return false
	}
}

func (self *KnobMock) Close() {}

var _ Knob = &KnobMock{}
