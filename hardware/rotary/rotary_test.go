package rotary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gpio "github.com/temoto/gpio-cdev-go"

	"github.com/moodbox/moodbox/log2"
)

// one full quadrature cycle = 4 valid transitions
func cycleForward(d *Decoder) {
	d.Edge(false, true)
	d.Edge(true, true)
	d.Edge(true, false)
	d.Edge(false, false)
}

func cycleBackward(d *Decoder) {
	d.Edge(true, false)
	d.Edge(true, true)
	d.Edge(false, true)
	d.Edge(false, false)
}

func TestDecodeForward(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	cycleForward(d)
	assert.Equal(t, int32(4), d.Take())
}

func TestDecodeBackward(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	cycleBackward(d)
	assert.Equal(t, int32(-4), d.Take())
}

func TestDecodeInvalidOnly(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	// double transitions and repeats are never a valid single step
	d.Edge(true, true)
	d.Edge(false, false)
	d.Edge(false, false)
	d.Edge(true, true)
	assert.Equal(t, int32(0), d.Take())
}

func TestDecodeMixed(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	cycleForward(d)
	cycleForward(d)
	cycleBackward(d)
	// net = forward - backward among valid transitions only
	d.Edge(true, true) // noise
	assert.Equal(t, int32(4), d.Take())
}

func TestTakeDrains(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	d.Edge(false, true)
	assert.Equal(t, int32(1), d.Take())
	assert.Equal(t, int32(0), d.Take())
	d.Edge(true, true)
	assert.Equal(t, int32(1), d.Take())
}

func TestInvalidKeepsLastSample(t *testing.T) {
	t.Parallel()

	d := new(Decoder)
	d.Reset(false, false)
	// invalid 00->11 must not disturb the stored sample,
	// so the following 00->01 still counts as a step
	d.Edge(true, true)
	d.Edge(false, true)
	assert.Equal(t, int32(1), d.Take())
}

// stubEventer fires a rising edge on every Wait, a knob spun at the
// worst possible moment.
type stubEventer struct{}

func (stubEventer) Close() error        { return nil }
func (stubEventer) Read() (byte, error) { return 1, nil }
func (stubEventer) Wait(time.Duration) (gpio.EventData, error) {
	return gpio.EventData{ID: gpio.GPIOEVENT_EVENT_RISING_EDGE}, nil
}

// a watcher blocked on a full edge channel must still honor Stop
func TestWatchStopWithFullChannel(t *testing.T) {
	t.Parallel()

	r := NewRotary(log2.NewTest(t, log2.LDebug))
	edgech := make(chan edge, 1)
	edgech <- edge{} // nobody drains, next send would block forever
	go r.watch(stubEventer{}, lineTagA, edgech)

	time.Sleep(10 * time.Millisecond)
	r.alive.Stop()

	done := make(chan struct{})
	go func() {
		r.alive.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch goroutine survived Stop")
	}
}
