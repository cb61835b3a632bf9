package button

import (
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"

	"github.com/moodbox/moodbox/log2"
)

type fixture struct {
	level bool
	err   error
	ns    int64
	b     *Button
}

func newFixture(t testing.TB) *fixture {
	f := &fixture{ns: int64(time.Hour)}
	read := func() (bool, error) { return f.level, f.err }
	now := func() int64 { return f.ns }
	f.b = NewButton(log2.NewTest(t, log2.LDebug), read, now, 0)
	return f
}

func (f *fixture) advance(d time.Duration) { f.ns += int64(d) }

// the monotonic source starts near zero at process start; the very
// first press must not be swallowed by the debounce gate
func TestPollFirstPressAtBoot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.ns = 0
	f.level = true
	assert.True(t, f.b.Poll())
	assert.False(t, f.b.Poll())
}

func TestPollReleased(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	assert.False(t, f.b.Poll())
	f.advance(time.Second)
	assert.False(t, f.b.Poll())
}

func TestPollDebounce(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.level = true

	assert.True(t, f.b.Poll())
	assert.False(t, f.b.Poll())
	f.advance(199 * time.Millisecond)
	assert.False(t, f.b.Poll())
	f.advance(2 * time.Millisecond)
	assert.True(t, f.b.Poll())
}

// Pins the level-triggered throttle behavior: a held button keeps
// firing once per window. Shipped devices rely on it.
func TestPollHoldRefires(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.level = true

	count := 0
	for i := 0; i < 100; i++ {
		if f.b.Poll() {
			count++
		}
		f.advance(10 * time.Millisecond)
	}
	// 1000ms of hold at 200ms window
	assert.Equal(t, 5, count)
}

func TestPollReleaseRearm(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	f.level = true
	assert.True(t, f.b.Poll())

	// release does not shorten the window
	f.level = false
	f.advance(50 * time.Millisecond)
	assert.False(t, f.b.Poll())
	f.level = true
	assert.False(t, f.b.Poll())

	f.advance(151 * time.Millisecond)
	assert.True(t, f.b.Poll())
}

func TestPollReadError(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.level = true
	f.err = errors.Errorf("gpio gone")
	assert.False(t, f.b.Poll())
}
