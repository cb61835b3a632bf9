package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/alive/v2"

	"github.com/moodbox/moodbox/internal/tele"
	"github.com/moodbox/moodbox/internal/types"
	"github.com/moodbox/moodbox/log2"
)

func testGlobal(t testing.TB) (*Global, *log2.Log) {
	log := log2.NewTest(t, log2.LDebug)
	log.SetFlags(log2.LTestFlags)
	g := &Global{
		Alive:        alive.NewAlive(),
		BuildVersion: "test",
		Log:          log,
		Tele:         tele.NewMock(),
	}
	return g, log
}

func mustConf(t testing.TB, log *log2.Log, input string) *Config {
	fs := NewMockFullReader(map[string]string{"test-inline": input})
	return MustReadConfig(log, fs, "test-inline")
}

const validUI = `
ui {
  names = ["A"]
  classes = ["X"]
  moods = ["Happy", "Sad"]
  mood_messages = ["SMILE", "HUG"]
}`

func TestInitMockHardware(t *testing.T) {
	t.Parallel()

	g, log := testGlobal(t)
	require.NoError(t, g.Init(context.Background(), mustConf(t, log, validUI)))
	defer g.StopWait()

	// no pins configured: everything must come up mocked
	assert.IsType(t, &types.KnobMock{}, g.Hardware.Knob)
	require.NotNil(t, g.Hardware.Text)
	require.NotNil(t, g.Hardware.Panel)

	teleMock := g.Tele.(*tele.Mock)
	require.Len(t, teleMock.States, 1)
	assert.Equal(t, tele.StateBoot, teleMock.States[0])
}

func TestInitRejectsBadOptionLists(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		input     string
		expectErr string
	}{
		{"no-names", `ui { classes=["X"] moods=["Happy"] mood_messages=["SMILE"] }`,
			"ui.names empty"},
		{"no-moods", `ui { names=["A"] classes=["X"] }`,
			"ui.moods empty"},
		{"misaligned-messages", `ui { names=["A"] classes=["X"] moods=["Happy","Sad"] mood_messages=["ONLY ONE"] }`,
			"ui.mood_messages len=1 must match ui.moods len=2"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			g, log := testGlobal(t)
			err := g.Init(context.Background(), mustConf(t, log, c.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.expectErr)
		})
	}
}
