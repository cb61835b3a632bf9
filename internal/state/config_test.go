package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moodbox/moodbox/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name      string
		input     string
		check     func(t testing.TB, c *Config)
		expectErr string
	}
	cases := []Case{
		{"empty", "", func(t testing.TB, c *Config) {
			assert.Zero(t, c.Hardware.HD44780.Width)
			assert.False(t, c.Tele.Enable)
		}, ""},

		{"ui", `
ui {
  front {
    tick_ms = 20
    confirm_sec = 3
  }
  names = ["Alice", "Bob"]
  classes = ["1A"]
  moods = ["Happy", "Sad"]
  mood_messages = ["GREAT!", "HUGS"]
}`, func(t testing.TB, c *Config) {
			assert.Equal(t, 20, c.UI.Front.TickMs)
			assert.Equal(t, 3, c.UI.Front.ConfirmSec)
			assert.Equal(t, []string{"Alice", "Bob"}, c.UI.Names)
			assert.Equal(t, []string{"Happy", "Sad"}, c.UI.Moods)
			assert.Equal(t, []string{"GREAT!", "HUGS"}, c.UI.MoodMessages)
		}, ""},

		{"hardware", `
hardware {
  rotary {
    pin_chip = "/dev/gpiochip0"
    pin_a = "17"
    pin_b = "27"
  }
  button { pin_chip = "/dev/gpiochip0" pin = "22" active_low = true }
  hd44780 {
    enable = true
    codepage = "windows-1251"
    width = 16
  }
  framebuffer { enable = true device = "/dev/fb1" }
}`, func(t testing.TB, c *Config) {
			assert.Equal(t, "17", c.Hardware.Rotary.PinA)
			assert.Equal(t, "22", c.Hardware.Button.Pin)
			assert.True(t, c.Hardware.Button.ActiveLow)
			assert.True(t, c.Hardware.HD44780.Enable)
			assert.Equal(t, 16, c.Hardware.HD44780.Width)
			assert.Equal(t, "/dev/fb1", c.Hardware.Framebuffer.Device)
		}, ""},

		{"tele", `
tele {
  enable = true
  kiosk_id = 7
  mqtt_broker = "tls://mood.example.com:8883"
}`, func(t testing.TB, c *Config) {
			assert.True(t, c.Tele.Enable)
			assert.Equal(t, 7, c.Tele.KioskId)
		}, ""},

		{"error-syntax", `hello`, nil, "key 'hello' expected start of object"},
	}

	mkread := func(input string) FullReader {
		return NewMockFullReader(map[string]string{"test-inline": input})
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			log := log2.NewTest(t, log2.LDebug)
			cfg, err := ReadConfig(log, mkread(c.input), "test-inline")
			if c.expectErr == "" {
				require.NoError(t, err)
				c.check(t, cfg)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), c.expectErr)
			}
		})
	}
}

func TestReadConfigInclude(t *testing.T) {
	t.Parallel()

	log := log2.NewTest(t, log2.LDebug)

	t.Run("overlay", func(t *testing.T) {
		fs := NewMockFullReader(map[string]string{
			"base": `
include "site" {}
ui { names = ["One"] }`,
			"site": `ui { classes = ["2B"] }`,
		})
		cfg, err := ReadConfig(log, fs, "base")
		require.NoError(t, err)
		assert.Equal(t, []string{"One"}, cfg.UI.Names)
		assert.Equal(t, []string{"2B"}, cfg.UI.Classes)
	})

	t.Run("optional-missing", func(t *testing.T) {
		fs := NewMockFullReader(map[string]string{
			"base": `include "local" { optional = true }`,
		})
		_, err := ReadConfig(log, fs, "base")
		require.NoError(t, err)
	})

	t.Run("required-missing", func(t *testing.T) {
		fs := NewMockFullReader(map[string]string{
			"base": `include "local" {}`,
		})
		_, err := ReadConfig(log, fs, "base")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("loop", func(t *testing.T) {
		fs := NewMockFullReader(map[string]string{
			"one": `include "two" {}`,
			"two": `include "one" {}`,
		})
		_, err := ReadConfig(log, fs, "one")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "loop"))
	})
}
