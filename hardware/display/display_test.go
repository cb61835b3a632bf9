package display

import (
	"image"
	"strings"
	"testing"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxSetGet(t *testing.T) {
	t.Parallel()

	d := NewMock(image.Point{X: 8, Y: 8})
	// fresh mock reads as a cleared panel, not zero-value pixels
	assert.Equal(t, Black, d.Get(0, 0))
	d.Box(1, 1, 2, 2, White)
	assert.Equal(t, White, d.Get(1, 1))
	assert.Equal(t, White, d.Get(2, 2))
	assert.Equal(t, Black, d.Get(3, 3))
	// out of bounds writes are dropped, not panics
	d.Set(-1, 0, White)
	d.Set(100, 100, White)
}

func TestDisc(t *testing.T) {
	t.Parallel()

	d := NewMock(image.Point{X: 16, Y: 16})
	d.Fill(Black)
	d.Disc(8, 8, 4, White)
	assert.Equal(t, White, d.Get(8, 8))
	assert.Equal(t, White, d.Get(8, 4))
	assert.Equal(t, Black, d.Get(8, 3))
}

func TestText(t *testing.T) {
	t.Parallel()

	d := NewMock(image.Point{X: 32, Y: 10})
	d.Text(0, 0, 1, "Hi", White)
	out := d.String2()
	assert.True(t, strings.Contains(out, "██"), "text drew nothing:\n%s", out)
	// 'H' left column is a full 7-pixel bar
	for y := 0; y < 7; y++ {
		assert.Equal(t, White, d.Get(0, y), "y=%d", y)
	}
}

func TestQR(t *testing.T) {
	t.Parallel()

	d := NewMock(image.Point{X: 128, Y: 128})
	require.NoError(t, d.QR("moodbox-selftest", true, qrcode.Medium))
	assert.True(t, strings.Contains(d.String2(), "██"))
}

func TestTextWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 11, TextWidth("AB", 1))
	assert.Equal(t, 22, TextWidth("AB", 2))
}
