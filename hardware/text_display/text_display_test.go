package text_display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLines(t *testing.T) {
	t.Parallel()

	d := NewMockTextDisplay(&TextDisplayConfig{Width: 16})
	d.SetLines("hello", "world")
	assert.Equal(t, "hello           \nworld           ", d.State().Format(16))
}

func TestJustCenter(t *testing.T) {
	t.Parallel()

	d := NewMockTextDisplay(&TextDisplayConfig{Width: 16})
	assert.Equal(t, "     mood!      ", string(d.JustCenter([]byte("mood!"))))
	assert.Equal(t, "                ", string(d.JustCenter(nil)))
}

func TestScrollWrap(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 8)
	content := []byte("0123456789ab") // longer than width

	n := scrollWrap(buf, content, 0)
	require.Equal(t, uint32(8), n)
	assert.Equal(t, "01234567", string(buf[:n]))

	n = scrollWrap(buf, content, 2)
	require.Equal(t, uint32(8), n)
	assert.Equal(t, "23456789", string(buf[:n]))

	// tick past content end shows the wrap gap then the head again
	n = scrollWrap(buf, content, 11)
	assert.Equal(t, "b    012", string(buf[:n]))
}

func TestTranslateNoCodepage(t *testing.T) {
	t.Parallel()

	d := NewMockTextDisplay(&TextDisplayConfig{Width: 8})
	assert.Equal(t, "ok      ", string(d.Translate("ok")))
	// trailing NUL suppresses padding, cursor placement
	assert.Equal(t, "ok", string(d.Translate("ok\x00")))
}
