package text_display

// MockDevicer records nothing, TextDisplay.State() is the observable
// surface in tests.
type MockDevicer struct{}

func (MockDevicer) Clear()                   {}
func (MockDevicer) CursorYX(y, x uint8) bool { return true }
func (MockDevicer) Write(b []byte)           {}

func NewMockTextDisplay(opt *TextDisplayConfig) *TextDisplay {
	display, err := NewTextDisplay(opt)
	if err != nil {
		panic(err)
	}
	display.dev = MockDevicer{}
	return display
}
