package ui

import (
	"fmt"
	"time"
)

// BuildMessage formats one check-in the way the operator side expects.
// Date is day-first, no time of day.
func BuildMessage(name, class, mood string, at time.Time) string {
	return fmt.Sprintf("Name: %s\nClass: %s\nMood: %s\nDate: %s",
		name, class, mood, at.Format("02/01/2006"))
}

// submit sends the completed selection. Fire-and-forget: delivery runs
// off the UI goroutine and a failure is logged, never retried and never
// blocks the confirmation screen.
func (self *UI) submit() {
	msg := BuildMessage(
		self.options[pickName][self.sel[pickName]],
		self.options[pickClass][self.sel[pickClass]],
		self.options[pickMood][self.sel[pickMood]],
		self.wallNow(),
	)
	self.log.Infof("ui submit %q", msg)

	if !self.g.Alive.Add(1) {
		return
	}
	go func() {
		defer self.g.Alive.Done()
		if err := self.g.Tele.Submit(msg); err != nil {
			self.log.Errorf("ui submit err=%v", err)
		}
	}()
}
