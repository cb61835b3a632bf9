package ui

// Render scheduling: every tick builds a cheap snapshot per display
// and redraws only when the snapshot differs from the last drawn one.
// The idle animation is the exception, it advances every tick.

type textSnapshot struct {
	state State
	line1 string
	line2 string
}

type panelSnapshot struct {
	state State
	mood  int
}

func (self *UI) render() {
	self.renderText()
	self.renderPanel()
}

func (self *UI) renderText() {
	var snap textSnapshot
	snap.state = self.state

	switch self.state {
	case StateSelectName, StateSelectClass, StateSelectMood:
		i := self.pick()
		snap.line1 = self.prompts[i]
		snap.line2 = self.options[i][self.sel[i]]

	case StateConfirm:
		snap.line1 = self.msgSubmitted
		snap.line2 = self.moodMessage()

	case StateStop:
		return
	}

	if snap == self.lastText {
		return
	}
	self.lastText = snap
	self.display.SetLines(snap.line1, snap.line2)
}

func (self *UI) renderPanel() {
	switch self.state {
	case StateSelectName, StateSelectClass:
		// animation runs unconditionally, change detection does not apply
		self.panel.Idle(self.frame)
		self.lastPanel = panelSnapshot{state: self.state}

	case StateSelectMood:
		snap := panelSnapshot{state: self.state, mood: self.sel[pickMood]}
		if snap == self.lastPanel {
			return
		}
		self.lastPanel = snap
		self.panel.MoodIcon(self.sel[pickMood], self.options[pickMood][self.sel[pickMood]])

	case StateConfirm:
		snap := panelSnapshot{state: self.state, mood: self.sel[pickMood]}
		if snap == self.lastPanel {
			return
		}
		self.lastPanel = snap
		self.panel.Confirm(self.sel[pickMood], self.moodMessage())
	}
}
