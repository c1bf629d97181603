package dashboard

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// The dashboard's async messages are broadcast so they still arrive while
// the mentor screen covers it.

// timerTickMsg advances the Pomodoro countdown. gen guards against stale
// ticks from an earlier start.
type timerTickMsg struct {
	gen uint64
}

func (timerTickMsg) Broadcast() {}

// encouragementExpiredMsg hides the toast shown for toggle seq.
type encouragementExpiredMsg struct {
	seq uint64
}

func (encouragementExpiredMsg) Broadcast() {}

// celebrationReadyMsg reports that round seq's message has been fetched.
type celebrationReadyMsg struct {
	seq     uint64
	message string
	current bool
}

func (celebrationReadyMsg) Broadcast() {}

func tickAfter(d time.Duration, gen uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return timerTickMsg{gen: gen} })
}
