// Package pomodoro implements the focus/break countdown timer.
package pomodoro

import (
	"fmt"
	"strings"
	"time"
)

// Mode is the timer phase.
type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	if m == Break {
		return "BREAK"
	}
	return "FOCUS"
}

// Label is the heading shown above the countdown.
func (m Mode) Label() string {
	if m == Break {
		return "🌿 Real Rest"
	}
	return "🔥 Full Focus"
}

// Hint is the one-line tip shown under the countdown.
func (m Mode) Hint() string {
	if m == Break {
		return "Get up, drink some water and rest your eyes."
	}
	return "Turn off notifications and focus only on now."
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Break {
		return Focus
	}
	return Break
}

// ParseMode accepts "focus" or "break" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "focus":
		return Focus, nil
	case "break":
		return Break, nil
	default:
		return Focus, fmt.Errorf("unknown timer mode %q", s)
	}
}

// Durations holds the length of each mode.
type Durations struct {
	Focus time.Duration
	Break time.Duration
}

// DefaultDurations returns 25 minutes of focus and 5 of break.
func DefaultDurations() Durations {
	return Durations{Focus: 25 * time.Minute, Break: 5 * time.Minute}
}

// Seconds returns the whole-second length of mode m. Non-positive values
// fall back to the defaults.
func (d Durations) Seconds(m Mode) int {
	def := DefaultDurations()
	v := d.Focus
	if m == Break {
		v = d.Break
	}
	if v <= 0 {
		v = def.Focus
		if m == Break {
			v = def.Break
		}
	}
	return int(v / time.Second)
}

// State is a snapshot of the timer.
type State struct {
	Mode      Mode `json:"mode"`
	Remaining int  `json:"remainingSeconds"`
	Running   bool `json:"running"`
}

// Timer is a countdown state machine advanced by Tick. It holds no clock of
// its own and is not safe for concurrent use.
type Timer struct {
	durations Durations
	state     State
}

// New returns a paused timer at the full focus duration.
func New(d Durations) *Timer {
	return NewWithMode(d, Focus)
}

// NewWithMode returns a paused timer at the full duration of mode m.
func NewWithMode(d Durations, m Mode) *Timer {
	return &Timer{
		durations: d,
		state:     State{Mode: m, Remaining: d.Seconds(m)},
	}
}

// State returns a snapshot.
func (t *Timer) State() State { return t.state }

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.state.Running }

// Tick advances the countdown by one second. When the countdown reaches zero
// the timer stops, flips mode and reloads the new mode's duration; Tick then
// returns true.
func (t *Timer) Tick() bool {
	if !t.state.Running || t.state.Remaining <= 0 {
		return false
	}
	t.state.Remaining--
	if t.state.Remaining > 0 {
		return false
	}
	t.state.Running = false
	t.state.Mode = t.state.Mode.Other()
	t.state.Remaining = t.durations.Seconds(t.state.Mode)
	return true
}

// ToggleRunning starts or pauses the countdown.
func (t *Timer) ToggleRunning() {
	t.state.Running = !t.state.Running
}

// Reset stops the countdown and reloads the current mode's duration.
func (t *Timer) Reset() {
	t.state.Running = false
	t.state.Remaining = t.durations.Seconds(t.state.Mode)
}

// Format renders the remaining time as m:ss.
func (t *Timer) Format() string {
	return FormatSeconds(t.state.Remaining)
}

// FormatSeconds renders s as m:ss, minutes unpadded.
func FormatSeconds(s int) string {
	if s < 0 {
		s = 0
	}
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
