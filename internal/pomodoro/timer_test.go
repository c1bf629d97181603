package pomodoro

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsPausedAtFocus(t *testing.T) {
	tm := New(DefaultDurations())
	assert.Equal(t, State{Mode: Focus, Remaining: 1500, Running: false}, tm.State())
	assert.Equal(t, "25:00", tm.Format())
}

func TestTickWhilePausedDoesNothing(t *testing.T) {
	tm := New(DefaultDurations())
	assert.False(t, tm.Tick())
	assert.Equal(t, 1500, tm.State().Remaining)
}

func TestFullFocusRunSwitchesToBreak(t *testing.T) {
	tm := New(DefaultDurations())
	tm.ToggleRunning()

	switches := 0
	for i := 0; i < 1500; i++ {
		if tm.Tick() {
			switches++
		}
	}

	assert.Equal(t, 1, switches)
	assert.Equal(t, State{Mode: Break, Remaining: 300, Running: false}, tm.State())

	// Stopped after the switch.
	assert.False(t, tm.Tick())
	assert.Equal(t, 300, tm.State().Remaining)
}

func TestBreakRunSwitchesBackToFocus(t *testing.T) {
	tm := NewWithMode(DefaultDurations(), Break)
	tm.ToggleRunning()
	for i := 0; i < 300; i++ {
		tm.Tick()
	}
	assert.Equal(t, State{Mode: Focus, Remaining: 1500, Running: false}, tm.State())
}

func TestToggleKeepsRemaining(t *testing.T) {
	tm := New(DefaultDurations())
	tm.ToggleRunning()
	tm.Tick()
	tm.Tick()
	tm.ToggleRunning()
	assert.False(t, tm.Running())
	assert.Equal(t, 1498, tm.State().Remaining)
	assert.False(t, tm.Tick())
	assert.Equal(t, 1498, tm.State().Remaining)
}

func TestResetKeepsMode(t *testing.T) {
	tm := NewWithMode(DefaultDurations(), Break)
	tm.ToggleRunning()
	tm.Tick()
	tm.Reset()
	assert.Equal(t, State{Mode: Break, Remaining: 300, Running: false}, tm.State())
}

func TestCustomDurations(t *testing.T) {
	tm := New(Durations{Focus: 3 * time.Second, Break: 2 * time.Second})
	tm.ToggleRunning()
	tm.Tick()
	tm.Tick()
	assert.True(t, tm.Tick())
	assert.Equal(t, State{Mode: Break, Remaining: 2, Running: false}, tm.State())
}

func TestZeroDurationsFallBack(t *testing.T) {
	tm := New(Durations{})
	assert.Equal(t, 1500, tm.State().Remaining)
	assert.Equal(t, 300, Durations{}.Seconds(Break))
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{1500, "25:00"},
		{300, "5:00"},
		{59, "0:59"},
		{61, "1:01"},
		{0, "0:00"},
		{-4, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeconds(tt.in), "FormatSeconds(%d)", tt.in)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Break")
	require.NoError(t, err)
	assert.Equal(t, Break, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Focus, m)

	_, err = ParseMode("nap")
	assert.Error(t, err)
}

func TestModeText(t *testing.T) {
	assert.Equal(t, "FOCUS", Focus.String())
	assert.Equal(t, "BREAK", Break.String())
	assert.NotEqual(t, Focus.Hint(), Break.Hint())
	assert.Equal(t, Focus, Break.Other())
}

func TestTickerCallsUntilStopped(t *testing.T) {
	var n atomic.Int32
	var tk *Ticker
	tk = NewTicker(5*time.Millisecond, func() {
		if n.Add(1) == 3 {
			tk.Stop()
		}
	})
	tk.Start()

	select {
	case <-tk.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("ticker did not stop")
	}
	assert.Equal(t, int32(3), n.Load())

	// Idempotent.
	tk.Stop()
	tk.Start()
}

func TestTickerStopBeforeFirstTick(t *testing.T) {
	var n atomic.Int32
	tk := NewTicker(time.Hour, func() { n.Add(1) })
	tk.Start()
	tk.Stop()
	<-tk.Done()
	assert.Zero(t, n.Load())
}
