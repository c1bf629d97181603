// Package dashboard is the daily view: tasks with progress, the Pomodoro
// timer, the exam countdown and the celebration dialog.
package dashboard

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/pomodoro"
	"github.com/abhisek/focoleve/internal/router"
	"github.com/abhisek/focoleve/internal/screen"
	mentorscreen "github.com/abhisek/focoleve/internal/screens/mentor"
	"github.com/abhisek/focoleve/internal/ui/components"
	"github.com/abhisek/focoleve/internal/ui/layout"
)

const tickInterval = time.Second

// DashboardScreen implements screen.Screen for the daily view.
type DashboardScreen struct {
	deps    screen.Deps
	restart func() screen.Screen

	tasks components.Checklist
	timer *pomodoro.Timer
	// timerGen increments on every start so that ticks scheduled before a
	// pause are ignored.
	timerGen uint64

	encouragement string
	encSeq        uint64

	confirmReset bool
	errMsg       string

	dismiss components.Button
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)
var _ screen.EscapeCapturer = (*DashboardScreen)(nil)
var _ screen.BadgeProvider = (*DashboardScreen)(nil)

// New creates the dashboard. restart builds the screen shown after a full
// reset.
func New(deps screen.Deps, restart func() screen.Screen) *DashboardScreen {
	deps = deps.WithDefaults()
	d := &DashboardScreen{
		deps:    deps,
		restart: restart,
		tasks:   components.NewChecklist(nil, "No tasks for today. How about relaxing?"),
		timer:   pomodoro.New(deps.Timer),
		dismiss: components.NewButton("Yay! Enjoy my rest", "enter", "space", "esc"),
	}
	d.refresh()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Today · " + d.deps.Now().Format("Monday, January 2")
}

func (d *DashboardScreen) Badge() string {
	p := d.deps.Board.Profile()
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%dh/day", p.StudyHours)
}

func (d *DashboardScreen) CapturesEscape() bool {
	return d.confirmReset || d.deps.Board.Celebration().Shown()
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	switch {
	case d.confirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Erase everything"},
			{Key: "N", Description: "Cancel"},
		}
	case d.deps.Board.Celebration().Shown():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Enjoy my rest"},
		}
	}
	start := "Start"
	if d.timer.Running() {
		start = "Pause"
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Space", Description: "Done"},
		{Key: "P", Description: start},
		{Key: "R", Description: "Reset timer"},
		{Key: "M", Description: "Mentor"},
		{Key: "X", Description: "Start over"},
		{Key: "Q", Description: "Quit"},
	}
}

// Timer exposes the countdown for tests and the header.
func (d *DashboardScreen) Timer() *pomodoro.Timer { return d.timer }

// Encouragement returns the toast currently shown, if any.
func (d *DashboardScreen) Encouragement() string { return d.encouragement }

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return d.handleTimerTick(msg)

	case encouragementExpiredMsg:
		if msg.seq == d.encSeq {
			d.encouragement = ""
		}
		return d, nil

	case celebrationReadyMsg:
		if !msg.current {
			d.deps.Logger.Debug("discarded stale celebration message", zap.Uint64("seq", msg.seq))
		}
		return d, nil

	case tea.KeyPressMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *DashboardScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if d.confirmReset {
		switch key {
		case "y", "Y":
			return d, d.reset()
		case "n", "N", "esc":
			d.confirmReset = false
		}
		return d, nil
	}

	if d.deps.Board.Celebration().Shown() {
		if d.dismiss.Pressed(msg) {
			d.deps.Board.DismissCelebration()
		}
		return d, nil
	}

	switch key {
	case "space", "enter":
		return d, d.toggleSelected()
	case "p", "P":
		return d, d.toggleTimer()
	case "r", "R":
		d.timer.Reset()
		d.timerGen++
		return d, nil
	case "m", "M":
		mentor := mentorscreen.New(d.deps)
		return d, func() tea.Msg { return router.PushScreenMsg{Screen: mentor} }
	case "x", "X":
		d.confirmReset = true
		return d, nil
	case "q":
		return d, tea.Quit
	}

	var cmd tea.Cmd
	d.tasks, cmd = d.tasks.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) toggleSelected() tea.Cmd {
	items := d.deps.Board.Tasks()
	if len(items) == 0 {
		return nil
	}
	id := items[d.tasks.Selected].ID
	res, ok := d.deps.Board.Toggle(context.Background(), id)
	if !ok {
		return nil
	}
	d.refresh()

	var cmds []tea.Cmd
	if res.Encouragement != "" {
		d.encSeq++
		d.encouragement = res.Encouragement
		seq := d.encSeq
		cmds = append(cmds, tea.Tick(plan.EncouragementTTL, func(time.Time) tea.Msg {
			return encouragementExpiredMsg{seq: seq}
		}))
	}
	if res.Celebrate {
		cmds = append(cmds, d.fetchCelebration(res.CelebrationSeq))
	}
	return tea.Batch(cmds...)
}

func (d *DashboardScreen) fetchCelebration(seq uint64) tea.Cmd {
	board, a, logger := d.deps.Board, d.deps.Assistant, d.deps.Logger
	return func() tea.Msg {
		msg, current := assistant.Celebrate(context.Background(), board, a, seq, logger)
		return celebrationReadyMsg{seq: seq, message: msg, current: current}
	}
}

func (d *DashboardScreen) toggleTimer() tea.Cmd {
	d.timer.ToggleRunning()
	d.timerGen++
	if !d.timer.Running() {
		return nil
	}
	return tickAfter(tickInterval, d.timerGen)
}

func (d *DashboardScreen) handleTimerTick(msg timerTickMsg) (screen.Screen, tea.Cmd) {
	if msg.gen != d.timerGen || !d.timer.Running() {
		return d, nil
	}
	if d.timer.Tick() {
		d.deps.Logger.Info("pomodoro phase finished", zap.Stringer("next", d.timer.State().Mode))
		return d, nil
	}
	return d, tickAfter(tickInterval, d.timerGen)
}

func (d *DashboardScreen) reset() tea.Cmd {
	d.confirmReset = false
	if err := d.deps.Board.Reset(context.Background()); err != nil {
		d.deps.Logger.Error("reset failed", zap.Error(err))
		d.errMsg = "Could not erase your data. Please try again."
		return nil
	}
	next := d.restart()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

// refresh rebuilds the checklist from the board.
func (d *DashboardScreen) refresh() {
	tasks := d.deps.Board.Tasks()
	items := make([]components.ChecklistItem, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, components.ChecklistItem{
			Label:   t.Subject,
			Detail:  t.Topic,
			Checked: t.Completed,
		})
	}
	d.tasks.SetItems(items)
}
