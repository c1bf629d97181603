package screen

import (
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/mentor"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/pomodoro"
)

// Deps carries the shared services every screen may use.
type Deps struct {
	Board     *plan.Board
	Assistant assistant.Assistant
	Chat      *mentor.Chat
	Timer     pomodoro.Durations
	Logger    *zap.Logger
	Now       func() time.Time
}

// WithDefaults fills unset optional fields.
func (d Deps) WithDefaults() Deps {
	if d.Board == nil {
		d.Board = plan.NewBoard(nil, d.Logger)
	}
	if d.Assistant == nil {
		d.Assistant = assistant.Offline{}
	}
	if d.Chat == nil {
		d.Chat = mentor.NewChat()
	}
	if d.Timer.Focus <= 0 || d.Timer.Break <= 0 {
		d.Timer = pomodoro.DefaultDurations()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}
