package assistant

import (
	"context"

	"github.com/abhisek/focoleve/internal/plan"
	"go.uber.org/zap"
)

// Onboard stores the profile and asks for its schedule. A failed schedule
// request is logged and leaves the task list as it was; only an invalid
// profile is returned as an error.
func Onboard(ctx context.Context, b *plan.Board, a Assistant, p plan.Profile, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	epoch, err := b.StartProfile(ctx, p)
	if err != nil {
		return err
	}
	if a == nil {
		logger.Warn("no assistant configured, skipping schedule")
		return nil
	}

	profile := b.Profile()
	if profile == nil {
		return nil
	}
	drafts, err := a.GenerateSchedule(ctx, *profile)
	if err != nil {
		logger.Error("error generating schedule", zap.Error(err))
		return nil
	}
	tasks, ok := b.ApplyScheduleAt(ctx, epoch, drafts)
	if !ok {
		logger.Info("board reset while the schedule was generated, dropping it")
		return nil
	}
	logger.Info("schedule applied", zap.Int("tasks", len(tasks)))
	return nil
}

// Celebrate fetches the congratulation for celebration round seq and attaches
// it to the board. Failures fall back to plan.FallbackCelebration. It returns
// the message and whether it was still current.
func Celebrate(ctx context.Context, b *plan.Board, a Assistant, seq uint64, logger *zap.Logger) (string, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}
	msg := plan.FallbackCelebration
	if a != nil {
		m, err := a.CompletionMessage(ctx, b.CompletedSubjects())
		if err != nil {
			logger.Warn("completion message failed, using fallback", zap.Error(err))
		} else {
			msg = m
		}
	}
	return msg, b.DeliverCelebration(seq, msg)
}
