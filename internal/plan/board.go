package plan

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyProfile is returned when a profile without subjects is stored.
var ErrEmptyProfile = errors.New("profile has no subjects")

// StateRepo persists the profile and task list.
type StateRepo interface {
	// LoadState returns the stored state. Absent or malformed data yields
	// (nil, nil, nil); the error reports only storage failures.
	LoadState(ctx context.Context) (*Profile, []Task, error)

	// SaveState overwrites the stored state. A nil profile removes it.
	SaveState(ctx context.Context, profile *Profile, tasks []Task) error

	// ResetAll clears all stored state.
	ResetAll(ctx context.Context) error
}

// ToggleResult describes the outcome of a toggle.
type ToggleResult struct {
	Task Task

	// Encouragement is set when the task became complete.
	Encouragement string

	// AllDone is the post-toggle all-complete flag.
	AllDone bool

	// Celebrate is true only on the toggle that made AllDone go false→true.
	// CelebrationSeq identifies that celebration round.
	Celebrate      bool
	CelebrationSeq uint64
}

// Board owns the session state: profile, tasks and the daily celebration.
// Every mutation is persisted through the StateRepo. Board is safe for
// concurrent use.
type Board struct {
	mu          sync.Mutex
	repo        StateRepo
	logger      *zap.Logger
	intn        func(int) int
	profile     *Profile
	tasks       []Task
	celebration Celebration

	// epoch changes whenever the profile is replaced or cleared. A schedule
	// requested under one epoch is dropped once it has moved on.
	epoch uint64
}

// Option configures a Board.
type Option func(*Board)

// WithRandom overrides the encouragement picker.
func WithRandom(intn func(int) int) Option {
	return func(b *Board) { b.intn = intn }
}

// NewBoard creates an empty Board. repo may be nil for an in-memory board.
func NewBoard(repo StateRepo, logger *zap.Logger, opts ...Option) *Board {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Board{repo: repo, logger: logger}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Load replaces the in-memory state with the stored one. Storage failures
// are logged and leave the board empty.
func (b *Board) Load(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.profile, b.tasks = nil, nil
	b.celebration.Dismiss()
	b.epoch++
	if b.repo == nil {
		return
	}
	profile, tasks, err := b.repo.LoadState(ctx)
	if err != nil {
		b.logger.Warn("load state failed, starting empty", zap.Error(err))
		return
	}
	if profile.Valid() {
		b.profile = profile
	}
	b.tasks = tasks
}

// Profile returns a copy of the profile, or nil before onboarding.
func (b *Board) Profile() *Profile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Clone()
}

// HasProfile reports whether onboarding has completed.
func (b *Board) HasProfile() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile != nil
}

// Tasks returns a copy of the task list.
func (b *Board) Tasks() []Task {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Task(nil), b.tasks...)
}

// SetProfile stores the profile produced by onboarding.
func (b *Board) SetProfile(ctx context.Context, p Profile) error {
	_, err := b.StartProfile(ctx, p)
	return err
}

// StartProfile stores p like SetProfile and returns the epoch its schedule
// has to be applied under.
func (b *Board) StartProfile(ctx context.Context, p Profile) (uint64, error) {
	if !p.Valid() {
		return 0, ErrEmptyProfile
	}
	p.StudyHours = ClampHours(p.StudyHours)
	p.SetupComplete = true

	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p.Clone()
	b.epoch++
	b.persistLocked(ctx)
	return b.epoch, nil
}

// Epoch identifies the current profile. See StartProfile.
func (b *Board) Epoch() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.epoch
}

// ApplySchedule replaces the task list with drafts for the current profile.
// It does nothing before onboarding.
func (b *Board) ApplySchedule(ctx context.Context, drafts []Draft) []Task {
	tasks, _ := b.ApplyScheduleAt(ctx, b.Epoch(), drafts)
	return tasks
}

// ApplyScheduleAt replaces the task list with drafts, assigning each a fresh
// id and completed=false. It reports false and changes nothing when the
// board has been reset or re-onboarded since epoch.
func (b *Board) ApplyScheduleAt(ctx context.Context, epoch uint64, drafts []Draft) ([]Task, bool) {
	tasks := make([]Task, 0, len(drafts))
	for _, d := range drafts {
		tasks = append(tasks, Task{
			ID:      "task-" + uuid.NewString(),
			Subject: d.Subject,
			Topic:   d.Topic,
			Date:    d.Date,
		})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if epoch != b.epoch || b.profile == nil {
		return nil, false
	}
	b.tasks = tasks
	b.celebration.Dismiss()
	b.persistLocked(ctx)
	return append([]Task(nil), tasks...), true
}

// Toggle flips the completion flag of the task with the given id. It returns
// false when no task matches.
func (b *Board) Toggle(ctx context.Context, id string) (ToggleResult, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.tasks {
		if b.tasks[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ToggleResult{}, false
	}

	wasAllDone := AllDone(b.tasks)
	b.tasks[idx].Completed = !b.tasks[idx].Completed

	res := ToggleResult{
		Task:    b.tasks[idx],
		AllDone: AllDone(b.tasks),
	}
	if res.Task.Completed {
		res.Encouragement = randomEncouragement(b.intn)
	}

	switch {
	case res.AllDone && !wasAllDone:
		res.Celebrate = true
		res.CelebrationSeq = b.celebration.Trigger()
	case !res.AllDone:
		b.celebration.Dismiss()
	}

	b.persistLocked(ctx)
	return res, true
}

// Progress returns the completion percentage.
func (b *Board) Progress() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Progress(b.tasks)
}

// AllDone reports whether every task is complete.
func (b *Board) AllDone() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return AllDone(b.tasks)
}

// CompletedSubjects returns the distinct subjects of completed tasks.
func (b *Board) CompletedSubjects() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return CompletedSubjects(b.tasks)
}

// DeliverCelebration attaches a message to celebration round seq.
func (b *Board) DeliverCelebration(seq uint64, msg string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.celebration.Deliver(seq, msg)
}

// DismissCelebration closes the celebration without touching tasks.
func (b *Board) DismissCelebration() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.celebration.Dismiss()
}

// Celebration returns a snapshot of the celebration state.
func (b *Board) Celebration() Celebration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.celebration
}

// Reset clears the stored and in-memory state.
func (b *Board) Reset(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.profile = nil
	b.tasks = nil
	b.celebration.Dismiss()
	b.epoch++
	if b.repo == nil {
		return nil
	}
	return b.repo.ResetAll(ctx)
}

func (b *Board) persistLocked(ctx context.Context) {
	if b.repo == nil {
		return
	}
	if err := b.repo.SaveState(ctx, b.profile, b.tasks); err != nil {
		b.logger.Warn("save state failed", zap.Error(err))
	}
}
