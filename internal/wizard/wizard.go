// Package wizard implements the three-step onboarding form that produces a
// study profile: subjects, then exam date, then hours per day. Steps only
// move forward.
package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/abhisek/focoleve/internal/plan"
)

// Step is the current onboarding step.
type Step int

const (
	StepSubjects Step = iota
	StepExamDate
	StepHours
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSubjects:
		return "SUBJECTS"
	case StepExamDate:
		return "EXAM_DATE"
	case StepHours:
		return "HOURS"
	default:
		return "DONE"
	}
}

var (
	ErrNoSubjects  = errors.New("add at least one subject")
	ErrNoExamDate  = errors.New("exam date is required")
	ErrInvalidDate = errors.New("exam date must be YYYY-MM-DD")
	ErrFinished    = errors.New("onboarding already finished")
)

// Wizard holds the in-progress onboarding answers.
type Wizard struct {
	step     Step
	subjects []string
	examDate string
	hours    int
}

// New returns a wizard at the subjects step with the default hours.
func New() *Wizard {
	return &Wizard{hours: plan.DefaultStudyHours}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Subjects returns a copy of the subjects added so far.
func (w *Wizard) Subjects() []string {
	return append([]string(nil), w.subjects...)
}

// AddSubject trims s and appends it. Empty input is rejected. Duplicates are kept.
func (w *Wizard) AddSubject(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	w.subjects = append(w.subjects, s)
	return true
}

// SetExamDate records the raw exam date value.
func (w *Wizard) SetExamDate(s string) {
	w.examDate = strings.TrimSpace(s)
}

// ExamDate returns the exam date value.
func (w *Wizard) ExamDate() string { return w.examDate }

// Hours returns the selected hours per day.
func (w *Wizard) Hours() int { return w.hours }

// SetHours sets hours per day, clamped to the allowed range.
func (w *Wizard) SetHours(n int) { w.hours = plan.ClampHours(n) }

// IncHours adds one hour.
func (w *Wizard) IncHours() { w.SetHours(w.hours + 1) }

// DecHours removes one hour.
func (w *Wizard) DecHours() { w.SetHours(w.hours - 1) }

// Next advances one step. From the hours step it finishes onboarding and
// returns the completed profile. A failed guard leaves the step unchanged.
func (w *Wizard) Next() (*plan.Profile, error) {
	switch w.step {
	case StepSubjects:
		if len(w.subjects) == 0 {
			return nil, ErrNoSubjects
		}
		w.step = StepExamDate
	case StepExamDate:
		if w.examDate == "" {
			return nil, ErrNoExamDate
		}
		if _, err := time.Parse(plan.DateLayout, w.examDate); err != nil {
			return nil, ErrInvalidDate
		}
		w.step = StepHours
	case StepHours:
		w.step = StepDone
		return &plan.Profile{
			Subjects:      w.Subjects(),
			ExamDate:      w.examDate,
			StudyHours:    plan.ClampHours(w.hours),
			SetupComplete: true,
		}, nil
	default:
		return nil, ErrFinished
	}
	return nil, nil
}

// Run drives a wizard through all steps in one call. The HTTP API and CLI use
// it to apply the same guards as the interactive form. A nil hours keeps the
// default; any given value is clamped to [1,12].
func Run(subjects []string, examDate string, hours *int) (*plan.Profile, error) {
	w := New()
	for _, s := range subjects {
		w.AddSubject(s)
	}
	w.SetExamDate(examDate)
	if hours != nil {
		w.SetHours(*hours)
	}
	for {
		p, err := w.Next()
		if err != nil {
			return nil, err
		}
		if p != nil {
			return p, nil
		}
	}
}
