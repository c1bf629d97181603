// Package onboarding is the three-step setup form shown before a profile
// exists.
package onboarding

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/router"
	"github.com/abhisek/focoleve/internal/screen"
	"github.com/abhisek/focoleve/internal/screens/loading"
	"github.com/abhisek/focoleve/internal/ui/components"
	"github.com/abhisek/focoleve/internal/ui/layout"
	"github.com/abhisek/focoleve/internal/ui/theme"
	"github.com/abhisek/focoleve/internal/wizard"
)

type stepCopy struct {
	heading string
	detail  string
}

var copyByStep = map[wizard.Step]stepCopy{
	wizard.StepSubjects: {"What will you study?", "List the subjects you need to focus on."},
	wizard.StepExamDate: {"When is the exam?", "This helps us work out the ideal pace."},
	wizard.StepHours:    {"How much time do you have?", "How many hours a day do you want to dedicate?"},
}

// OnboardingScreen collects subjects, exam date and daily hours.
type OnboardingScreen struct {
	deps     screen.Deps
	next     func() screen.Screen
	wiz      *wizard.Wizard
	subject  components.TextInput
	date     components.TextInput
	hours    components.Stepper
	errMsg   string
	finished bool
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates the form. next builds the screen shown once the schedule has
// been requested.
func New(deps screen.Deps, next func() screen.Screen) *OnboardingScreen {
	deps = deps.WithDefaults()
	wiz := wizard.New()
	return &OnboardingScreen{
		deps:    deps,
		next:    next,
		wiz:     wiz,
		subject: components.NewTextInput("e.g. Math, Essay writing...", 60),
		date:    components.NewDateInput("YYYY-MM-DD"),
		hours:   components.NewStepper(wiz.Hours(), plan.MinStudyHours, plan.MaxStudyHours, "hour", "per day"),
	}
}

func (o *OnboardingScreen) Init() tea.Cmd {
	return o.subject.Init()
}

func (o *OnboardingScreen) Title() string {
	return "Getting started"
}

func (o *OnboardingScreen) KeyHints() []layout.KeyHint {
	switch o.wiz.Step() {
	case wizard.StepSubjects:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Add subject"},
			{Key: "Tab", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case wizard.StepHours:
		return []layout.KeyHint{
			{Key: "←→", Description: "Hours"},
			{Key: "Enter", Description: "Start now"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
}

// Step returns the current wizard step.
func (o *OnboardingScreen) Step() wizard.Step { return o.wiz.Step() }

func (o *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if o.finished {
		return o, nil
	}

	kmsg, isKey := msg.(tea.KeyPressMsg)
	switch o.wiz.Step() {
	case wizard.StepSubjects:
		if nextButton(wizard.StepSubjects).Pressed(msg) {
			return o.advance()
		}
		if isKey && kmsg.String() == "enter" {
			if o.subject.Blank() {
				return o.advance()
			}
			o.wiz.AddSubject(o.subject.Value())
			o.subject.Reset()
			o.errMsg = ""
			return o, nil
		}
		var cmd tea.Cmd
		o.subject, cmd = o.subject.Update(msg)
		return o, cmd

	case wizard.StepExamDate:
		if nextButton(wizard.StepExamDate).Pressed(msg) {
			o.wiz.SetExamDate(strings.TrimSpace(o.date.Value()))
			return o.advance()
		}
		var cmd tea.Cmd
		o.date, cmd = o.date.Update(msg)
		return o, cmd

	case wizard.StepHours:
		if nextButton(wizard.StepHours).Pressed(msg) {
			return o.advance()
		}
		o.hours, _ = o.hours.Update(msg)
		o.wiz.SetHours(o.hours.Value)
		return o, nil
	}
	return o, nil
}

func (o *OnboardingScreen) advance() (screen.Screen, tea.Cmd) {
	profile, err := o.wiz.Next()
	if err != nil {
		o.errMsg = err.Error()
		return o, nil
	}
	o.errMsg = ""

	switch o.wiz.Step() {
	case wizard.StepExamDate:
		return o, o.date.Init()
	case wizard.StepDone:
		o.finished = true
		return o, o.finish(*profile)
	}
	return o, nil
}

// finish hands the profile to a loading screen that stores it and requests
// the schedule. A failed schedule is logged by Onboard and the dashboard
// opens with no tasks.
func (o *OnboardingScreen) finish(profile plan.Profile) tea.Cmd {
	deps := o.deps
	next := o.next
	job := func(ctx context.Context) error {
		return assistant.Onboard(ctx, deps.Board, deps.Assistant, profile, deps.Logger)
	}
	after := func(err error) screen.Screen {
		if err != nil {
			deps.Logger.Error("onboarding failed", zap.Error(err))
			return New(deps, next)
		}
		return next()
	}
	ls := loading.New(loading.ScheduleHeadline, loading.ScheduleDetail, job, after)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: ls} }
}

func (o *OnboardingScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	step := o.wiz.Step()
	c := copyByStep[step]

	var sections []string
	sections = append(sections,
		theme.Title.Render(layout.AppName),
		theme.Subtitle.Render(layout.Tagline),
		"",
		theme.Heading.Render("✨ "+c.heading),
		theme.Hint.Render(c.detail),
		"",
	)

	switch step {
	case wizard.StepSubjects:
		sections = append(sections, o.subject.View())
		if subjects := o.wiz.Subjects(); len(subjects) > 0 {
			chips := make([]string, 0, len(subjects))
			for _, s := range subjects {
				chips = append(chips, theme.Chip.Render(s))
			}
			sections = append(sections, "", lipgloss.NewStyle().Width(cw-6).Render(strings.Join(chips, " ")))
		}
	case wizard.StepExamDate:
		sections = append(sections, o.date.View())
	case wizard.StepHours:
		sections = append(sections, o.hours.View())
	}

	if o.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(o.errMsg))
	}

	sections = append(sections, "", nextButton(step).View())
	sections = append(sections, "", theme.Hint.Render(stepCounter(step)))

	card := components.Card("", strings.Join(sections, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// nextButton moves the form past step.
func nextButton(step wizard.Step) components.Button {
	switch step {
	case wizard.StepSubjects:
		return components.NewButton("Next", "tab")
	case wizard.StepHours:
		return components.NewButton("Start now", "enter")
	default:
		return components.NewButton("Next", "enter")
	}
}

func stepCounter(s wizard.Step) string {
	switch s {
	case wizard.StepSubjects:
		return "Step 1 of 3"
	case wizard.StepExamDate:
		return "Step 2 of 3"
	default:
		return "Step 3 of 3"
	}
}
