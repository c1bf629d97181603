package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/focoleve/internal/plan"
	"github.com/abhisek/focoleve/internal/ui/components"
	"github.com/abhisek/focoleve/internal/ui/layout"
	"github.com/abhisek/focoleve/internal/ui/theme"
)

func (d *DashboardScreen) View(width, height int) string {
	cel := d.deps.Board.Celebration()
	if cel.Shown() {
		return renderCelebration(cel.Message(), d.dismiss, width, height)
	}
	if d.confirmReset {
		return renderResetConfirm(width, height)
	}

	var body string
	if layout.IsWide(width) {
		right := 34
		left := width - right - 3
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			d.renderGoals(left), " ", d.renderTools(right))
	} else {
		cw := max(20, width-2)
		body = d.renderGoals(cw) + "\n" + d.renderTools(cw)
	}

	var top []string
	if d.encouragement != "" {
		top = append(top, lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Toast.Render(d.encouragement)))
	}
	if d.errMsg != "" {
		top = append(top, theme.ErrorText.Render(d.errMsg))
	}
	if len(top) > 0 {
		body = strings.Join(top, "\n") + "\n" + body
	}
	return body
}

func (d *DashboardScreen) renderGoals(width int) string {
	tasks := d.deps.Board.Tasks()
	pct := plan.Progress(tasks)

	inner := max(10, width-6)
	heading := theme.Heading.Render("Your Daily Goals")
	done := theme.Hint.Render(fmt.Sprintf("%d%% done", pct))
	gap := max(1, inner-lipgloss.Width(heading)-lipgloss.Width(done))

	sections := []string{
		heading + strings.Repeat(" ", gap) + done,
		"",
		components.NewProgressBar(pct, inner).WithCaption(fmt.Sprintf("%d/%d", completed(tasks), len(tasks))).View(),
		"",
		d.tasks.View(),
		"",
		lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(theme.Hint.Render(plan.Footer(pct))),
	}
	goals := components.Card("", strings.Join(sections, "\n"), width)

	quote := theme.Quote.Width(width).Render(
		theme.Heading.Render("Quote of the Day") + "\n" + "\"" + plan.DailyQuote + "\"")

	return goals + "\n" + quote
}

func (d *DashboardScreen) renderTools(width int) string {
	st := d.timer.State()
	action := "P to start"
	if st.Running {
		action = "P to pause"
	}
	timerBody := lipgloss.JoinVertical(lipgloss.Center,
		theme.Hint.Render(strings.ToUpper(st.Mode.Label())),
		"",
		theme.Title.Render(d.timer.Format()),
		"",
		theme.Body.Render(action+" · R to reset"),
		"",
		lipgloss.NewStyle().Width(max(10, width-6)).Align(lipgloss.Center).Render(theme.Hint.Render(st.Mode.Hint())),
	)
	timerCard := components.Card("", timerBody, width)

	days := d.deps.Board.Profile().DaysUntilExam(d.deps.Now())
	countdown := lipgloss.JoinVertical(lipgloss.Center,
		theme.Heading.Render("📅 Countdown"),
		"",
		theme.Title.Render(fmt.Sprintf("%d", days)),
		theme.Hint.Render("DAYS UNTIL THE BIG DAY"),
		"",
		theme.Hint.Render("X to start over from scratch"),
	)
	countdownCard := components.Card("", countdown, width)

	return timerCard + "\n" + countdownCard
}

func completed(tasks []plan.Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func renderCelebration(message string, dismiss components.Button, width, height int) string {
	if message == "" {
		message = "..."
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		"🏆",
		"",
		theme.Title.Render("Goal Reached!"),
		"",
		theme.Body.Render(message),
		"",
		dismiss.View(),
	)
	return components.ModalBox(body, width, height)
}

func renderResetConfirm(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Heading.Render("Start over from scratch?"),
		"",
		theme.Body.Render("This will erase your profile, your plan and all your progress."),
		"",
		theme.Hint.Render("Y to erase · N to cancel"),
	)
	return components.ModalBox(body, width, height)
}
