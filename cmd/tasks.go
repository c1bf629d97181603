package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focoleve/internal/assistant"
	"github.com/abhisek/focoleve/internal/plan"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show or update today's goals",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the study plan with progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		out := cmd.OutOrStdout()
		if !e.board.HasProfile() {
			fmt.Fprintln(out, "No profile yet. Run focoleve to get started.")
			return nil
		}
		printBoard(out, e.board, time.Now())
		return nil
	},
}

var tasksToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Mark a task done, or not done again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		res, ok := e.board.Toggle(cmd.Context(), args[0])
		if !ok {
			return fmt.Errorf("task %q not found", args[0])
		}

		out := cmd.OutOrStdout()
		state := "not done"
		if res.Task.Completed {
			state = "done"
		}
		fmt.Fprintf(out, "%s · %s marked %s.\n", res.Task.Subject, res.Task.Topic, state)
		if res.Encouragement != "" {
			fmt.Fprintln(out, res.Encouragement)
		}
		fmt.Fprintf(out, "%d%% done\n", e.board.Progress())

		if res.Celebrate {
			msg, _ := assistant.Celebrate(cmd.Context(), e.board, e.newAssistant(cmd), res.CelebrationSeq, e.logger)
			fmt.Fprintln(out)
			fmt.Fprintln(out, "🏆 Goal Reached!")
			fmt.Fprintln(out, msg)
			e.board.DismissCelebration()
		}
		return nil
	},
}

func printBoard(out io.Writer, b *plan.Board, now time.Time) {
	p := b.Profile()
	fmt.Fprintf(out, "Subjects: %s\n", strings.Join(p.Subjects, ", "))
	fmt.Fprintf(out, "Exam:     %s (%d days left)\n", p.ExamDate, p.DaysUntilExam(now))
	fmt.Fprintf(out, "Pace:     %dh/day\n", p.StudyHours)
	fmt.Fprintln(out)

	tasks := b.Tasks()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks for today. How about relaxing?")
		return
	}

	pct := plan.Progress(tasks)
	fmt.Fprintf(out, "Your Daily Goals  %d%% done\n", pct)
	fmt.Fprintln(out, strings.Repeat("─", 72))
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}
		fmt.Fprintf(out, "%s %-10s  %-16s  %s\n", box, t.Date, truncate(t.Subject, 16), t.Topic)
		fmt.Fprintf(out, "    %s\n", t.ID)
	}
	fmt.Fprintln(out, strings.Repeat("─", 72))
	fmt.Fprintln(out, plan.Footer(pct))
}

func init() {
	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksToggleCmd)
}
