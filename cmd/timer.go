package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/focoleve/internal/config"
	"github.com/abhisek/focoleve/internal/pomodoro"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a Pomodoro countdown in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		mode, err := pomodoro.ParseMode(modeFlag)
		if err != nil {
			return err
		}

		cfgPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		out := cmd.OutOrStdout()
		timer := pomodoro.NewWithMode(cfg.Timer, mode)
		fmt.Fprintf(out, "%s · %s\n", mode.Label(), mode.Hint())
		fmt.Fprintf(out, "\r%s ", timer.Format())
		timer.ToggleRunning()

		var ticker *pomodoro.Ticker
		finished := false
		ticker = pomodoro.NewTicker(time.Second, func() {
			if timer.Tick() {
				finished = true
				fmt.Fprintf(out, "\r0:00 \n%s finished. Next up: %s.\n", mode.Label(), timer.State().Mode.Label())
				ticker.Stop()
				return
			}
			fmt.Fprintf(out, "\r%s ", timer.Format())
		})
		ticker.Start()

		select {
		case <-ticker.Done():
		case <-ctx.Done():
			ticker.Stop()
			<-ticker.Done()
		}
		if !finished {
			fmt.Fprintf(out, "\nStopped with %s left.\n", timer.Format())
		}
		return nil
	},
}

func init() {
	timerCmd.Flags().StringP("mode", "m", "focus", "Countdown to run: focus or break")
}
