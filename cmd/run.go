package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/focoleve/internal/app"
	"github.com/abhisek/focoleve/internal/mentor"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	return app.Run(app.Options{
		Board:     e.board,
		Assistant: e.newAssistant(cmd),
		Chat:      mentor.NewChat(),
		Timer:     e.cfg.Timer,
		Logger:    e.logger,
	})
}
