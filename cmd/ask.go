package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/focoleve/internal/mentor"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask the study mentor one question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("message is empty")
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		chat := mentor.NewChat()
		chat.Send(cmd.Context(), e.newAssistant(cmd), text)

		msgs := chat.Messages()
		fmt.Fprintln(cmd.OutOrStdout(), "🧘", msgs[len(msgs)-1].Text)
		return nil
	},
}
