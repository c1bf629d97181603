package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/focoleve/internal/httpapi"
	"github.com/abhisek/focoleve/internal/mentor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the study board as a local JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()

		addr := e.cfg.Server.Addr
		if a, _ := cmd.Flags().GetString("addr"); a != "" {
			addr = a
		}

		srv, err := httpapi.New(httpapi.Config{
			Board:           e.board,
			Assistant:       e.newAssistant(cmd),
			Chat:            mentor.NewChat(),
			Logger:          e.logger,
			Mode:            e.cfg.Server.Mode,
			RateLimitPerMin: e.cfg.Server.RateLimitPerMin,
		})
		if err != nil {
			return fmt.Errorf("init server: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		e.logger.Info("serving", zap.String("addr", addr))
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s (Ctrl+C to stop)\n", addr)
		if err := srv.Run(ctx, addr); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
