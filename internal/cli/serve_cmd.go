package cli

import (
	"os/signal"
	"syscall"

	"github.com/spacesedan/sentidesk/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(build Builder) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)

			a, err := build(ctx)
			if err != nil {
				stop()
				return err
			}
			defer a.Close()
			defer stop()

			a.Start(ctx)

			if addr == "" {
				addr = a.Config.HTTPAddr
			}
			return server.New(a.Assistant, a.Conversation, a.AnalyzerHealthy).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to HTTP_ADDR)")

	return cmd
}
