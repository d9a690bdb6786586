package cli

import (
	"context"

	"github.com/spacesedan/sentidesk/internal/app"
	"github.com/spf13/cobra"
)

// Builder wires the application for a command. Commands that need services
// call it lazily so `--help` works without any backend.
type Builder func(ctx context.Context) (*app.App, error)

// NewRootCmd creates the top-level "sentidesk" command and registers all
// subcommands against build.
func NewRootCmd(build Builder) *cobra.Command {
	root := &cobra.Command{
		Use:           "sentidesk",
		Short:         "Customer support assistant with sentiment-aware replies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(build),
		newChatCmd(build),
		newAskCmd(build),
		newArticlesCmd(build),
	)

	return root
}
