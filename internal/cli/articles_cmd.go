package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newArticlesCmd(build Builder) *cobra.Command {
	return &cobra.Command{
		Use:   "articles",
		Short: "List the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprint(out, FormatArticles(a.Assistant.Articles(), isTerminal(out)))
			return nil
		},
	}
}
