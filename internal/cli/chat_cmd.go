package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/support"
	"github.com/spf13/cobra"
)

func newChatCmd(build Builder) *cobra.Command {
	var name, category, urgency string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in the terminal",
		Long:  "Reads one message per line. Type exit or quit to leave.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := build(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			id, err := a.Conversation.Start(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Conversation.End(ctx, id) }()

			out := cmd.OutOrStdout()
			styled := isTerminal(out)
			scanner := bufio.NewScanner(cmd.InOrStdin())

			for {
				fmt.Fprint(out, "You: ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				msg := strings.TrimSpace(scanner.Text())
				switch strings.ToLower(msg) {
				case "":
					continue
				case "exit", "quit":
					return nil
				}

				result, err := a.Conversation.Send(ctx, id, support.Turn{
					Message:  msg,
					UserName: name,
					Category: models.CanonicalCategory(category),
					Urgency:  urgency,
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, FormatTurn(result, styled))
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", models.DefaultUserName, "Name the assistant addresses")
	cmd.Flags().StringVar(&category, "category", models.DefaultCategory, "Topic category ("+strings.Join(models.Categories, ", ")+")")
	cmd.Flags().StringVar(&urgency, "urgency", models.DefaultUrgency, "Urgency (High escalates)")

	return cmd
}
