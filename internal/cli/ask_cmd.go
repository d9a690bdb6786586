package cli

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/spacesedan/sentidesk/internal/models"
	"github.com/spacesedan/sentidesk/internal/support"
	"github.com/spf13/cobra"
)

func newAskCmd(build Builder) *cobra.Command {
	var name, category, urgency, feedback string
	var history []string

	cmd := &cobra.Command{
		Use:   "ask <message...>",
		Short: "Answer a single message and print the result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg := strings.TrimSpace(strings.Join(args, " "))
			if msg == "" {
				return errors.New("message is required")
			}

			a, err := build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Assistant.Respond(cmd.Context(), support.Turn{
				Message:  msg,
				History:  history,
				UserName: name,
				Category: models.CanonicalCategory(category),
				Urgency:  urgency,
				Feedback: feedback,
			})

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(models.NewChatResponse("", result))
		},
	}

	cmd.Flags().StringVar(&name, "name", models.DefaultUserName, "Name the assistant addresses")
	cmd.Flags().StringVar(&category, "category", models.DefaultCategory, "Topic category ("+strings.Join(models.Categories, ", ")+")")
	cmd.Flags().StringVar(&urgency, "urgency", models.DefaultUrgency, "Urgency (High escalates)")
	cmd.Flags().StringVar(&feedback, "feedback", "", "Feedback to echo back")
	cmd.Flags().StringArrayVar(&history, "history", nil, "Earlier message (repeatable, oldest first)")

	return cmd
}
