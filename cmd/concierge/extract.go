package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/intent"
	"github.com/Veraticus/tech-concierge/internal/model"
)

func extractCmd() *cobra.Command {
	var seed string

	cmd := &cobra.Command{
		Use:   "extract <message>",
		Short: "Extract shopper context from a message",
		Long:  `Print the budget, use case, category and urgency found in a message as JSON.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := parseContext(seed)
			if err != nil {
				return err
			}
			if current == nil {
				current = &model.Context{}
			}

			extracted := intent.Extract(strings.Join(args, " "), *current)
			return printJSON(cmd.OutOrStdout(), extracted)
		},
	}

	cmd.Flags().StringVar(&seed, "context", "", "existing context as JSON")

	return cmd
}
