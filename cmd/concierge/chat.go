package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/tui"
	"github.com/Veraticus/tech-concierge/internal/tui/themes"
)

func chatCmd() *cobra.Command {
	var (
		plain     bool
		sessionID string
		seed      string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the concierge",
		Long: `Start a conversation with the concierge. Describe what you need, your budget and
when you need it; bundles are recommended once there is enough to go on.

The full-screen interface is used by default. Use --plain for a line-at-a-time
conversation, for example when piping input.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			callerContext, err := parseContext(seed)
			if err != nil {
				return err
			}

			app, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if plain {
				interrupts := cli.NewInterruptHandler(cmd.OutOrStdout())
				interrupts.SetResumable(sessionsPersist())
				ctx = interrupts.HandleInterrupts(ctx)
				interrupts.SetSession(sessionID)

				return cli.RunPlainChat(ctx, app.agent, os.Stdin, cmd.OutOrStdout(), cli.PlainChatOptions{
					SessionID: sessionID,
					Context:   callerContext,
					Spinner:   true,
					OnSession: interrupts.SetSession,
				})
			}

			finalSession, err := tui.Run(ctx,
				tui.WithChatter(app.agent),
				tui.WithSession(sessionID),
				tui.WithContext(callerContext),
				tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
			)
			if err != nil {
				return err
			}
			if finalSession != "" && sessionsPersist() {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Resume with: concierge chat --session "+finalSession))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "line-at-a-time chat instead of the full-screen interface")
	cmd.Flags().StringVar(&sessionID, "session", "", "resume a saved session")
	cmd.Flags().StringVar(&seed, "context", "", `known shopper context as JSON, e.g. '{"location":"10010"}'`)
	cmd.Flags().String("theme", "", "color theme (default, catppuccin)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}
