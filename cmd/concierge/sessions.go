package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/cli"
	"github.com/Veraticus/tech-concierge/internal/common"
	"github.com/Veraticus/tech-concierge/internal/service"
)

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage saved conversations",
		Long: `List, show and delete saved conversations. Sessions persist between runs only
with the sqlite backend (sessions.backend: sqlite).`,
	}

	cmd.AddCommand(listSessionsCmd())
	cmd.AddCommand(showSessionCmd())
	cmd.AddCommand(deleteSessionCmd())

	return cmd
}

func warnIfMemoryBackend() {
	if !sessionsPersist() {
		fmt.Println(cli.FormatWarning("Sessions are kept in memory and vanish on exit. Use --sessions sqlite to keep them."))
	}
}

func listSessionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			warnIfMemoryBackend()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sessions, err := store.ListSessions(ctx, service.SessionFilter{Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}

			if len(sessions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No sessions found. Start one with 'concierge chat'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Updated"),
				cli.TableHeaderStyle.Render("Turns"),
				cli.TableHeaderStyle.Render("Looking for"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 36),
				strings.Repeat("-", 16),
				strings.Repeat("-", 5),
				strings.Repeat("-", 20))

			for _, s := range sessions {
				subject := s.Context.Subject()
				if subject == "" {
					subject = cli.SubtleStyle.Render("(unknown)")
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
					s.ID, s.UpdatedAt.Local().Format("2006-01-02 15:04"), s.UserTurns(), subject)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum sessions to show")

	return cmd
}

func showSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := store.GetSession(ctx, args[0])
			if errors.Is(err, common.ErrNotFound) {
				return fmt.Errorf("session %q not found", args[0])
			} else if err != nil {
				return fmt.Errorf("failed to load session: %w", err)
			}

			recs, err := store.GetRecommendations(ctx, session.ID)
			if err != nil {
				return fmt.Errorf("failed to load recommendations: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.FormatTitle("Session "+session.ID))
			fmt.Fprintln(out, cli.RenderContext(session.Context))
			fmt.Fprintln(out)
			fmt.Fprint(out, cli.RenderTranscript(session.Messages))
			if len(recs) > 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("%d bundles recommended", len(recs))))
			}
			return nil
		},
	}
}

func deleteSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteSession(ctx, args[0]); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("session %q not found", args[0])
				}
				return fmt.Errorf("failed to delete session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Deleted session "+args[0]))
			return nil
		},
	}
}
