package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/tech-concierge/internal/api"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the concierge over HTTP: chat, recommendations, context extraction,
the bundle catalog, product and store search, and session lookup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if !app.searcher.Live() {
				app.logger.Info("No Best Buy API key configured, searching the local catalog")
			}

			server := api.NewServer(viper.GetString("server.addr"), app.agent, app.searcher, app.logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
