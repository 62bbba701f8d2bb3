package main

import (
	"github.com/spf13/cobra"

	"github.com/Veraticus/tech-concierge/internal/mcp"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Expose context extraction, bundle selection and product search as MCP tools,
and the bundle catalog as MCP resources, for assistant hosts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			app, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			server, err := mcp.NewServer(&mcp.Ports{
				Advisor:  app.agent,
				Catalog:  app.catalog,
				Products: app.searcher,
			})
			if err != nil {
				return err
			}

			app.logger.Info("MCP server running on stdio")
			return server.Run(ctx)
		},
	}
}
