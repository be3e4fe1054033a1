package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/insight-scraper/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can run
ingestions through the "ingest" tool.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  insight mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  insight mcp serve --port 8080

Platform credentials are checked per call, so only the platforms you have
configured will succeed.`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ctx := cmd.Context()
	return withRuntime(ctx, "", func(rt *Runtime) error {
		server, err := mcp.NewServer(&mcp.Ports{
			Ingestor:  rt.Ingestor,
			Platforms: rt.Platforms,
		})
		if err != nil {
			return err
		}

		if port > 0 {
			addr := fmt.Sprintf(":%d", port)
			fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
			return server.RunHTTP(ctx, addr)
		}

		return server.Run(ctx)
	})
}
