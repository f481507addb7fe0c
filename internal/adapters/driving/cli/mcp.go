package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can look up
NCO-2015 codes.

Tools:
  search_job_codes  - rank job codes for a free-text description
  list_job_codes    - list the job-code records held by the service
  list_search_logs  - page through the service's search log

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead, which enables testing with
the MCP Inspector web UI and remote access.

Examples:
  # Stdio mode (default)
  ncosearch mcp serve

  # HTTP mode
  ncosearch mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "ncosearch": {
        "command": "/path/to/ncosearch",
        "args": ["mcp", "serve"]
      }
    }
  }`,
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

	ports := &mcp.Ports{
		Search:    searchSession,
		Admin:     adminService,
		SearchLog: searchLogService,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
