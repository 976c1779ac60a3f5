package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/split-engine/internal/adapters/driving/mcp"
)

var mcpHTTP string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead.

Tools:
  ingest_document   register a file by path or base64 content
  split_document    split a registered document, optionally writing the archive
  inspect_archive   verify an archive against its manifest

Examples:
  # Stdio mode (for desktop assistants)
  splitengine mcp

  # HTTP mode (for MCP Inspector, remote access)
  splitengine mcp --http 127.0.0.1:8081

Assistant configuration:
  {
    "mcpServers": {
      "splitengine": {
        "command": "/path/to/splitengine",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTP, "http", "", "serve over HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Ingest:  ingestService,
		Split:   splitService,
		Archive: archiveService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	if mcpHTTP != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTP)
		return server.RunHTTP(ctx, mcpHTTP)
	}

	return server.Run(ctx)
}
