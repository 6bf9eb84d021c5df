package cmd

import (
	"fmt"

	mcpserver "github.com/kasuwa-dev/kasuwa/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server (stdio, or HTTP with --http)",
	Long:  "Expose the catalog and the conversational search engine to AI agents over the Model Context Protocol.",
	RunE:  runMCP,
}

func init() {
	mcpCmd.Flags().Bool("http", false, "Serve over streamable HTTP instead of stdio")
	mcpCmd.Flags().String("port", "", "HTTP port (default from $PORT or 4000)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	gateway := buildGateway()
	service := buildSearchService(gateway)

	if useHTTP, _ := cmd.Flags().GetBool("http"); useHTTP {
		port := cfg.HTTPPort
		if p, _ := cmd.Flags().GetString("port"); p != "" {
			port = p
		}
		return mcpserver.ServeHTTP(fmt.Sprintf(":%s", port), cfg.APIKey, service, gateway)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting Kasuwa MCP server on stdio...")
	return mcpserver.Serve(service, gateway)
}
