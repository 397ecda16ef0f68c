package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing bridgectl tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the bridge
actions as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  bridgectl serve
  bridgectl serve --transport streamable-http --port 8080
  bridgectl serve --devtools-url ws://127.0.0.1:9222 --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().String("devtools-url", "", "Chrome DevTools endpoint for the grab tool")
	serveCmd.Flags().String("page-url", "", "Inspector page URL to navigate to")
	serveCmd.Flags().String("config", "", "Panel config file (default: user config dir)")
	serveCmd.Flags().Int("cache-ttl", 500, "Selection cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	devtoolsURL, _ := cmd.Flags().GetString("devtools-url")
	pageURL, _ := cmd.Flags().GetString("page-url")
	configPath, _ := cmd.Flags().GetString("config")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	cfg := MCPConfig{
		Transport:   transport,
		Port:        port,
		DevToolsURL: devtoolsURL,
		PageURL:     pageURL,
		ConfigPath:  configPath,
		CacheTTL:    time.Duration(cacheTTLMs) * time.Millisecond,
	}

	srv, err := newMCPServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.close()

	return srv.serve(cfg)
}
