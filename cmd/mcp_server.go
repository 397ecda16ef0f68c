package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/bridgectl/internal/host"
	"github.com/mj1618/bridgectl/internal/host/chrome"
	"github.com/mj1618/bridgectl/internal/server"
	"github.com/mj1618/bridgectl/internal/version"
)

// mcpServer wraps the MCP server with the bridge-backed tool handlers.
type mcpServer struct {
	backend *server.Server
	mcp     *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport   string
	Port        int
	DevToolsURL string
	PageURL     string
	ConfigPath  string
	CacheTTL    time.Duration
}

// newMCPServer creates and configures an MCP server with all bridgectl tools.
func newMCPServer(cfg MCPConfig) (*mcpServer, error) {
	opts := server.Options{
		BridgeURL:  bridgeURL(),
		ConfigPath: cfg.ConfigPath,
		CacheTTL:   cfg.CacheTTL,
		Log:        logger,
	}
	if cfg.DevToolsURL != "" {
		opts.AttachHost = func() (host.Host, error) {
			return chrome.Attach(context.Background(), chrome.Options{
				DevToolsURL: cfg.DevToolsURL,
				PageURL:     cfg.PageURL,
				Log:         logger,
			})
		}
	}

	backend, err := server.New(opts)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{backend: backend}
	s.mcp = mcpserver.NewMCPServer(
		"bridgectl",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) close() {
	_ = s.backend.Close()
}

func (s *mcpServer) registerTools() {
	// send
	s.mcp.AddTool(
		mcp.NewTool("send",
			mcp.WithDescription("Post one device action to the capture bridge. Actions: tap, long_press, input, swipe, back. Bounds come from the arguments, or from the inspector page's current selection when omitted."),
			mcp.WithString("action", mcp.Description("Action: tap, long_press, input, swipe, back (default: tap)")),
			mcp.WithString("bounds", mcp.Description("Element rectangle, e.g. [10,20][110,70]")),
			mcp.WithString("xpath", mcp.Description("Element path hint")),
			mcp.WithString("text", mcp.Description("Text to type (input)")),
			mcp.WithNumber("duration_ms", mcp.Description("Press or swipe duration in ms (long_press, swipe)")),
			mcp.WithNumber("dx", mcp.Description("Swipe delta X (custom direction)")),
			mcp.WithNumber("dy", mcp.Description("Swipe delta Y (custom direction)")),
			mcp.WithString("direction", mcp.Description("Swipe direction: custom, up, down, left, right")),
			mcp.WithNumber("distance", mcp.Description("Swipe distance in pixels (named directions)")),
			mcp.WithString("capture_mode", mcp.Description("Capture timing: post, mid (default: config)")),
			mcp.WithNumber("mid_delay_ms", mcp.Description("Mid-capture delay in ms")),
			mcp.WithNumber("wait_after_ms", mcp.Description("Post-capture settle wait in ms")),
		),
		s.backend.HandleSend,
	)

	// final_screenshot
	s.mcp.AddTool(
		mcp.NewTool("final_screenshot",
			mcp.WithDescription("Finish the capture session: the bridge takes its final screenshot and closes out the recording."),
		),
		s.backend.HandleFinalScreenshot,
	)

	// grab
	s.mcp.AddTool(
		mcp.NewTool("grab",
			mcp.WithDescription("Read the inspector page's currently selected element: rectangle, element path, and attributes. Requires --devtools-url."),
		),
		s.backend.HandleGrab,
	)

	// config_get
	s.mcp.AddTool(
		mcp.NewTool("config_get",
			mcp.WithDescription("Read the persisted panel config (capture mode, delays, element-path selector)."),
		),
		s.backend.HandleConfigGet,
	)

	// config_set
	s.mcp.AddTool(
		mcp.NewTool("config_set",
			mcp.WithDescription("Update and persist panel config fields. Only supplied fields change."),
			mcp.WithString("element_path_selector", mcp.Description("CSS selector for the element-path region")),
			mcp.WithString("capture_mode", mcp.Description("Capture timing: post, mid")),
			mcp.WithNumber("mid_delay_ms", mcp.Description("Delay before the mid-action capture")),
			mcp.WithNumber("wait_after_ms", mcp.Description("Settle wait before the post-action capture")),
		),
		s.backend.HandleConfigSet,
	)
}
