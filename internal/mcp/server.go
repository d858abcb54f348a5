// Package mcp exposes the desktop session to MCP clients as a set of
// window tools. The server is a thin bridge: every tool call is forwarded
// to the running deskd daemon over the IPC socket, so the daemon stays the
// single owner of the registry.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskd/internal/config"
	"github.com/1broseidon/deskd/internal/ipc"
)

const (
	ServerName    = "deskd"
	ServerVersion = "0.1.0"
)

// Server is the MCP server for desktop window control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates an MCP server talking to the daemon configured in cfg.
// Fails when the daemon is not reachable, so misconfiguration surfaces at
// startup rather than on the first tool call.
func NewServer(cfg *config.Config) (*Server, error) {
	client := ipc.NewClientForSocket(cfg.SocketPath)
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("deskd daemon is not reachable: %w", err)
	}

	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "open_window",
		Description: "Open a window on the simulated desktop, focused and on top of the stack. If a window with the id already exists it is brought to front (and un-minimized) instead; its geometry is preserved and any geometry in this call is ignored.",
	}, s.handleOpenWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "close_window",
		Description: "Close a window, removing it from the desktop entirely. Closing an unknown id is a no-op.",
	}, s.handleCloseWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Bring a window to the front of the stack and give it focus without changing its minimized state.",
	}, s.handleFocusWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "minimize_window",
		Description: "Hide a window while keeping its record and geometry. The window loses focus; no other window is affected.",
	}, s.handleMinimizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "maximize_window",
		Description: "Toggle a window's maximized flag. Focus, minimized state, geometry, and stacking order are unaffected.",
	}, s.handleMaximizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "restore_window",
		Description: "Un-minimize a window and bring it to the front with focus.",
	}, s.handleRestoreWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move a window to a new position. No bounds checking is performed.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_window",
		Description: "Resize a window. No bounds checking is performed.",
	}, s.handleResizeWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List all windows sorted by stacking order (topmost last), with the focused id and the current top stack order key.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_metrics",
		Description: "Fetch the daemon's telemetry snapshot: counters, gauges, distributions, and recent events.",
	}, s.handleGetMetrics)
}
