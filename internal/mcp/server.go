// Package mcp exposes deskhop's desktop actions as MCP tools over stdio,
// bridging to the running daemon via IPC.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/deskhop/deskhop/internal/ipc"
)

const (
	ServerName    = "deskhop"
	ServerVersion = "0.2.0"
)

// Server is the MCP server for deskhop desktop control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates an MCP server backed by the daemon's IPC socket.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_desktop",
		Description: "Switch to a virtual desktop by index (0-9). Missing desktops are created on demand. The action is queued behind any pending hotkey presses; failures surface as desktop notifications on the user's machine.",
	}, s.handleSwitchDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move the current foreground window to a virtual desktop by index (0-9), creating desktops as needed.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the deskhop daemon status: current desktop, desktop count, number of remembered windows, and uptime.",
	}, s.handleGetStatus)
}

func (s *Server) handleSwitchDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, args SwitchDesktopInput) (*mcpsdk.CallToolResult, SwitchDesktopOutput, error) {
	if err := s.client.SwitchDesktop(args.Index); err != nil {
		return nil, SwitchDesktopOutput{}, err
	}
	return nil, SwitchDesktopOutput{Queued: true, Index: args.Index}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	if err := s.client.MoveWindow(args.Index); err != nil {
		return nil, MoveWindowOutput{}, err
	}
	return nil, MoveWindowOutput{Queued: true, Index: args.Index}, nil
}

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		DaemonRunning:     status.DaemonRunning,
		CurrentDesktop:    status.CurrentDesktop,
		DesktopCount:      status.DesktopCount,
		RememberedWindows: status.RememberedWindows,
		UptimeSeconds:     status.UptimeSeconds,
	}, nil
}
