package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/deskd/internal/ipc"
	"github.com/1broseidon/deskd/internal/telemetry"
)

func (s *Server) handleOpenWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args OpenWindowInput) (*mcpsdk.CallToolResult, OpenWindowOutput, error) {
	op, err := s.client.OpenWindow(ipc.OpenWindowPayload{
		ID:     args.ID,
		Title:  args.Title,
		Icon:   args.Icon,
		X:      args.X,
		Y:      args.Y,
		Width:  args.Width,
		Height: args.Height,
	})
	if err != nil {
		return nil, OpenWindowOutput{}, err
	}
	return nil, OpenWindowOutput{ID: op.ID, Created: op.Created, ZIndex: op.ZIndex}, nil
}

func (s *Server) handleCloseWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.CloseWindow(args.ID)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleFocusWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.FocusWindow(args.ID)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleMinimizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.MinimizeWindow(args.ID)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleMaximizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.MaximizeWindow(args.ID)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleRestoreWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args WindowTargetInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.RestoreWindow(args.ID)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.MoveWindow(args.ID, args.X, args.Y)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleResizeWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeWindowInput) (*mcpsdk.CallToolResult, WindowOpOutput, error) {
	op, err := s.client.ResizeWindow(args.ID, args.Width, args.Height)
	if err != nil {
		return nil, WindowOpOutput{}, err
	}
	return nil, WindowOpOutput{ID: op.ID, Found: op.Found}, nil
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	data, err := s.client.GetWindows()
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, ListWindowsOutput{
		Windows:       data.Windows,
		TopStackOrder: data.TopStackOrder,
		FocusedID:     data.FocusedID,
	}, nil
}

func (s *Server) handleGetMetrics(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetMetricsInput) (*mcpsdk.CallToolResult, telemetry.Snapshot, error) {
	snap, err := s.client.GetMetrics()
	if err != nil {
		return nil, telemetry.Snapshot{}, err
	}
	return nil, *snap, nil
}
