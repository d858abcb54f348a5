package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/deskd/internal/desktop"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandOpenWindow     CommandType = "OPEN_WINDOW"
	CommandCloseWindow    CommandType = "CLOSE_WINDOW"
	CommandMinimizeWindow CommandType = "MINIMIZE_WINDOW"
	CommandMaximizeWindow CommandType = "MAXIMIZE_WINDOW"
	CommandRestoreWindow  CommandType = "RESTORE_WINDOW"
	CommandFocusWindow    CommandType = "FOCUS_WINDOW"
	CommandMoveWindow     CommandType = "MOVE_WINDOW"
	CommandResizeWindow   CommandType = "RESIZE_WINDOW"
	CommandGetWindows     CommandType = "GET_WINDOWS"
	CommandGetStatus      CommandType = "GET_STATUS"
	CommandGetMetrics     CommandType = "GET_METRICS"
	CommandEmitDiag       CommandType = "EMIT_DIAGNOSTICS"
	CommandReload         CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OpenWindowPayload is the payload for OPEN_WINDOW. Zero geometry plus an
// empty title lets the daemon fill defaults from the app config for the
// id's kind.
type OpenWindowPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Icon   string `json:"icon,omitempty"`
	X      int    `json:"x,omitempty"`
	Y      int    `json:"y,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// WindowTargetPayload addresses a single window by id.
type WindowTargetPayload struct {
	ID string `json:"id"`
}

// MoveWindowPayload is the payload for MOVE_WINDOW.
type MoveWindowPayload struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

// ResizeWindowPayload is the payload for RESIZE_WINDOW.
type ResizeWindowPayload struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// WindowOpData reports the outcome of a window operation. Found is false
// when the target id was absent and the operation was a no-op.
type WindowOpData struct {
	ID      string `json:"id"`
	Found   bool   `json:"found"`
	Created bool   `json:"created,omitempty"`
	ZIndex  int    `json:"z_index,omitempty"`
}

// WindowsData is the registry snapshot returned by GET_WINDOWS. Windows
// are sorted by ascending z-index; the rendering layer paints them in
// order.
type WindowsData struct {
	Windows       []desktop.Window `json:"windows"`
	TopStackOrder int              `json:"top_stack_order"`
	FocusedID     string           `json:"focused_id,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	OpenWindows   int    `json:"open_windows"`
	TopStackOrder int    `json:"top_stack_order"`
	FocusedID     string `json:"focused_id,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	DaemonRunning bool   `json:"daemon_running"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
