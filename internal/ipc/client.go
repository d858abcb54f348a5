package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/deskd/internal/runtimepath"
	"github.com/1broseidon/deskd/internal/telemetry"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a client for the default socket location.
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}
	return NewClientForSocket(socketPath)
}

// NewClientForSocket creates a client for an explicit socket path. An empty
// path falls back to the default location.
func NewClientForSocket(socketPath string) *Client {
	if socketPath == "" {
		return NewClient()
	}
	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// opRequest runs a command whose response carries WindowOpData.
func (c *Client) opRequest(cmd CommandType, payload interface{}) (*WindowOpData, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	resp, err := c.sendRequest(&Request{Command: cmd, Payload: data})
	if err != nil {
		return nil, err
	}

	var op WindowOpData
	if err := json.Unmarshal(resp.Data, &op); err != nil {
		return nil, fmt.Errorf("failed to parse op data: %w", err)
	}
	return &op, nil
}

// OpenWindow opens or refocuses a window.
func (c *Client) OpenWindow(p OpenWindowPayload) (*WindowOpData, error) {
	return c.opRequest(CommandOpenWindow, p)
}

// CloseWindow removes a window.
func (c *Client) CloseWindow(id string) (*WindowOpData, error) {
	return c.opRequest(CommandCloseWindow, WindowTargetPayload{ID: id})
}

// MinimizeWindow hides a window, clearing its focus.
func (c *Client) MinimizeWindow(id string) (*WindowOpData, error) {
	return c.opRequest(CommandMinimizeWindow, WindowTargetPayload{ID: id})
}

// MaximizeWindow toggles a window's maximized flag.
func (c *Client) MaximizeWindow(id string) (*WindowOpData, error) {
	return c.opRequest(CommandMaximizeWindow, WindowTargetPayload{ID: id})
}

// RestoreWindow un-minimizes a window and brings it to front.
func (c *Client) RestoreWindow(id string) (*WindowOpData, error) {
	return c.opRequest(CommandRestoreWindow, WindowTargetPayload{ID: id})
}

// FocusWindow brings a window to front.
func (c *Client) FocusWindow(id string) (*WindowOpData, error) {
	return c.opRequest(CommandFocusWindow, WindowTargetPayload{ID: id})
}

// MoveWindow repositions a window.
func (c *Client) MoveWindow(id string, x, y int) (*WindowOpData, error) {
	return c.opRequest(CommandMoveWindow, MoveWindowPayload{ID: id, X: x, Y: y})
}

// ResizeWindow resizes a window.
func (c *Client) ResizeWindow(id string, width, height int) (*WindowOpData, error) {
	return c.opRequest(CommandResizeWindow, ResizeWindowPayload{ID: id, Width: width, Height: height})
}

// GetWindows retrieves the registry snapshot.
func (c *Client) GetWindows() (*WindowsData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetWindows})
	if err != nil {
		return nil, err
	}

	var data WindowsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("failed to parse windows data: %w", err)
	}
	return &data, nil
}

// GetStatus retrieves daemon status
func (c *Client) GetStatus() (*StatusData, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetStatus})
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}
	return &status, nil
}

// GetMetrics retrieves the telemetry snapshot.
func (c *Client) GetMetrics() (*telemetry.Snapshot, error) {
	resp, err := c.sendRequest(&Request{Command: CommandGetMetrics})
	if err != nil {
		return nil, err
	}

	var snap telemetry.Snapshot
	if err := json.Unmarshal(resp.Data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse metrics data: %w", err)
	}
	return &snap, nil
}

// EmitDiagnostics fires the sample diagnostic telemetry events.
func (c *Client) EmitDiagnostics() error {
	_, err := c.sendRequest(&Request{Command: CommandEmitDiag})
	return err
}

// Reload sends a RELOAD command to the daemon
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}

// Ping reports whether the daemon is reachable.
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
