package mcp

import "github.com/1broseidon/deskd/internal/desktop"

// OpenWindowInput is the input for the open_window tool.
type OpenWindowInput struct {
	ID     string `json:"id" jsonschema:"required,Window id. The prefix before the first '-' is the window kind (e.g. notes-1)."`
	Title  string `json:"title,omitempty" jsonschema:"Window title. Defaults from the app config for the id's kind when omitted together with geometry."`
	Icon   string `json:"icon,omitempty" jsonschema:"Icon name shown by the rendering layer"`
	X      int    `json:"x,omitempty" jsonschema:"Left position in pixels"`
	Y      int    `json:"y,omitempty" jsonschema:"Top position in pixels"`
	Width  int    `json:"width,omitempty" jsonschema:"Width in pixels"`
	Height int    `json:"height,omitempty" jsonschema:"Height in pixels"`
}

// OpenWindowOutput is the output for the open_window tool.
type OpenWindowOutput struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
	ZIndex  int    `json:"z_index"`
}

// WindowTargetInput addresses a single window by id.
type WindowTargetInput struct {
	ID string `json:"id" jsonschema:"required,Window id"`
}

// WindowOpOutput reports whether the target window existed. Operations on
// absent ids are silent no-ops, never errors.
type WindowOpOutput struct {
	ID    string `json:"id"`
	Found bool   `json:"found"`
}

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	ID string `json:"id" jsonschema:"required,Window id"`
	X  int    `json:"x" jsonschema:"required,New left position in pixels"`
	Y  int    `json:"y" jsonschema:"required,New top position in pixels"`
}

// ResizeWindowInput is the input for the resize_window tool.
type ResizeWindowInput struct {
	ID     string `json:"id" jsonschema:"required,Window id"`
	Width  int    `json:"width" jsonschema:"required,New width in pixels"`
	Height int    `json:"height" jsonschema:"required,New height in pixels"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct{}

// ListWindowsOutput is the output for the list_windows tool. Windows are
// sorted by ascending z-index; the last entry paints on top.
type ListWindowsOutput struct {
	Windows       []desktop.Window `json:"windows"`
	TopStackOrder int              `json:"top_stack_order"`
	FocusedID     string           `json:"focused_id,omitempty"`
}

// GetMetricsInput is the input for the get_metrics tool.
type GetMetricsInput struct{}
