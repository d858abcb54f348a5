package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskd/internal/ipc"
	"github.com/1broseidon/deskd/internal/telemetry"
)

var (
	focusedRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("250"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// renderStatusBar renders the daemon connection bar at the top.
func renderStatusBar(connected bool, data *ipc.WindowsData, width int) string {
	var status string
	if connected {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
		parts := []string{dot + " daemon connected"}
		if data != nil {
			parts = append(parts, fmt.Sprintf("windows:%d", len(data.Windows)))
			parts = append(parts, fmt.Sprintf("top:%d", data.TopStackOrder))
			if data.FocusedID != "" {
				parts = append(parts, "focused:"+data.FocusedID)
			}
		}
		status = strings.Join(parts, "  ")
	} else {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("●")
		status = dot + " daemon not running"
	}

	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(status)
}

// renderHelpBar renders the bottom keybinding bar.
func renderHelpBar(width int) string {
	help := "r: refresh  d: emit diagnostics  q/ctrl-c: quit"
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

// renderStack renders the window table (top of stack first) and a metrics
// summary line.
func renderStack(data *ipc.WindowsData, snap *telemetry.Snapshot, lastError string, width, height int) string {
	var lines []string

	if lastError != "" {
		lines = append(lines, errorStyle.Render("error: "+lastError))
	}

	if data == nil || len(data.Windows) == 0 {
		lines = append(lines, dimStyle.Render("(no open windows)"))
	} else {
		lines = append(lines, headerStyle.Render(
			fmt.Sprintf("  %5s  %-20s  %-12s  %-18s  %s", "Z", "ID", "Kind", "Geometry", "State")))

		// GetWindows returns bottom-to-top; show the top of the stack first.
		ws := data.Windows
		for i := len(ws) - 1; i >= 0; i-- {
			w := ws[i]

			marker := " "
			if w.Focused {
				marker = "●"
			}
			geom := fmt.Sprintf("%dx%d @ (%d,%d)", w.Width, w.Height, w.X, w.Y)
			state := windowState(w.Minimized, w.Maximized)

			line := fmt.Sprintf("%s %5d  %-20s  %-12s  %-18s  %s",
				marker, w.ZIndex, w.ID, w.Kind(), geom, state)

			if w.Focused {
				lines = append(lines, focusedRowStyle.Width(width).Render(line))
			} else if w.Minimized {
				lines = append(lines, dimStyle.Render(line))
			} else {
				lines = append(lines, rowStyle.Render(line))
			}
		}
	}

	lines = append(lines, "")
	lines = append(lines, dimStyle.Render(renderMetricsLine(snap)))

	// Pad or clip to the content height
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func windowState(minimized, maximized bool) string {
	switch {
	case minimized:
		return "minimized"
	case maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// renderMetricsLine summarizes counter totals from the daemon's collector.
func renderMetricsLine(snap *telemetry.Snapshot) string {
	if snap == nil {
		return "telemetry: unavailable"
	}
	if !snap.Enabled {
		return "telemetry: disabled"
	}

	// Aggregate counters across tag series
	totals := make(map[string]int64)
	for _, c := range snap.Counters {
		totals[c.Name] += c.Value
	}

	parts := []string{"telemetry:"}
	for _, name := range []string{"windows_opened", "windows_focused", "windows_closed", "windows_minimized", "windows_maximized"} {
		short := strings.TrimPrefix(name, "windows_")
		parts = append(parts, fmt.Sprintf("%s=%d", short, totals[name]))
	}
	return strings.Join(parts, " ")
}
