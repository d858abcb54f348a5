// Package tui implements the interactive desktop stack inspector.
//
// The inspector is read-only: it polls the daemon over IPC and renders
// the window stack in z-order with focus and minimize state. The only
// write it can perform is firing the diagnostics sample emitter.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Run starts the inspector, connecting to the daemon at socketPath
// (empty means the default runtime socket). It blocks until the user
// quits.
func Run(socketPath string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	p := tea.NewProgram(newModel(socketPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}
