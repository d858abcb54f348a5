package tui

import (
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/deskd/internal/ipc"
	"github.com/1broseidon/deskd/internal/telemetry"
)

// pollInterval is how often the inspector refreshes daemon state.
const pollInterval = time.Second

// tickMsg triggers a periodic refresh of daemon state.
type tickMsg time.Time

// model is the root bubbletea model for the stack inspector.
type model struct {
	ipcClient *ipc.Client

	// Daemon state
	daemonConnected bool
	windows         *ipc.WindowsData
	snapshot        *telemetry.Snapshot
	lastError       string

	// Terminal dimensions
	width  int
	height int
}

func newModel(socketPath string) model {
	m := model{}
	if socketPath == "" {
		m.ipcClient = ipc.NewClient()
	} else {
		m.ipcClient = ipc.NewClientForSocket(socketPath)
	}
	m.refresh()
	return m
}

// refresh pulls the window stack and metrics snapshot from the daemon.
func (m *model) refresh() {
	data, err := m.ipcClient.GetWindows()
	if err != nil {
		m.daemonConnected = false
		m.windows = nil
		m.snapshot = nil
		m.lastError = err.Error()
		return
	}
	m.daemonConnected = true
	m.windows = data
	m.lastError = ""

	// Metrics are optional; a daemon with telemetry disabled still serves windows.
	if snap, err := m.ipcClient.GetMetrics(); err == nil {
		m.snapshot = snap
	} else {
		m.snapshot = nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "r":
			m.refresh()
			return m, nil

		case "d":
			if m.daemonConnected {
				if err := m.ipcClient.EmitDiagnostics(); err != nil {
					m.lastError = err.Error()
				}
				m.refresh()
			}
			return m, nil
		}

	case tickMsg:
		m.refresh()
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemonConnected, m.windows, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	content := renderStack(m.windows, m.snapshot, m.lastError, m.width, contentHeight)

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		content,
		helpBar,
	)
}
