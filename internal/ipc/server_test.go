package ipc

import (
	"path/filepath"
	"testing"

	"github.com/1broseidon/deskd/internal/config"
	"github.com/1broseidon/deskd/internal/desktop"
	"github.com/1broseidon/deskd/internal/sessionlog"
	"github.com/1broseidon/deskd/internal/telemetry"
)

// startTestServer spins up a daemon-side server on a temp socket and
// returns a client wired to it.
func startTestServer(t *testing.T) (*Client, *telemetry.Collector) {
	t.Helper()

	sock := filepath.Join(t.TempDir(), "deskd.sock")
	cfg, err := config.LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("config load error = %v", err)
	}
	cfg.SocketPath = sock

	collector := telemetry.NewCollector(true)
	logger, err := sessionlog.New(sessionlog.Config{Enabled: false})
	if err != nil {
		t.Fatalf("logger error = %v", err)
	}

	session := desktop.NewSession(collector)
	srv, err := NewServer(cfg, session, collector, collector, logger)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(srv.Stop)

	return NewClientForSocket(sock), collector
}

func TestServerOpenFillsConfigDefaults(t *testing.T) {
	client, _ := startTestServer(t)

	// Bare id: daemon resolves title and geometry from the app config.
	op, err := client.OpenWindow(OpenWindowPayload{ID: "notes-1"})
	if err != nil {
		t.Fatalf("OpenWindow() error = %v", err)
	}
	if !op.Created || op.ZIndex != 101 {
		t.Errorf("op = %+v, want created with z=101", op)
	}

	data, err := client.GetWindows()
	if err != nil {
		t.Fatalf("GetWindows() error = %v", err)
	}
	if len(data.Windows) != 1 {
		t.Fatalf("len(Windows) = %d, want 1", len(data.Windows))
	}
	w := data.Windows[0]
	if w.Title != "Notes" || w.Width != 400 || w.Height != 300 {
		t.Errorf("window = %+v, want Notes 400x300 from app defaults", w)
	}
}

func TestServerOpenExplicitGeometry(t *testing.T) {
	client, _ := startTestServer(t)

	_, err := client.OpenWindow(OpenWindowPayload{
		ID: "notes-1", Title: "Scratch", X: 5, Y: 6, Width: 100, Height: 80,
	})
	if err != nil {
		t.Fatalf("OpenWindow() error = %v", err)
	}

	data, _ := client.GetWindows()
	w := data.Windows[0]
	if w.Title != "Scratch" || w.X != 5 || w.Width != 100 {
		t.Errorf("window = %+v, want explicit geometry preserved", w)
	}
}

func TestServerWindowLifecycle(t *testing.T) {
	client, _ := startTestServer(t)

	client.OpenWindow(OpenWindowPayload{ID: "notes-1"})
	client.OpenWindow(OpenWindowPayload{ID: "calc-1"})

	if _, err := client.MinimizeWindow("notes-1"); err != nil {
		t.Fatalf("MinimizeWindow() error = %v", err)
	}

	// Reopen un-minimizes and refocuses
	op, err := client.OpenWindow(OpenWindowPayload{ID: "notes-1"})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	if op.Created {
		t.Error("reopen Created = true, want false")
	}
	if op.ZIndex != 103 {
		t.Errorf("reopen ZIndex = %d, want 103", op.ZIndex)
	}

	if _, err := client.MaximizeWindow("calc-1"); err != nil {
		t.Fatalf("MaximizeWindow() error = %v", err)
	}
	if _, err := client.MoveWindow("calc-1", 7, 9); err != nil {
		t.Fatalf("MoveWindow() error = %v", err)
	}
	if _, err := client.ResizeWindow("calc-1", 300, 200); err != nil {
		t.Fatalf("ResizeWindow() error = %v", err)
	}

	data, _ := client.GetWindows()
	if data.FocusedID != "notes-1" {
		t.Errorf("FocusedID = %q, want notes-1", data.FocusedID)
	}
	for _, w := range data.Windows {
		if w.ID != "calc-1" {
			continue
		}
		if !w.Maximized || w.X != 7 || w.Width != 300 {
			t.Errorf("calc-1 = %+v, want maximized, moved, resized", w)
		}
	}

	op, err = client.CloseWindow("calc-1")
	if err != nil {
		t.Fatalf("CloseWindow() error = %v", err)
	}
	if !op.Found {
		t.Error("close Found = false, want true")
	}

	status, err := client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus() error = %v", err)
	}
	if status.OpenWindows != 1 || !status.DaemonRunning {
		t.Errorf("status = %+v, want 1 open window and running", status)
	}
	// Allocator high-water survives the close
	if status.TopStackOrder != 103 {
		t.Errorf("TopStackOrder = %d, want 103", status.TopStackOrder)
	}
}

func TestServerUnknownTargetNotFound(t *testing.T) {
	client, _ := startTestServer(t)

	op, err := client.FocusWindow("ghost-1")
	if err != nil {
		t.Fatalf("FocusWindow() error = %v", err)
	}
	if op.Found {
		t.Error("focus of unknown id Found = true, want false")
	}
}

func TestServerRejectsEmptyID(t *testing.T) {
	client, _ := startTestServer(t)

	if _, err := client.OpenWindow(OpenWindowPayload{}); err == nil {
		t.Error("OpenWindow with empty id = nil error")
	}
	if _, err := client.CloseWindow(""); err == nil {
		t.Error("CloseWindow with empty id = nil error")
	}
}

func TestServerMetricsAndDiagnostics(t *testing.T) {
	client, _ := startTestServer(t)

	client.OpenWindow(OpenWindowPayload{ID: "notes-1"})
	client.OpenWindow(OpenWindowPayload{ID: "notes-2"})

	snap, err := client.GetMetrics()
	if err != nil {
		t.Fatalf("GetMetrics() error = %v", err)
	}
	if !snap.Enabled {
		t.Fatal("snapshot Enabled = false, want true")
	}
	var opened int64
	for _, c := range snap.Counters {
		if c.Name == desktop.CounterOpened && c.Tags["window_type"] == "notes" {
			opened = c.Value
		}
	}
	if opened != 2 {
		t.Errorf("windows_opened{window_type=notes} = %d, want 2", opened)
	}

	if err := client.EmitDiagnostics(); err != nil {
		t.Fatalf("EmitDiagnostics() error = %v", err)
	}
	snap, _ = client.GetMetrics()
	found := false
	for _, d := range snap.Distributions {
		if d.Name == "diagnostics_latency_ms" && d.Count == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("diagnostics distribution missing from snapshot: %+v", snap.Distributions)
	}
}

func TestClientConnectFailure(t *testing.T) {
	client := NewClientForSocket(filepath.Join(t.TempDir(), "absent.sock"))
	if err := client.Ping(); err == nil {
		t.Error("Ping() against absent socket = nil error")
	}
}
