package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/deskd/internal/desktop"
	"github.com/google/go-cmp/cmp"
)

func TestLoadFromPathMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}

	if !cfg.TelemetryEnabled() {
		t.Error("TelemetryEnabled() = false, want true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.MaxSizeMB != 10 || cfg.Logging.MaxFiles != 3 {
		t.Errorf("rotation defaults = %d MB / %d files, want 10/3", cfg.Logging.MaxSizeMB, cfg.Logging.MaxFiles)
	}
	if _, ok := cfg.Apps["notes"]; !ok {
		t.Error("built-in notes app missing from defaults")
	}
}

func TestLoadFromPathParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
socket_path: /tmp/deskd-test.sock
telemetry:
  enabled: false
logging:
  enabled: true
  level: debug
apps:
  editor:
    title: Editor
    icon: editor
    width: 900
    height: 700
relay:
  command: claude
  args: ["-p"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if cfg.SocketPath != "/tmp/deskd-test.sock" {
		t.Errorf("SocketPath = %q", cfg.SocketPath)
	}
	if cfg.TelemetryEnabled() {
		t.Error("TelemetryEnabled() = true, want false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Relay.Command != "claude" || len(cfg.Relay.Args) != 1 {
		t.Errorf("Relay = %+v", cfg.Relay)
	}

	// User kinds merge with built-ins rather than replacing them.
	if _, ok := cfg.Apps["editor"]; !ok {
		t.Error("user app editor missing")
	}
	if _, ok := cfg.Apps["browser"]; !ok {
		t.Error("built-in browser app lost after merge")
	}
}

func TestLoadFromPathRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad level", "logging:\n  level: loud\n", "invalid logging level"},
		{"dashed kind", "apps:\n  web-browser:\n    title: X\n", "must not contain '-'"},
		{"negative size", "apps:\n  notes:\n    width: -1\n", "negative default size"},
		{"malformed yaml", "apps: [not a map\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadFromPath(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadFromPath() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestOpenSpecFillsFromApps(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	got := cfg.OpenSpec("notes-7")
	want := desktop.OpenSpec{
		ID: "notes-7", Title: "Notes", Icon: "notes",
		X: 40, Y: 40, Width: 400, Height: 300,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OpenSpec mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenSpecUnknownKindUsesGenerics(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	got := cfg.OpenSpec("weather-1")
	if got.Title != "weather" || got.Icon != "weather" {
		t.Errorf("unknown kind title/icon = %q/%q, want kind", got.Title, got.Icon)
	}
	if got.Width != DefaultWindowWidth || got.Height != DefaultWindowHeight {
		t.Errorf("unknown kind size = %dx%d, want %dx%d",
			got.Width, got.Height, DefaultWindowWidth, DefaultWindowHeight)
	}
}

func TestDefaultLogPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	path, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath() error = %v", err)
	}
	if path != filepath.Join("/custom/data", "deskd", "session.log") {
		t.Errorf("DefaultLogPath() = %q", path)
	}

	t.Setenv("XDG_DATA_HOME", "")
	path, err = DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath() error = %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join(".local", "share", "deskd", "session.log")) {
		t.Errorf("DefaultLogPath() without XDG = %q", path)
	}
}

func TestPrintRoundTrips(t *testing.T) {
	cfg := &Config{SocketPath: "/tmp/x.sock"}
	cfg.applyDefaults()

	var sb strings.Builder
	if err := cfg.Print(&sb); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "socket_path: /tmp/x.sock") {
		t.Errorf("printed config missing socket_path:\n%s", out)
	}
	if !strings.Contains(out, "notes:") {
		t.Errorf("printed config missing apps:\n%s", out)
	}
}
