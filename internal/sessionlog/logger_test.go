package sessionlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, cfg Config) (*Logger, string) {
	t.Helper()
	if cfg.FilePath == "" {
		cfg.FilePath = filepath.Join(t.TempDir(), "session.log")
	}
	l, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, cfg.FilePath
}

func TestLogWritesEntry(t *testing.T) {
	l, path := newTestLogger(t, Config{Enabled: true, Level: LevelInfo, MaxSizeMB: 10, MaxFiles: 3})

	l.Log(ActionOpen, "notes-1", map[string]interface{}{
		"title": "Notes",
		"z":     101,
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	line := strings.TrimSpace(string(data))
	if !strings.Contains(line, "[OPEN]") {
		t.Errorf("entry missing action: %q", line)
	}
	if !strings.Contains(line, "window=notes-1") {
		t.Errorf("entry missing window id: %q", line)
	}
	// Detail keys are sorted
	if !strings.Contains(line, `title="Notes" z=101`) {
		t.Errorf("entry details wrong or unsorted: %q", line)
	}
}

func TestLogLevelFiltersNoisyActions(t *testing.T) {
	l, path := newTestLogger(t, Config{Enabled: true, Level: LevelInfo, MaxSizeMB: 10, MaxFiles: 3})

	// Move, resize, and focus are debug-level
	l.Log(ActionMove, "notes-1", nil)
	l.Log(ActionResize, "notes-1", nil)
	l.Log(ActionFocus, "notes-1", nil)
	l.Log(ActionClose, "notes-1", nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d entries, want 1 (only CLOSE): %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "[CLOSE]") {
		t.Errorf("surviving entry = %q, want CLOSE", lines[0])
	}
}

func TestLogDebugLevelKeepsEverything(t *testing.T) {
	l, path := newTestLogger(t, Config{Enabled: true, Level: LevelDebug, MaxSizeMB: 10, MaxFiles: 3})

	l.Log(ActionMove, "notes-1", map[string]interface{}{"x": 10, "y": 20})
	l.Log(ActionOpen, "calc-1", nil)

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d entries, want 2", len(lines))
	}
}

func TestDisabledLoggerIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	l, err := New(Config{Enabled: false, FilePath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	l.Log(ActionOpen, "notes-1", nil)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("disabled logger created file, stat err = %v", err)
	}

	var nilLogger *Logger
	nilLogger.Log(ActionOpen, "notes-1", nil) // must not panic
	if err := nilLogger.Close(); err != nil {
		t.Errorf("nil Close() error = %v", err)
	}
}

func TestRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session.log")
	l, err := New(Config{Enabled: true, Level: LevelDebug, FilePath: path, MaxSizeMB: 1, MaxFiles: 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer l.Close()

	// Push past 1 MB to force a rotation
	big := strings.Repeat("x", 4096)
	for i := 0; i < 300; i++ {
		l.Log(ActionOpen, "notes-1", map[string]interface{}{"pad": big})
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("rotated file missing: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("active log file missing after rotation: %v", err)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
