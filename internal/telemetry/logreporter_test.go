package telemetry

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func newBufferedReporter() (*LogReporter, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogReporter(log.New(&buf, "", 0)), &buf
}

func TestLogReporterEvent(t *testing.T) {
	r, buf := newBufferedReporter()
	r.LogEvent("window_opened", map[string]any{"id": "notes-1", "width": 400})

	got := strings.TrimSpace(buf.String())
	want := `telemetry event window_opened id="notes-1" width=400`
	if got != want {
		t.Errorf("LogEvent output = %q, want %q", got, want)
	}
}

func TestLogReporterCounterSortedTags(t *testing.T) {
	r, buf := newBufferedReporter()
	r.IncrementCounter("windows_maximized", 1, map[string]string{
		"window_type": "notes",
		"action":      "maximize",
	})

	got := strings.TrimSpace(buf.String())
	want := "telemetry counter windows_maximized +1 action=maximize window_type=notes"
	if got != want {
		t.Errorf("IncrementCounter output = %q, want %q", got, want)
	}
}

func TestLogReporterGaugeAndDistribution(t *testing.T) {
	r, buf := newBufferedReporter()
	r.RecordGauge("windows_open", 3)
	r.RecordDistribution("latency_ms", 1.5, nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "telemetry gauge windows_open 3" {
		t.Errorf("gauge line = %q", lines[0])
	}
	if lines[1] != "telemetry distribution latency_ms 1.5" {
		t.Errorf("distribution line = %q", lines[1])
	}
}
