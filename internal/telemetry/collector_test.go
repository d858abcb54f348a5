package telemetry

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCollectorCountersByTagSeries(t *testing.T) {
	c := NewCollector(true)
	c.IncrementCounter("windows_opened", 1, map[string]string{"window_type": "notes"})
	c.IncrementCounter("windows_opened", 1, map[string]string{"window_type": "notes"})
	c.IncrementCounter("windows_opened", 1, map[string]string{"window_type": "calc"})
	c.IncrementCounter("windows_closed", 1, nil)

	snap := c.Snapshot()
	want := []CounterMetrics{
		{Name: "windows_closed", Value: 1},
		{Name: "windows_opened", Tags: map[string]string{"window_type": "calc"}, Value: 1},
		{Name: "windows_opened", Tags: map[string]string{"window_type": "notes"}, Value: 2},
	}
	if diff := cmp.Diff(want, snap.Counters); diff != "" {
		t.Errorf("Counters mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectorGaugeKeepsLatest(t *testing.T) {
	c := NewCollector(true)
	c.RecordGauge("windows_open", 1)
	c.RecordGauge("windows_open", 3)
	c.RecordGauge("windows_open", 2)

	snap := c.Snapshot()
	if len(snap.Gauges) != 1 {
		t.Fatalf("len(Gauges) = %d, want 1", len(snap.Gauges))
	}
	if snap.Gauges[0].Value != 2 {
		t.Errorf("gauge value = %v, want 2", snap.Gauges[0].Value)
	}
	if snap.Gauges[0].Updated.IsZero() {
		t.Error("gauge Updated is zero")
	}
}

func TestCollectorDistributionSummary(t *testing.T) {
	c := NewCollector(true)
	for _, v := range []float64{12, 4, 48} {
		c.RecordDistribution("latency_ms", v, map[string]string{"op": "open"})
	}

	snap := c.Snapshot()
	want := []DistributionMetrics{
		{Name: "latency_ms", Tags: map[string]string{"op": "open"}, Count: 3, Sum: 64, Min: 4, Max: 48},
	}
	if diff := cmp.Diff(want, snap.Distributions); diff != "" {
		t.Errorf("Distributions mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectorEventRingBounded(t *testing.T) {
	c := NewCollector(true)
	for i := 0; i < maxEvents+25; i++ {
		c.LogEvent("window_opened", map[string]any{"seq": i})
	}

	snap := c.Snapshot()
	if len(snap.Events) != maxEvents {
		t.Fatalf("len(Events) = %d, want %d", len(snap.Events), maxEvents)
	}
	// Oldest entries were dropped
	if got := snap.Events[0].Fields["seq"]; got != 25 {
		t.Errorf("oldest retained event seq = %v, want 25", got)
	}
}

func TestCollectorDisabled(t *testing.T) {
	c := NewCollector(false)
	c.IncrementCounter("windows_opened", 1, nil)
	c.RecordGauge("windows_open", 1)
	c.LogEvent("window_opened", nil)

	snap := c.Snapshot()
	want := Snapshot{Enabled: false}
	if diff := cmp.Diff(want, snap, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("disabled Snapshot mismatch (-want +got):\n%s", diff)
	}

	var nilC *Collector
	nilC.IncrementCounter("x", 1, nil) // must not panic
	if nilC.Enabled() {
		t.Error("nil collector Enabled() = true")
	}
}

func TestCollectorReenableResets(t *testing.T) {
	c := NewCollector(true)
	c.IncrementCounter("windows_opened", 5, nil)
	c.SetEnabled(false)
	c.SetEnabled(true)

	snap := c.Snapshot()
	if len(snap.Counters) != 0 {
		t.Errorf("counters survived disable/enable cycle: %+v", snap.Counters)
	}
}

func TestSeriesKeyStable(t *testing.T) {
	a := seriesKey("m", map[string]string{"b": "2", "a": "1"})
	b := seriesKey("m", map[string]string{"a": "1", "b": "2"})
	if a != b {
		t.Errorf("seriesKey order-dependent: %q vs %q", a, b)
	}
	if want := "m|a=1|b=2"; a != want {
		t.Errorf("seriesKey = %q, want %q", a, want)
	}
}

func TestMultiFansOut(t *testing.T) {
	a := NewCollector(true)
	b := NewCollector(true)
	m := Multi{a, b}

	m.IncrementCounter("windows_opened", 1, nil)
	m.RecordGauge("windows_open", 1)

	for i, c := range []*Collector{a, b} {
		snap := c.Snapshot()
		if len(snap.Counters) != 1 || len(snap.Gauges) != 1 {
			t.Errorf("reporter %d: counters=%d gauges=%d, want 1/1",
				i, len(snap.Counters), len(snap.Gauges))
		}
	}
}

func ExampleCollector_Snapshot() {
	c := NewCollector(true)
	c.IncrementCounter("windows_opened", 1, map[string]string{"window_type": "notes"})
	snap := c.Snapshot()
	fmt.Println(snap.Counters[0].Name, snap.Counters[0].Value)
	// Output: windows_opened 1
}
