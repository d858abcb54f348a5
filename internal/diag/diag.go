// Package diag fires sample telemetry into the session's observability
// channel. It exists so the pipeline can be exercised end to end without
// driving real window operations; it owns no state of its own.
package diag

import (
	"time"

	"github.com/1broseidon/deskd/internal/telemetry"
)

// Telemetry names used by the sample emission.
const (
	EventPing         = "diagnostics_ping"
	CounterFired      = "diagnostics_fired"
	GaugeLastEmitUnix = "diagnostics_last_emit_unix"
	DistLatencyMS     = "diagnostics_latency_ms"
)

// sampleLatencies are fixed values so repeated emissions produce a
// predictable distribution summary.
var sampleLatencies = []float64{1.5, 4, 12, 48, 160}

// EmitSamples sends one batch of sample events, counters, gauges, and
// distribution points through r. It never fails.
func EmitSamples(r telemetry.Reporter) {
	if r == nil {
		return
	}
	now := time.Now()

	r.LogEvent(EventPing, map[string]any{
		"source": "diagnostics",
		"time":   now.Format(time.RFC3339),
	})
	r.IncrementCounter(CounterFired, 1, map[string]string{"source": "diagnostics"})
	r.RecordGauge(GaugeLastEmitUnix, float64(now.Unix()))
	for _, v := range sampleLatencies {
		r.RecordDistribution(DistLatencyMS, v, map[string]string{"source": "diagnostics"})
	}
}
