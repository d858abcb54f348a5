// Package telemetry defines the fire-and-forget observability channel
// shared by the window engine and the repository's collaborator glue
// (diagnostics, chat relay). Reporters never return errors: callers must
// not await, retry, or branch on emission outcome.
package telemetry

// Reporter receives structured events and metrics describing state
// transitions. Implementations must be safe for concurrent use.
type Reporter interface {
	// LogEvent records a named structured event.
	LogEvent(name string, fields map[string]any)
	// IncrementCounter adds amount to a named counter, keyed by tags.
	IncrementCounter(name string, amount int64, tags map[string]string)
	// RecordGauge sets the latest value of a named gauge.
	RecordGauge(name string, value float64)
	// RecordDistribution records one sample of a named distribution.
	RecordDistribution(name string, value float64, tags map[string]string)
}

// Nop is a Reporter that discards everything.
type Nop struct{}

func (Nop) LogEvent(string, map[string]any)                      {}
func (Nop) IncrementCounter(string, int64, map[string]string)    {}
func (Nop) RecordGauge(string, float64)                          {}
func (Nop) RecordDistribution(string, float64, map[string]string) {}

// Multi fans every emission out to each wrapped reporter in order.
type Multi []Reporter

func (m Multi) LogEvent(name string, fields map[string]any) {
	for _, r := range m {
		r.LogEvent(name, fields)
	}
}

func (m Multi) IncrementCounter(name string, amount int64, tags map[string]string) {
	for _, r := range m {
		r.IncrementCounter(name, amount, tags)
	}
}

func (m Multi) RecordGauge(name string, value float64) {
	for _, r := range m {
		r.RecordGauge(name, value)
	}
}

func (m Multi) RecordDistribution(name string, value float64, tags map[string]string) {
	for _, r := range m {
		r.RecordDistribution(name, value, tags)
	}
}
