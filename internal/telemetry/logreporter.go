package telemetry

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// LogReporter is a Reporter that writes every emission as one line through
// a standard library logger. Useful for daemon foreground runs and
// debugging; pair it with a Collector via Multi.
type LogReporter struct {
	base *log.Logger
}

// NewLogReporter wraps logger; a nil logger uses the default logger.
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.Default()
	}
	return &LogReporter{base: logger}
}

func (l *LogReporter) LogEvent(name string, fields map[string]any) {
	l.base.Printf("telemetry event %s%s", name, formatFields(fields))
}

func (l *LogReporter) IncrementCounter(name string, amount int64, tags map[string]string) {
	l.base.Printf("telemetry counter %s +%d%s", name, amount, formatTags(tags))
}

func (l *LogReporter) RecordGauge(name string, value float64) {
	l.base.Printf("telemetry gauge %s %g", name, value)
}

func (l *LogReporter) RecordDistribution(name string, value float64, tags map[string]string) {
	l.base.Printf("telemetry distribution %s %g%s", name, value, formatTags(tags))
}

// formatFields renders fields sorted by key for consistent output.
func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		switch v := fields[k].(type) {
		case string:
			sb.WriteString(fmt.Sprintf(" %s=%q", k, v))
		default:
			sb.WriteString(fmt.Sprintf(" %s=%v", k, v))
		}
	}
	return sb.String()
}

func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(tags[k])
	}
	return sb.String()
}
