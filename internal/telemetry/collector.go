package telemetry

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// maxEvents bounds the in-memory event ring kept for the control surface.
const maxEvents = 100

// Collector is an in-memory Reporter that aggregates counters, gauges, and
// distributions and retains a bounded ring of recent events. The daemon
// serves its Snapshot over IPC for inspection.
type Collector struct {
	mu       sync.Mutex
	enabled  bool
	started  time.Time
	counters map[string]*CounterMetrics
	gauges   map[string]GaugeMetrics
	dists    map[string]*DistributionMetrics
	events   []EventRecord
}

// CounterMetrics is the aggregated state of one counter series.
type CounterMetrics struct {
	Name  string            `json:"name"`
	Tags  map[string]string `json:"tags,omitempty"`
	Value int64             `json:"value"`
}

// GaugeMetrics is the latest value of one gauge.
type GaugeMetrics struct {
	Name    string    `json:"name"`
	Value   float64   `json:"value"`
	Updated time.Time `json:"updated"`
}

// DistributionMetrics summarizes the samples of one distribution series.
type DistributionMetrics struct {
	Name  string            `json:"name"`
	Tags  map[string]string `json:"tags,omitempty"`
	Count int64             `json:"count"`
	Sum   float64           `json:"sum"`
	Min   float64           `json:"min"`
	Max   float64           `json:"max"`
}

// EventRecord is one retained structured event.
type EventRecord struct {
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields,omitempty"`
	Time   time.Time      `json:"time"`
}

// Snapshot is the serializable view of the collector state. Series are
// sorted by name then tag key for stable output.
type Snapshot struct {
	Enabled       bool                  `json:"enabled"`
	Started       time.Time             `json:"started,omitempty"`
	Counters      []CounterMetrics      `json:"counters,omitempty"`
	Gauges        []GaugeMetrics        `json:"gauges,omitempty"`
	Distributions []DistributionMetrics `json:"distributions,omitempty"`
	Events        []EventRecord         `json:"events,omitempty"`
}

// NewCollector returns a collector with the provided opt-in state.
func NewCollector(enabled bool) *Collector {
	c := &Collector{}
	c.SetEnabled(enabled)
	return c
}

// Enabled reports whether collection is currently active.
func (c *Collector) Enabled() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// SetEnabled toggles collection, resetting all series when enabling.
func (c *Collector) SetEnabled(enabled bool) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		c.counters = nil
		c.gauges = nil
		c.dists = nil
		c.events = nil
		c.started = time.Time{}
		return
	}
	c.started = time.Now()
	c.counters = make(map[string]*CounterMetrics)
	c.gauges = make(map[string]GaugeMetrics)
	c.dists = make(map[string]*DistributionMetrics)
}

// seriesKey builds a stable map key from a metric name and its tags.
func seriesKey(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString("|")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(tags[k])
	}
	return sb.String()
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = v
	}
	return out
}

// LogEvent implements Reporter.
func (c *Collector) LogEvent(name string, fields map[string]any) {
	if c == nil {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	c.events = append(c.events, EventRecord{Name: name, Fields: copied, Time: now})
	if len(c.events) > maxEvents {
		c.events = c.events[len(c.events)-maxEvents:]
	}
}

// IncrementCounter implements Reporter.
func (c *Collector) IncrementCounter(name string, amount int64, tags map[string]string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	key := seriesKey(name, tags)
	m, ok := c.counters[key]
	if !ok {
		m = &CounterMetrics{Name: name, Tags: cloneTags(tags)}
		c.counters[key] = m
	}
	m.Value += amount
}

// RecordGauge implements Reporter.
func (c *Collector) RecordGauge(name string, value float64) {
	if c == nil {
		return
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	c.gauges[name] = GaugeMetrics{Name: name, Value: value, Updated: now}
}

// RecordDistribution implements Reporter.
func (c *Collector) RecordDistribution(name string, value float64, tags map[string]string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.enabled {
		return
	}
	key := seriesKey(name, tags)
	m, ok := c.dists[key]
	if !ok {
		m = &DistributionMetrics{Name: name, Tags: cloneTags(tags), Min: value, Max: value}
		c.dists[key] = m
	}
	m.Count++
	m.Sum += value
	if value < m.Min {
		m.Min = value
	}
	if value > m.Max {
		m.Max = value
	}
}

// Snapshot returns the current state for serialization or display.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{Enabled: c.enabled}
	if !c.enabled {
		return snap
	}
	snap.Started = c.started
	for _, m := range c.counters {
		clone := *m
		clone.Tags = cloneTags(m.Tags)
		snap.Counters = append(snap.Counters, clone)
	}
	for _, g := range c.gauges {
		snap.Gauges = append(snap.Gauges, g)
	}
	for _, d := range c.dists {
		clone := *d
		clone.Tags = cloneTags(d.Tags)
		snap.Distributions = append(snap.Distributions, clone)
	}
	snap.Events = append([]EventRecord(nil), c.events...)

	sort.Slice(snap.Counters, func(i, j int) bool {
		return counterLess(snap.Counters[i], snap.Counters[j])
	})
	sort.Slice(snap.Gauges, func(i, j int) bool {
		return snap.Gauges[i].Name < snap.Gauges[j].Name
	})
	sort.Slice(snap.Distributions, func(i, j int) bool {
		return seriesKey(snap.Distributions[i].Name, snap.Distributions[i].Tags) <
			seriesKey(snap.Distributions[j].Name, snap.Distributions[j].Tags)
	})
	return snap
}

func counterLess(a, b CounterMetrics) bool {
	return seriesKey(a.Name, a.Tags) < seriesKey(b.Name, b.Tags)
}
