// Package desktop implements the window-stacking and focus state engine
// behind a simulated desktop session. A Session owns the authoritative set
// of window records together with a monotonic stack-order allocator; every
// operation commits a fully consistent record set (at most one focused
// window, pairwise-distinct z-indexes) before any telemetry is emitted.
package desktop
