package desktop

import "strings"

// Window is one simulated window record. Geometry is unconstrained; the
// engine does no bounds or collision checking.
type Window struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Minimized bool   `json:"is_minimized"`
	Maximized bool   `json:"is_maximized"`
	Focused   bool   `json:"is_focused"`
	ZIndex    int    `json:"z_index"`
}

// OpenSpec describes a window to open. The ID is the stable identity; by
// convention it is a kind-prefixed token such as "notes-1".
type OpenSpec struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Icon   string `json:"icon"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Kind derives the window kind from an ID: the substring before the first
// "-" separator, or the whole ID when no separator is present. The kind is
// used as the window_type telemetry tag, so this derivation is part of the
// engine's observable contract.
func Kind(id string) string {
	if i := strings.Index(id, "-"); i >= 0 {
		return id[:i]
	}
	return id
}

// Kind returns the window's kind tag.
func (w *Window) Kind() string {
	return Kind(w.ID)
}
