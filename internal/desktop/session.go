package desktop

import (
	"sort"
	"sync"

	"github.com/1broseidon/deskd/internal/telemetry"
)

// Telemetry event and metric names emitted by Session operations.
const (
	EventWindowOpened    = "window_opened"
	EventWindowFocused   = "window_focused"
	EventWindowClosed    = "window_closed"
	EventWindowMinimized = "window_minimized"
	EventWindowMaximized = "window_maximized"

	CounterOpened    = "windows_opened"
	CounterFocused   = "windows_focused"
	CounterClosed    = "windows_closed"
	CounterMinimized = "windows_minimized"
	CounterMaximized = "windows_maximized"

	GaugeOpenWindows = "windows_open"

	TagWindowType = "window_type"
	TagAction     = "action"
)

// Session is the window registry for one desktop session. It owns the
// record collection and the stack allocator behind a single mutex: the
// focus and z-index invariants span multiple records plus the counter, so
// every mutation goes through one ownership point.
//
// Sessions are independent; tests and multi-session hosts may create as
// many as they like.
type Session struct {
	mu       sync.Mutex
	windows  map[string]*Window
	alloc    *StackAllocator
	reporter telemetry.Reporter
}

// NewSession creates an empty session reporting telemetry to reporter.
// A nil reporter disables telemetry.
func NewSession(reporter telemetry.Reporter) *Session {
	if reporter == nil {
		reporter = telemetry.Nop{}
	}
	return &Session{
		windows:  make(map[string]*Window),
		alloc:    NewStackAllocator(),
		reporter: reporter,
	}
}

// report runs fn against the session reporter after a mutation has been
// committed. Reporter panics are swallowed: telemetry is fire-and-forget
// and must never fail or roll back a state transition.
func (s *Session) report(fn func(telemetry.Reporter)) {
	defer func() { _ = recover() }()
	fn(s.reporter)
}

// dropFocusExcept clears the focused flag on every record other than keep.
// Callers hold s.mu.
func (s *Session) dropFocusExcept(keep string) {
	for id, w := range s.windows {
		if id != keep {
			w.Focused = false
		}
	}
}

// Open creates a window from spec, focused and on top of the stack. If a
// window with spec.ID already exists the call is a bring-to-front instead:
// the existing record keeps its geometry, is un-minimized if needed, takes
// focus, and draws a fresh stacking key. Returns true when a new record was
// created.
func (s *Session) Open(spec OpenSpec) bool {
	s.mu.Lock()
	if w, ok := s.windows[spec.ID]; ok {
		wasMinimized := w.Minimized
		w.Minimized = false
		w.Focused = true
		w.ZIndex = s.alloc.Next()
		s.dropFocusExcept(spec.ID)
		s.mu.Unlock()

		s.report(func(r telemetry.Reporter) {
			r.LogEvent(EventWindowFocused, map[string]any{
				"id":            spec.ID,
				"was_minimized": wasMinimized,
			})
			r.IncrementCounter(CounterFocused, 1, map[string]string{TagWindowType: Kind(spec.ID)})
		})
		return false
	}

	w := &Window{
		ID:      spec.ID,
		Title:   spec.Title,
		Icon:    spec.Icon,
		X:       spec.X,
		Y:       spec.Y,
		Width:   spec.Width,
		Height:  spec.Height,
		Focused: true,
		ZIndex:  s.alloc.Next(),
	}
	s.windows[spec.ID] = w
	s.dropFocusExcept(spec.ID)
	open := len(s.windows)
	s.mu.Unlock()

	s.report(func(r telemetry.Reporter) {
		r.LogEvent(EventWindowOpened, map[string]any{
			"id":     spec.ID,
			"title":  spec.Title,
			"icon":   spec.Icon,
			"x":      spec.X,
			"y":      spec.Y,
			"width":  spec.Width,
			"height": spec.Height,
		})
		r.IncrementCounter(CounterOpened, 1, map[string]string{TagWindowType: Kind(spec.ID)})
		r.RecordGauge(GaugeOpenWindows, float64(open))
	})
	return true
}

// Close removes the window entirely. Other records and the allocator are
// untouched; the freed stacking key is never reissued. Unknown ids are a
// silent no-op. Returns true when a record was removed.
func (s *Session) Close(id string) bool {
	s.mu.Lock()
	w, ok := s.windows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	title := w.Title
	delete(s.windows, id)
	open := len(s.windows)
	s.mu.Unlock()

	s.report(func(r telemetry.Reporter) {
		r.LogEvent(EventWindowClosed, map[string]any{"id": id, "title": title})
		r.IncrementCounter(CounterClosed, 1, map[string]string{TagWindowType: Kind(id)})
		r.RecordGauge(GaugeOpenWindows, float64(open))
	})
	return true
}

// Minimize hides the window, clearing its focus. No stacking key is drawn
// and no other record changes. Returns true when the window was present.
func (s *Session) Minimize(id string) bool {
	s.mu.Lock()
	w, ok := s.windows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	w.Minimized = true
	w.Focused = false
	title := w.Title
	s.mu.Unlock()

	s.report(func(r telemetry.Reporter) {
		r.LogEvent(EventWindowMinimized, map[string]any{"id": id, "title": title})
		r.IncrementCounter(CounterMinimized, 1, map[string]string{TagWindowType: Kind(id)})
	})
	return true
}

// Maximize toggles the display-size flag. Focus, minimized state, geometry,
// and stacking key are unaffected. Returns true when the window was present.
func (s *Session) Maximize(id string) bool {
	s.mu.Lock()
	w, ok := s.windows[id]
	if !ok {
		s.mu.Unlock()
		return false
	}
	w.Maximized = !w.Maximized
	maximized := w.Maximized
	title := w.Title
	s.mu.Unlock()

	action := "restore"
	if maximized {
		action = "maximize"
	}
	s.report(func(r telemetry.Reporter) {
		r.LogEvent(EventWindowMaximized, map[string]any{
			"id":        id,
			"title":     title,
			"maximized": maximized,
		})
		r.IncrementCounter(CounterMaximized, 1, map[string]string{
			TagWindowType: Kind(id),
			TagAction:     action,
		})
	})
	return true
}

// Restore un-minimizes the window and brings it to front with focus.
//
// Unlike Open and Minimize this path emits no telemetry. The asymmetry is
// intentional and documented in DESIGN.md; do not add matching events here.
func (s *Session) Restore(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return false
	}
	w.Minimized = false
	w.Focused = true
	w.ZIndex = s.alloc.Next()
	s.dropFocusExcept(id)
	return true
}

// Focus brings the window to front with focus without touching its
// minimized state. A fresh stacking key is drawn on every call even when
// the window is already focused. Emits no telemetry (see Restore).
func (s *Session) Focus(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return false
	}
	w.Focused = true
	w.ZIndex = s.alloc.Next()
	s.dropFocusExcept(id)
	return true
}

// Move overwrites the window's position. No telemetry, no stacking change.
func (s *Session) Move(id string, x, y int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return false
	}
	w.X = x
	w.Y = y
	return true
}

// Resize overwrites the window's size. No telemetry, no stacking change.
func (s *Session) Resize(id string, width, height int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return false
	}
	w.Width = width
	w.Height = height
	return true
}

// Window returns a copy of the record with the given id.
func (s *Session) Window(id string) (Window, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[id]
	if !ok {
		return Window{}, false
	}
	return *w, true
}

// Windows returns a snapshot of all records sorted by ascending z-index.
// The snapshot is a copy; mutating it does not affect the session.
func (s *Session) Windows() []Window {
	s.mu.Lock()
	snap := make([]Window, 0, len(s.windows))
	for _, w := range s.windows {
		snap = append(snap, *w)
	}
	s.mu.Unlock()

	sort.Slice(snap, func(i, j int) bool { return snap[i].ZIndex < snap[j].ZIndex })
	return snap
}

// TopStackOrder returns the highest stacking key issued so far, including
// keys issued to windows that have since closed.
func (s *Session) TopStackOrder() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alloc.Current()
}

// FocusedID returns the id of the focused window, or "" when none is
// focused.
func (s *Session) FocusedID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, w := range s.windows {
		if w.Focused {
			return id
		}
	}
	return ""
}

// Len returns the number of open windows, minimized ones included.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}
