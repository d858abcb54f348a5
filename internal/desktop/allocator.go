package desktop

// BaseStackOrder is the allocator seed. Stack orders at or below this value
// are reserved for fixed background chrome (wallpaper, taskbar), so the
// first window allocation is BaseStackOrder+1.
const BaseStackOrder = 100

// StackAllocator issues strictly increasing integer stacking keys. Keys are
// never reused and never decrease, even when the window they were issued to
// is closed.
//
// The allocator is not internally synchronized: it is owned by a Session
// and only touched inside the session's critical section, so a stacking
// operation draws at most one key atomically with its record update.
type StackAllocator struct {
	current int
}

// NewStackAllocator returns an allocator seeded at BaseStackOrder.
func NewStackAllocator() *StackAllocator {
	return &StackAllocator{current: BaseStackOrder}
}

// Next increments the counter and returns the new key.
func (a *StackAllocator) Next() int {
	a.current++
	return a.current
}

// Current returns the most recently issued key without allocating. The
// rendering layer uses this to know the topmost stacking position without
// scanning records.
func (a *StackAllocator) Current() int {
	return a.current
}
