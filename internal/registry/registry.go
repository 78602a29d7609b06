// Package registry tracks the last active window on each virtual desktop.
package registry

import "sync"

// Registry remembers, per desktop, the window that held focus when the user
// last switched away. Entries are upserted on every switch (last write wins)
// and never deleted; readers re-validate the window before using it, so stale
// entries are harmless. Safe for use from multiple goroutines.
type Registry struct {
	mu   sync.Mutex
	last map[int]uint32
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		last: make(map[int]uint32),
	}
}

// Remember records windowID as the last active window on the given desktop,
// replacing any previous entry for that desktop.
func (r *Registry) Remember(desktop int, windowID uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last[desktop] = windowID
}

// Lookup returns the remembered window for a desktop, if any. The returned
// window may no longer exist; callers must validate it.
func (r *Registry) Lookup(desktop int) (uint32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	windowID, ok := r.last[desktop]
	return windowID, ok
}

// Len returns the number of desktops with a remembered window.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.last)
}

// Snapshot returns a copy of the desktop -> window map for status reporting.
func (r *Registry) Snapshot() map[int]uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]uint32, len(r.last))
	for desktop, windowID := range r.last {
		out[desktop] = windowID
	}
	return out
}
