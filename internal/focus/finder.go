// Package focus restores per-desktop window focus after a desktop switch.
package focus

import "log/slog"

// Windows is the subset of X11 window operations the focus package needs.
// Implemented by *x11.Connection.
type Windows interface {
	EachClientWindow(visit func(windowID uint32) bool) error
	WindowExists(windowID uint32) bool
	WindowViewable(windowID uint32) bool
	WindowManaged(windowID uint32) bool
	WindowTitle(windowID uint32) (string, error)
	WindowDesktop(windowID uint32) (int, error)
	RaiseWindow(windowID uint32) error
	ActivateWindow(windowID uint32) error
}

// Finder locates a focus candidate on a desktop by scanning the client list.
type Finder struct {
	x      Windows
	logger *slog.Logger
}

// NewFinder creates a finder over the given window operations.
func NewFinder(x Windows, logger *slog.Logger) *Finder {
	return &Finder{x: x, logger: logger}
}

// FirstOn returns the first enumerated window on the given desktop that is
// viewable, managed, and has a readable title. Enumeration stops at the first
// match; there is no tie-break beyond enumeration order. Returns false when
// no window qualifies or the enumeration itself fails.
func (f *Finder) FirstOn(desktop int) (uint32, bool) {
	var found uint32
	var ok bool

	err := f.x.EachClientWindow(func(windowID uint32) bool {
		if !f.x.WindowViewable(windowID) {
			return false
		}
		if !f.x.WindowManaged(windowID) {
			return false
		}
		title, err := f.x.WindowTitle(windowID)
		if err != nil {
			return false
		}
		windowDesktop, err := f.x.WindowDesktop(windowID)
		if err != nil || windowDesktop != desktop {
			return false
		}

		f.logger.Debug("found focus candidate",
			"window_id", windowID,
			"title", title,
			"desktop", desktop)
		found = windowID
		ok = true
		return true
	})
	if err != nil {
		f.logger.Warn("window enumeration failed", "desktop", desktop, "error", err)
		return 0, false
	}

	return found, ok
}
