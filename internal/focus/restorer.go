package focus

import (
	"log/slog"

	"github.com/deskhop/deskhop/internal/registry"
)

// Restorer brings a window back to the foreground after a desktop switch,
// preferring the desktop's remembered last-active window and falling back to
// the first suitable window the Finder can locate.
type Restorer struct {
	x      Windows
	reg    *registry.Registry
	finder *Finder
	logger *slog.Logger
}

// NewRestorer creates a restorer backed by the given registry.
func NewRestorer(x Windows, reg *registry.Registry, logger *slog.Logger) *Restorer {
	return &Restorer{
		x:      x,
		reg:    reg,
		finder: NewFinder(x, logger),
		logger: logger,
	}
}

// Restore attempts to focus a window on the given desktop. It never returns
// an error: a failed restoration must not block hotkey handling, so every
// outcome ends in a log line. The remembered registry entry is left in place
// even when it turns out to be stale.
func (r *Restorer) Restore(desktop int) {
	if windowID, ok := r.reg.Lookup(desktop); ok {
		if r.focusRemembered(desktop, windowID) {
			return
		}
	} else {
		r.logger.Debug("no remembered window", "desktop", desktop)
	}

	windowID, ok := r.finder.FirstOn(desktop)
	if !ok {
		// Policy: leave focus alone rather than guessing.
		r.logger.Info("no window to focus", "desktop", desktop)
		return
	}

	if err := r.x.RaiseWindow(windowID); err != nil {
		r.logger.Warn("failed to raise fallback window", "window_id", windowID, "error", err)
	}
	if err := r.x.ActivateWindow(windowID); err != nil {
		r.logger.Warn("failed to activate fallback window", "window_id", windowID, "error", err)
		return
	}
	r.logger.Info("focused fallback window", "window_id", windowID, "desktop", desktop)
}

// focusRemembered validates and focuses the remembered window. Returns false
// when the window is stale or activation fails, in which case the caller
// falls through to the finder.
func (r *Restorer) focusRemembered(desktop int, windowID uint32) bool {
	if !r.x.WindowExists(windowID) || !r.x.WindowViewable(windowID) || !r.x.WindowManaged(windowID) {
		r.logger.Debug("remembered window is stale", "window_id", windowID, "desktop", desktop)
		return false
	}

	// The window may have been moved since it was remembered.
	windowDesktop, err := r.x.WindowDesktop(windowID)
	if err != nil {
		r.logger.Warn("could not read remembered window's desktop",
			"window_id", windowID, "error", err)
		return false
	}
	if windowDesktop != desktop {
		r.logger.Debug("remembered window migrated to another desktop",
			"window_id", windowID, "desktop", desktop, "now_on", windowDesktop)
		return false
	}

	if err := r.x.RaiseWindow(windowID); err != nil {
		r.logger.Warn("failed to raise remembered window", "window_id", windowID, "error", err)
	}
	if err := r.x.ActivateWindow(windowID); err != nil {
		r.logger.Warn("failed to activate remembered window",
			"window_id", windowID, "error", err)
		return false
	}

	r.logger.Info("focused remembered window", "window_id", windowID, "desktop", desktop)
	return true
}
