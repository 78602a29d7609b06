package desktops

import (
	"fmt"
	"log/slog"

	"github.com/deskhop/deskhop/internal/notify"
)

// Mover sends the foreground window to another desktop.
type Mover struct {
	x        API
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewMover creates a mover.
func NewMover(x API, notifier notify.Notifier, logger *slog.Logger) *Mover {
	return &Mover{x: x, notifier: notifier, logger: logger}
}

// MoveForegroundTo moves the currently focused window to the desktop at
// target index, creating desktops as needed. The moved window keeps focus on
// its new desktop, so no focus restoration runs, and the origin desktop's
// remembered window is intentionally left untouched.
func (m *Mover) MoveForegroundTo(target int) {
	if target < 0 || target >= MaxDesktops {
		m.logger.Warn("move target out of range", "target", target)
		return
	}

	windowID, err := m.x.ActiveWindow()
	if err != nil || windowID == 0 {
		m.logger.Error("no foreground window to move", "error", err)
		reportError(m.notifier, m.logger, "Move Window Error",
			"No foreground window to move.")
		return
	}
	m.logger.Info("moving foreground window", "window_id", windowID, "target", target)

	if !ensureDesktops(m.x, m.notifier, m.logger, target) {
		return
	}

	if err := m.x.MoveWindowToDesktop(windowID, target); err != nil {
		m.logger.Error("window move failed",
			"window_id", windowID, "target", target, "error", err)
		reportError(m.notifier, m.logger, "Move Window Error",
			fmt.Sprintf("Failed to move window to desktop %d: %v", target+1, err))
		return
	}
	m.logger.Info("moved window", "window_id", windowID, "target", target)
}
