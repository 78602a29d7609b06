// Package desktops implements virtual desktop switching and window moves,
// growing the desktop set on demand.
package desktops

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/deskhop/deskhop/internal/notify"
	"github.com/deskhop/deskhop/internal/registry"
)

// MaxDesktops is the number of addressable desktops, one per digit hotkey.
const MaxDesktops = 10

// API is the desktop subsystem the navigator drives.
// Implemented by *x11.Connection.
type API interface {
	CurrentDesktop() (int, error)
	DesktopCount() (int, error)
	CreateDesktop() (int, error)
	SwitchDesktop(desktop int) error
	MoveWindowToDesktop(windowID uint32, desktop int) error
	ActiveWindow() (uint32, error)
}

// FocusRestorer restores focus on a desktop after a switch.
type FocusRestorer interface {
	Restore(desktop int)
}

// Navigator switches between desktops, remembering the window that was
// focused on the desktop being left and restoring focus on the one entered.
type Navigator struct {
	x        API
	reg      *registry.Registry
	restorer FocusRestorer
	notifier notify.Notifier
	logger   *slog.Logger

	// settle is how long to wait after a switch before touching focus, so
	// the window manager can finish its desktop transition.
	settle time.Duration
}

// NewNavigator creates a navigator. settle may be zero (no delay).
func NewNavigator(x API, reg *registry.Registry, restorer FocusRestorer,
	notifier notify.Notifier, logger *slog.Logger, settle time.Duration) *Navigator {
	return &Navigator{
		x:        x,
		reg:      reg,
		restorer: restorer,
		notifier: notifier,
		logger:   logger,
		settle:   settle,
	}
}

// SwitchTo switches to the desktop at target index, creating desktops as
// needed. All failures are reported to the user and leave the daemon running.
func (n *Navigator) SwitchTo(target int) {
	if target < 0 || target >= MaxDesktops {
		n.logger.Warn("switch target out of range", "target", target)
		return
	}
	n.logger.Info("switching desktop", "target", target)

	n.rememberForeground()

	if !ensureDesktops(n.x, n.notifier, n.logger, target) {
		return
	}

	if err := n.x.SwitchDesktop(target); err != nil {
		n.logger.Error("desktop switch failed", "target", target, "error", err)
		reportError(n.notifier, n.logger, "Virtual Desktop Error",
			fmt.Sprintf("Failed to switch to desktop %d: %v", target+1, err))
		return
	}

	desktop, err := n.x.CurrentDesktop()
	if err != nil {
		n.logger.Warn("could not determine desktop after switch, skipping focus restore",
			"error", err)
		return
	}

	if n.settle > 0 {
		time.Sleep(n.settle)
	}
	n.restorer.Restore(desktop)
}

// rememberForeground records the currently focused window under the current
// desktop so focus can be restored when the user comes back. Best effort: an
// unreadable desktop or window only skips the recording.
func (n *Navigator) rememberForeground() {
	desktop, err := n.x.CurrentDesktop()
	if err != nil {
		n.logger.Warn("could not read current desktop, not recording focus history",
			"error", err)
		return
	}

	windowID, err := n.x.ActiveWindow()
	if err != nil || windowID == 0 {
		n.logger.Debug("no foreground window to remember", "desktop", desktop)
		return
	}

	n.reg.Remember(desktop, windowID)
	n.logger.Debug("remembered foreground window", "desktop", desktop, "window_id", windowID)
}

// ensureDesktops makes sure the desktop at target index exists, creating
// desktops one at a time. The first creation failure is reported to the user
// and aborts the remaining creations; desktops already created are kept.
// Returns false when the caller's switch/move must not proceed.
func ensureDesktops(x API, notifier notify.Notifier, logger *slog.Logger, target int) bool {
	count, err := x.DesktopCount()
	if err != nil {
		logger.Error("failed to get desktop count", "error", err)
		reportError(notifier, logger, "Virtual Desktop Error",
			fmt.Sprintf("Failed to get desktop count: %v", err))
		return false
	}

	if target < count {
		return true
	}

	toCreate := target - count + 1
	logger.Info("creating desktops", "target", target, "count", count, "creating", toCreate)
	for i := 0; i < toCreate; i++ {
		desktop, err := x.CreateDesktop()
		if err != nil {
			logger.Error("desktop creation failed",
				"iteration", i+1, "of", toCreate, "error", err)
			reportError(notifier, logger, "Desktop Creation Error",
				fmt.Sprintf("Failed to create a new virtual desktop: %v", err))
			return false
		}
		logger.Info("created desktop", "desktop", desktop, "iteration", i+1, "of", toCreate)
	}
	return true
}

// reportError sends a user-visible failure notification. Delivery itself can
// fail (session bus gone); that must not hide the original failure, so it is
// logged instead.
func reportError(notifier notify.Notifier, logger *slog.Logger, title, body string) {
	if err := notifier.Notify(title, body, notify.SeverityError); err != nil {
		logger.Warn("notification delivery failed", "title", title, "error", err)
	}
}
