package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// ActiveWindow returns the window currently holding focus, from
// _NET_ACTIVE_WINDOW. A zero ID means no window is focused.
func (c *Connection) ActiveWindow() (uint32, error) {
	win, err := ewmh.ActiveWindowGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %w", err)
	}
	return uint32(win), nil
}

// EachClientWindow walks the managed top-level windows and calls visit for
// each one. Stacking order is used when the window manager publishes it
// (bottom-to-top per EWMH); plain client-list order otherwise. Returning true
// from visit stops the walk immediately.
func (c *Connection) EachClientWindow(visit func(windowID uint32) bool) error {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		clients, err = ewmh.ClientListGet(c.XUtil)
		if err != nil {
			return fmt.Errorf("failed to get client list: %w", err)
		}
	}

	for _, win := range clients {
		if visit(uint32(win)) {
			return nil
		}
	}
	return nil
}

// WindowExists reports whether the window ID still refers to a live window.
// Windows are owned by their applications and can vanish at any time, so
// callers must treat a true result as advisory only.
func (c *Connection) WindowExists(windowID uint32) bool {
	_, err := xproto.GetWindowAttributes(c.XUtil.Conn(), xproto.Window(windowID)).Reply()
	return err == nil
}

// WindowViewable reports whether the window is mapped and visible.
func (c *Connection) WindowViewable(windowID uint32) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), xproto.Window(windowID)).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

// WindowManaged reports whether the window is a regular managed top-level
// window. Override-redirect windows (menus, tooltips, other WM-bypassing
// popups) and input-only windows are not focus targets.
func (c *Connection) WindowManaged(windowID uint32) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), xproto.Window(windowID)).Reply()
	if err != nil {
		return false
	}
	return !attrs.OverrideRedirect && attrs.Class != xproto.WindowClassInputOnly
}

// WindowTitle returns the window's _NET_WM_NAME. An unreadable or empty title
// is an error; it doubles as a cheap liveness probe.
func (c *Connection) WindowTitle(windowID uint32) (string, error) {
	name, err := ewmh.WmNameGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return "", fmt.Errorf("failed to get window title: %w", err)
	}
	if name == "" {
		return "", fmt.Errorf("window %d has no title", windowID)
	}
	return name, nil
}

// RaiseWindow moves a window to the top of the stacking order.
func (c *Connection) RaiseWindow(windowID uint32) error {
	err := xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		xproto.Window(windowID),
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
	if err != nil {
		return fmt.Errorf("failed to raise window %d: %w", windowID, err)
	}
	return nil
}

// ActivateWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// Sends a client message to the root window per EWMH spec.
func (c *Connection) ActivateWindow(windowID uint32) error {
	const sourceIndication = 2 // pager/direct action
	err := c.sendRootClientMessage(xproto.Window(windowID), "_NET_ACTIVE_WINDOW",
		[5]uint32{sourceIndication, 0, 0, 0, 0})
	if err != nil {
		return fmt.Errorf("failed to activate window %d: %w", windowID, err)
	}
	return nil
}
