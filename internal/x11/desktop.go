package x11

import (
	"fmt"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// createVerifyAttempts bounds how long CreateDesktop waits for the window
// manager to apply a _NET_NUMBER_OF_DESKTOPS request. The request is a client
// message processed asynchronously by the WM, so the count is re-read a few
// times before giving up.
const (
	createVerifyAttempts = 5
	createVerifyInterval = 10 * time.Millisecond
)

// CurrentDesktop returns the current virtual desktop number (0-indexed).
// Uses _NET_CURRENT_DESKTOP atom. Returns 0 with an error if detection fails.
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// DesktopCount returns the number of virtual desktops.
func (c *Connection) DesktopCount() (int, error) {
	count, err := ewmh.NumberOfDesktopsGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get desktop count: %w", err)
	}
	return int(count), nil
}

// WindowDesktop returns the desktop number a window is on.
// Uses _NET_WM_DESKTOP atom. Returns -1 for "sticky" windows (visible on all desktops).
// Returns 0 with an error if detection fails.
func (c *Connection) WindowDesktop(windowID uint32) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, xproto.Window(windowID))
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	// 0xFFFFFFFF means the window is on all desktops (sticky)
	if desktop == 0xFFFFFFFF {
		return -1, nil
	}
	return int(desktop), nil
}

// SwitchDesktop makes the given desktop the current one.
// Sends a _NET_CURRENT_DESKTOP client message to the root window per EWMH spec.
func (c *Connection) SwitchDesktop(desktop int) error {
	err := c.sendRootClientMessage(c.Root, "_NET_CURRENT_DESKTOP",
		[5]uint32{uint32(desktop), 0, 0, 0, 0})
	if err != nil {
		return fmt.Errorf("failed to switch to desktop %d: %w", desktop, err)
	}
	return nil
}

// CreateDesktop appends one virtual desktop and returns its index.
// Sends a _NET_NUMBER_OF_DESKTOPS client message asking for count+1, then
// re-reads the count until the window manager has applied the change.
// Existing desktop numbers are unaffected (EWMH appends at the end).
func (c *Connection) CreateDesktop() (int, error) {
	count, err := c.DesktopCount()
	if err != nil {
		return 0, err
	}

	err = c.sendRootClientMessage(c.Root, "_NET_NUMBER_OF_DESKTOPS",
		[5]uint32{uint32(count + 1), 0, 0, 0, 0})
	if err != nil {
		return 0, fmt.Errorf("failed to request desktop creation: %w", err)
	}

	for i := 0; i < createVerifyAttempts; i++ {
		newCount, err := c.DesktopCount()
		if err == nil && newCount > count {
			return count, nil
		}
		time.Sleep(createVerifyInterval)
	}
	return 0, fmt.Errorf("window manager did not create desktop %d", count)
}

// MoveWindowToDesktop moves a window to the specified virtual desktop.
// Sends a _NET_WM_DESKTOP client message to the root window per EWMH spec.
func (c *Connection) MoveWindowToDesktop(windowID uint32, desktop int) error {
	const sourceIndication = 2 // pager/direct action
	err := c.sendRootClientMessage(xproto.Window(windowID), "_NET_WM_DESKTOP",
		[5]uint32{uint32(desktop), sourceIndication, 0, 0, 0})
	if err != nil {
		return fmt.Errorf("failed to move window %d to desktop %d: %w", windowID, desktop, err)
	}
	return nil
}

// sendRootClientMessage builds and sends an EWMH client message by hand.
// We do this instead of using the xgbutil ewmh request helpers because
// several of them panic on this library version (uint vs int type assertion).
func (c *Connection) sendRootClientMessage(window xproto.Window, atomName string, data [5]uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len(atomName)), atomName).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atomName, err)
	}

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: window,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
