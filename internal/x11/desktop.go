package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// sourceIndication marks client messages as coming from a pager/direct action.
const sourceIndication = 2

// SetWindowDesktop moves a window to the specified virtual desktop.
// Sends a _NET_WM_DESKTOP client message to the root window per EWMH spec.
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	if desktop < 0 {
		return fmt.Errorf("invalid desktop %d", desktop)
	}
	if count, err := ewmh.NumberOfDesktopsGet(c.XUtil); err == nil && desktop >= int(count) {
		return fmt.Errorf("desktop %d out of range (have %d)", desktop, count)
	}
	return c.sendRootMessage(windowID, "_NET_WM_DESKTOP", []uint32{uint32(desktop), sourceIndication})
}

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, "_NET_ACTIVE_WINDOW", []uint32{sourceIndication})
}

// ClientWindows returns the managed top-level windows (_NET_CLIENT_LIST).
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// WindowPid returns _NET_WM_PID, or 0 when the window does not set it.
func (c *Connection) WindowPid(windowID xproto.Window) int {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0
	}
	return int(pid)
}
