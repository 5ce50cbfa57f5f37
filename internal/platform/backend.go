package platform

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/1broseidon/winpos/internal/geom"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// String renders the identifier in decimal, the form instance ordering uses.
func (id WindowID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Hex renders the identifier the way xwininfo and wmctrl print it.
func (id WindowID) Hex() string {
	return fmt.Sprintf("0x%08x", uint32(id))
}

// ParseWindowID accepts decimal or 0x-prefixed hexadecimal identifiers.
func ParseWindowID(s string) (WindowID, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: window id %q", geom.ErrInvalidConfiguration, s)
	}
	return WindowID(v), nil
}

// WindowInfo is a window's title and geometry in root coordinates.
type WindowInfo struct {
	ID     WindowID
	Title  string
	Bounds geom.Rect
}

// Backend abstracts the window-system queries and requests placement needs.
type Backend interface {
	Monitors(ctx context.Context) ([]geom.Monitor, error)
	ActiveWindow(ctx context.Context) (WindowID, error)
	Window(ctx context.Context, id WindowID) (WindowInfo, error)
	// AppWindows lists the windows of an application, by process name or
	// by pid when pid > 0, dropping windows below the size threshold.
	AppWindows(ctx context.Context, app string, pid int) ([]WindowID, error)
	// MoveResize clears the maximized state, then applies the geometry.
	MoveResize(ctx context.Context, id WindowID, r geom.Rect) error
	SetDesktop(ctx context.Context, id WindowID, desktop int) error
	Focus(ctx context.Context, id WindowID) error
	Close() error
}

// StrutProvider is implemented by backends that can report the space docks
// reserve on a monitor.
type StrutProvider interface {
	Struts(ctx context.Context, mon geom.Monitor) (geom.Margins, error)
}
