//go:build linux

package platform

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/shirou/gopsutil/v4/process"
)

// LinuxBackend talks to the X server directly over an x11.Connection.
type LinuxBackend struct {
	conn    *x11.Connection
	minSize int
}

var (
	_ Backend       = (*LinuxBackend)(nil)
	_ StrutProvider = (*LinuxBackend)(nil)
)

// NewLinuxBackend wraps an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection, minSize int) *LinuxBackend {
	return &LinuxBackend{conn: conn, minSize: minSize}
}

// OpenX11 opens a fresh X11 connection from $DISPLAY.
func OpenX11(minSize int) (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, err
	}
	return NewLinuxBackend(conn, minSize), nil
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
	return nil
}

// Monitors returns the active RandR monitors.
func (b *LinuxBackend) Monitors(ctx context.Context) ([]geom.Monitor, error) {
	conn, err := b.connection(ctx)
	if err != nil {
		return nil, err
	}
	return conn.Monitors()
}

// ActiveWindow returns the currently focused window.
func (b *LinuxBackend) ActiveWindow(ctx context.Context) (WindowID, error) {
	conn, err := b.connection(ctx)
	if err != nil {
		return 0, err
	}
	win, err := conn.ActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

// Window returns the title and root-relative geometry of a window.
func (b *LinuxBackend) Window(ctx context.Context, id WindowID) (WindowInfo, error) {
	conn, err := b.connection(ctx)
	if err != nil {
		return WindowInfo{}, err
	}
	rect, err := conn.WindowGeometry(xproto.Window(id))
	if err != nil {
		return WindowInfo{}, err
	}
	return WindowInfo{
		ID:     id,
		Title:  conn.WindowTitle(xproto.Window(id)),
		Bounds: rect,
	}, nil
}

// AppWindows lists client windows whose _NET_WM_PID belongs to the
// application's processes.
func (b *LinuxBackend) AppWindows(ctx context.Context, app string, pid int) ([]WindowID, error) {
	conn, err := b.connection(ctx)
	if err != nil {
		return nil, err
	}

	pids := map[int]struct{}{}
	if pid > 0 {
		pids[pid] = struct{}{}
	} else {
		found, err := processPIDs(ctx, app)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			pids[p] = struct{}{}
		}
	}
	if len(pids) == 0 {
		return nil, nil
	}

	clients, err := conn.ClientWindows()
	if err != nil {
		return nil, err
	}

	var candidates []geom.SizedWindow[WindowID]
	for _, win := range clients {
		if _, ok := pids[conn.WindowPid(win)]; !ok {
			continue
		}
		if !conn.IsNormalWindow(win) {
			continue
		}
		rect, err := conn.WindowGeometry(win)
		if err != nil {
			continue
		}
		candidate := geom.SizedWindow[WindowID]{ID: WindowID(win), Bounds: rect}
		if !geom.LargeEnough(rect, b.minSize) {
			candidate.Children = b.childWindows(win)
		}
		candidates = append(candidates, candidate)
	}

	return geom.FilterWindows(candidates, b.minSize), nil
}

func (b *LinuxBackend) childWindows(win xproto.Window) []geom.SizedWindow[WindowID] {
	children, err := b.conn.Children(win)
	if err != nil {
		return nil
	}
	out := make([]geom.SizedWindow[WindowID], 0, len(children))
	for _, child := range children {
		rect, err := b.conn.WindowGeometry(child)
		if err != nil {
			continue
		}
		out = append(out, geom.SizedWindow[WindowID]{ID: WindowID(child), Bounds: rect})
	}
	return out
}

// MoveResize clears the maximized state and applies r.
func (b *LinuxBackend) MoveResize(ctx context.Context, id WindowID, r geom.Rect) error {
	conn, err := b.connection(ctx)
	if err != nil {
		return err
	}
	return conn.MoveResizeWindow(xproto.Window(id), r)
}

// SetDesktop moves a window to a virtual desktop.
func (b *LinuxBackend) SetDesktop(ctx context.Context, id WindowID, desktop int) error {
	conn, err := b.connection(ctx)
	if err != nil {
		return err
	}
	return conn.SetWindowDesktop(xproto.Window(id), desktop)
}

// Focus activates and raises a window.
func (b *LinuxBackend) Focus(ctx context.Context, id WindowID) error {
	conn, err := b.connection(ctx)
	if err != nil {
		return err
	}
	return conn.FocusWindow(xproto.Window(id))
}

// Struts reports the space docks reserve on mon.
func (b *LinuxBackend) Struts(ctx context.Context, mon geom.Monitor) (geom.Margins, error) {
	conn, err := b.connection(ctx)
	if err != nil {
		return geom.Margins{}, err
	}
	return conn.DockStruts(mon)
}

func (b *LinuxBackend) connection(ctx context.Context) (*x11.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// processPIDs returns the pids of processes whose name contains app, the way
// pgrep matches by default.
func processPIDs(ctx context.Context, app string) ([]int, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return nil, fmt.Errorf("%w: empty application name", geom.ErrInvalidConfiguration)
	}

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if int(p.Pid) == self {
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if matchProcessName(name, app) {
			pids = append(pids, int(p.Pid))
		}
	}
	return pids, nil
}

func matchProcessName(name, app string) bool {
	return name != "" && strings.Contains(name, app)
}
