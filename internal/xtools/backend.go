package xtools

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/platform"
)

// Backend implements platform.Backend by running xrandr, xdotool, xwininfo,
// wmctrl and pgrep.
type Backend struct {
	runner  Runner
	minSize int
}

var _ platform.Backend = (*Backend)(nil)

// New returns an exec backend. A nil runner runs the real commands.
func New(runner Runner, minSize int) *Backend {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Backend{runner: runner, minSize: minSize}
}

// Close is a no-op; every query is a separate process.
func (b *Backend) Close() error {
	return nil
}

// Monitors parses the connected outputs reported by xrandr.
func (b *Backend) Monitors(ctx context.Context) ([]geom.Monitor, error) {
	out, err := b.runner.Run(ctx, "xrandr")
	if err != nil {
		return nil, fmt.Errorf("failed to query monitors: %w", err)
	}
	return ParseXrandr(out)
}

// ActiveWindow asks xdotool for the focused window.
func (b *Backend) ActiveWindow(ctx context.Context) (platform.WindowID, error) {
	out, err := b.runner.Run(ctx, "xdotool", "getactivewindow")
	if err != nil {
		return 0, fmt.Errorf("%w: %w", geom.ErrNoActiveWindow, err)
	}
	ids, err := ParseWindowIDs(out)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 || ids[0] == 0 {
		return 0, geom.ErrNoActiveWindow
	}
	return ids[0], nil
}

// Window reads a window's title and absolute geometry from xwininfo.
func (b *Backend) Window(ctx context.Context, id platform.WindowID) (platform.WindowInfo, error) {
	out, err := b.runner.Run(ctx, "xwininfo", "-id", id.Hex())
	if err != nil {
		return platform.WindowInfo{}, fmt.Errorf("%w: window %s: %w", geom.ErrNotFound, id, err)
	}
	info, err := ParseXwininfo(out)
	if err != nil {
		return platform.WindowInfo{}, err
	}
	info.ID = id
	return info, nil
}

// AppWindows finds the application's processes with pgrep (unless pid is
// given), their windows with xdotool, and drops windows smaller than the
// threshold. A window that is too small is replaced by its large-enough
// direct children.
func (b *Backend) AppWindows(ctx context.Context, app string, pid int) ([]platform.WindowID, error) {
	var pids []int
	if pid > 0 {
		pids = []int{pid}
	} else {
		found, err := b.pgrep(ctx, app)
		if err != nil {
			return nil, err
		}
		pids = found
	}

	seen := map[platform.WindowID]struct{}{}
	var candidates []geom.SizedWindow[platform.WindowID]
	for _, p := range pids {
		ids, err := b.searchPid(ctx, p)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			info, err := b.Window(ctx, id)
			if err != nil {
				// Windows can vanish between search and query.
				continue
			}
			candidate := geom.SizedWindow[platform.WindowID]{ID: id, Bounds: info.Bounds}
			if !geom.LargeEnough(info.Bounds, b.minSize) {
				candidate.Children = b.children(ctx, id)
			}
			candidates = append(candidates, candidate)
		}
	}

	return geom.FilterWindows(candidates, b.minSize), nil
}

func (b *Backend) pgrep(ctx context.Context, app string) ([]int, error) {
	app = strings.TrimSpace(app)
	if app == "" {
		return nil, fmt.Errorf("%w: empty application name", geom.ErrInvalidConfiguration)
	}
	out, err := b.runner.Run(ctx, "pgrep", app)
	if err != nil {
		// pgrep exits 1 when nothing matches.
		if exitCode(err) == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find processes of %q: %w", app, err)
	}
	return ParsePIDs(out)
}

func (b *Backend) searchPid(ctx context.Context, pid int) ([]platform.WindowID, error) {
	out, err := b.runner.Run(ctx, "xdotool", "search", "--pid", strconv.Itoa(pid))
	if err != nil {
		// xdotool search exits 1 when no window matches.
		if exitCode(err) == 1 {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find windows of pid %d: %w", pid, err)
	}
	return ParseWindowIDs(out)
}

func (b *Backend) children(ctx context.Context, id platform.WindowID) []geom.SizedWindow[platform.WindowID] {
	out, err := b.runner.Run(ctx, "xwininfo", "-id", id.Hex(), "-children")
	if err != nil {
		return nil
	}
	children, err := ParseXwininfoChildren(out)
	if err != nil {
		return nil
	}
	return children
}

// MoveResize drops the maximized state with wmctrl, then applies r.
func (b *Backend) MoveResize(ctx context.Context, id platform.WindowID, r geom.Rect) error {
	if _, err := b.runner.Run(ctx, "wmctrl", "-i", "-r", id.Hex(), "-b", "remove,maximized_vert,maximized_horz"); err != nil {
		return fmt.Errorf("failed to unmaximize window %s: %w", id, err)
	}
	gravity := fmt.Sprintf("0,%d,%d,%d,%d", r.X, r.Y, r.Width, r.Height)
	if _, err := b.runner.Run(ctx, "wmctrl", "-i", "-r", id.Hex(), "-e", gravity); err != nil {
		return fmt.Errorf("failed to move window %s: %w", id, err)
	}
	return nil
}

// SetDesktop moves a window to a virtual desktop with wmctrl.
func (b *Backend) SetDesktop(ctx context.Context, id platform.WindowID, desktop int) error {
	if desktop < 0 {
		return fmt.Errorf("%w: desktop %d", geom.ErrInvalidConfiguration, desktop)
	}
	if _, err := b.runner.Run(ctx, "wmctrl", "-i", "-r", id.Hex(), "-t", strconv.Itoa(desktop)); err != nil {
		return fmt.Errorf("failed to move window %s to desktop %d: %w", id, desktop, err)
	}
	return nil
}

// Focus activates a window with wmctrl, switching to its desktop.
func (b *Backend) Focus(ctx context.Context, id platform.WindowID) error {
	if _, err := b.runner.Run(ctx, "wmctrl", "-i", "-a", id.Hex()); err != nil {
		return fmt.Errorf("failed to focus window %s: %w", id, err)
	}
	return nil
}

// IsMissingTool reports whether err comes from a command that is not
// installed.
func IsMissingTool(err error) bool {
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	return errors.Is(cmdErr.Err, exec.ErrNotFound)
}
