package xtools

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/platform"
)

// fakeRunner returns canned output keyed by the full command line.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	f.calls = append(f.calls, line)
	if err, ok := f.errs[line]; ok {
		return nil, err
	}
	out, ok := f.outputs[line]
	if !ok {
		return nil, fmt.Errorf("unexpected command %q", line)
	}
	return []byte(out), nil
}

func xwininfoFor(id string, x, y, w, h int) string {
	return fmt.Sprintf("xwininfo: Window id: %s \"win %s\"\n  Absolute upper-left X:  %d\n  Absolute upper-left Y:  %d\n  Width: %d\n  Height: %d\n", id, id, x, y, w, h)
}

func TestBackend_Monitors(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"xrandr": xrandrTwoHeads}}
	b := New(r, geom.DefaultMinWindowSize)

	mons, err := b.Monitors(context.Background())
	if err != nil {
		t.Fatalf("Monitors: %v", err)
	}
	if len(mons) != 2 || mons[1].Name != "HDMI-0" {
		t.Fatalf("unexpected monitors %+v", mons)
	}
}

func TestBackend_ActiveWindow(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{"xdotool getactivewindow": "62914563\n"}}
	b := New(r, geom.DefaultMinWindowSize)

	id, err := b.ActiveWindow(context.Background())
	if err != nil {
		t.Fatalf("ActiveWindow: %v", err)
	}
	if id != 62914563 {
		t.Fatalf("expected 62914563, got %d", id)
	}
}

func TestBackend_ActiveWindow_None(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{"xdotool getactivewindow": errors.New("exit status 1")}}
	b := New(r, geom.DefaultMinWindowSize)

	if _, err := b.ActiveWindow(context.Background()); !errors.Is(err, geom.ErrNoActiveWindow) {
		t.Fatalf("expected ErrNoActiveWindow, got %v", err)
	}
}

func TestBackend_Window_NotFound(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{"xwininfo -id 0x00000007": errors.New("BadWindow")}}
	b := New(r, geom.DefaultMinWindowSize)

	if _, err := b.Window(context.Background(), 7); !errors.Is(err, geom.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBackend_AppWindows_FiltersSmallAndRecursesOnce(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"pgrep thunderbird":        "100\n200\n",
		"xdotool search --pid 100": "300\n10\n",
		"xdotool search --pid 200": "2\n10\n",
		// 300 is large enough.
		"xwininfo -id 0x0000012c": xwininfoFor("0x12c", 0, 0, 1280, 800),
		// 10 is a tiny leader window with one large child.
		"xwininfo -id 0x0000000a":           xwininfoFor("0xa", 0, 0, 10, 10),
		"xwininfo -id 0x0000000a -children": "     2 children:\n     0x3c00004 \"Inbox\": ()  1280x800+0+0  +0+0\n     0x3c00005 (has no name): ()  1x1+0+0  +0+0\n",
		// 2 is too small and has no children.
		"xwininfo -id 0x00000002":           xwininfoFor("0x2", 0, 0, 199, 1000),
		"xwininfo -id 0x00000002 -children": "     0 children.\n",
	}}
	b := New(r, geom.DefaultMinWindowSize)

	ids, err := b.AppWindows(context.Background(), "thunderbird", 0)
	if err != nil {
		t.Fatalf("AppWindows: %v", err)
	}
	want := []platform.WindowID{300, 0x3c00004}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, ids)
	}

	for _, call := range r.calls {
		if call == "xwininfo -id 0x0000012c -children" {
			t.Fatalf("did not expect children query for a large window")
		}
	}
}

func TestBackend_AppWindows_ByPid(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"xdotool search --pid 42": "300\n",
		"xwininfo -id 0x0000012c": xwininfoFor("0x12c", 0, 0, 800, 600),
	}}
	b := New(r, geom.DefaultMinWindowSize)

	ids, err := b.AppWindows(context.Background(), "", 42)
	if err != nil {
		t.Fatalf("AppWindows: %v", err)
	}
	if len(ids) != 1 || ids[0] != 300 {
		t.Fatalf("expected [300], got %v", ids)
	}
	if r.calls[0] != "xdotool search --pid 42" {
		t.Fatalf("expected pgrep to be skipped, got calls %v", r.calls)
	}
}

func TestBackend_MoveResize_UnmaximizesFirst(t *testing.T) {
	r := &fakeRunner{outputs: map[string]string{
		"wmctrl -i -r 0x0000012c -b remove,maximized_vert,maximized_horz": "",
		"wmctrl -i -r 0x0000012c -e 0,1920,0,960,524":                     "",
		"wmctrl -i -r 0x0000012c -t 2":                                    "",
		"wmctrl -i -a 0x0000012c":                                         "",
	}}
	b := New(r, geom.DefaultMinWindowSize)
	ctx := context.Background()

	if err := b.SetDesktop(ctx, 300, 2); err != nil {
		t.Fatalf("SetDesktop: %v", err)
	}
	if err := b.MoveResize(ctx, 300, geom.Rect{X: 1920, Y: 0, Width: 960, Height: 524}); err != nil {
		t.Fatalf("MoveResize: %v", err)
	}
	if err := b.Focus(ctx, 300); err != nil {
		t.Fatalf("Focus: %v", err)
	}

	want := []string{
		"wmctrl -i -r 0x0000012c -t 2",
		"wmctrl -i -r 0x0000012c -b remove,maximized_vert,maximized_horz",
		"wmctrl -i -r 0x0000012c -e 0,1920,0,960,524",
		"wmctrl -i -a 0x0000012c",
	}
	if strings.Join(r.calls, "\n") != strings.Join(want, "\n") {
		t.Fatalf("expected calls\n%s\ngot\n%s", strings.Join(want, "\n"), strings.Join(r.calls, "\n"))
	}
}

func TestBackend_MoveResize_StopsWhenUnmaximizeFails(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{
		"wmctrl -i -r 0x00000001 -b remove,maximized_vert,maximized_horz": errors.New("boom"),
	}}
	b := New(r, geom.DefaultMinWindowSize)

	if err := b.MoveResize(context.Background(), 1, geom.Rect{Width: 10, Height: 10}); err == nil {
		t.Fatalf("expected error")
	}
	if len(r.calls) != 1 {
		t.Fatalf("expected a single call, got %v", r.calls)
	}
}

func writeStub(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
}

func TestExecRunner_PgrepNoMatchIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "pgrep", "exit 1\n")
	t.Setenv("PATH", dir)

	b := New(nil, geom.DefaultMinWindowSize)
	ids, err := b.AppWindows(context.Background(), "nothing-runs-this", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no windows, got %v", ids)
	}
}

func TestExecRunner_StderrInError(t *testing.T) {
	dir := t.TempDir()
	writeStub(t, dir, "xrandr", "echo \"Can't open display\" >&2\nexit 1\n")
	t.Setenv("PATH", dir)

	_, err := New(nil, 0).Monitors(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Can't open display") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Name != "xrandr" {
		t.Fatalf("expected CommandError for xrandr, got %v", err)
	}
}

func TestIsMissingTool(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	_, err := New(nil, 0).Monitors(context.Background())
	if !IsMissingTool(err) {
		t.Fatalf("expected missing tool error, got %v", err)
	}
}
