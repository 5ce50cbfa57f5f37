package launcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/1broseidon/winpos/internal/geom"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"firefox", []string{"firefox"}},
		{"code --new-window", []string{"code", "--new-window"}},
		{`sh -c 'echo "hi there"'`, []string{"sh", "-c", `echo "hi there"`}},
		{`app "two words" three\ four`, []string{"app", "two words", "three four"}},
		{`app ''`, []string{"app", ""}},
		{"  spaced\tout  ", []string{"spaced", "out"}},
	}
	for _, tt := range tests {
		got, err := SplitCommand(tt.in)
		if err != nil {
			t.Fatalf("SplitCommand(%q): %v", tt.in, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Fatalf("SplitCommand(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestSplitCommand_Errors(t *testing.T) {
	for _, in := range []string{`app "open`, `app 'open`, `app \`} {
		if _, err := SplitCommand(in); err == nil {
			t.Fatalf("SplitCommand(%q): expected error", in)
		}
	}
}

func TestLookup(t *testing.T) {
	l := New(map[string]string{
		"Firefox": "firefox --new-window",
		"firefox": "firefox",
		"Code":    "code",
	})

	if cmd, err := l.Lookup("firefox"); err != nil || cmd != "firefox" {
		t.Fatalf("expected exact match, got %q (%v)", cmd, err)
	}
	if cmd, err := l.Lookup("CODE"); err != nil || cmd != "code" {
		t.Fatalf("expected case-insensitive match, got %q (%v)", cmd, err)
	}
	for i := 0; i < 50; i++ {
		if cmd, err := l.Lookup("FIREFOX"); err != nil || cmd != "firefox --new-window" {
			t.Fatalf("expected first case-insensitive match in sort order, got %q (%v)", cmd, err)
		}
	}
	if _, err := l.Lookup("gimp"); !errors.Is(err, geom.ErrUnconfiguredApplication) {
		t.Fatalf("expected ErrUnconfiguredApplication, got %v", err)
	}
}

func TestLaunch_UsesSplitArgv(t *testing.T) {
	l := New(map[string]string{"code": "code --new-window '/tmp/my project'"})
	var got []string
	l.start = func(argv []string) (int, error) {
		got = argv
		return 4242, nil
	}

	pid, err := l.Launch("code")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if pid != 4242 {
		t.Fatalf("expected pid 4242, got %d", pid)
	}
	if strings.Join(got, "|") != "code|--new-window|/tmp/my project" {
		t.Fatalf("unexpected argv %q", got)
	}
}

func TestLaunch_Errors(t *testing.T) {
	l := New(map[string]string{"bad": `bad "quote`, "empty": "   "})
	l.start = func(argv []string) (int, error) {
		t.Fatalf("start must not be called, got %q", argv)
		return 0, nil
	}

	if _, err := l.Launch("missing"); !errors.Is(err, geom.ErrUnconfiguredApplication) {
		t.Fatalf("expected ErrUnconfiguredApplication, got %v", err)
	}
	if _, err := l.Launch("bad"); !errors.Is(err, geom.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
	if _, err := l.Launch("empty"); !errors.Is(err, geom.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestLaunch_StartsDetachedProcess(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "started")
	script := filepath.Join(dir, "fakeapp")
	if err := os.WriteFile(script, []byte("#!/bin/sh\necho \"$1\" > \""+marker+"\"\n"), 0755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)

	l := New(map[string]string{"fakeapp": "fakeapp hello"})
	pid, err := l.Launch("fakeapp")
	if err != nil {
		t.Fatalf("Launch: %v", err)
	}
	if pid <= 0 {
		t.Fatalf("expected a pid, got %d", pid)
	}

	ok, err := Wait(context.Background(), 50, 20*time.Millisecond, func(context.Context) (bool, error) {
		data, err := os.ReadFile(marker)
		return err == nil && strings.TrimSpace(string(data)) == "hello", nil
	})
	if err != nil || !ok {
		t.Fatalf("expected stub to run, ok=%v err=%v", ok, err)
	}
}

func TestWait_Bounds(t *testing.T) {
	calls := 0
	ok, err := Wait(context.Background(), 20, time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return false, nil
	})
	if err != nil || ok {
		t.Fatalf("expected budget exhaustion, ok=%v err=%v", ok, err)
	}
	if calls != 20 {
		t.Fatalf("expected 20 polls, got %d", calls)
	}
}

func TestWait_StopsOnSuccess(t *testing.T) {
	calls := 0
	ok, err := Wait(context.Background(), 20, time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return calls == 3, nil
	})
	if err != nil || !ok {
		t.Fatalf("expected success, ok=%v err=%v", ok, err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 polls, got %d", calls)
	}
}

func TestWait_ProbeError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Wait(context.Background(), 5, time.Millisecond, func(context.Context) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected probe error, got %v", err)
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Wait(ctx, 20, time.Hour, func(context.Context) (bool, error) {
		calls++
		cancel()
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 poll before cancellation, got %d", calls)
	}
}
