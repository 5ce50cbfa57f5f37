package launcher

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/1broseidon/winpos/internal/geom"
)

// Launcher starts applications from a static name to command-line mapping.
type Launcher struct {
	commands map[string]string

	// start runs argv without waiting for it; replaced in tests.
	start func(argv []string) (int, error)
}

// New returns a launcher for the given name to command-line mapping.
func New(commands map[string]string) *Launcher {
	return &Launcher{commands: commands, start: startDetached}
}

// Lookup returns the command line configured for app. Exact names win over
// case-insensitive matches.
func (l *Launcher) Lookup(app string) (string, error) {
	app = strings.TrimSpace(app)
	if name, ok := geom.FoldKey(l.commands, app); ok {
		return l.commands[name], nil
	}
	return "", fmt.Errorf("%w: no launcher configured for %q (set launchers.%s)", geom.ErrUnconfiguredApplication, app, app)
}

// Launch starts app in its own session and returns its pid. It does not wait
// for the process.
func (l *Launcher) Launch(app string) (int, error) {
	cmdline, err := l.Lookup(app)
	if err != nil {
		return 0, err
	}
	argv, err := SplitCommand(cmdline)
	if err != nil {
		return 0, fmt.Errorf("%w: launcher for %q: %v", geom.ErrInvalidConfiguration, app, err)
	}
	if len(argv) == 0 {
		return 0, fmt.Errorf("%w: launcher for %q is empty", geom.ErrInvalidConfiguration, app)
	}
	pid, err := l.start(argv)
	if err != nil {
		return 0, fmt.Errorf("failed to launch %q: %w", app, err)
	}
	return pid, nil
}

func startDetached(argv []string) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	// Do not wait; applications are long-lived.
	_ = cmd.Process.Release()
	return pid, nil
}

// Wait polls probe up to attempts times, sleeping interval between polls,
// until it reports true. It returns false without error when the budget runs
// out, and the context error when ctx is cancelled first.
func Wait(ctx context.Context, attempts int, interval time.Duration, probe func(context.Context) (bool, error)) (bool, error) {
	if attempts < 1 {
		attempts = 1
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer := time.NewTimer(interval)
			select {
			case <-ctx.Done():
				timer.Stop()
				return false, ctx.Err()
			case <-timer.C:
			}
		}
		ok, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// SplitCommand splits a command line into words with shell-like quoting:
// single quotes, double quotes and backslash escapes. No expansion is done.
func SplitCommand(s string) ([]string, error) {
	var out []string

	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false

	flush := func() {
		if buf.Len() == 0 && !quoted {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		quoted = false
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}

		if !inSingle && r == '\\' {
			escaped = true
			continue
		}

		if !inDouble && r == '\'' {
			inSingle = !inSingle
			quoted = true
			continue
		}
		if !inSingle && r == '"' {
			inDouble = !inDouble
			quoted = true
			continue
		}

		if !inSingle && !inDouble {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				flush()
				continue
			}
		}

		buf.WriteRune(r)
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command")
	}

	flush()
	return out, nil
}
