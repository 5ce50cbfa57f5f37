package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/notify"
	"github.com/1broseidon/winpos/internal/placement"
	"github.com/1broseidon/winpos/internal/platform"
	"github.com/1broseidon/winpos/internal/xtools"
)

var version = "dev"

const exitUsage = 2

var (
	openBackendFn = openBackend
	newNotifierFn = notify.New
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer logger.CloseLogFile()

	c := &cli{stdout: stdout, stderr: stderr}
	root := c.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	code := exitCodeFor(err)
	if c.exitCode > 0 {
		code = c.exitCode
	}
	c.reportError(err)
	return code
}

// usageError marks errors caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func exitCodeFor(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return placement.ExitCode(err)
}

func (c *cli) reportError(err error) {
	red := color.New(color.FgRed, color.Bold)
	red.Fprint(c.stderr, "Error: ")
	fmt.Fprintln(c.stderr, err)

	if xtools.IsMissingTool(err) {
		fmt.Fprintln(c.stderr, "hint: the exec backend runs xrandr, xdotool, xwininfo, wmctrl and pgrep; install them or use --backend x11")
	}
	if errors.Is(err, geom.ErrUnconfiguredApplication) {
		fmt.Fprintln(c.stderr, "hint: add the application under launchers: in the config file")
	}

	var ue *usageError
	if errors.As(err, &ue) || errors.Is(err, context.Canceled) {
		return
	}
	if c.notify || (c.cfg != nil && c.cfg.NotifyOnError) {
		c.sendFailureNotification(err)
	}
}

func (c *cli) sendFailureNotification(err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n := newNotifierFn()
	defer n.Close()
	if nerr := n.Notify(ctx, "winpos failed", err.Error()); nerr != nil {
		logger.Warnf("failed to send notification: %v", nerr)
	}
}

// openBackend returns the window backend named by kind.
func openBackend(kind string, minSize int) (platform.Backend, error) {
	switch kind {
	case config.BackendExec, "":
		return xtools.New(nil, minSize), nil
	case config.BackendX11:
		return platform.OpenX11(minSize)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", geom.ErrInvalidConfiguration, kind)
	}
}
