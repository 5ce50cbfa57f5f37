package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/placement"
)

// cli holds the flags and state of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	backend    string
	notify     bool

	app      string
	pid      int
	instance int
	monitor  string
	desktop  int
	spawn    bool
	layout   string
	dryRun   bool

	cfg      *config.Config
	exitCode int
}

func (c *cli) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "winpos [position...]",
		Short: "Move and resize X11 windows into halves, quadrants or full screen",
		Long: `winpos places a window into a region of a monitor, keeping clear of the
configured per-monitor margins.

Positions combine the keywords top, bottom, left, right and middle.
Without keywords (or with max) the window fills the usable monitor area.

Examples:
  winpos top left              active window into the top-left quadrant
  winpos right --app code      first "code" window into the right half
  winpos --app firefox --spawn launch firefox if needed, then maximize it
  winpos --monitor HDMI-0      active window onto the whole of HDMI-0
  winpos --layout work         apply the "work" layout from the config`,
		Version:           version,
		Args:              cobra.ArbitraryArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.checkGlobalFlags,
		RunE:              c.runPlace,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "Config file path (default: ~/.config/winpos/config.yaml)")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (default: from config)")
	pf.StringVar(&c.backend, "backend", "", "Window backend: exec or x11 (default: from config)")
	pf.BoolVar(&c.notify, "notify", false, "Show a desktop notification when placement fails")

	f := root.Flags()
	f.StringVar(&c.app, "app", "", "Place a window of this application instead of the active window")
	f.IntVar(&c.pid, "pid", 0, "Place a window of this process ID")
	f.IntVar(&c.instance, "instance", 0, "Zero-based window index when the application has several windows")
	f.StringVar(&c.monitor, "monitor", "", "Target monitor name or zero-based index (default: monitor under the window)")
	f.IntVar(&c.desktop, "desktop", 0, "Move the window to this virtual desktop first")
	f.BoolVar(&c.spawn, "spawn", false, "Launch the application from the configured launchers if it has no window")
	f.StringVar(&c.layout, "layout", "", "Apply a named layout from the config")
	f.BoolVar(&c.dryRun, "dry-run", false, "Print the target rectangle without moving anything")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		c.newMonitorsCmd(),
		c.newLayoutsCmd(),
		c.newConfigCmd(),
		c.newMCPCmd(),
		c.newBindCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) checkGlobalFlags(_ *cobra.Command, _ []string) error {
	if c.logLevel != "" {
		if _, err := logger.ParseLevel(c.logLevel); err != nil {
			return &usageError{err: err}
		}
		logger.SetLevel(c.logLevel)
	}
	switch c.backend {
	case "", config.BackendExec, config.BackendX11:
	default:
		return &usageError{err: fmt.Errorf("unknown backend %q (want %s or %s)", c.backend, config.BackendExec, config.BackendX11)}
	}
	return nil
}

func (c *cli) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultConfigPath()
}

// loadConfig loads the configuration once and applies flag overrides and the
// logging settings.
func (c *cli) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	path, err := c.resolveConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if c.backend != "" {
		cfg.Backend = c.backend
	}
	logger.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		if err := logger.SetOutputFile(cfg.LogFile); err != nil {
			logger.Warnf("failed to open log file: %v", err)
		}
	}
	logger.Debugf("config loaded from %s (%d files)", path, len(res.Files))

	c.cfg = cfg
	return cfg, nil
}

func (c *cli) newPlacer() (*placement.Placer, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	backend, err := openBackendFn(cfg.Backend, cfg.MinWindowSize)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Debugf("closing backend: %v", err)
		}
	}
	return placement.New(backend, cfg, nil), closeFn, nil
}

func (c *cli) runPlace(cmd *cobra.Command, args []string) error {
	if c.layout != "" {
		if len(args) > 0 {
			return &usageError{err: fmt.Errorf("positions cannot be combined with --layout")}
		}
		return c.runLayout(cmd)
	}

	req, err := c.placeRequest(cmd, args)
	if err != nil {
		return err
	}
	placer, closeFn, err := c.newPlacer()
	if err != nil {
		return err
	}
	defer closeFn()

	res, err := placer.Place(cmd.Context(), req)
	if err != nil {
		return err
	}
	if req.DryRun {
		c.printResult(res)
	}
	return nil
}

// placeRequest builds a single placement from positional keywords and flags.
func (c *cli) placeRequest(cmd *cobra.Command, args []string) (placement.Request, error) {
	pos, err := geom.ParsePosition(args...)
	if err != nil {
		return placement.Request{}, err
	}
	if c.pid < 0 {
		return placement.Request{}, &usageError{err: fmt.Errorf("--pid must be >= 0")}
	}
	if c.instance < 0 {
		return placement.Request{}, &usageError{err: fmt.Errorf("--instance must be >= 0")}
	}

	req := placement.Request{
		App:      strings.TrimSpace(c.app),
		PID:      c.pid,
		Instance: c.instance,
		Position: pos,
		Monitor:  geom.ParseMonitorSelector(c.monitor),
		Spawn:    c.spawn,
		DryRun:   c.dryRun,
	}
	if cmd.Flags().Changed("desktop") {
		if c.desktop < 0 {
			return placement.Request{}, &usageError{err: fmt.Errorf("--desktop must be >= 0")}
		}
		desktop := c.desktop
		req.Desktop = &desktop
	}
	return req, nil
}

// layoutOverrides turns the explicitly set flags into layout overrides.
func (c *cli) layoutOverrides(cmd *cobra.Command) (placement.Overrides, error) {
	ov := placement.Overrides{
		Monitor: geom.ParseMonitorSelector(c.monitor),
		DryRun:  c.dryRun,
	}
	if cmd.Flags().Changed("desktop") {
		if c.desktop < 0 {
			return placement.Overrides{}, &usageError{err: fmt.Errorf("--desktop must be >= 0")}
		}
		desktop := c.desktop
		ov.Desktop = &desktop
	}
	if cmd.Flags().Changed("spawn") {
		spawn := c.spawn
		ov.Spawn = &spawn
	}
	if c.app != "" || c.pid != 0 || c.instance != 0 {
		return placement.Overrides{}, &usageError{err: fmt.Errorf("--app, --pid and --instance cannot be combined with --layout")}
	}
	return ov, nil
}

func (c *cli) runLayout(cmd *cobra.Command) error {
	ov, err := c.layoutOverrides(cmd)
	if err != nil {
		return err
	}
	placer, closeFn, err := c.newPlacer()
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := placer.ApplyLayout(cmd.Context(), c.layout, ov)
	if len(report.Entries) > 0 {
		c.printReport(report)
	}
	if err != nil {
		return err
	}
	if failed := report.Failures(); failed > 0 {
		c.exitCode = report.ExitCode()
		return fmt.Errorf("layout %s: %d of %d placements failed", report.Name, failed, len(report.Entries))
	}
	return nil
}

func (c *cli) printResult(res placement.Result) {
	bold := color.New(color.Bold)
	bold.Fprintf(c.stdout, "%s", res.Window.Hex())
	fmt.Fprintf(c.stdout, " %q -> %s on %s", res.Title, res.Target, res.Monitor.Name)
	if res.DryRun {
		fmt.Fprint(c.stdout, " (dry run)")
	}
	fmt.Fprintln(c.stdout)
}

func (c *cli) printReport(report placement.LayoutReport) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Fprintf(c.stdout, "layout %s\n", report.Name)
	for _, entry := range report.Entries {
		pl := entry.Placement
		label := pl.App
		if pl.Instance > 0 {
			label = fmt.Sprintf("%s#%d", pl.App, pl.Instance)
		}
		position := pl.Position
		if position == "" {
			position = "max"
		}
		if entry.Err != nil {
			red.Fprint(c.stdout, "  fail ")
			fmt.Fprintf(c.stdout, "%-20s %-14s %v\n", label, position, entry.Err)
			continue
		}
		green.Fprint(c.stdout, "  ok   ")
		fmt.Fprintf(c.stdout, "%-20s %-14s %s on %s\n", label, position, entry.Result.Target, entry.Result.Monitor.Name)
	}
}
