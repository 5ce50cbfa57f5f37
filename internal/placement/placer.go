package placement

import (
	"context"
	"errors"
	"fmt"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/launcher"
	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/platform"
)

// Spawner starts an application that has no window yet.
type Spawner interface {
	Launch(app string) (int, error)
}

// Request describes one window placement.
type Request struct {
	// App selects the application's windows by process name. PID, when
	// set, selects by process id instead. With neither, the active window
	// is placed.
	App      string
	PID      int
	Instance int

	Position geom.Position
	Monitor  geom.MonitorSelector
	Desktop  *int
	Spawn    bool
	DryRun   bool
}

// Result reports where a window went.
type Result struct {
	Window  platform.WindowID `json:"window"`
	Title   string            `json:"title"`
	Monitor geom.Monitor      `json:"monitor"`
	Margins geom.Margins      `json:"margins"`
	Target  geom.Rect         `json:"target"`
	Spawned bool              `json:"spawned,omitempty"`
	DryRun  bool              `json:"dry_run,omitempty"`
}

// Placer moves windows according to the configuration.
type Placer struct {
	backend platform.Backend
	cfg     *config.Config
	spawner Spawner
	policy  geom.MarginPolicy
}

// New returns a placer. A nil spawner launches from cfg.Launchers.
func New(backend platform.Backend, cfg *config.Config, spawner Spawner) *Placer {
	if spawner == nil {
		spawner = launcher.New(cfg.Launchers)
	}
	return &Placer{
		backend: backend,
		cfg:     cfg,
		spawner: spawner,
		policy:  cfg.MarginPolicy(),
	}
}

// Place resolves the window, computes its target rectangle and applies it:
// desktop first, then un-maximize and move, then focus.
func (p *Placer) Place(ctx context.Context, req Request) (Result, error) {
	id, spawned, err := p.resolveWindow(ctx, req)
	if err != nil {
		return Result{}, err
	}

	info, err := p.backend.Window(ctx, id)
	if err != nil {
		return Result{}, err
	}

	monitors, err := p.backend.Monitors(ctx)
	if err != nil {
		return Result{}, err
	}
	mon, err := p.chooseMonitor(monitors, info.Bounds, req.Monitor)
	if err != nil {
		return Result{}, err
	}

	margins := p.margins(ctx, mon, info.Title, req.Position)
	target := geom.Resolve(mon, margins, req.Position)
	if !target.Valid() {
		return Result{}, fmt.Errorf("%w: margins %+v leave no room on monitor %s", geom.ErrInvalidConfiguration, margins, mon.Name)
	}

	res := Result{
		Window:  id,
		Title:   info.Title,
		Monitor: mon,
		Margins: margins,
		Target:  target,
		Spawned: spawned,
		DryRun:  req.DryRun,
	}
	logger.Debugf("window %s %q: %s on %s -> %s", id, info.Title, req.Position, mon.Name, target)
	if req.DryRun {
		return res, nil
	}

	if req.Desktop != nil {
		if err := p.backend.SetDesktop(ctx, id, *req.Desktop); err != nil {
			return res, err
		}
	}
	if err := p.backend.MoveResize(ctx, id, target); err != nil {
		return res, err
	}
	if err := p.backend.Focus(ctx, id); err != nil {
		return res, err
	}
	return res, nil
}

func (p *Placer) resolveWindow(ctx context.Context, req Request) (platform.WindowID, bool, error) {
	if req.App == "" && req.PID <= 0 {
		if req.Spawn {
			return 0, false, fmt.Errorf("%w: spawn needs an application name", geom.ErrInvalidConfiguration)
		}
		id, err := p.backend.ActiveWindow(ctx)
		return id, false, err
	}

	ids, err := p.backend.AppWindows(ctx, req.App, req.PID)
	if err != nil {
		return 0, false, err
	}
	if req.Instance < len(ids) || !req.Spawn {
		id, err := geom.SelectInstance(ids, req.Instance)
		if err != nil {
			return 0, false, fmt.Errorf("window of %s: %w", describeApp(req), err)
		}
		return id, false, nil
	}

	if req.App == "" {
		return 0, false, fmt.Errorf("%w: spawn needs an application name", geom.ErrInvalidConfiguration)
	}
	if req.DryRun {
		return 0, false, fmt.Errorf("window of %s: %w (dry run does not spawn)", describeApp(req), geom.ErrNotFound)
	}

	pid, err := p.spawner.Launch(req.App)
	if err != nil {
		return 0, false, err
	}
	logger.Infof("launched %s (pid %d), waiting for its window", req.App, pid)

	wait := p.cfg.SpawnWait
	_, err = launcher.Wait(ctx, wait.Attempts, wait.Interval(), func(ctx context.Context) (bool, error) {
		found, err := p.backend.AppWindows(ctx, req.App, 0)
		if err != nil {
			logger.Debugf("waiting for %s: %v", req.App, err)
			return false, nil
		}
		ids = found
		return req.Instance < len(ids), nil
	})
	if err != nil {
		return 0, true, err
	}

	// Best effort: the window may have appeared after the last poll.
	if req.Instance >= len(ids) {
		if found, err := p.backend.AppWindows(ctx, req.App, 0); err == nil {
			ids = found
		}
	}
	id, err := geom.SelectInstance(ids, req.Instance)
	if err != nil {
		return 0, true, fmt.Errorf("window of %s after launch: %w", describeApp(req), err)
	}
	return id, true, nil
}

func (p *Placer) chooseMonitor(monitors []geom.Monitor, bounds geom.Rect, sel geom.MonitorSelector) (geom.Monitor, error) {
	if sel.IsZero() {
		cx, cy := bounds.Center()
		return geom.MonitorAt(monitors, cx, cy)
	}
	return selectMonitor(monitors, sel)
}

// selectMonitor wraps geom.SelectMonitor and warns about either fallback.
func selectMonitor(monitors []geom.Monitor, sel geom.MonitorSelector) (geom.Monitor, error) {
	mon, how, err := geom.SelectMonitor(monitors, sel)
	if err != nil {
		return geom.Monitor{}, err
	}
	switch how {
	case geom.FallbackUnknownName:
		logger.Warnf("monitor %q not found, using %s", sel.Name, mon.Name)
	case geom.FallbackUnspecified:
		logger.Warnf("no monitor given, using %s", mon.Name)
	}
	return mon, nil
}

func (p *Placer) margins(ctx context.Context, mon geom.Monitor, title string, pos geom.Position) geom.Margins {
	mg, ok := p.policy.MarginsFor(mon, title, pos)
	if ok || !p.cfg.AutoMargins {
		return mg
	}
	sp, ok := p.backend.(platform.StrutProvider)
	if !ok {
		return mg
	}
	struts, err := sp.Struts(ctx, mon)
	if err != nil {
		logger.Warnf("dock struts for %s: %v", mon.Name, err)
		return mg
	}
	return struts
}

func describeApp(req Request) string {
	if req.PID > 0 {
		return fmt.Sprintf("pid %d", req.PID)
	}
	return fmt.Sprintf("%q", req.App)
}

// ExitCode maps a placement error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		return 130
	}
	return 1
}
