package placement

import (
	"context"
	"fmt"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/logger"
)

// maxExitCode keeps layout exit statuses clear of the shell's reserved range.
const maxExitCode = 125

// Overrides are command-line values that take precedence over every
// placement of a layout.
type Overrides struct {
	Monitor geom.MonitorSelector
	Desktop *int
	Spawn   *bool
	DryRun  bool
}

// LayoutEntry is the outcome of one placement of a layout.
type LayoutEntry struct {
	Placement config.Placement `json:"placement"`
	Result    Result           `json:"result"`
	Err       error            `json:"-"`
}

// LayoutReport collects the outcome of every placement of a layout.
type LayoutReport struct {
	Name    string        `json:"name"`
	Entries []LayoutEntry `json:"entries"`
}

// Failures counts the placements that failed.
func (r LayoutReport) Failures() int {
	n := 0
	for _, e := range r.Entries {
		if e.Err != nil {
			n++
		}
	}
	return n
}

// ExitCode is the number of failed placements, capped at 125.
func (r LayoutReport) ExitCode() int {
	return min(r.Failures(), maxExitCode)
}

// ApplyLayout places every window of the named layout. A failed placement is
// recorded in the report and does not stop the remaining ones; the returned
// error is reserved for an unknown or invalid layout and cancellation.
func (p *Placer) ApplyLayout(ctx context.Context, name string, ov Overrides) (LayoutReport, error) {
	layout, err := p.cfg.GetLayout(name)
	if err != nil {
		return LayoutReport{}, err
	}

	report := LayoutReport{Name: name}
	for i, pl := range layout.Windows {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		entry := LayoutEntry{Placement: pl}
		req, err := layoutRequest(pl, ov)
		if err == nil {
			entry.Result, err = p.Place(ctx, req)
		}
		if err != nil {
			entry.Err = err
			logger.Errorf("layout %s: window %d (%s)", err, name, i, pl.App)
		}
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

// layoutRequest builds the request for one layout placement; overrides win
// over the placement's own values.
func layoutRequest(pl config.Placement, ov Overrides) (Request, error) {
	pos, err := geom.ParsePosition(pl.Position)
	if err != nil {
		return Request{}, fmt.Errorf("position of %s: %w", pl.App, err)
	}

	req := Request{
		App:      pl.App,
		Instance: pl.Instance,
		Position: pos,
		Monitor:  geom.ParseMonitorSelector(pl.Monitor),
		Desktop:  pl.Desktop,
		DryRun:   ov.DryRun,
	}
	if pl.Spawn != nil {
		req.Spawn = *pl.Spawn
	}

	if !ov.Monitor.IsZero() {
		req.Monitor = ov.Monitor
	}
	if ov.Desktop != nil {
		req.Desktop = ov.Desktop
	}
	if ov.Spawn != nil {
		req.Spawn = *ov.Spawn
	}
	return req, nil
}
