package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/placement"
)

func (s *Server) handlePlaceWindow(ctx context.Context, _ *mcpsdk.CallToolRequest, args PlaceWindowInput) (*mcpsdk.CallToolResult, PlaceWindowOutput, error) {
	pos, err := geom.ParsePosition(args.Position...)
	if err != nil {
		return nil, PlaceWindowOutput{}, err
	}
	if args.Instance < 0 {
		return nil, PlaceWindowOutput{}, fmt.Errorf("%w: instance must be >= 0", geom.ErrInvalidConfiguration)
	}
	if args.PID < 0 {
		return nil, PlaceWindowOutput{}, fmt.Errorf("%w: pid must be >= 0", geom.ErrInvalidConfiguration)
	}
	if args.Desktop != nil && *args.Desktop < 0 {
		return nil, PlaceWindowOutput{}, fmt.Errorf("%w: desktop must be >= 0", geom.ErrInvalidConfiguration)
	}

	req := placement.Request{
		App:      strings.TrimSpace(args.App),
		PID:      args.PID,
		Instance: args.Instance,
		Position: pos,
		Monitor:  geom.ParseMonitorSelector(args.Monitor),
		Desktop:  args.Desktop,
		Spawn:    args.Spawn,
		DryRun:   args.DryRun,
	}

	s.mu.Lock()
	res, err := s.placer.Place(ctx, req)
	s.mu.Unlock()
	if err != nil {
		logger.Errorf("mcp place_window %s", err, pos)
		return nil, PlaceWindowOutput{}, err
	}

	logger.Infof("mcp place_window: %s -> %s on %s", res.Window.Hex(), res.Target, res.Monitor.Name)
	return nil, PlaceWindowOutput{
		Window:  res.Window.Hex(),
		Title:   res.Title,
		Monitor: res.Monitor.Name,
		Margins: res.Margins,
		Target:  res.Target,
		Spawned: res.Spawned,
		DryRun:  res.DryRun,
	}, nil
}

func (s *Server) handleApplyLayout(ctx context.Context, _ *mcpsdk.CallToolRequest, args ApplyLayoutInput) (*mcpsdk.CallToolResult, ApplyLayoutOutput, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("%w: layout name is required", geom.ErrInvalidConfiguration)
	}
	if args.Desktop != nil && *args.Desktop < 0 {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("%w: desktop must be >= 0", geom.ErrInvalidConfiguration)
	}

	ov := placement.Overrides{
		Monitor: geom.ParseMonitorSelector(args.Monitor),
		Desktop: args.Desktop,
		Spawn:   args.Spawn,
		DryRun:  args.DryRun,
	}

	s.mu.Lock()
	report, err := s.placer.ApplyLayout(ctx, name, ov)
	s.mu.Unlock()
	if err != nil {
		return nil, ApplyLayoutOutput{}, err
	}

	out := ApplyLayoutOutput{
		Name:    report.Name,
		Windows: make([]LayoutWindowOutput, 0, len(report.Entries)),
	}
	for _, entry := range report.Entries {
		w := LayoutWindowOutput{
			App:      entry.Placement.App,
			Instance: entry.Placement.Instance,
			Position: entry.Placement.Position,
		}
		if entry.Err != nil {
			w.Error = entry.Err.Error()
			out.Failed++
		} else {
			target := entry.Result.Target
			w.Window = entry.Result.Window.Hex()
			w.Target = &target
			out.Placed++
		}
		out.Windows = append(out.Windows, w)
	}

	logger.Infof("mcp apply_layout %s: %d placed, %d failed", name, out.Placed, out.Failed)
	return nil, out, nil
}

func (s *Server) handleListMonitors(ctx context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	s.mu.Lock()
	monitors, err := s.backend.Monitors(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}

	policy := s.config.MarginPolicy()
	out := ListMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(monitors))}
	for i, mon := range monitors {
		mg, _ := policy.Default.Lookup(mon.Name)
		out.Monitors = append(out.Monitors, MonitorInfo{
			Index:   i,
			Name:    mon.Name,
			Bounds:  mon.Bounds(),
			Margins: mg,
			Usable:  geom.Usable(mon, mg),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListLayouts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListLayoutsInput) (*mcpsdk.CallToolResult, ListLayoutsOutput, error) {
	names := s.config.LayoutNames()
	out := ListLayoutsOutput{Layouts: make([]LayoutInfo, 0, len(names))}
	for _, name := range names {
		layout := s.config.Layouts[name]
		out.Layouts = append(out.Layouts, LayoutInfo{
			Name:        name,
			Description: layout.Description,
			Windows:     len(layout.Windows),
		})
	}
	return nil, out, nil
}
