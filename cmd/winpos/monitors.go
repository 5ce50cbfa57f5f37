package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/logger"
)

type monitorView struct {
	Index   int          `json:"index"`
	Name    string       `json:"name"`
	Bounds  geom.Rect    `json:"bounds"`
	Margins geom.Margins `json:"margins"`
	Usable  geom.Rect    `json:"usable"`
	Active  bool         `json:"active,omitempty"`
}

func (c *cli) newMonitorsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "monitors",
		Short: "List connected monitors",
		Long:  `List connected monitors with their geometry, the configured margins and the usable area left for windows.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			backend, err := openBackendFn(cfg.Backend, cfg.MinWindowSize)
			if err != nil {
				return err
			}
			defer backend.Close()

			ctx := cmd.Context()
			monitors, err := backend.Monitors(ctx)
			if err != nil {
				return fmt.Errorf("failed to list monitors: %w", err)
			}

			active := ""
			if id, err := backend.ActiveWindow(ctx); err == nil {
				if info, err := backend.Window(ctx, id); err == nil {
					cx, cy := info.Bounds.Center()
					if mon, err := geom.MonitorAt(monitors, cx, cy); err == nil {
						active = mon.Name
					}
				}
			} else {
				logger.Debugf("no active window: %v", err)
			}

			policy := cfg.MarginPolicy()
			views := make([]monitorView, 0, len(monitors))
			for i, mon := range monitors {
				mg, _ := policy.Default.Lookup(mon.Name)
				views = append(views, monitorView{
					Index:   i,
					Name:    mon.Name,
					Bounds:  mon.Bounds(),
					Margins: mg,
					Usable:  geom.Usable(mon, mg),
					Active:  mon.Name == active,
				})
			}

			if jsonOutput {
				data, err := json.MarshalIndent(views, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(c.stdout, string(data))
				return nil
			}

			bold := color.New(color.Bold)
			yellow := color.New(color.FgYellow)
			for _, v := range views {
				bold.Fprintf(c.stdout, "%d: %s", v.Index, v.Name)
				fmt.Fprintf(c.stdout, "  %s", v.Bounds)
				if !v.Margins.IsZero() {
					fmt.Fprintf(c.stdout, "  margins t%d r%d b%d l%d  usable %s",
						v.Margins.Top, v.Margins.Right, v.Margins.Bottom, v.Margins.Left, v.Usable)
				}
				if v.Active {
					yellow.Fprint(c.stdout, " (active)")
				}
				fmt.Fprintln(c.stdout)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output monitors as JSON")
	return cmd
}
