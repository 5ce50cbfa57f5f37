package main

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/hotkeys"
	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/placement"
	"github.com/1broseidon/winpos/internal/x11"
)

// hotkeyBinding is one parsed entry of the hotkeys config section.
type hotkeyBinding struct {
	Keys   string
	Action config.HotkeyAction
}

// hotkeyBindings returns the configured bindings sorted by key sequence.
func hotkeyBindings(cfg *config.Config) ([]hotkeyBinding, error) {
	keys := make([]string, 0, len(cfg.Hotkeys))
	for k := range cfg.Hotkeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]hotkeyBinding, 0, len(keys))
	for _, k := range keys {
		action, err := config.ParseHotkeyAction(cfg.Hotkeys[k])
		if err != nil {
			return nil, fmt.Errorf("hotkey %s: %w", k, err)
		}
		out = append(out, hotkeyBinding{Keys: k, Action: action})
	}
	return out, nil
}

// runHotkeyAction places the active window or applies a layout. Failures are
// logged and optionally notified; the listener keeps running.
func (c *cli) runHotkeyAction(ctx context.Context, placer *placement.Placer, b hotkeyBinding) error {
	logger.Debugf("hotkey %s: %s", b.Keys, b.Action)

	if b.Action.Layout != "" {
		report, err := placer.ApplyLayout(ctx, b.Action.Layout, placement.Overrides{})
		if err == nil && report.Failures() > 0 {
			err = fmt.Errorf("layout %s: %d of %d placements failed", report.Name, report.Failures(), len(report.Entries))
		}
		return err
	}

	_, err := placer.Place(ctx, placement.Request{Position: b.Action.Position})
	return err
}

func (c *cli) newBindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bind",
		Short: "Listen for the configured global hotkeys",
		Long: `Grab the key sequences of the hotkeys config section and place the active
window (or apply a layout) whenever one is pressed. Runs in the foreground
until interrupted.

Example config:
  hotkeys:
    Mod4-Control-Left: left
    Mod4-Control-KP_7: top left
    Mod4-Control-Up: max
    Mod4-Control-w: layout work`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			bindings, err := hotkeyBindings(cfg)
			if err != nil {
				return err
			}
			if len(bindings) == 0 {
				return fmt.Errorf("%w: no hotkeys configured", geom.ErrInvalidConfiguration)
			}

			placer, closeFn, err := c.newPlacer()
			if err != nil {
				return err
			}
			defer closeFn()

			conn, err := x11.NewConnection()
			if err != nil {
				return err
			}
			handler := hotkeys.NewHandler(conn)
			defer handler.Close()

			ctx := cmd.Context()
			for _, b := range bindings {
				b := b
				err := handler.RegisterFunc(b.Keys, func() {
					if err := c.runHotkeyAction(ctx, placer, b); err != nil {
						logger.Errorf("hotkey %s", err, b.Keys)
						if c.notify || cfg.NotifyOnError {
							c.sendFailureNotification(err)
						}
					}
				})
				if err != nil {
					return err
				}
				logger.Infof("bound %s -> %s", b.Keys, b.Action)
			}

			err = handler.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
