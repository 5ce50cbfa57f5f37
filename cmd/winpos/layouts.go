package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func (c *cli) newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List configured layouts",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			names := cfg.LayoutNames()
			if len(names) == 0 {
				fmt.Fprintln(c.stdout, "no layouts configured")
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			for _, name := range names {
				layout := cfg.Layouts[name]
				cyan.Fprint(c.stdout, name)
				if layout.Description != "" {
					fmt.Fprintf(c.stdout, "  %s", layout.Description)
				}
				fmt.Fprintln(c.stdout)

				for _, pl := range layout.Windows {
					var extra []string
					if pl.Instance > 0 {
						extra = append(extra, fmt.Sprintf("instance %d", pl.Instance))
					}
					if pl.Monitor != "" {
						extra = append(extra, "monitor "+pl.Monitor)
					}
					if pl.Desktop != nil {
						extra = append(extra, fmt.Sprintf("desktop %d", *pl.Desktop))
					}
					if pl.Spawn != nil && *pl.Spawn {
						extra = append(extra, "spawn")
					}
					position := pl.Position
					if position == "" {
						position = "max"
					}
					fmt.Fprintf(c.stdout, "  %-20s %-14s %s\n", pl.App, position, strings.Join(extra, ", "))
				}
			}
			return nil
		},
	}
}
