package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/1broseidon/winpos/internal/config"
)

func (c *cli) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			res, err := config.LoadFromPath(path)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprint(c.stdout, "config: ok")
			if len(res.Files) == 0 {
				fmt.Fprintf(c.stdout, " (%s not found, using defaults)", path)
			} else {
				fmt.Fprintf(c.stdout, " (%d files)", len(res.Files))
			}
			fmt.Fprintln(c.stdout)
			return nil
		},
	})

	var printDefaults bool
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.DefaultConfig()
			if !printDefaults {
				var err error
				if cfg, err = c.loadConfig(); err != nil {
					return err
				}
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprint(c.stdout, string(data))
			return nil
		},
	}
	printCmd.Flags().BoolVar(&printDefaults, "defaults", false, "Print built-in defaults (no files)")
	cmd.AddCommand(printCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.stdout, path)
			return nil
		},
	})
	return cmd
}
