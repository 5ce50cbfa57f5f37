package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winpos/internal/logger"
	"github.com/1broseidon/winpos/internal/mcp"
)

func (c *cli) newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients.

Example:
  claude mcp add winpos -- winpos mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := mcp.PrepareSessionEnv(cfg); err != nil {
				return err
			}

			backend, err := openBackendFn(cfg.Backend, cfg.MinWindowSize)
			if err != nil {
				return err
			}
			server, err := mcp.NewServer(cfg, backend)
			if err != nil {
				backend.Close()
				return fmt.Errorf("failed to create MCP server: %w", err)
			}
			defer server.Close()

			logger.Infof("mcp server %s %s on stdio (backend %s)", mcp.ServerName, version, cfg.Backend)
			if err := server.Run(cmd.Context()); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	})
	return cmd
}
