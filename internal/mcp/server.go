package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winpos/internal/config"
	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/placement"
	"github.com/1broseidon/winpos/internal/platform"
)

const (
	ServerName    = "winpos"
	ServerVersion = "0.1.0"
)

// Server is the MCP server exposing window placement as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	backend   platform.Backend
	placer    *placement.Placer

	// mu serializes every backend call; the X server state is shared.
	mu sync.Mutex
}

// NewServer creates a new MCP server placing windows through backend.
func NewServer(cfg *config.Config, backend platform.Backend) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is required", geom.ErrInvalidConfiguration)
	}
	if backend == nil {
		return nil, fmt.Errorf("%w: backend is required", geom.ErrInvalidConfiguration)
	}

	s := &Server{
		config:  cfg,
		backend: backend,
		placer:  placement.New(backend, cfg, nil),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the backend.
func (s *Server) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Close()
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "place_window",
		Description: "Move and resize a window into a screen region. Position is a list of keywords from top, bottom, left, right, middle (empty or max for the whole monitor). Targets the active window unless app or pid is given; with spawn, a missing application is launched from the configured launchers first. Margins configured for the monitor are respected.",
	}, s.handlePlaceWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_layout",
		Description: "Apply a named layout preset from the configuration. Every window of the layout is placed; failures are reported per window and do not stop the rest.",
	}, s.handleApplyLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their geometry, configured margins and the usable area left after margins.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_layouts",
		Description: "List the layout presets defined in the configuration.",
	}, s.handleListLayouts)
}
