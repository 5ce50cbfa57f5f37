package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/1broseidon/winpos/internal/geom"
	"gopkg.in/yaml.v3"
)

const (
	BackendExec = "exec"
	BackendX11  = "x11"
)

const (
	DefaultSpawnWaitAttempts   = 20
	DefaultSpawnWaitIntervalMS = 250
)

// Margins are pixels reserved on each monitor edge.
type Margins struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

func (m Margins) Geom() geom.Margins {
	return geom.Margins{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
}

// SpawnWait bounds the wait for a freshly launched application's window.
type SpawnWait struct {
	Attempts   int `yaml:"attempts"`
	IntervalMS int `yaml:"interval_ms"`
}

// Interval returns the delay between polls.
func (s SpawnWait) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Placement is one window of a layout preset.
type Placement struct {
	App      string `yaml:"app"`
	Instance int    `yaml:"instance,omitempty"`
	Position string `yaml:"position,omitempty"`
	Monitor  string `yaml:"monitor,omitempty"`
	Desktop  *int   `yaml:"desktop,omitempty"`
	Spawn    *bool  `yaml:"spawn,omitempty"`
}

// Layout is a named list of window placements applied together.
type Layout struct {
	Description string      `yaml:"description,omitempty"`
	Windows     []Placement `yaml:"windows"`
}

// Config holds the application configuration.
type Config struct {
	Backend        string             `yaml:"backend"`
	LogLevel       string             `yaml:"log_level"`
	LogFile        string             `yaml:"log_file,omitempty"`
	MinWindowSize  int                `yaml:"min_window_size"`
	AutoMargins    bool               `yaml:"auto_margins"`
	NotifyOnError  bool               `yaml:"notify_on_error"`
	Display        string             `yaml:"display,omitempty"`
	XAuthority     string             `yaml:"xauthority,omitempty"`
	SpawnWait      SpawnWait          `yaml:"spawn_wait"`
	BrowserTitles  []string           `yaml:"browser_titles"`
	Margins        map[string]Margins `yaml:"margins"`
	BrowserMargins map[string]Margins `yaml:"browser_margins"`
	Launchers      map[string]string  `yaml:"launchers"`
	Layouts        map[string]Layout  `yaml:"layouts"`
	Hotkeys        map[string]string  `yaml:"hotkeys"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:       BackendExec,
		LogLevel:      "info",
		MinWindowSize: geom.DefaultMinWindowSize,
		SpawnWait: SpawnWait{
			Attempts:   DefaultSpawnWaitAttempts,
			IntervalMS: DefaultSpawnWaitIntervalMS,
		},
		BrowserTitles: append([]string(nil), geom.DefaultBrowserTitles...),
		// Bottom panels on the original two-head setup.
		Margins: map[string]Margins{
			"DVI-1-0": {Bottom: 32},
			"HDMI-0":  {Bottom: 32},
		},
		BrowserMargins: map[string]Margins{},
		Launchers:      BuiltinLaunchers(),
		Layouts:        BuiltinLayouts(),
		Hotkeys:        map[string]string{},
	}
}

// MarginPolicy builds the resolver margin policy from the configured tables.
func (c *Config) MarginPolicy() geom.MarginPolicy {
	return geom.MarginPolicy{
		Default:   marginTable(c.Margins),
		Alternate: marginTable(c.BrowserMargins),
		Override:  geom.BrowserOverride(c.BrowserTitles),
	}
}

func marginTable(in map[string]Margins) geom.MarginTable {
	out := make(geom.MarginTable, len(in))
	for name, m := range in {
		out[name] = m.Geom()
	}
	return out
}

// GetLayout retrieves a layout by name with validation.
func (c *Config) GetLayout(name string) (*Layout, error) {
	layout, ok := c.Layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: layout %q", geom.ErrNotFound, name)
	}
	if err := validateLayout(&layout); err != nil {
		return nil, fmt.Errorf("invalid layout %q: %w", name, err)
	}
	return &layout, nil
}

// LayoutNames returns the configured layout names in sorted order.
func (c *Config) LayoutNames() []string {
	names := make([]string, 0, len(c.Layouts))
	for name := range c.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Marshal renders the effective configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendExec, BackendX11:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: %s, %s", BackendExec, BackendX11)}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if c.MinWindowSize < 0 {
		return &ValidationError{Path: "min_window_size", Err: fmt.Errorf("min_window_size must be >= 0")}
	}
	if c.SpawnWait.Attempts < 1 {
		return &ValidationError{Path: "spawn_wait.attempts", Err: fmt.Errorf("attempts must be >= 1")}
	}
	if c.SpawnWait.IntervalMS < 0 {
		return &ValidationError{Path: "spawn_wait.interval_ms", Err: fmt.Errorf("interval_ms must be >= 0")}
	}
	for i, title := range c.BrowserTitles {
		if strings.TrimSpace(title) == "" {
			return &ValidationError{Path: "browser_titles", Err: fmt.Errorf("entry %d is empty", i)}
		}
	}
	if err := validateMargins("margins", c.Margins); err != nil {
		return err
	}
	if err := validateMargins("browser_margins", c.BrowserMargins); err != nil {
		return err
	}
	for app, cmd := range c.Launchers {
		if strings.TrimSpace(app) == "" {
			return &ValidationError{Path: "launchers", Err: fmt.Errorf("launchers contains an empty application name")}
		}
		if strings.TrimSpace(cmd) == "" {
			return &ValidationError{Path: "launchers." + app, Err: fmt.Errorf("launch command must not be empty")}
		}
	}
	for name, layout := range c.Layouts {
		layout := layout
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts contains an empty name")}
		}
		if err := validateLayout(&layout); err != nil {
			return &ValidationError{Path: "layouts." + name, Err: err}
		}
	}
	for keys, action := range c.Hotkeys {
		if strings.TrimSpace(keys) == "" {
			return &ValidationError{Path: "hotkeys", Err: fmt.Errorf("hotkeys contains an empty key sequence")}
		}
		parsed, err := ParseHotkeyAction(action)
		if err != nil {
			return &ValidationError{Path: "hotkeys." + keys, Err: err}
		}
		if parsed.Layout != "" {
			if _, ok := c.Layouts[parsed.Layout]; !ok {
				return &ValidationError{Path: "hotkeys." + keys, Err: fmt.Errorf("unknown layout %q", parsed.Layout)}
			}
		}
	}
	return nil
}

func validateMargins(path string, margins map[string]Margins) error {
	if a, b, ok := geom.CaseDuplicate(margins); ok {
		return caseDuplicateError(path, a, b)
	}
	for name, m := range margins {
		if strings.TrimSpace(name) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("%s contains an empty monitor name", path)}
		}
		if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
			return &ValidationError{Path: path + "." + name, Err: fmt.Errorf("margin values must be >= 0")}
		}
	}
	return nil
}

// validateLayout checks if a layout configuration is valid.
func validateLayout(layout *Layout) error {
	if len(layout.Windows) == 0 {
		return fmt.Errorf("windows must not be empty")
	}
	for i, p := range layout.Windows {
		if strings.TrimSpace(p.App) == "" {
			return fmt.Errorf("windows[%d]: app is required", i)
		}
		if p.Instance < 0 {
			return fmt.Errorf("windows[%d]: instance must be >= 0", i)
		}
		if p.Desktop != nil && *p.Desktop < 0 {
			return fmt.Errorf("windows[%d]: desktop must be >= 0", i)
		}
		if _, err := geom.ParsePosition(p.Position); err != nil {
			return fmt.Errorf("windows[%d]: %w", i, err)
		}
	}
	return nil
}
