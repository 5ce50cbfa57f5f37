package mcp

import "github.com/1broseidon/winpos/internal/geom"

// PlaceWindowInput is the input for the place_window tool.
type PlaceWindowInput struct {
	Position []string `json:"position,omitempty" jsonschema:"Position keywords: top, bottom, left, right, middle. Combine for quadrants (e.g. [\"top\", \"left\"]). Empty or [\"max\"] fills the monitor."`
	App      string   `json:"app,omitempty" jsonschema:"Application (process) name whose window should be placed. Defaults to the active window."`
	PID      int      `json:"pid,omitempty" jsonschema:"Restrict the application lookup to this process ID"`
	Instance int      `json:"instance,omitempty" jsonschema:"Zero-based index when the application has several windows (default: 0)"`
	Monitor  string   `json:"monitor,omitempty" jsonschema:"Target monitor name (e.g. HDMI-0) or zero-based index. Defaults to the monitor holding the window center."`
	Desktop  *int     `json:"desktop,omitempty" jsonschema:"Move the window to this virtual desktop before placing it"`
	Spawn    bool     `json:"spawn,omitempty" jsonschema:"Launch the application from the configured launchers when no window exists"`
	DryRun   bool     `json:"dry_run,omitempty" jsonschema:"Compute the target rectangle without moving anything"`
}

// PlaceWindowOutput is the output for the place_window tool.
type PlaceWindowOutput struct {
	Window  string       `json:"window"`
	Title   string       `json:"title"`
	Monitor string       `json:"monitor"`
	Margins geom.Margins `json:"margins"`
	Target  geom.Rect    `json:"target"`
	Spawned bool         `json:"spawned,omitempty"`
	DryRun  bool         `json:"dry_run,omitempty"`
}

// ApplyLayoutInput is the input for the apply_layout tool.
type ApplyLayoutInput struct {
	Name    string `json:"name" jsonschema:"required,Layout name from the configuration"`
	Monitor string `json:"monitor,omitempty" jsonschema:"Place every window on this monitor (name or zero-based index), overriding the layout"`
	Desktop *int   `json:"desktop,omitempty" jsonschema:"Move every window to this virtual desktop, overriding the layout"`
	Spawn   *bool  `json:"spawn,omitempty" jsonschema:"Override the layout's spawn setting for every window"`
	DryRun  bool   `json:"dry_run,omitempty" jsonschema:"Compute target rectangles without moving anything"`
}

// LayoutWindowOutput reports the outcome for one window of a layout.
type LayoutWindowOutput struct {
	App      string     `json:"app"`
	Instance int        `json:"instance"`
	Position string     `json:"position"`
	Window   string     `json:"window,omitempty"`
	Target   *geom.Rect `json:"target,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// ApplyLayoutOutput is the output for the apply_layout tool.
type ApplyLayoutOutput struct {
	Name    string               `json:"name"`
	Placed  int                  `json:"placed"`
	Failed  int                  `json:"failed"`
	Windows []LayoutWindowOutput `json:"windows"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a single monitor.
type MonitorInfo struct {
	Index   int          `json:"index"`
	Name    string       `json:"name"`
	Bounds  geom.Rect    `json:"bounds"`
	Margins geom.Margins `json:"margins"`
	Usable  geom.Rect    `json:"usable"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ListLayoutsInput is the input for the list_layouts tool.
type ListLayoutsInput struct{}

// LayoutInfo describes a configured layout.
type LayoutInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Windows     int    `json:"windows"`
}

// ListLayoutsOutput is the output for the list_layouts tool.
type ListLayoutsOutput struct {
	Layouts []LayoutInfo `json:"layouts"`
}
