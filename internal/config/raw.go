package config

import (
	"fmt"

	"github.com/1broseidon/winpos/internal/geom"
	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawMargins struct {
	Top    *int `yaml:"top"`
	Right  *int `yaml:"right"`
	Bottom *int `yaml:"bottom"`
	Left   *int `yaml:"left"`
}

type RawSpawnWait struct {
	Attempts   *int `yaml:"attempts"`
	IntervalMS *int `yaml:"interval_ms"`
}

type RawLayout struct {
	Description *string     `yaml:"description"`
	Windows     []Placement `yaml:"windows"`
}

type RawConfig struct {
	Include        IncludeList           `yaml:"include"`
	Backend        *string               `yaml:"backend"`
	LogLevel       *string               `yaml:"log_level"`
	LogFile        *string               `yaml:"log_file"`
	MinWindowSize  *int                  `yaml:"min_window_size"`
	AutoMargins    *bool                 `yaml:"auto_margins"`
	NotifyOnError  *bool                 `yaml:"notify_on_error"`
	Display        *string               `yaml:"display"`
	XAuthority     *string               `yaml:"xauthority"`
	SpawnWait      *RawSpawnWait         `yaml:"spawn_wait"`
	BrowserTitles  []string              `yaml:"browser_titles"`
	Margins        map[string]RawMargins `yaml:"margins"`
	BrowserMargins map[string]RawMargins `yaml:"browser_margins"`
	Launchers      map[string]string     `yaml:"launchers"`
	Layouts        map[string]RawLayout  `yaml:"layouts"`
	Hotkeys        map[string]string     `yaml:"hotkeys"`
}

// merge returns c with every field set in overlay replaced. Map entries are
// merged key by key; a margin entry is merged field by field.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFile != nil {
		out.LogFile = overlay.LogFile
	}
	if overlay.MinWindowSize != nil {
		out.MinWindowSize = overlay.MinWindowSize
	}
	if overlay.AutoMargins != nil {
		out.AutoMargins = overlay.AutoMargins
	}
	if overlay.NotifyOnError != nil {
		out.NotifyOnError = overlay.NotifyOnError
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.SpawnWait != nil {
		merged := RawSpawnWait{}
		if out.SpawnWait != nil {
			merged = *out.SpawnWait
		}
		if overlay.SpawnWait.Attempts != nil {
			merged.Attempts = overlay.SpawnWait.Attempts
		}
		if overlay.SpawnWait.IntervalMS != nil {
			merged.IntervalMS = overlay.SpawnWait.IntervalMS
		}
		out.SpawnWait = &merged
	}
	if overlay.BrowserTitles != nil {
		out.BrowserTitles = overlay.BrowserTitles
	}
	out.Margins = mergeRawMargins(out.Margins, overlay.Margins)
	out.BrowserMargins = mergeRawMargins(out.BrowserMargins, overlay.BrowserMargins)
	if overlay.Launchers != nil {
		merged := make(map[string]string, len(out.Launchers)+len(overlay.Launchers))
		for app, cmd := range out.Launchers {
			merged[app] = cmd
		}
		for app, cmd := range overlay.Launchers {
			if key, ok := geom.FoldKey(merged, app); ok {
				app = key
			}
			merged[app] = cmd
		}
		out.Launchers = merged
	}
	if overlay.Layouts != nil {
		merged := make(map[string]RawLayout, len(out.Layouts)+len(overlay.Layouts))
		for name, layout := range out.Layouts {
			merged[name] = layout
		}
		for name, layout := range overlay.Layouts {
			merged[name] = layout
		}
		out.Layouts = merged
	}
	if overlay.Hotkeys != nil {
		merged := make(map[string]string, len(out.Hotkeys)+len(overlay.Hotkeys))
		for keys, action := range out.Hotkeys {
			merged[keys] = action
		}
		for keys, action := range overlay.Hotkeys {
			merged[keys] = action
		}
		out.Hotkeys = merged
	}

	return out
}

func mergeRawMargins(base, overlay map[string]RawMargins) map[string]RawMargins {
	if overlay == nil {
		return base
	}
	out := make(map[string]RawMargins, len(base)+len(overlay))
	for name, m := range base {
		out[name] = m
	}
	for name, m := range overlay {
		if key, ok := geom.FoldKey(out, name); ok {
			name = key
		}
		cur := out[name]
		if m.Top != nil {
			cur.Top = m.Top
		}
		if m.Right != nil {
			cur.Right = m.Right
		}
		if m.Bottom != nil {
			cur.Bottom = m.Bottom
		}
		if m.Left != nil {
			cur.Left = m.Left
		}
		out[name] = cur
	}
	return out
}

func (m RawMargins) applyTo(base Margins) Margins {
	if m.Top != nil {
		base.Top = *m.Top
	}
	if m.Right != nil {
		base.Right = *m.Right
	}
	if m.Bottom != nil {
		base.Bottom = *m.Bottom
	}
	if m.Left != nil {
		base.Left = *m.Left
	}
	return base
}
