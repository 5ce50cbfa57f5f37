package config

import (
	"fmt"

	"github.com/1broseidon/winpos/internal/geom"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over the defaults. Margin entries for a
// monitor that already has defaults are merged field by field; layouts are
// replaced whole.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = *raw.Backend
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.LogFile != nil {
		cfg.LogFile = *raw.LogFile
	}
	if raw.MinWindowSize != nil {
		cfg.MinWindowSize = *raw.MinWindowSize
	}
	if raw.AutoMargins != nil {
		cfg.AutoMargins = *raw.AutoMargins
	}
	if raw.NotifyOnError != nil {
		cfg.NotifyOnError = *raw.NotifyOnError
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.SpawnWait != nil {
		if raw.SpawnWait.Attempts != nil {
			cfg.SpawnWait.Attempts = *raw.SpawnWait.Attempts
		}
		if raw.SpawnWait.IntervalMS != nil {
			cfg.SpawnWait.IntervalMS = *raw.SpawnWait.IntervalMS
		}
	}
	if raw.BrowserTitles != nil {
		cfg.BrowserTitles = append([]string(nil), raw.BrowserTitles...)
	}
	if err := checkCaseDuplicates(raw); err != nil {
		return nil, err
	}
	for name, m := range raw.Margins {
		name = foldOnto(cfg.Margins, name)
		cfg.Margins[name] = m.applyTo(cfg.Margins[name])
	}
	for name, m := range raw.BrowserMargins {
		name = foldOnto(cfg.BrowserMargins, name)
		cfg.BrowserMargins[name] = m.applyTo(cfg.BrowserMargins[name])
	}
	for app, cmd := range raw.Launchers {
		cfg.Launchers[foldOnto(cfg.Launchers, app)] = cmd
	}
	for name, rl := range raw.Layouts {
		layout := Layout{Windows: append([]Placement(nil), rl.Windows...)}
		if rl.Description != nil {
			layout.Description = *rl.Description
		}
		cfg.Layouts[name] = layout
	}
	for keys, action := range raw.Hotkeys {
		cfg.Hotkeys[keys] = action
	}

	return cfg, nil
}

// foldOnto returns the existing key of m matching name ignoring case, so a
// user entry for "hdmi-0" replaces the default for "HDMI-0".
func foldOnto[V any](m map[string]V, name string) string {
	if key, ok := geom.FoldKey(m, name); ok {
		return key
	}
	return name
}

// checkCaseDuplicates rejects monitor or application names given twice with
// different case.
func checkCaseDuplicates(raw RawConfig) error {
	if a, b, ok := geom.CaseDuplicate(raw.Margins); ok {
		return caseDuplicateError("margins", a, b)
	}
	if a, b, ok := geom.CaseDuplicate(raw.BrowserMargins); ok {
		return caseDuplicateError("browser_margins", a, b)
	}
	if a, b, ok := geom.CaseDuplicate(raw.Launchers); ok {
		return caseDuplicateError("launchers", a, b)
	}
	return nil
}

func caseDuplicateError(section, a, b string) error {
	return &ValidationError{
		Path: section + "." + b,
		Err:  fmt.Errorf("%w: %q and %q name the same entry", geom.ErrInvalidConfiguration, a, b),
	}
}
