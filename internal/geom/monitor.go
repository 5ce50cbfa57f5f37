package geom

import (
	"fmt"
	"strconv"
	"strings"
)

// MonitorAt returns the first monitor whose rectangle contains the point.
// A point outside every monitor resolves to the first monitor; the caller
// still gets a usable target instead of an error.
func MonitorAt(monitors []Monitor, px, py int) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("%w: no monitors", ErrInvalidConfiguration)
	}
	for _, mon := range monitors {
		if mon.Bounds().Contains(px, py) {
			return mon, nil
		}
	}
	return monitors[0], nil
}

// MonitorSelector addresses a monitor by name or by zero-based index. Index
// takes precedence when both are set.
type MonitorSelector struct {
	Name  string
	Index *int
}

// ParseMonitorSelector treats an integer as an index and anything else as a
// name. Negative indexes are kept so that SelectMonitor rejects them.
func ParseMonitorSelector(s string) MonitorSelector {
	s = strings.TrimSpace(s)
	if s == "" {
		return MonitorSelector{}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return MonitorSelector{Index: &n}
	}
	return MonitorSelector{Name: s}
}

// IsZero reports whether the selector names no monitor.
func (s MonitorSelector) IsZero() bool {
	return s.Index == nil && strings.TrimSpace(s.Name) == ""
}

func (s MonitorSelector) String() string {
	if s.Index != nil {
		return strconv.Itoa(*s.Index)
	}
	return strings.TrimSpace(s.Name)
}

// Selection describes how SelectMonitor arrived at its answer.
type Selection int

const (
	// Matched means the selector matched a monitor.
	Matched Selection = iota
	// FallbackUnknownName means no monitor carried the requested name.
	FallbackUnknownName
	// FallbackUnspecified means the selector was empty. Callers that know
	// the window's position use MonitorAt instead and never see it.
	FallbackUnspecified
)

// SelectMonitor looks up a monitor by selector.
//
// Name lookup is permissive: an unknown name resolves to the first monitor
// and reports FallbackUnknownName so the caller can warn. Index lookup is
// strict: an out-of-range index is ErrNotFound. An empty selector resolves to
// the first monitor with FallbackUnspecified.
func SelectMonitor(monitors []Monitor, sel MonitorSelector) (Monitor, Selection, error) {
	if len(monitors) == 0 {
		return Monitor{}, Matched, fmt.Errorf("%w: no monitors", ErrInvalidConfiguration)
	}

	if sel.Index != nil {
		i := *sel.Index
		if i < 0 || i >= len(monitors) {
			return Monitor{}, Matched, fmt.Errorf("%w: monitor index %d (have %d)", ErrNotFound, i, len(monitors))
		}
		return monitors[i], Matched, nil
	}

	name := strings.TrimSpace(sel.Name)
	if name == "" {
		return monitors[0], FallbackUnspecified, nil
	}
	for _, mon := range monitors {
		if strings.EqualFold(strings.TrimSpace(mon.Name), name) {
			return mon, Matched, nil
		}
	}
	return monitors[0], FallbackUnknownName, nil
}
