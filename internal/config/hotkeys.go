package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winpos/internal/geom"
)

// HotkeyAction is the parsed value of a hotkeys entry: either a layout name
// ("layout work") or position keywords for the active window ("top left").
type HotkeyAction struct {
	Layout   string
	Position geom.Position
}

// ParseHotkeyAction parses a hotkeys value.
func ParseHotkeyAction(s string) (HotkeyAction, error) {
	fields := strings.Fields(s)
	if len(fields) > 0 && strings.EqualFold(fields[0], "layout") {
		if len(fields) != 2 {
			return HotkeyAction{}, fmt.Errorf("%w: %q: expected \"layout NAME\"", geom.ErrInvalidConfiguration, s)
		}
		return HotkeyAction{Layout: fields[1]}, nil
	}
	pos, err := geom.ParsePosition(fields...)
	if err != nil {
		return HotkeyAction{}, err
	}
	return HotkeyAction{Position: pos}, nil
}

func (a HotkeyAction) String() string {
	if a.Layout != "" {
		return "layout " + a.Layout
	}
	return a.Position.String()
}
