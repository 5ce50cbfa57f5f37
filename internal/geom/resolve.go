package geom

import "strings"

// Resolve computes the rectangle a window must occupy on mon for the
// requested position, keeping clear of the margins.
//
// A horizontal keyword halves the width and a vertical keyword halves the
// height; halving is applied to the raw monitor size before the margins are
// subtracted. The rectangle is pinned to the top-left corner unless right or
// bottom is requested. Opposing keywords cancel each other and middle has no
// geometric effect.
//
// Resolve never fails. Margins larger than the monitor yield a rectangle with
// a non-positive size, which callers must check with Rect.Valid.
func Resolve(mon Monitor, mg Margins, pos Position) Rect {
	pos = pos.Normalized()

	width := mon.Width - mg.Left - mg.Right
	height := mon.Height - mg.Top - mg.Bottom
	if pos.Left || pos.Right {
		width = mon.Width/2 - mg.Left - mg.Right
	}
	if pos.Top || pos.Bottom {
		height = mon.Height/2 - mg.Top - mg.Bottom
	}

	x := mon.X + mg.Left
	y := mon.Y + mg.Top
	if pos.Right {
		x = mon.X + mon.Width - width - mg.Right
	}
	if pos.Bottom {
		y = mon.Y + mon.Height - height - mg.Bottom
	}

	return Rect{X: x, Y: y, Width: width, Height: height}
}

// MarginTable maps monitor names to margins.
type MarginTable map[string]Margins

// Lookup returns the margins for a monitor name. Exact matches win over
// case-insensitive ones.
func (t MarginTable) Lookup(name string) (Margins, bool) {
	key, ok := FoldKey(t, name)
	if !ok {
		return Margins{}, false
	}
	return t[key], true
}

// MarginOverride decides whether the alternate margin table applies to a
// window with the given title and requested position.
type MarginOverride func(title string, pos Position) bool

// DefaultBrowserTitles are the title fragments recognised as browser windows.
var DefaultBrowserTitles = []string{"google chrome", "chromium"}

// BrowserOverride matches windows whose title contains one of fragments
// (case-insensitive) when the request is a pure left or right split. Browser
// toolbars eat vertical space that the general margins do not account for.
func BrowserOverride(fragments []string) MarginOverride {
	lowered := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			lowered = append(lowered, f)
		}
	}
	return func(title string, pos Position) bool {
		if !pos.Horizontal() || pos.Vertical() {
			return false
		}
		title = strings.ToLower(title)
		for _, f := range lowered {
			if strings.Contains(title, f) {
				return true
			}
		}
		return false
	}
}

// MarginPolicy chooses the margins for a placement.
type MarginPolicy struct {
	Default   MarginTable
	Alternate MarginTable
	Override  MarginOverride
}

// MarginsFor returns the margins for mon. When Override matches, the
// Alternate table is consulted first; monitors missing from it fall back to
// the Default table. Unknown monitors get zero margins.
func (p MarginPolicy) MarginsFor(mon Monitor, title string, pos Position) (Margins, bool) {
	if p.Override != nil && p.Override(title, pos) {
		if mg, ok := p.Alternate.Lookup(mon.Name); ok {
			return mg, true
		}
	}
	return p.Default.Lookup(mon.Name)
}
