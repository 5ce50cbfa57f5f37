package geom

import "fmt"

// Rect describes a rectangular region in the shared desktop coordinate space.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Center returns the center point, rounding half sizes up.
func (r Rect) Center() (int, int) {
	return r.X + ceilHalf(r.Width), r.Y + ceilHalf(r.Height)
}

// Contains reports whether the point lies inside r. Both edges are inclusive.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px <= r.X+r.Width && py >= r.Y && py <= r.Y+r.Height
}

// Within reports whether r lies entirely inside outer.
func (r Rect) Within(outer Rect) bool {
	return r.X >= outer.X && r.Y >= outer.Y &&
		r.X+r.Width <= outer.X+outer.Width &&
		r.Y+r.Height <= outer.Y+outer.Height
}

// Valid reports whether r has a positive area.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// Monitor is a physical display positioned in the desktop coordinate space.
type Monitor struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"w"`
	Height int    `json:"h"`
}

// Bounds returns the monitor rectangle.
func (m Monitor) Bounds() Rect {
	return Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
}

// Margins are edge pixels of a monitor reserved for panels and docks.
type Margins struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// IsZero reports whether no edge is reserved.
func (m Margins) IsZero() bool {
	return m == Margins{}
}

// Usable returns the monitor rectangle minus the margins.
func Usable(mon Monitor, mg Margins) Rect {
	return Rect{
		X:      mon.X + mg.Left,
		Y:      mon.Y + mg.Top,
		Width:  mon.Width - mg.Left - mg.Right,
		Height: mon.Height - mg.Top - mg.Bottom,
	}
}

func ceilHalf(n int) int {
	if n >= 0 {
		return (n + 1) / 2
	}
	return n / 2
}
