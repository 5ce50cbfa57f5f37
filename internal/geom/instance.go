package geom

import (
	"fmt"
	"slices"
	"strings"
)

// DefaultMinWindowSize is the edge length below which a window is treated
// as an icon or input mask rather than an application window.
const DefaultMinWindowSize = 200

// SizedWindow is a candidate window with its size and direct children.
type SizedWindow[T any] struct {
	ID       T
	Bounds   Rect
	Children []SizedWindow[T]
}

// LargeEnough reports whether both edges of r reach minSize.
func LargeEnough(r Rect, minSize int) bool {
	return r.Width >= minSize && r.Height >= minSize
}

// FilterWindows keeps windows whose edges reach minSize. A window that is too
// small is replaced by its direct children that are large enough; deeper
// descendants are not inspected.
func FilterWindows[T any](wins []SizedWindow[T], minSize int) []T {
	var out []T
	for _, w := range wins {
		if LargeEnough(w.Bounds, minSize) {
			out = append(out, w.ID)
			continue
		}
		for _, child := range w.Children {
			if LargeEnough(child.Bounds, minSize) {
				out = append(out, child.ID)
			}
		}
	}
	return out
}

// SortInstances orders window identifiers by their textual form. Text order
// ("10" < "2" < "300") keeps instance numbers stable across queries without
// depending on the window manager's stacking order.
func SortInstances[T fmt.Stringer](ids []T) []T {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b T) int {
		return strings.Compare(a.String(), b.String())
	})
	return out
}

// SelectInstance returns the nth (zero-based) identifier in textual order.
func SelectInstance[T fmt.Stringer](ids []T, nth int) (T, error) {
	var zero T
	if nth < 0 || nth >= len(ids) {
		return zero, fmt.Errorf("%w: instance %d (have %d windows)", ErrNotFound, nth, len(ids))
	}
	return SortInstances(ids)[nth], nil
}
