package geom

import "errors"

var (
	// ErrInvalidConfiguration reports an unusable environment or input: an
	// empty monitor list, unparseable geometry, an unknown position keyword
	// or a degenerate target rectangle.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound reports a window or monitor that was addressed explicitly
	// (by index or id) and does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnconfiguredApplication reports a spawn request for an application
	// without a launcher mapping.
	ErrUnconfiguredApplication = errors.New("unconfigured application")

	// ErrNoActiveWindow reports that no window has focus when one is required.
	ErrNoActiveWindow = errors.New("no active window")
)
