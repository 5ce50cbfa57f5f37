//go:build !linux

package platform

import "fmt"

// OpenX11 is only available on Linux.
func OpenX11(minSize int) (Backend, error) {
	return nil, fmt.Errorf("x11 backend is not supported on this platform")
}
