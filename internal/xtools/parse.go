package xtools

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/platform"
)

var (
	reGeometry = regexp.MustCompile(`(\d+)x(\d+)\+(-?\d+)\+(-?\d+)`)

	reWinHeader = regexp.MustCompile(`Window id: (0x[0-9a-fA-F]+) (?:"(.*)"|\(has no name\))`)
	reAbsX      = regexp.MustCompile(`Absolute upper-left X:\s+(-?\d+)`)
	reAbsY      = regexp.MustCompile(`Absolute upper-left Y:\s+(-?\d+)`)
	reWidth     = regexp.MustCompile(`(?m)^\s*Width:\s+(\d+)`)
	reHeight    = regexp.MustCompile(`(?m)^\s*Height:\s+(\d+)`)

	// 0x3c00004 "title": ("res" "Class")  1920x1021+0+0  +1920+27
	reChild = regexp.MustCompile(`^\s+(0x[0-9a-fA-F]+)\s.*\s(\d+)x(\d+)\+(-?\d+)\+(-?\d+)\s+\+(-?\d+)\+(-?\d+)\s*$`)
)

// ParseXrandr extracts the connected monitors from `xrandr` output, in the
// order xrandr lists them. Connected outputs without an active mode are
// skipped.
func ParseXrandr(out []byte) ([]geom.Monitor, error) {
	var monitors []geom.Monitor

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] != "connected" {
			continue
		}
		m := reGeometry.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		monitors = append(monitors, geom.Monitor{
			Name:   fields[0],
			Width:  atoi(m[1]),
			Height: atoi(m[2]),
			X:      atoi(m[3]),
			Y:      atoi(m[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read xrandr output: %w", err)
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("%w: no connected monitors in xrandr output", geom.ErrInvalidConfiguration)
	}
	return monitors, nil
}

// ParseXwininfo extracts the identifier, title and absolute geometry from
// `xwininfo -id ID` output.
func ParseXwininfo(out []byte) (platform.WindowInfo, error) {
	text := string(out)

	header := reWinHeader.FindStringSubmatch(text)
	if header == nil {
		return platform.WindowInfo{}, fmt.Errorf("%w: xwininfo output has no window id", geom.ErrInvalidConfiguration)
	}
	id, err := platform.ParseWindowID(header[1])
	if err != nil {
		return platform.WindowInfo{}, err
	}

	var vals [4]int
	for i, f := range []struct {
		name string
		re   *regexp.Regexp
	}{
		{"absolute x", reAbsX},
		{"absolute y", reAbsY},
		{"width", reWidth},
		{"height", reHeight},
	} {
		m := f.re.FindStringSubmatch(text)
		if m == nil {
			return platform.WindowInfo{}, fmt.Errorf("%w: xwininfo output has no %s", geom.ErrInvalidConfiguration, f.name)
		}
		vals[i] = atoi(m[1])
	}

	return platform.WindowInfo{
		ID:     id,
		Title:  header[2],
		Bounds: geom.Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]},
	}, nil
}

// ParseXwininfoChildren extracts the direct children listed by
// `xwininfo -id ID -children`, with their size and absolute position.
func ParseXwininfoChildren(out []byte) ([]geom.SizedWindow[platform.WindowID], error) {
	var children []geom.SizedWindow[platform.WindowID]

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		m := reChild.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		id, err := platform.ParseWindowID(m[1])
		if err != nil {
			return nil, err
		}
		children = append(children, geom.SizedWindow[platform.WindowID]{
			ID: id,
			Bounds: geom.Rect{
				X:      atoi(m[6]),
				Y:      atoi(m[7]),
				Width:  atoi(m[2]),
				Height: atoi(m[3]),
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read xwininfo output: %w", err)
	}
	return children, nil
}

// ParseWindowIDs reads one window identifier per line, as printed by
// `xdotool search` and `xdotool getactivewindow`.
func ParseWindowIDs(out []byte) ([]platform.WindowID, error) {
	var ids []platform.WindowID
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		id, err := platform.ParseWindowID(line)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ParsePIDs reads one process id per line, as printed by `pgrep`.
func ParsePIDs(out []byte) ([]int, error) {
	var pids []int
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pid, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%w: pid %q", geom.ErrInvalidConfiguration, line)
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

// atoi is only called on regexp captures of digits.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
