package xtools

import (
	"errors"
	"testing"

	"github.com/1broseidon/winpos/internal/geom"
	"github.com/1broseidon/winpos/internal/platform"
)

const xrandrTwoHeads = `Screen 0: minimum 8 x 8, current 3840 x 1080, maximum 16384 x 16384
DVI-1-0 connected 1920x1080+0+0 (normal left inverted right x axis y axis) 531mm x 299mm
   1920x1080     60.00*+
   1680x1050     59.95
HDMI-0 connected primary 1920x1080+1920+0 (normal left inverted right x axis y axis) 598mm x 336mm
   1920x1080     60.00*+
VGA-0 disconnected (normal left inverted right x axis y axis)
DP-1 connected (normal left inverted right x axis y axis)
   2560x1440     59.95 +
`

const xwininfoFirefox = `
xwininfo: Window id: 0x3c00003 "Docs - Mozilla Firefox"

  Absolute upper-left X:  1920
  Absolute upper-left Y:  27
  Relative upper-left X:  0
  Relative upper-left Y:  0
  Width: 1920
  Height: 1021
  Depth: 24
  Visual: 0x21
  Border width: 0
  Map State: IsViewable
  -geometry 1920x1021+1920+27
`

const xwininfoChildren = `
xwininfo: Window id: 0x3c00001 (has no name)

  Root window id: 0x1ad (the root window) (has no name)
  Parent window id: 0x1ad (the root window) (has no name)
     3 children:
     0x3c00004 "Inbox 1x1+0+0 - Thunderbird": ("Mail" "thunderbird")  1280x800+0+0  +100+50
     0x3c00002 (has no name): ()  1x1+-1+-1  +99+49
     0x3c00009 "popup": ()  150x90+10+10  +-40+60
`

func TestParseXrandr(t *testing.T) {
	got, err := ParseXrandr([]byte(xrandrTwoHeads))
	if err != nil {
		t.Fatalf("ParseXrandr: %v", err)
	}
	want := []geom.Monitor{
		{Name: "DVI-1-0", X: 0, Y: 0, Width: 1920, Height: 1080},
		{Name: "HDMI-0", X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d monitors, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("monitor %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestParseXrandr_NegativeOffset(t *testing.T) {
	got, err := ParseXrandr([]byte("eDP-1 connected 1366x768+-1366+0 (normal) 0mm x 0mm\n"))
	if err != nil {
		t.Fatalf("ParseXrandr: %v", err)
	}
	if got[0].X != -1366 {
		t.Fatalf("expected x -1366, got %d", got[0].X)
	}
}

func TestParseXrandr_NoMonitors(t *testing.T) {
	for _, input := range []string{"", "garbage\n", "VGA-0 disconnected (normal)\n"} {
		if _, err := ParseXrandr([]byte(input)); !errors.Is(err, geom.ErrInvalidConfiguration) {
			t.Fatalf("input %q: expected ErrInvalidConfiguration, got %v", input, err)
		}
	}
}

func TestParseXwininfo(t *testing.T) {
	got, err := ParseXwininfo([]byte(xwininfoFirefox))
	if err != nil {
		t.Fatalf("ParseXwininfo: %v", err)
	}
	if got.ID != 0x3c00003 {
		t.Fatalf("expected id 0x3c00003, got %s", got.ID.Hex())
	}
	if got.Title != "Docs - Mozilla Firefox" {
		t.Fatalf("expected title, got %q", got.Title)
	}
	want := geom.Rect{X: 1920, Y: 27, Width: 1920, Height: 1021}
	if got.Bounds != want {
		t.Fatalf("expected %v, got %v", want, got.Bounds)
	}
}

func TestParseXwininfo_NoName(t *testing.T) {
	input := "xwininfo: Window id: 0x200001 (has no name)\n  Absolute upper-left X:  -5\n  Absolute upper-left Y:  0\n  Width: 10\n  Height: 20\n"
	got, err := ParseXwininfo([]byte(input))
	if err != nil {
		t.Fatalf("ParseXwininfo: %v", err)
	}
	if got.Title != "" || got.Bounds.X != -5 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestParseXwininfo_Malformed(t *testing.T) {
	tests := []string{
		"",
		"X Error of failed request:  BadWindow (invalid Window parameter)\n",
		"xwininfo: Window id: 0x1 \"x\"\n  Absolute upper-left X:  1\n",
	}
	for _, input := range tests {
		if _, err := ParseXwininfo([]byte(input)); !errors.Is(err, geom.ErrInvalidConfiguration) {
			t.Fatalf("input %q: expected ErrInvalidConfiguration, got %v", input, err)
		}
	}
}

func TestParseXwininfoChildren(t *testing.T) {
	got, err := ParseXwininfoChildren([]byte(xwininfoChildren))
	if err != nil {
		t.Fatalf("ParseXwininfoChildren: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 children, got %+v", got)
	}
	if got[0].ID != 0x3c00004 || got[0].Bounds != (geom.Rect{X: 100, Y: 50, Width: 1280, Height: 800}) {
		t.Fatalf("unexpected first child %+v", got[0])
	}
	if got[1].Bounds != (geom.Rect{X: 99, Y: 49, Width: 1, Height: 1}) {
		t.Fatalf("unexpected second child %+v", got[1])
	}
	if got[2].Bounds.X != -40 {
		t.Fatalf("expected negative absolute x, got %+v", got[2])
	}
}

func TestParseWindowIDs(t *testing.T) {
	got, err := ParseWindowIDs([]byte("62914563\n\n0x3c00004\n"))
	if err != nil {
		t.Fatalf("ParseWindowIDs: %v", err)
	}
	want := []platform.WindowID{62914563, 0x3c00004}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}

	if _, err := ParseWindowIDs([]byte("Defaulting to search window name\n")); err == nil {
		t.Fatalf("expected error for non-numeric output")
	}
}

func TestParsePIDs(t *testing.T) {
	got, err := ParsePIDs([]byte("1234\n5678\n"))
	if err != nil {
		t.Fatalf("ParsePIDs: %v", err)
	}
	if len(got) != 2 || got[0] != 1234 || got[1] != 5678 {
		t.Fatalf("unexpected pids %v", got)
	}
	if _, err := ParsePIDs([]byte("abc\n")); !errors.Is(err, geom.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}
