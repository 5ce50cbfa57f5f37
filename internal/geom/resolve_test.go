package geom

import "testing"

func mustPosition(t *testing.T, words ...string) Position {
	t.Helper()
	p, err := ParsePosition(words...)
	if err != nil {
		t.Fatalf("parse %v: %v", words, err)
	}
	return p
}

func TestResolve_Quadrants(t *testing.T) {
	mon := Monitor{Name: "DP-0", X: 0, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		words []string
		want  Rect
	}{
		{nil, Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
		{[]string{"top", "left"}, Rect{X: 0, Y: 0, Width: 960, Height: 540}},
		{[]string{"top", "right"}, Rect{X: 960, Y: 0, Width: 960, Height: 540}},
		{[]string{"bottom", "left"}, Rect{X: 0, Y: 540, Width: 960, Height: 540}},
		{[]string{"bottom", "right"}, Rect{X: 960, Y: 540, Width: 960, Height: 540}},
		{[]string{"left"}, Rect{X: 0, Y: 0, Width: 960, Height: 1080}},
		{[]string{"right"}, Rect{X: 960, Y: 0, Width: 960, Height: 1080}},
		{[]string{"top"}, Rect{X: 0, Y: 0, Width: 1920, Height: 540}},
		{[]string{"bottom"}, Rect{X: 0, Y: 540, Width: 1920, Height: 540}},
		{[]string{"max"}, Rect{X: 0, Y: 0, Width: 1920, Height: 1080}},
	}
	for _, tt := range tests {
		got := Resolve(mon, Margins{}, mustPosition(t, tt.words...))
		if got != tt.want {
			t.Errorf("Resolve(%v) = %+v, want %+v", tt.words, got, tt.want)
		}
	}
}

func TestResolve_NoKeywordsCoversUsableArea(t *testing.T) {
	mon := Monitor{Name: "HDMI-0", X: 1920, Y: 100, Width: 2560, Height: 1440}
	mg := Margins{Top: 10, Right: 20, Bottom: 32, Left: 5}

	got := Resolve(mon, mg, Position{})
	want := Usable(mon, mg)
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.X != 1925 || got.Y != 110 {
		t.Fatalf("expected anchor at (1925,110), got (%d,%d)", got.X, got.Y)
	}
}

func TestResolve_MarginsOnSecondMonitor(t *testing.T) {
	mon := Monitor{Name: "HDMI-0", X: 1920, Y: 0, Width: 1920, Height: 1080}
	mg := Margins{Bottom: 32}

	got := Resolve(mon, mg, mustPosition(t, "bottom", "right"))
	want := Rect{X: 2880, Y: 540, Width: 960, Height: 508}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestResolve_OpposingKeywordsCancel(t *testing.T) {
	mon := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}

	got := Resolve(mon, Margins{}, mustPosition(t, "left", "right"))
	if got != (Rect{X: 0, Y: 0, Width: 1920, Height: 1080}) {
		t.Fatalf("left+right should be full width, got %+v", got)
	}

	got = Resolve(mon, Margins{}, mustPosition(t, "top", "bottom", "right"))
	if got != (Rect{X: 960, Y: 0, Width: 960, Height: 1080}) {
		t.Fatalf("top+bottom+right should be the right half, got %+v", got)
	}
}

func TestResolve_MiddleHasNoGeometricEffect(t *testing.T) {
	mon := Monitor{X: 0, Y: 0, Width: 1920, Height: 1080}
	mg := Margins{Top: 24}

	if got, want := Resolve(mon, mg, mustPosition(t, "middle")), Resolve(mon, mg, Position{}); got != want {
		t.Fatalf("middle alone: expected %+v, got %+v", want, got)
	}
	if got, want := Resolve(mon, mg, mustPosition(t, "middle", "left")), Resolve(mon, mg, mustPosition(t, "left")); got != want {
		t.Fatalf("middle+left: expected %+v, got %+v", want, got)
	}
}

func TestResolve_DegenerateMargins(t *testing.T) {
	mon := Monitor{X: 0, Y: 0, Width: 100, Height: 100}
	got := Resolve(mon, Margins{Left: 60, Right: 60}, Position{})
	if got.Valid() {
		t.Fatalf("expected degenerate rect, got %+v", got)
	}
}

func TestResolve_ContainmentInvariant(t *testing.T) {
	monitors := []Monitor{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: -200, Width: 2560, Height: 1440},
		{X: -1280, Y: 0, Width: 1281, Height: 1023},
	}
	margins := []Margins{
		{},
		{Bottom: 32},
		{Top: 25, Left: 48},
		{Top: 7, Right: 13, Bottom: 31, Left: 3},
	}
	var positions []Position
	for _, top := range []bool{false, true} {
		for _, bottom := range []bool{false, true} {
			for _, left := range []bool{false, true} {
				for _, right := range []bool{false, true} {
					positions = append(positions, Position{Top: top, Bottom: bottom, Left: left, Right: right})
				}
			}
		}
	}

	for _, mon := range monitors {
		for _, mg := range margins {
			usable := Usable(mon, mg)
			for _, pos := range positions {
				got := Resolve(mon, mg, pos)
				if !got.Within(usable) {
					t.Errorf("Resolve(%+v, %+v, %v) = %+v escapes %+v", mon, mg, pos, got, usable)
				}
				if again := Resolve(mon, mg, pos); again != got {
					t.Errorf("Resolve is not idempotent: %+v vs %+v", got, again)
				}
			}
		}
	}
}

func TestParsePosition(t *testing.T) {
	p := mustPosition(t, "Top-Left")
	if !p.Top || !p.Left || p.Right || p.Bottom {
		t.Fatalf("unexpected position %+v", p)
	}
	p = mustPosition(t, "bottom, right")
	if !p.Bottom || !p.Right {
		t.Fatalf("unexpected position %+v", p)
	}
	if s := p.String(); s != "bottom right" {
		t.Fatalf("expected %q, got %q", "bottom right", s)
	}
	if s := (Position{}).String(); s != "full" {
		t.Fatalf("expected full, got %q", s)
	}

	if _, err := ParsePosition("sideways"); err == nil {
		t.Fatalf("expected error for unknown keyword")
	}
}

func TestBrowserOverride(t *testing.T) {
	override := BrowserOverride(DefaultBrowserTitles)

	tests := []struct {
		title string
		pos   Position
		want  bool
	}{
		{"Inbox - Google Chrome", Position{Left: true}, true},
		{"New Tab - Chromium", Position{Right: true}, true},
		{"Inbox - Google Chrome", Position{Top: true, Left: true}, false},
		{"Inbox - Google Chrome", Position{}, false},
		{"Inbox - Google Chrome", Position{Left: true, Right: true}, false},
		{"vim", Position{Left: true}, false},
	}
	for _, tt := range tests {
		if got := override(tt.title, tt.pos); got != tt.want {
			t.Errorf("override(%q, %v) = %v, want %v", tt.title, tt.pos, got, tt.want)
		}
	}
}

func TestMarginPolicy(t *testing.T) {
	policy := MarginPolicy{
		Default:   MarginTable{"HDMI-0": {Bottom: 32}, "DP-1": {Top: 24}},
		Alternate: MarginTable{"HDMI-0": {Top: 80, Bottom: 32}},
		Override:  BrowserOverride(DefaultBrowserTitles),
	}
	hdmi := Monitor{Name: "HDMI-0"}
	dp := Monitor{Name: "dp-1"}

	if mg, ok := policy.MarginsFor(hdmi, "Chromium", Position{Left: true}); !ok || mg.Top != 80 {
		t.Fatalf("expected browser margins, got %+v (ok=%v)", mg, ok)
	}
	if mg, _ := policy.MarginsFor(hdmi, "Chromium", Position{Top: true, Left: true}); mg.Top != 0 || mg.Bottom != 32 {
		t.Fatalf("expected general margins for quadrant, got %+v", mg)
	}
	if mg, ok := policy.MarginsFor(dp, "Chromium", Position{Left: true}); !ok || mg.Top != 24 {
		t.Fatalf("expected general margins when browser table lacks monitor, got %+v", mg)
	}
	if mg, ok := policy.MarginsFor(Monitor{Name: "eDP-1"}, "", Position{}); ok || !mg.IsZero() {
		t.Fatalf("expected zero margins for unknown monitor, got %+v (ok=%v)", mg, ok)
	}
}
