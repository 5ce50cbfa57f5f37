package geom

import (
	"fmt"
	"strings"
)

// Keyword is a single position word.
type Keyword string

const (
	Top    Keyword = "top"
	Bottom Keyword = "bottom"
	Left   Keyword = "left"
	Right  Keyword = "right"
	Middle Keyword = "middle"
)

// Position is a set of keywords requesting a screen region. The zero value
// requests the whole usable monitor area.
type Position struct {
	Top    bool
	Bottom bool
	Left   bool
	Right  bool
	Middle bool
}

// ParsePosition builds a Position from command-line style words. A word may
// hold several keywords separated by spaces, commas or dashes ("top-left").
// "max" and "full" are accepted and request the whole monitor.
func ParsePosition(words ...string) (Position, error) {
	var p Position
	for _, word := range words {
		parts := strings.FieldsFunc(word, func(r rune) bool {
			return r == ' ' || r == ',' || r == '-' || r == '\t'
		})
		for _, part := range parts {
			switch Keyword(strings.ToLower(part)) {
			case Top:
				p.Top = true
			case Bottom:
				p.Bottom = true
			case Left:
				p.Left = true
			case Right:
				p.Right = true
			case Middle:
				p.Middle = true
			case "max", "full":
			default:
				return Position{}, fmt.Errorf("%w: unknown position keyword %q", ErrInvalidConfiguration, part)
			}
		}
	}
	return p, nil
}

// Normalized cancels opposing keywords: left+right means full width and
// top+bottom means full height.
func (p Position) Normalized() Position {
	if p.Left && p.Right {
		p.Left, p.Right = false, false
	}
	if p.Top && p.Bottom {
		p.Top, p.Bottom = false, false
	}
	return p
}

// Horizontal reports whether the request halves the width.
func (p Position) Horizontal() bool {
	n := p.Normalized()
	return n.Left || n.Right
}

// Vertical reports whether the request halves the height.
func (p Position) Vertical() bool {
	n := p.Normalized()
	return n.Top || n.Bottom
}

// Keywords returns the set keywords in canonical order.
func (p Position) Keywords() []Keyword {
	var out []Keyword
	if p.Top {
		out = append(out, Top)
	}
	if p.Bottom {
		out = append(out, Bottom)
	}
	if p.Left {
		out = append(out, Left)
	}
	if p.Right {
		out = append(out, Right)
	}
	if p.Middle {
		out = append(out, Middle)
	}
	return out
}

func (p Position) String() string {
	kws := p.Keywords()
	if len(kws) == 0 {
		return "full"
	}
	parts := make([]string, len(kws))
	for i, k := range kws {
		parts[i] = string(k)
	}
	return strings.Join(parts, " ")
}
