package units

import (
	"fmt"
	"strings"
)

// Sides holds four independent lengths for the sides of a rectangle.
// Used for borders, padding and margins.
//
// Parsed from tokens with one, two or four parts:
//
//	2mm                  uniform
//	1cm/5mm              top-bottom / right-left
//	1mm/2mm/3mm/4mm      top / right / bottom / left
type Sides struct {
	Top    Length
	Right  Length
	Bottom Length
	Left   Length
}

// UniformSides creates sides with the same length on all four sides.
func UniformSides(l Length) Sides {
	return Sides{Top: l, Right: l, Bottom: l, Left: l}
}

// ParseSides parses a sides token with one, two or four parts.
// An empty token yields zero on all sides.
func ParseSides(s string) (Sides, error) {
	if s == "" {
		return UniformSides(Px(0)), nil
	}
	parts := strings.Split(s, "/")
	switch len(parts) {
	case 1:
		l, err := ParseLength(parts[0])
		if err != nil {
			return Sides{}, err
		}
		return UniformSides(l), nil
	case 2:
		tb, err := ParseLength(parts[0])
		if err != nil {
			return Sides{}, err
		}
		rl, err := ParseLength(parts[1])
		if err != nil {
			return Sides{}, err
		}
		return Sides{Top: tb, Right: rl, Bottom: tb, Left: rl}, nil
	case 4:
		var lengths [4]Length
		for i, p := range parts {
			l, err := ParseLength(p)
			if err != nil {
				return Sides{}, err
			}
			lengths[i] = l
		}
		return Sides{Top: lengths[0], Right: lengths[1], Bottom: lengths[2], Left: lengths[3]}, nil
	default:
		return Sides{}, fmt.Errorf(
			"%w: unexpected sides format in `%s`, expects `<all>`, `<top-bottom>/<right-left>` or `<top>/<right>/<bottom>/<left>`",
			ErrInvalidLength, s)
	}
}

// SidePixels holds four resolved side insets in pixels.
type SidePixels struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Pixels resolves all four sides at the given resolution.
// All sides must resolve to non-negative pixel counts.
func (s Sides) Pixels(dpi float64) (SidePixels, error) {
	p := SidePixels{
		Top:    s.Top.Pixels(dpi),
		Right:  s.Right.Pixels(dpi),
		Bottom: s.Bottom.Pixels(dpi),
		Left:   s.Left.Pixels(dpi),
	}
	if p.Top < 0 || p.Right < 0 || p.Bottom < 0 || p.Left < 0 {
		return SidePixels{}, fmt.Errorf("%w: sides `%s` resolve to negative pixels", ErrInvalidLength, s)
	}
	return p, nil
}

// NeedsDPI reports whether resolving these sides to pixels requires a resolution.
func (s Sides) NeedsDPI() bool {
	return s.Top.NeedsDPI() || s.Right.NeedsDPI() || s.Bottom.NeedsDPI() || s.Left.NeedsDPI()
}

func (s Sides) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", s.Top, s.Right, s.Bottom, s.Left)
}
