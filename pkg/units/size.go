package units

import (
	"fmt"
	"strings"
)

// Auto is the placeholder token for an unconstrained dimension.
const Auto = "."

// Size is a pair of dimensions, each optionally unconstrained.
//
// Parsed from tokens of the form `width/height`, where either side may be
// the `.` placeholder (but not both):
//
//	10cm/15cm
//	1024px/.
//	./8in
type Size struct {
	Width  *Length
	Height *Length
}

// NewSize creates a size from two optional dimensions.
// At least one of width and height must be given.
func NewSize(width, height *Length) (Size, error) {
	if width == nil && height == nil {
		return Size{}, fmt.Errorf("%w: at least one of width and height must be given", ErrUnresolvedLength)
	}
	return Size{Width: width, Height: height}, nil
}

// FixedSize creates a size with both dimensions given.
func FixedSize(width, height Length) Size {
	return Size{Width: &width, Height: &height}
}

// ParseSize parses a size token of the form `width/height`.
func ParseSize(s string) (Size, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Size{}, fmt.Errorf("%w: unexpected size format in `%s`, expects `width/height`", ErrInvalidLength, s)
	}

	var width, height *Length
	if parts[0] != Auto {
		l, err := ParseLength(parts[0])
		if err != nil {
			return Size{}, err
		}
		width = &l
	}
	if parts[1] != Auto {
		l, err := ParseLength(parts[1])
		if err != nil {
			return Size{}, err
		}
		height = &l
	}
	return NewSize(width, height)
}

// Rotate90 swaps width and height.
func (s Size) Rotate90() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// Complete reports whether both dimensions are given.
func (s Size) Complete() bool {
	return s.Width != nil && s.Height != nil
}

// To converts all given dimensions of this size to another unit.
func (s Size) To(unit Unit, dpi float64) Size {
	out := Size{}
	if s.Width != nil {
		w := s.Width.To(unit, dpi)
		out.Width = &w
	}
	if s.Height != nil {
		h := s.Height.To(unit, dpi)
		out.Height = &h
	}
	return out
}

// NeedsDPI reports whether resolving this size to pixels requires a resolution.
func (s Size) NeedsDPI() bool {
	if s.Width != nil && s.Width.NeedsDPI() {
		return true
	}
	if s.Height != nil && s.Height.NeedsDPI() {
		return true
	}
	return false
}

func (s Size) String() string {
	w, h := Auto, Auto
	if s.Width != nil {
		w = s.Width.String()
	}
	if s.Height != nil {
		h = s.Height.String()
	}
	return w + "/" + h
}
