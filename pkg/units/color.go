package units

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is an RGBA color value.
//
// Parsed from a color name or from tokens with one, three or four numeric
// parts (gray value, `r/g/b` or `r/g/b/a`).
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA creates a color with an explicit alpha channel.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Named colors accepted by ParseColor.
var namedColors = map[string]Color{
	"white":   RGB(255, 255, 255),
	"black":   RGB(0, 0, 0),
	"gray":    RGB(128, 128, 128),
	"silver":  RGB(192, 192, 192),
	"red":     RGB(255, 0, 0),
	"green":   RGB(0, 128, 0),
	"lime":    RGB(0, 255, 0),
	"blue":    RGB(0, 0, 255),
	"navy":    RGB(0, 0, 128),
	"yellow":  RGB(255, 255, 0),
	"orange":  RGB(255, 165, 0),
	"cyan":    RGB(0, 255, 255),
	"magenta": RGB(255, 0, 255),
	"purple":  RGB(128, 0, 128),
	"brown":   RGB(165, 42, 42),
	"maroon":  RGB(128, 0, 0),
	"olive":   RGB(128, 128, 0),
	"teal":    RGB(0, 128, 128),
	"pink":    RGB(255, 192, 203),
	"transparent": RGBA(0, 0, 0, 0),
}

// ParseColor parses a color from a name or numeric channel parts.
func ParseColor(s string) (Color, error) {
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	parts := strings.Split(s, "/")
	channels := make([]uint8, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: cannot parse color channel `%s` in `%s`", ErrInvalidLength, p, s)
		}
		channels[i] = uint8(v)
	}

	switch len(channels) {
	case 1:
		return RGB(channels[0], channels[0], channels[0]), nil
	case 3:
		return RGB(channels[0], channels[1], channels[2]), nil
	case 4:
		return RGBA(channels[0], channels[1], channels[2], channels[3]), nil
	default:
		return Color{}, fmt.Errorf("%w: cannot parse color from `%s`, requires a name or 1, 3 or 4 channels", ErrInvalidLength, s)
	}
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", c.R, c.G, c.B, c.A)
}
