package render

import (
	"fmt"

	"github.com/menta2k/print-prep/pkg/units"
)

// ParseTestPattern builds a test pattern from a raw token, resolved at
// the given dpi. Tokens have one, two or four parts:
//
//	2mm                  square size, no gaps
//	2mm/1mm              square size / gap, both axes
//	2mm/1mm/3mm/1mm      sx/gx/sy/gy
//
// An empty token yields no pattern.
func ParseTestPattern(token string, dpi float64) (*TestPattern, error) {
	if token == "" {
		return nil, nil
	}

	parts, err := units.ParseSides(token)
	if err != nil {
		return nil, err
	}
	px, err := parts.Pixels(dpi)
	if err != nil {
		return nil, err
	}

	p := &TestPattern{SquareX: px.Top, GapX: px.Right, SquareY: px.Bottom, GapY: px.Left}
	switch countParts(token) {
	case 1:
		p.SquareY = p.SquareX
		p.GapX, p.GapY = 0, 0
	case 2:
		p.SquareY = p.SquareX
		p.GapY = p.GapX
	}
	if p.SquareX <= 0 || p.SquareY <= 0 {
		return nil, fmt.Errorf("%w: test pattern squares must have positive extent in `%s`",
			units.ErrInvalidLength, token)
	}
	return p, nil
}

func countParts(token string) int {
	n := 1
	for _, c := range token {
		if c == '/' {
			n++
		}
	}
	return n
}
