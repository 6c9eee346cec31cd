package layout

import (
	"fmt"
	"strings"

	"github.com/menta2k/print-prep/pkg/units"
)

// CutMarks describes short trim marks at the corners of the cut region.
// The marks lie on the trim lines, starting Offset outside the corner.
type CutMarks struct {
	// Width is the line thickness in pixels.
	Width int
	// Offset is the gap between the cut corner and the mark in pixels.
	Offset int
	// Length is the mark length in pixels.
	Length int
}

// CutFrame describes a continuous trim outline around the cut region.
type CutFrame struct {
	// Width is the line thickness in pixels.
	Width int
	// Extension is the distance between the cut region and the outline in pixels.
	Extension int
}

// CutSpec is the trim indicator of a layout: cut marks, a cut frame, or
// none. The zero value means no indicator.
type CutSpec struct {
	marks *CutMarks
	frame *CutFrame
}

// MarkSpec creates a cut spec drawing corner trim marks.
func MarkSpec(m CutMarks) (CutSpec, error) {
	if m.Width <= 0 || m.Length <= 0 || m.Offset < 0 {
		return CutSpec{}, fmt.Errorf("%w: cut marks need positive width and length and a non-negative offset",
			ErrInvalidGeometry)
	}
	return CutSpec{marks: &m}, nil
}

// FrameSpec creates a cut spec drawing a continuous trim outline.
func FrameSpec(f CutFrame) (CutSpec, error) {
	if f.Width <= 0 || f.Extension < 0 {
		return CutSpec{}, fmt.Errorf("%w: cut frame needs a positive width and a non-negative extension",
			ErrInvalidGeometry)
	}
	return CutSpec{frame: &f}, nil
}

// ParseCutSpec builds a cut spec from the raw `--cut-marks` and
// `--cut-frame` tokens, resolved at the given dpi. Both tokens are
// `width/offset`; marks accept an optional third `length` part, defaulting
// to 5mm. Supplying both tokens is a conflict; supplying neither yields an
// empty spec.
func ParseCutSpec(marksToken, frameToken string, dpi float64) (CutSpec, error) {
	if marksToken != "" && frameToken != "" {
		return CutSpec{}, fmt.Errorf("%w: at most one of `--cut-marks` and `--cut-frame` may be given",
			units.ErrConflictingSpec)
	}
	switch {
	case marksToken != "":
		parts, err := parseCutParts(marksToken, 3)
		if err != nil {
			return CutSpec{}, err
		}
		length := units.Mm(5).Pixels(dpi)
		if len(parts) == 3 {
			length = parts[2].Pixels(dpi)
		}
		return MarkSpec(CutMarks{
			Width:  parts[0].Pixels(dpi),
			Offset: parts[1].Pixels(dpi),
			Length: length,
		})
	case frameToken != "":
		parts, err := parseCutParts(frameToken, 2)
		if err != nil {
			return CutSpec{}, err
		}
		return FrameSpec(CutFrame{
			Width:     parts[0].Pixels(dpi),
			Extension: parts[1].Pixels(dpi),
		})
	default:
		return CutSpec{}, nil
	}
}

func parseCutParts(s string, max int) ([]units.Length, error) {
	raw := strings.Split(s, "/")
	if len(raw) < 2 || len(raw) > max {
		return nil, fmt.Errorf("%w: unexpected cut indicator format in `%s`, expects `width/offset`",
			units.ErrInvalidLength, s)
	}
	parts := make([]units.Length, len(raw))
	for i, p := range raw {
		l, err := units.ParseLength(p)
		if err != nil {
			return nil, err
		}
		parts[i] = l
	}
	return parts, nil
}

// Marks returns the mark parameters, if this spec draws corner marks.
func (c CutSpec) Marks() (CutMarks, bool) {
	if c.marks == nil {
		return CutMarks{}, false
	}
	return *c.marks, true
}

// Frame returns the frame parameters, if this spec draws a trim outline.
func (c CutSpec) Frame() (CutFrame, bool) {
	if c.frame == nil {
		return CutFrame{}, false
	}
	return *c.frame, true
}

// Empty reports whether no trim indicator is drawn.
func (c CutSpec) Empty() bool {
	return c.marks == nil && c.frame == nil
}

// Inset is the per-side layout footprint of the indicator: the cut region
// is inset this far from the margins box so the indicator never leaves it.
func (c CutSpec) Inset() int {
	switch {
	case c.marks != nil:
		return c.marks.Offset + c.marks.Length
	case c.frame != nil:
		return c.frame.Extension + c.frame.Width
	default:
		return 0
	}
}
