package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale is a relative scaling factor per axis.
//
// Parsed from tokens of the form `width/height` or `factor`, where each
// part is a fraction or percentage:
//
//	0.5
//	50%
//	20%/50%
//	./20%
//
// A missing part copies the given one.
type Scale struct {
	Width  float64
	Height float64
}

// ParseScale parses a relative scale token.
func ParseScale(s string) (Scale, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 2 {
		return Scale{}, fmt.Errorf("%w: unexpected scale format in `%s`, expects `width/height` or `factor`", ErrInvalidLength, s)
	}

	width, err := parseFactor(parts[0])
	if err != nil {
		return Scale{}, err
	}
	height := width
	if len(parts) == 2 {
		height, err = parseFactor(parts[1])
		if err != nil {
			return Scale{}, err
		}
	}
	if width == nil && height == nil {
		return Scale{}, fmt.Errorf("%w: at least one of width and height must be given in `%s`", ErrUnresolvedLength, s)
	}
	if width == nil {
		width = height
	}
	if height == nil {
		height = width
	}
	return Scale{Width: *width, Height: *height}, nil
}

func parseFactor(s string) (*float64, error) {
	if s == Auto {
		return nil, nil
	}
	factor := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		factor = 0.01
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse scale factor `%s`", ErrInvalidLength, s)
	}
	v *= factor
	return &v, nil
}

// ScaleSpec is the scaling target: either an absolute size or a relative
// factor, never both.
type ScaleSpec struct {
	size  *Size
	scale *Scale
}

// SizeSpec creates a scale spec with an absolute target size.
func SizeSpec(size Size) ScaleSpec {
	return ScaleSpec{size: &size}
}

// FactorSpec creates a scale spec with a relative scaling factor.
func FactorSpec(scale Scale) ScaleSpec {
	return ScaleSpec{scale: &scale}
}

// ParseScaleSpec builds a scale spec from the raw `--size` and `--scale`
// tokens. Exactly one of the two must be non-empty.
func ParseScaleSpec(sizeToken, scaleToken string) (ScaleSpec, error) {
	if (sizeToken == "") == (scaleToken == "") {
		return ScaleSpec{}, fmt.Errorf("%w: exactly one of `--size` and `--scale` must be given", ErrConflictingSpec)
	}
	if sizeToken != "" {
		size, err := ParseSize(sizeToken)
		if err != nil {
			return ScaleSpec{}, err
		}
		return SizeSpec(size), nil
	}
	scale, err := ParseScale(scaleToken)
	if err != nil {
		return ScaleSpec{}, err
	}
	return FactorSpec(scale), nil
}

// Size returns the absolute target size, if this spec holds one.
func (s ScaleSpec) Size() (Size, bool) {
	if s.size == nil {
		return Size{}, false
	}
	return *s.size, true
}

// Factor returns the relative scaling factor, if this spec holds one.
func (s ScaleSpec) Factor() (Scale, bool) {
	if s.scale == nil {
		return Scale{}, false
	}
	return *s.scale, true
}

// TargetPixels resolves the scaling target to pixel dimensions for a source
// image of the given size. An auto dimension is derived from its sibling
// via the source aspect ratio.
func (s ScaleSpec) TargetPixels(dpi float64, srcWidth, srcHeight int) (int, int, error) {
	if s.scale != nil {
		w := int(math.Round(float64(srcWidth) * s.scale.Width))
		h := int(math.Round(float64(srcHeight) * s.scale.Height))
		return w, h, nil
	}
	if s.size == nil {
		return 0, 0, fmt.Errorf("%w: no target size or scale given", ErrUnresolvedLength)
	}

	size := s.size.To(UnitPx, dpi)
	switch {
	case size.Width != nil && size.Height != nil:
		return int(size.Width.Value), int(size.Height.Value), nil
	case size.Width != nil:
		w := int(size.Width.Value)
		h := int(math.Round(size.Width.Value * float64(srcHeight) / float64(srcWidth)))
		return w, h, nil
	case size.Height != nil:
		w := int(math.Round(size.Height.Value * float64(srcWidth) / float64(srcHeight)))
		h := int(size.Height.Value)
		return w, h, nil
	default:
		return 0, 0, fmt.Errorf("%w: target size has no dimensions", ErrUnresolvedLength)
	}
}

// KeepsAspect reports whether the resolved target preserves the source
// aspect ratio by construction (one dimension derived from the other).
func (s ScaleSpec) KeepsAspect() bool {
	return s.size != nil && !s.size.Complete()
}
