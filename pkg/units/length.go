package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Errors reported when resolving size tokens.
var (
	// ErrInvalidLength indicates a malformed size token.
	ErrInvalidLength = errors.New("invalid length")
	// ErrUnresolvedLength indicates an auto placeholder with no constraining context.
	ErrUnresolvedLength = errors.New("unresolved length")
	// ErrConflictingSpec indicates mutually exclusive options supplied together.
	ErrConflictingSpec = errors.New("conflicting options")
)

// Unit is a length measurement unit.
type Unit int

// Supported length units.
const (
	UnitPx Unit = iota
	UnitCm
	UnitMm
	UnitInch
)

const inchToMeters = 0.0254

// ParseUnit parses a unit suffix. Accepts px, cm, mm and in.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "px":
		return UnitPx, nil
	case "cm":
		return UnitCm, nil
	case "mm":
		return UnitMm, nil
	case "in":
		return UnitInch, nil
	default:
		return UnitPx, fmt.Errorf("%w: `%s` is not a valid unit, must be one of (px|cm|mm|in)", ErrInvalidLength, s)
	}
}

// NeedsDPI reports whether converting this unit to pixels requires a resolution.
func (u Unit) NeedsDPI() bool {
	return u != UnitPx
}

// metricFactor is the size of one unit in meters, pixels taken at the given resolution.
func (u Unit) metricFactor(dpi float64) float64 {
	switch u {
	case UnitCm:
		return 0.01
	case UnitMm:
		return 0.001
	case UnitInch:
		return inchToMeters
	default:
		return inchToMeters / dpi
	}
}

func (u Unit) String() string {
	switch u {
	case UnitCm:
		return "cm"
	case UnitMm:
		return "mm"
	case UnitInch:
		return "in"
	default:
		return "px"
	}
}

// Length is a signed magnitude with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Px creates a pixel length.
func Px(value int) Length {
	return Length{Value: float64(value), Unit: UnitPx}
}

// Cm creates a centimeter length.
func Cm(value float64) Length {
	return Length{Value: value, Unit: UnitCm}
}

// Mm creates a millimeter length.
func Mm(value float64) Length {
	return Length{Value: value, Unit: UnitMm}
}

// Inch creates an inch length.
func Inch(value float64) Length {
	return Length{Value: value, Unit: UnitInch}
}

// ParseLength parses a size token of the form `<number><unit>`.
// A token without an alphabetic unit suffix is taken as pixels.
func ParseLength(s string) (Length, error) {
	if len(s) == 0 {
		return Length{}, fmt.Errorf("%w: empty size token", ErrInvalidLength)
	}

	unit := UnitPx
	valStr := s
	if pos := len(s) - 2; pos > 0 && isAlphabetic(s[pos:]) {
		u, err := ParseUnit(s[pos:])
		if err != nil {
			return Length{}, err
		}
		unit = u
		valStr = s[:pos]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
	if err != nil {
		return Length{}, fmt.Errorf("%w: cannot parse number in `%s`", ErrInvalidLength, s)
	}
	if unit == UnitPx {
		value = math.Round(value)
	}
	return Length{Value: value, Unit: unit}, nil
}

// To converts this length to another unit at the given resolution.
func (l Length) To(unit Unit, dpi float64) Length {
	if l.Unit == unit {
		return l
	}
	value := l.Value * l.Unit.metricFactor(dpi) / unit.metricFactor(dpi)
	if unit == UnitPx {
		value = math.Round(value)
	}
	return Length{Value: value, Unit: unit}
}

// Pixels resolves this length to a pixel count at the given resolution.
func (l Length) Pixels(dpi float64) int {
	return int(l.To(UnitPx, dpi).Value)
}

// NeedsDPI reports whether resolving this length to pixels requires a resolution.
func (l Length) NeedsDPI() bool {
	return l.Unit.NeedsDPI()
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit.String()
}

func isAlphabetic(s string) bool {
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
