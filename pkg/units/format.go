package units

import (
	"fmt"
	"math"
)

// Commercial photo paper is manufactured to inch-fraction sizes. A format
// requested as `10cm/15cm` therefore has to be treated as the true 4x6 inch
// paper size, or the crop ratio is visibly wrong against the real paper.

// FormatTable maps nominal centimeter print formats to their exact
// manufactured sizes in inches.
type FormatTable struct {
	entries   []formatEntry
	tolerance float64
}

// formatEntry holds a nominal size in centimeters (short edge first) and
// the exact manufactured size in inches (same edge order).
type formatEntry struct {
	shortCm, longCm float64
	shortIn, longIn float64
}

// defaultTolerance is the maximum relative deviation from a nominal
// centimeter size that still snaps to the manufactured format.
const defaultTolerance = 0.02

// DefaultFormats returns the format table seeded with common print formats.
func DefaultFormats() *FormatTable {
	return &FormatTable{
		tolerance: defaultTolerance,
		entries: []formatEntry{
			{9, 13, 3.5, 5},    // 9x13
			{10, 15, 4, 6},     // 10x15
			{13, 18, 5, 7},     // 13x18
			{15, 21, 6, 8.5},   // 15x21
			{18, 24, 7, 9.5},   // 18x24
			{20, 25, 8, 10},    // 20x25
			{20, 30, 8, 12},    // 20x30
			{30, 40, 12, 16},   // 30x40
		},
	}
}

// NewFormatTable creates an empty format table with the given tolerance.
func NewFormatTable(tolerance float64) *FormatTable {
	return &FormatTable{tolerance: tolerance}
}

// Add registers a nominal centimeter format and its exact inch size.
// The short edge comes first in both pairs.
func (t *FormatTable) Add(shortCm, longCm, shortIn, longIn float64) {
	t.entries = append(t.entries, formatEntry{shortCm, longCm, shortIn, longIn})
}

// Snap substitutes the exact manufactured print size for a size that
// matches a known nominal centimeter format within the table's tolerance.
// Sizes that match no entry, that are missing a dimension, or that are not
// centimeter-denominated are returned unchanged.
//
// Snapping is idempotent: the manufactured inch sizes are themselves
// within tolerance of their nominal formats and map back onto themselves.
func (t *FormatTable) Snap(size Size) Size {
	if !size.Complete() {
		return size
	}
	if size.Width.Unit != UnitCm || size.Height.Unit != UnitCm {
		return size
	}

	w, h := size.Width.Value, size.Height.Value
	portrait := w <= h
	short, long := w, h
	if !portrait {
		short, long = h, w
	}

	for _, e := range t.entries {
		if t.matches(short, e.shortCm) && t.matches(long, e.longCm) {
			shortL, longL := Inch(e.shortIn), Inch(e.longIn)
			if portrait {
				return Size{Width: &shortL, Height: &longL}
			}
			return Size{Width: &longL, Height: &shortL}
		}
	}
	return size
}

func (t *FormatTable) matches(value, nominal float64) bool {
	return math.Abs(value-nominal) <= nominal*t.tolerance
}

// ResolveFormat snaps a print format and converts it to pixel dimensions.
// Both dimensions of the format must be given.
func (t *FormatTable) ResolveFormat(size Size, dpi float64) (int, int, error) {
	if !size.Complete() {
		return 0, 0, fmt.Errorf("%w: missing dimension in print format %s", ErrUnresolvedLength, size)
	}
	px := t.Snap(size).To(UnitPx, dpi)
	w, h := int(px.Width.Value), int(px.Height.Value)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: print format %s resolves to empty pixel size", ErrInvalidLength, size)
	}
	return w, h, nil
}
