package units

import (
	"errors"
	"testing"
)

func TestSnapNominalFormat(t *testing.T) {
	formats := DefaultFormats()

	tests := []struct {
		size     string
		expected string
	}{
		{"15cm/10cm", "6in/4in"},
		{"10cm/15cm", "4in/6in"},
		{"13cm/18cm", "5in/7in"},
		{"20cm/30cm", "8in/12in"},
	}

	for _, tt := range tests {
		size, err := ParseSize(tt.size)
		if err != nil {
			t.Fatalf("ParseSize(%q) failed: %v", tt.size, err)
		}
		if got := formats.Snap(size).String(); got != tt.expected {
			t.Errorf("Snap(%s): expected %s, got %s", tt.size, tt.expected, got)
		}
	}
}

func TestSnapWithinTolerance(t *testing.T) {
	formats := DefaultFormats()

	// the exact manufactured size in cm is within tolerance of the nominal size
	size, _ := ParseSize("10.16cm/15.24cm")
	if got := formats.Snap(size).String(); got != "4in/6in" {
		t.Errorf("expected 4in/6in, got %s", got)
	}
}

func TestSnapIdempotent(t *testing.T) {
	formats := DefaultFormats()

	size, _ := ParseSize("10cm/15cm")
	once := formats.Snap(size)
	twice := formats.Snap(once)

	oncePx := once.To(UnitPx, 300)
	twicePx := twice.To(UnitPx, 300)
	if oncePx.Width.Value != twicePx.Width.Value || oncePx.Height.Value != twicePx.Height.Value {
		t.Errorf("snapping is not idempotent: %s vs %s", oncePx, twicePx)
	}
}

func TestSnapUnchanged(t *testing.T) {
	formats := DefaultFormats()

	// sizes that are not cm-denominated or match no entry stay unchanged
	for _, token := range []string{"6in/4in", "1200px/800px", "11cm/17cm", "15cm/."} {
		size, err := ParseSize(token)
		if err != nil {
			t.Fatalf("ParseSize(%q) failed: %v", token, err)
		}
		if got := formats.Snap(size).String(); got != token {
			t.Errorf("expected %s to stay unchanged, got %s", token, got)
		}
	}
}

func TestCustomFormatTable(t *testing.T) {
	formats := NewFormatTable(0.05)
	formats.Add(21, 29.7, 8.27, 11.69) // A4

	size, _ := ParseSize("21cm/29.7cm")
	if got := formats.Snap(size).String(); got != "8.27in/11.69in" {
		t.Errorf("expected A4 snap, got %s", got)
	}
}

func TestResolveFormat(t *testing.T) {
	formats := DefaultFormats()

	// 10x15 cm snaps to 4x6 in, at 90 dpi that is 360x540 px
	size, _ := ParseSize("10cm/15cm")
	w, h, err := formats.ResolveFormat(size, 90)
	if err != nil {
		t.Fatalf("ResolveFormat failed: %v", err)
	}
	if w != 360 || h != 540 {
		t.Errorf("expected 360x540, got %dx%d", w, h)
	}

	partial, _ := ParseSize("10cm/.")
	if _, _, err := formats.ResolveFormat(partial, 90); !errors.Is(err, ErrUnresolvedLength) {
		t.Errorf("expected ErrUnresolvedLength for partial format, got %v", err)
	}
}
