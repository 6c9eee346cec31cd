package exiftag

import "testing"

func TestExpand(t *testing.T) {
	tags := NewTagMap()
	tags.Set("ISO", "400")
	tags.Set("F", "4")
	tags.Set("Model", "NIKON D750")
	tags.Set("ExposureTime", "1/250")

	tests := []struct {
		template string
		expected string
	}{
		{"{ISO}/{F/2}", "400/2"},
		{"{Missing}", ""},
		{"ISO {ISO}", "ISO 400"},
		{"{Mod}", "NIKON D750"},
		{"{Model}", "NIKON D750"},
		{"{Exp}s f/{F}", "1/250s f/4"},
		{"{F/0.5}", "8"},
		{"no placeholders", "no placeholders"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Expand(tt.template, tags); got != tt.expected {
			t.Errorf("Expand(%q): expected %q, got %q", tt.template, tt.expected, got)
		}
	}
}

func TestExpandNonNumericDivisor(t *testing.T) {
	tags := NewTagMap()
	tags.Set("Model", "NIKON D750")

	// non-numeric values ignore the divisor
	if got := Expand("{Mod/2}", tags); got != "NIKON D750" {
		t.Errorf("expected verbatim value, got %q", got)
	}
}

func TestExpandEmptyTags(t *testing.T) {
	if got := Expand("{ISO} {F} {Date}", NewTagMap()); got != "  " {
		t.Errorf("expected unknown tags to expand empty, got %q", got)
	}
}

func TestExpandNilTags(t *testing.T) {
	if got := Expand("{ISO}/{F/2} text", nil); got != "/ text" {
		t.Errorf("expected every placeholder to expand empty for nil tags, got %q", got)
	}
}

func TestExpandUnterminated(t *testing.T) {
	tags := NewTagMap()
	tags.Set("ISO", "400")

	if got := Expand("{ISO} {unterminated", tags); got != "400 {unterminated" {
		t.Errorf("unexpected expansion %q", got)
	}
}

func TestTagMapOrder(t *testing.T) {
	tags := NewTagMap()
	tags.Set("B", "2")
	tags.Set("A", "1")
	tags.Set("B", "3")

	names := tags.Names()
	if len(names) != 2 || names[0] != "B" || names[1] != "A" {
		t.Errorf("expected insertion order [B A], got %v", names)
	}
	if v, _ := tags.Get("B"); v != "3" {
		t.Errorf("expected updated value 3, got %s", v)
	}
	if tags.Len() != 2 {
		t.Errorf("expected 2 tags, got %d", tags.Len())
	}
}
