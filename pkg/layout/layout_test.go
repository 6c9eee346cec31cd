package layout

import (
	"errors"
	"image"
	"testing"

	"github.com/menta2k/print-prep/pkg/units"
)

func uniformPx(v int) units.SidePixels {
	return units.SidePixels{Top: v, Right: v, Bottom: v, Left: v}
}

func TestSolveNesting(t *testing.T) {
	l, err := Solve(Spec{
		FormatWidth:  1200,
		FormatHeight: 800,
		Border:       uniformPx(10),
		Padding:      uniformPx(20),
		Margin:       uniformPx(30),
		SourceWidth:  3000,
		SourceHeight: 2000,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if l.Format != image.Rect(0, 0, 1200, 800) {
		t.Errorf("unexpected format box %v", l.Format)
	}
	if l.Margins != image.Rect(30, 30, 1170, 770) {
		t.Errorf("unexpected margins box %v", l.Margins)
	}
	// no cut indicator, the cut region equals the margins box
	if l.CutRegion != l.Margins {
		t.Errorf("expected cut region %v to equal margins box, got %v", l.Margins, l.CutRegion)
	}
	if l.Padded != image.Rect(50, 50, 1150, 750) {
		t.Errorf("unexpected padded box %v", l.Padded)
	}

	// each box must be contained in its parent
	boxes := []image.Rectangle{l.Format, l.Margins, l.CutRegion, l.Padded, l.BorderBox, l.ImageArea}
	for i := 1; i < len(boxes); i++ {
		if !boxes[i].In(boxes[i-1]) {
			t.Errorf("box %d (%v) not contained in parent %v", i, boxes[i], boxes[i-1])
		}
	}

	// the border must hug the image area on all sides
	if l.BorderBox.Min.X != l.ImageArea.Min.X-10 || l.BorderBox.Max.X != l.ImageArea.Max.X+10 ||
		l.BorderBox.Min.Y != l.ImageArea.Min.Y-10 || l.BorderBox.Max.Y != l.ImageArea.Max.Y+10 {
		t.Errorf("border box %v does not hug image area %v", l.BorderBox, l.ImageArea)
	}
}

func TestSolveAspectPreserved(t *testing.T) {
	l, err := Solve(Spec{
		FormatWidth:    1200,
		FormatHeight:   800,
		SourceWidth:    3000,
		SourceHeight:   2000,
		PreserveAspect: true,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// 3:2 source in a 3:2 format fills it completely
	if l.ImageArea != l.Format {
		t.Errorf("expected image area to fill the format, got %v", l.ImageArea)
	}

	// a square source in the same format is capped by the height
	l, err = Solve(Spec{
		FormatWidth:    1200,
		FormatHeight:   800,
		SourceWidth:    1000,
		SourceHeight:   1000,
		PreserveAspect: true,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if l.ImageArea.Dx() != 800 || l.ImageArea.Dy() != 800 {
		t.Errorf("expected 800x800 image area, got %dx%d", l.ImageArea.Dx(), l.ImageArea.Dy())
	}
	// centered horizontally
	if l.ImageArea.Min.X != 200 {
		t.Errorf("expected image area at x=200, got %d", l.ImageArea.Min.X)
	}
}

func TestSolveRotation(t *testing.T) {
	spec := Spec{
		FormatWidth:   1200,
		FormatHeight:  800,
		SourceWidth:   2000,
		SourceHeight:  3000,
		AllowRotation: true,
	}

	l, err := Solve(spec)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if !l.Rotated {
		t.Error("expected rotation for portrait source in landscape format")
	}
	if l.Format.Dx() != 800 || l.Format.Dy() != 1200 {
		t.Errorf("expected 800x1200 format after rotation, got %dx%d", l.Format.Dx(), l.Format.Dy())
	}

	spec.AllowRotation = false
	l, err = Solve(spec)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if l.Rotated || l.Format.Dx() != 1200 {
		t.Error("expected no rotation when rotation is disabled")
	}
}

func TestSolveFramedSize(t *testing.T) {
	l, err := Solve(Spec{
		FormatWidth:  1200,
		FormatHeight: 800,
		Border:       uniformPx(10),
		FramedSize:   &OptSize{Width: 620, Height: 420},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// framed size bounds border+image, so the image gets 600x400
	if l.ImageArea.Dx() != 600 || l.ImageArea.Dy() != 400 {
		t.Errorf("expected 600x400 image area, got %dx%d", l.ImageArea.Dx(), l.ImageArea.Dy())
	}
	if l.BorderBox.Dx() != 620 || l.BorderBox.Dy() != 420 {
		t.Errorf("expected 620x420 border box, got %dx%d", l.BorderBox.Dx(), l.BorderBox.Dy())
	}
}

func TestSolveImageSizePrecedence(t *testing.T) {
	// image size wins over framed size
	l, err := Solve(Spec{
		FormatWidth:  1200,
		FormatHeight: 800,
		FramedSize:   &OptSize{Width: 1000, Height: 700},
		ImageSize:    &OptSize{Width: 500, Height: 300},
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if l.ImageArea.Dx() != 500 || l.ImageArea.Dy() != 300 {
		t.Errorf("expected 500x300 image area, got %dx%d", l.ImageArea.Dx(), l.ImageArea.Dy())
	}

	// a partial image size derives the other axis from the source aspect
	l, err = Solve(Spec{
		FormatWidth:  1200,
		FormatHeight: 800,
		ImageSize:    &OptSize{Width: 600},
		SourceWidth:  3000,
		SourceHeight: 2000,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if l.ImageArea.Dx() != 600 || l.ImageArea.Dy() != 400 {
		t.Errorf("expected 600x400 image area, got %dx%d", l.ImageArea.Dx(), l.ImageArea.Dy())
	}
}

func TestSolveCutRegion(t *testing.T) {
	cut, err := MarkSpec(CutMarks{Width: 2, Offset: 4, Length: 20})
	if err != nil {
		t.Fatalf("MarkSpec failed: %v", err)
	}

	l, err := Solve(Spec{
		FormatWidth:  1200,
		FormatHeight: 800,
		Margin:       uniformPx(30),
		Cut:          cut,
	})
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	// marks consume offset+length inside the margins box
	want := image.Rect(30+24, 30+24, 1170-24, 770-24)
	if l.CutRegion != want {
		t.Errorf("expected cut region %v, got %v", want, l.CutRegion)
	}
}

func TestSolveInvalidGeometry(t *testing.T) {
	specs := []Spec{
		{FormatWidth: 0, FormatHeight: 800},
		{FormatWidth: 100, FormatHeight: 100, Margin: uniformPx(50)},
		{FormatWidth: 100, FormatHeight: 100, Padding: uniformPx(60)},
		{FormatWidth: 100, FormatHeight: 100, Border: uniformPx(60)},
		{FormatWidth: 1200, FormatHeight: 800, ImageSize: &OptSize{Width: 1300, Height: 100}},
	}

	for i, spec := range specs {
		if _, err := Solve(spec); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("spec %d: expected ErrInvalidGeometry, got %v", i, err)
		}
	}
}

func TestCutSpecVariants(t *testing.T) {
	spec, err := ParseCutSpec("0.5mm/1mm", "", 254)
	if err != nil {
		t.Fatalf("ParseCutSpec failed: %v", err)
	}
	marks, ok := spec.Marks()
	if !ok {
		t.Fatal("expected cut marks")
	}
	if marks.Width != 5 || marks.Offset != 10 || marks.Length != 50 {
		t.Errorf("unexpected marks %+v", marks)
	}
	if _, ok := spec.Frame(); ok {
		t.Error("marks spec must not also be a frame")
	}

	spec, err = ParseCutSpec("", "1mm/2mm", 254)
	if err != nil {
		t.Fatalf("ParseCutSpec failed: %v", err)
	}
	frame, ok := spec.Frame()
	if !ok {
		t.Fatal("expected cut frame")
	}
	if frame.Width != 10 || frame.Extension != 20 {
		t.Errorf("unexpected frame %+v", frame)
	}

	if _, err := ParseCutSpec("1mm/2mm", "1mm/2mm", 300); !errors.Is(err, units.ErrConflictingSpec) {
		t.Errorf("expected ErrConflictingSpec, got %v", err)
	}

	empty, err := ParseCutSpec("", "", 300)
	if err != nil {
		t.Fatalf("ParseCutSpec failed: %v", err)
	}
	if !empty.Empty() || empty.Inset() != 0 {
		t.Error("expected empty cut spec without tokens")
	}
}
