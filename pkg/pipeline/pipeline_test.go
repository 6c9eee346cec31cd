package pipeline

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// createTestImage creates a test image with a bright center region.
func createTestImage(width, height int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x > width/3 && x < 2*width/3 && y > height/3 && y < 2*height/3 {
				img.Set(x, y, color.NRGBA{255, 255, 255, 255})
			} else {
				img.Set(x, y, color.NRGBA{64, 64, 64, 255})
			}
		}
	}
	return img
}

func writeTestFiles(t *testing.T, dir string, count int) []string {
	t.Helper()
	files := make([]string, count)
	for i := range files {
		path := filepath.Join(dir, fmt.Sprintf("img-%03d.png", i))
		if err := imaging.Save(createTestImage(64, 48), path); err != nil {
			t.Fatal(err)
		}
		files[i] = path
	}
	return files
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	files := writeTestFiles(t, dir, 5)

	process := func(img image.Image, path string) (image.Image, error) {
		return imaging.Resize(img, 32, 24, imaging.NearestNeighbor), nil
	}

	report, err := Run(context.Background(), files, process, Options{
		OutputPattern: filepath.Join(dir, "out", "*-small.png"),
		Workers:       2,
		Quality:       90,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Succeeded() != 5 || report.Failed() != 0 {
		t.Fatalf("expected 5 successes, got %d successes and %d failures (first error: %v)",
			report.Succeeded(), report.Failed(), report.FirstError())
	}

	for _, res := range report.Results {
		img, err := OpenImage(res.Output)
		if err != nil {
			t.Fatalf("cannot reopen output %s: %v", res.Output, err)
		}
		if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 24 {
			t.Errorf("output %s has size %dx%d, expected 32x24", res.Output, b.Dx(), b.Dy())
		}
	}
}

// A failing file is reported but never aborts the batch.
func TestRunCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	files := writeTestFiles(t, dir, 3)

	broken := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(broken, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	files = append(files, broken)

	process := func(img image.Image, path string) (image.Image, error) {
		return img, nil
	}

	report, err := Run(context.Background(), files, process, Options{
		OutputPattern: filepath.Join(dir, "out", "*.png"),
		Quality:       90,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Succeeded() != 3 {
		t.Errorf("expected 3 successes, got %d", report.Succeeded())
	}
	if report.Failed() != 1 {
		t.Errorf("expected 1 failure, got %d", report.Failed())
	}
	if report.FirstError() == nil {
		t.Error("expected the broken file's error in the report")
	}
}

// A constant output pattern would have every worker overwrite the same
// file; the batch must refuse it before any file is opened.
func TestRunRejectsClashingOutputs(t *testing.T) {
	dir := t.TempDir()
	files := writeTestFiles(t, dir, 4)

	processed := 0
	process := func(img image.Image, path string) (image.Image, error) {
		processed++
		return img, nil
	}

	_, err := Run(context.Background(), files, process, Options{
		OutputPattern: filepath.Join(dir, "out.png"),
		Quality:       90,
	})
	if err == nil {
		t.Fatal("expected error for an output pattern mapping all inputs to one path")
	}
	if processed != 0 {
		t.Errorf("expected no file to be processed, got %d", processed)
	}

	// a single input may use a constant output path
	report, err := Run(context.Background(), files[:1], process, Options{
		OutputPattern: filepath.Join(dir, "out.png"),
		Quality:       90,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Succeeded() != 1 {
		t.Errorf("expected 1 success, got %d", report.Succeeded())
	}
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	files := writeTestFiles(t, dir, 8)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, files, func(img image.Image, path string) (image.Image, error) {
		return img, nil
	}, Options{OutputPattern: filepath.Join(dir, "out", "*.png"), Workers: 1, Quality: 90})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(report.Results) == len(files) {
		t.Skip("all tasks dispatched before cancellation took effect")
	}
}

func TestSaveImageFormats(t *testing.T) {
	dir := t.TempDir()
	img := createTestImage(40, 30)

	for _, name := range []string{"out.png", "out.jpg", "out.webp", "out.bmp"} {
		path := filepath.Join(dir, name)
		if err := SaveImage(img, path, 90, false); err != nil {
			t.Fatalf("SaveImage(%s) failed: %v", name, err)
		}
		back, err := OpenImage(path)
		if err != nil {
			t.Fatalf("OpenImage(%s) failed: %v", name, err)
		}
		if b := back.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
			t.Errorf("%s: size %dx%d, expected 40x30", name, b.Dx(), b.Dy())
		}
	}

	if err := SaveImage(img, filepath.Join(dir, "noext"), 90, false); err == nil {
		t.Error("expected error for output path without extension")
	}
}
