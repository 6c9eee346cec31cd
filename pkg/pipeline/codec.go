package pipeline

import (
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/print-prep/internal/pathutil"
)

// OpenImage loads an image from a file path with WebP support.
func OpenImage(path string) (image.Image, error) {
	// Try imaging.Open (registered decoders)
	if img, err := imaging.Open(path, imaging.AutoOrientation(true)); err == nil {
		return img, nil
	}

	// Fallback: explicit WebP decode
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if pathutil.FileExtension(path) == "webp" {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, 0); err != nil {
			return nil, err
		}
	}
	if img, _, err := image.Decode(f); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("image: unknown format for %s", path)
}

// SaveImage saves an image to a file, with the format selected by the
// file extension. Quality applies to JPEG and lossy WebP output. The
// parent directory is created if missing.
func SaveImage(img image.Image, path string, quality int, lossless bool) error {
	if err := pathutil.EnsureDir(path); err != nil {
		return err
	}

	switch pathutil.FileExtension(path) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	case "":
		return fmt.Errorf("output path %q has no extension to determine the image format", path)
	default:
		return imaging.Save(img, path)
	}
}
