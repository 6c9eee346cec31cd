// Package scaling resizes images into target rectangles under a scaling
// mode and resampling filter, with optional incremental downscaling.
package scaling

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// ErrDegenerateTarget indicates a zero-area scale target.
var ErrDegenerateTarget = errors.New("degenerate scale target")

// Mode is the scaling mode.
type Mode int

const (
	// Keep preserves the aspect ratio; the result fits entirely within the
	// target and may be smaller on one axis.
	Keep Mode = iota
	// Stretch fills the target exactly on both axes, changing the aspect ratio.
	Stretch
	// Crop preserves the aspect ratio and covers the target entirely,
	// cropping the surplus symmetrically.
	Crop
	// Fill preserves the aspect ratio as Keep does, filling uncovered target
	// space with the background color.
	Fill
)

// ParseMode parses a scaling mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "keep", "":
		return Keep, nil
	case "stretch":
		return Stretch, nil
	case "crop":
		return Crop, nil
	case "fill":
		return Fill, nil
	default:
		return Keep, fmt.Errorf("`%s` is not a valid scale mode, must be one of (keep|stretch|crop|fill)", s)
	}
}

func (m Mode) String() string {
	switch m {
	case Stretch:
		return "stretch"
	case Crop:
		return "crop"
	case Fill:
		return "fill"
	default:
		return "keep"
	}
}

// ParseFilter parses a resampling filter name.
func ParseFilter(s string) (imaging.ResampleFilter, error) {
	switch s {
	case "nearest":
		return imaging.NearestNeighbor, nil
	case "linear":
		return imaging.Linear, nil
	case "cubic", "":
		return imaging.CatmullRom, nil
	case "gauss":
		return imaging.Gaussian, nil
	case "lanczos":
		return imaging.Lanczos, nil
	default:
		return imaging.ResampleFilter{}, fmt.Errorf("`%s` is not a valid filter type, must be one of (nearest|linear|cubic|gauss|lanczos)", s)
	}
}

// Scale resizes an image to the given target dimensions.
//
// With incremental enabled, large downscales are staged: the image is
// repeatedly halved with a 2x2 box average until the remaining ratio to
// the target drops below 2x, and only the final step uses the configured
// filter. Upscaling is never staged.
func Scale(img image.Image, width, height int, mode Mode, filter imaging.ResampleFilter, background color.NRGBA, incremental bool) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDegenerateTarget, width, height)
	}

	if incremental {
		bounds := img.Bounds()
		if bounds.Dx() >= 2*width && bounds.Dy() >= 2*height {
			half := halve(imaging.Clone(img))
			for half.Bounds().Dx() >= 2*width && half.Bounds().Dy() >= 2*height {
				half = halve(half)
			}
			img = half
		}
	}

	switch mode {
	case Stretch:
		return imaging.Resize(img, width, height, filter), nil
	case Crop:
		return imaging.Fill(img, width, height, imaging.Center, filter), nil
	case Fill:
		fitW, fitH := fitSize(img.Bounds().Dx(), img.Bounds().Dy(), width, height)
		fitted := imaging.Resize(img, fitW, fitH, filter)
		canvas := imaging.New(width, height, background)
		return imaging.PasteCenter(canvas, fitted), nil
	default:
		fitW, fitH := fitSize(img.Bounds().Dx(), img.Bounds().Dy(), width, height)
		return imaging.Resize(img, fitW, fitH, filter), nil
	}
}

// fitSize computes the largest size within the target bounds that
// preserves the source aspect ratio. One axis always matches the target
// exactly. Unlike imaging.Fit this also grows small sources.
func fitSize(srcWidth, srcHeight, width, height int) (int, int) {
	if srcWidth*height >= srcHeight*width {
		h := int(math.Round(float64(srcHeight) * float64(width) / float64(srcWidth)))
		if h < 1 {
			h = 1
		}
		return width, h
	}
	w := int(math.Round(float64(srcWidth) * float64(height) / float64(srcHeight)))
	if w < 1 {
		w = 1
	}
	return w, height
}

// halve reduces an image to half its size, averaging over 2x2 pixel blocks.
func halve(img *image.NRGBA) *image.NRGBA {
	width := img.Bounds().Dx() / 2
	height := img.Bounds().Dy() / 2
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		srcA := img.PixOffset(0, 2*y)
		srcB := img.PixOffset(0, 2*y+1)
		dstIdx := dst.PixOffset(0, y)
		for x := 0; x < width; x++ {
			for c := 0; c < 4; c++ {
				sum := uint32(img.Pix[srcA+c]) + uint32(img.Pix[srcA+4+c]) +
					uint32(img.Pix[srcB+c]) + uint32(img.Pix[srcB+4+c])
				dst.Pix[dstIdx+c] = uint8((sum + 2) / 4)
			}
			srcA += 8
			srcB += 8
			dstIdx += 4
		}
	}
	return dst
}
