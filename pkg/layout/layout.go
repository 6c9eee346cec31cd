// Package layout derives the nested pixel rectangles of a print layout
// from a sparse set of constraints.
//
// The rectangle stack, outer to inner:
//
//	Format ⊇ Margins ⊇ CutRegion ⊇ Padded ⊇ BorderBox ⊇ ImageArea
//
// Precedence for the image extent: explicit image size > framed size >
// derived from the format.
package layout

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/menta2k/print-prep/pkg/units"
)

// ErrInvalidGeometry indicates insets that consume more space than their
// parent rectangle provides.
var ErrInvalidGeometry = errors.New("invalid geometry")

// OptSize is a pixel dimension pair where zero means unconstrained.
type OptSize struct {
	Width  int
	Height int
}

// Spec is the solver input. All values are resolved pixels.
type Spec struct {
	// FormatWidth and FormatHeight give the outermost print rectangle.
	FormatWidth  int
	FormatHeight int
	// FramedSize caps the combined border+image rectangle per axis.
	FramedSize *OptSize
	// ImageSize caps the image content rectangle per axis, excluding the border.
	ImageSize *OptSize

	Border  units.SidePixels
	Padding units.SidePixels
	Margin  units.SidePixels
	Cut     CutSpec

	// Source dimensions of the input image, used for aspect derivation
	// and rotation.
	SourceWidth  int
	SourceHeight int

	// AllowRotation swaps the format when its orientation does not match
	// the source image.
	AllowRotation bool
	// PreserveAspect shrinks the image area to the source aspect ratio so
	// the border hugs the final image. Disabled for crop/stretch placement.
	PreserveAspect bool
}

// Layout holds every derived rectangle of a solved print layout.
type Layout struct {
	Format    image.Rectangle
	Margins   image.Rectangle
	CutRegion image.Rectangle
	Padded    image.Rectangle
	BorderBox image.Rectangle
	ImageArea image.Rectangle
	// Rotated reports that the format was turned 90° to match the source
	// orientation.
	Rotated bool
}

// Solve derives the full rectangle stack from the given constraints.
func Solve(spec Spec) (Layout, error) {
	if spec.FormatWidth <= 0 || spec.FormatHeight <= 0 {
		return Layout{}, fmt.Errorf("%w: format must have positive extent, got %dx%d",
			ErrInvalidGeometry, spec.FormatWidth, spec.FormatHeight)
	}

	width, height := spec.FormatWidth, spec.FormatHeight
	rotated := false
	if spec.AllowRotation && spec.SourceWidth > 0 && spec.SourceHeight > 0 {
		srcPortrait := spec.SourceHeight > spec.SourceWidth
		outPortrait := height > width
		if srcPortrait != outPortrait {
			width, height = height, width
			rotated = true
		}
	}

	format := image.Rect(0, 0, width, height)
	margins, err := inset(format, spec.Margin, "margins")
	if err != nil {
		return Layout{}, err
	}
	cutRegion, err := inset(margins, uniform(spec.Cut.Inset()), "cut indicator")
	if err != nil {
		return Layout{}, err
	}
	padded, err := inset(cutRegion, spec.Padding, "padding")
	if err != nil {
		return Layout{}, err
	}

	imgWidth, imgHeight, err := imageExtent(spec, padded)
	if err != nil {
		return Layout{}, err
	}

	// The border box is the image area grown by the border sides,
	// centered within the padded region.
	b := spec.Border
	boxWidth := imgWidth + b.Left + b.Right
	boxHeight := imgHeight + b.Top + b.Bottom
	x := padded.Min.X + (padded.Dx()-boxWidth)/2
	y := padded.Min.Y + (padded.Dy()-boxHeight)/2
	borderBox := image.Rect(x, y, x+boxWidth, y+boxHeight)
	imageArea := image.Rect(x+b.Left, y+b.Top, x+b.Left+imgWidth, y+b.Top+imgHeight)

	return Layout{
		Format:    format,
		Margins:   margins,
		CutRegion: cutRegion,
		Padded:    padded,
		BorderBox: borderBox,
		ImageArea: imageArea,
		Rotated:   rotated,
	}, nil
}

// imageExtent resolves the image content dimensions within the padded
// region, honoring the framed-size and image-size caps.
func imageExtent(spec Spec, padded image.Rectangle) (int, int, error) {
	b := spec.Border
	maxWidth := padded.Dx() - b.Left - b.Right
	maxHeight := padded.Dy() - b.Top - b.Bottom
	if maxWidth <= 0 || maxHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: border leaves no space for the image", ErrInvalidGeometry)
	}

	if f := spec.FramedSize; f != nil {
		if f.Width > 0 && f.Width-b.Left-b.Right < maxWidth {
			maxWidth = f.Width - b.Left - b.Right
		}
		if f.Height > 0 && f.Height-b.Top-b.Bottom < maxHeight {
			maxHeight = f.Height - b.Top - b.Bottom
		}
		if maxWidth <= 0 || maxHeight <= 0 {
			return 0, 0, fmt.Errorf("%w: framed size leaves no space for the image", ErrInvalidGeometry)
		}
	}

	imgWidth, imgHeight := maxWidth, maxHeight
	hasSource := spec.SourceWidth > 0 && spec.SourceHeight > 0
	aspect := 1.0
	if hasSource {
		aspect = float64(spec.SourceHeight) / float64(spec.SourceWidth)
	}

	switch {
	case spec.ImageSize != nil && spec.ImageSize.Width > 0 && spec.ImageSize.Height > 0:
		imgWidth, imgHeight = spec.ImageSize.Width, spec.ImageSize.Height
	case spec.ImageSize != nil && spec.ImageSize.Width > 0:
		imgWidth = spec.ImageSize.Width
		if hasSource {
			imgHeight = int(math.Round(float64(imgWidth) * aspect))
		}
	case spec.ImageSize != nil && spec.ImageSize.Height > 0:
		imgHeight = spec.ImageSize.Height
		if hasSource {
			imgWidth = int(math.Round(float64(imgHeight) / aspect))
		}
	case spec.PreserveAspect && hasSource:
		scale := math.Min(
			float64(maxWidth)/float64(spec.SourceWidth),
			float64(maxHeight)/float64(spec.SourceHeight),
		)
		imgWidth = int(math.Round(float64(spec.SourceWidth) * scale))
		imgHeight = int(math.Round(float64(spec.SourceHeight) * scale))
		if imgWidth > maxWidth {
			imgWidth = maxWidth
		}
		if imgHeight > maxHeight {
			imgHeight = maxHeight
		}
	}

	if imgWidth <= 0 || imgHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: image area has no extent", ErrInvalidGeometry)
	}
	if imgWidth > maxWidth || imgHeight > maxHeight {
		return 0, 0, fmt.Errorf("%w: image size %dx%d exceeds the available area %dx%d",
			ErrInvalidGeometry, imgWidth, imgHeight, maxWidth, maxHeight)
	}
	return imgWidth, imgHeight, nil
}

func inset(r image.Rectangle, s units.SidePixels, what string) (image.Rectangle, error) {
	out := image.Rectangle{
		Min: image.Point{X: r.Min.X + s.Left, Y: r.Min.Y + s.Top},
		Max: image.Point{X: r.Max.X - s.Right, Y: r.Max.Y - s.Bottom},
	}
	if out.Max.X-out.Min.X <= 0 || out.Max.Y-out.Min.Y <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %s consumes the full %dx%d parent rectangle",
			ErrInvalidGeometry, what, r.Dx(), r.Dy())
	}
	return out, nil
}

func uniform(v int) units.SidePixels {
	return units.SidePixels{Top: v, Right: v, Bottom: v, Left: v}
}
