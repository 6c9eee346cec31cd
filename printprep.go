// Package printprep prepares digital photos for physical printing.
//
// The package resolves print geometry given in mixed measurement units,
// scales source images to fit that geometry, and composites framing
// elements (borders, padding, cut marks or a cut frame, test patterns
// and metadata text) onto an output canvas at a given resolution.
//
// Basic usage:
//
//	package main
//
//	import (
//		"log"
//
//		printprep "github.com/menta2k/print-prep"
//		"github.com/menta2k/print-prep/pkg/pipeline"
//		"github.com/menta2k/print-prep/pkg/units"
//	)
//
//	func main() {
//		format, err := units.ParseSize("10cm/15cm")
//		if err != nil {
//			log.Fatal(err)
//		}
//		padding, err := units.ParseSides("5mm")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		prep, err := printprep.NewPrep(printprep.PrepOptions{
//			DPI:     300,
//			Format:  format,
//			Padding: padding,
//		})
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		img, err := pipeline.OpenImage("photo.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//		canvas, err := prep.Process(img, nil)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := pipeline.SaveImage(canvas, "photo-print.jpg", 95, false); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The package consists of five components, layered bottom to top:
//
//  1. Length resolution (pkg/units): size tokens, four-sided specs,
//     scale factors, colors, print-format snapping
//  2. Box model solving (pkg/layout): the nested rectangle stack from
//     format down to the image area
//  3. Scaling (pkg/scaling): modes, resampling filters, incremental
//     downscaling
//  4. Compositing (pkg/render): canvas, border, cut indicators, test
//     pattern, metadata text
//  5. Batch processing (pkg/pipeline): per-file worker pool and image
//     codec I/O
//
// Everything below pkg/pipeline is purely functional per image: no I/O,
// no hidden state, safe for concurrent use across files.
package printprep

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/menta2k/print-prep/pkg/exiftag"
	"github.com/menta2k/print-prep/pkg/layout"
	"github.com/menta2k/print-prep/pkg/render"
	"github.com/menta2k/print-prep/pkg/scaling"
	"github.com/menta2k/print-prep/pkg/units"
)

// Version of the print-prep library.
const Version = "0.1.0"

// DefaultDPI is the resolution used when none is configured.
const DefaultDPI = 300.0

// PrepOptions configures print preparation. The zero value of optional
// fields means "not constrained"; Format is required.
type PrepOptions struct {
	// DPI is the print resolution. Default 300.
	DPI float64
	// Format is the output print format, e.g. `10cm/15cm`. Both
	// dimensions are required. Centimeter formats snap to exact print
	// formats in inches.
	Format units.Size
	// FramedSize caps the combined border+image rectangle. Optional.
	FramedSize *units.Size
	// ImageSize caps the image content rectangle, excluding the border.
	// Optional.
	ImageSize *units.Size
	// Border, Padding and Margin are the per-side insets of the
	// rectangle stack. Zero values mean no inset.
	Border  units.Sides
	Padding units.Sides
	Margin  units.Sides
	// Cut selects the trim indicator: marks, frame or none.
	Cut layout.CutSpec
	// TestPattern draws a calibration checker below the image. Optional.
	TestPattern *render.TestPattern
	// ExifTemplate is the metadata text template, e.g.
	// `{Mod} | {F}mm f/{FN} {Exp}s ISO {ISO}`. Empty disables the text.
	ExifTemplate string
	// ExifHeight is the glyph height of the metadata text. Zero uses the
	// font's natural size.
	ExifHeight units.Length
	// Colors is the background/border/mark color table.
	Colors render.Colors
	// Mode is the scaling mode for placing the image. Default keep.
	Mode scaling.Mode
	// Filter is the resampling filter. Default CatmullRom.
	Filter imaging.ResampleFilter
	// Incremental enables staged downscaling for large ratios.
	Incremental bool
	// NoRotation prevents turning the format to match the source
	// orientation.
	NoRotation bool
	// Formats overrides the print-format snapping table. Default table
	// when nil.
	Formats *units.FormatTable
}

// Prep prepares images for printing. All configuration is resolved and
// validated up front; Process does only per-image work and is safe for
// concurrent use.
type Prep struct {
	opts       PrepOptions
	filter     imaging.ResampleFilter
	formatW    int
	formatH    int
	border     units.SidePixels
	padding    units.SidePixels
	margin     units.SidePixels
	framed     *layout.OptSize
	imageSize  *layout.OptSize
	textHeight int
}

// NewPrep validates the options and resolves all geometry that does not
// depend on the source image. Configuration errors surface here, before
// any file is opened.
func NewPrep(opts PrepOptions) (*Prep, error) {
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if opts.DPI < 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %v", units.ErrInvalidLength, opts.DPI)
	}
	if opts.Formats == nil {
		opts.Formats = units.DefaultFormats()
	}
	if opts.Colors == (render.Colors{}) {
		opts.Colors = render.DefaultColors()
	}

	p := &Prep{opts: opts, filter: opts.Filter}
	if p.filter.Kernel == nil {
		p.filter = imaging.CatmullRom
	}

	var err error
	if p.formatW, p.formatH, err = opts.Formats.ResolveFormat(opts.Format, opts.DPI); err != nil {
		return nil, err
	}
	if p.border, err = opts.Border.Pixels(opts.DPI); err != nil {
		return nil, fmt.Errorf("invalid border: %w", err)
	}
	if p.padding, err = opts.Padding.Pixels(opts.DPI); err != nil {
		return nil, fmt.Errorf("invalid padding: %w", err)
	}
	if p.margin, err = opts.Margin.Pixels(opts.DPI); err != nil {
		return nil, fmt.Errorf("invalid margin: %w", err)
	}
	if p.framed, err = optSize(opts.FramedSize, opts.DPI); err != nil {
		return nil, fmt.Errorf("invalid framed size: %w", err)
	}
	if p.imageSize, err = optSize(opts.ImageSize, opts.DPI); err != nil {
		return nil, fmt.Errorf("invalid image size: %w", err)
	}
	p.textHeight = opts.ExifHeight.Pixels(opts.DPI)
	if p.textHeight < 0 {
		return nil, fmt.Errorf("%w: metadata text height must not be negative", units.ErrInvalidLength)
	}

	return p, nil
}

// Process lays out, scales and composites one image. Tags supply the
// metadata text; nil or missing tags render as empty values.
func (p *Prep) Process(img image.Image, tags *exiftag.TagMap) (*image.NRGBA, error) {
	bounds := img.Bounds()
	mode := p.opts.Mode

	l, err := layout.Solve(layout.Spec{
		FormatWidth:    p.formatW,
		FormatHeight:   p.formatH,
		FramedSize:     p.framed,
		ImageSize:      p.imageSize,
		Border:         p.border,
		Padding:        p.padding,
		Margin:         p.margin,
		Cut:            p.opts.Cut,
		SourceWidth:    bounds.Dx(),
		SourceHeight:   bounds.Dy(),
		AllowRotation:  !p.opts.NoRotation,
		PreserveAspect: mode == scaling.Keep || mode == scaling.Fill,
	})
	if err != nil {
		return nil, err
	}

	resized, err := scaling.Scale(img, l.ImageArea.Dx(), l.ImageArea.Dy(), mode, p.filter,
		p.opts.Colors.Background, p.opts.Incremental)
	if err != nil {
		return nil, err
	}

	var text *render.Text
	if p.opts.ExifTemplate != "" {
		text = &render.Text{
			Content: exiftag.Expand(p.opts.ExifTemplate, tags),
			Height:  p.textHeight,
		}
	}

	return render.Compose(l, resized, p.opts.Cut, p.opts.TestPattern, text, p.opts.Colors), nil
}

// ScaleOptions configures plain image scaling without a print layout.
type ScaleOptions struct {
	// DPI resolves physical units in the target size. Default 300.
	DPI float64
	// Spec is the scaling target, an absolute size or a relative factor.
	Spec units.ScaleSpec
	// Mode is the scaling mode. Forced to keep when the target size has
	// an unconstrained dimension. Default keep.
	Mode scaling.Mode
	// Filter is the resampling filter. Default CatmullRom.
	Filter imaging.ResampleFilter
	// Incremental enables staged downscaling for large ratios.
	Incremental bool
	// Background fills uncovered target space for mode fill.
	Background units.Color
}

// Scaler scales images to an absolute or relative size.
type Scaler struct {
	opts   ScaleOptions
	filter imaging.ResampleFilter
}

// NewScaler validates the options. Configuration errors surface here,
// before any file is opened.
func NewScaler(opts ScaleOptions) (*Scaler, error) {
	if opts.DPI == 0 {
		opts.DPI = DefaultDPI
	}
	if opts.DPI < 0 {
		return nil, fmt.Errorf("%w: resolution must be positive, got %v", units.ErrInvalidLength, opts.DPI)
	}

	_, hasSize := opts.Spec.Size()
	_, hasFactor := opts.Spec.Factor()
	if !hasSize && !hasFactor {
		return nil, fmt.Errorf("%w: exactly one of `--size` and `--scale` must be given", units.ErrConflictingSpec)
	}
	if opts.Background == (units.Color{}) {
		opts.Background = units.RGB(255, 255, 255)
	}

	s := &Scaler{opts: opts, filter: opts.Filter}
	if s.filter.Kernel == nil {
		s.filter = imaging.CatmullRom
	}
	return s, nil
}

// Process scales one image to the configured target.
func (s *Scaler) Process(img image.Image) (*image.NRGBA, error) {
	bounds := img.Bounds()
	width, height, err := s.opts.Spec.TargetPixels(s.opts.DPI, bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	mode := s.opts.Mode
	if s.opts.Spec.KeepsAspect() {
		mode = scaling.Keep
	}
	return scaling.Scale(img, width, height, mode, s.filter, s.opts.Background.NRGBA(), s.opts.Incremental)
}

// optSize resolves an optional size constraint to pixels, zero meaning
// unconstrained per axis.
func optSize(s *units.Size, dpi float64) (*layout.OptSize, error) {
	if s == nil {
		return nil, nil
	}
	out := &layout.OptSize{}
	if s.Width != nil {
		out.Width = s.Width.Pixels(dpi)
		if out.Width <= 0 {
			return nil, fmt.Errorf("%w: width must be positive", units.ErrInvalidLength)
		}
	}
	if s.Height != nil {
		out.Height = s.Height.Pixels(dpi)
		if out.Height <= 0 {
			return nil, fmt.Errorf("%w: height must be positive", units.ErrInvalidLength)
		}
	}
	return out, nil
}
