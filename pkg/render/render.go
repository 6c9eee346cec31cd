// Package render composites the final print canvas: background, image,
// border, cut indicators, test pattern and metadata text.
package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/menta2k/print-prep/pkg/layout"
)

// Colors is the color table for one render pass.
type Colors struct {
	// Background fills the canvas.
	Background color.NRGBA
	// Border fills the border rectangles.
	Border color.NRGBA
	// Mark draws cut indicators, the test pattern and the metadata text.
	Mark color.NRGBA
}

// DefaultColors renders black on white.
func DefaultColors() Colors {
	return Colors{
		Background: color.NRGBA{255, 255, 255, 255},
		Border:     color.NRGBA{0, 0, 0, 255},
		Mark:       color.NRGBA{0, 0, 0, 255},
	}
}

// TestPattern defines a checker grid of alternating filled squares used
// for printer calibration. All values are pixels.
type TestPattern struct {
	SquareX int
	GapX    int
	SquareY int
	GapY    int
}

// Text is the metadata text block drawn below the image.
type Text struct {
	// Content is the already-expanded text.
	Content string
	// Height is the glyph height in pixels.
	Height int
}

// Compose renders the output canvas for a solved layout. The resized
// image is placed centered in the image area; ownership of the returned
// canvas passes to the caller.
func Compose(l layout.Layout, img image.Image, cut layout.CutSpec, pattern *TestPattern, text *Text, colors Colors) *image.NRGBA {
	canvas := imaging.New(l.Format.Dx(), l.Format.Dy(), colors.Background)

	bounds := img.Bounds()
	pos := image.Pt(
		l.ImageArea.Min.X+(l.ImageArea.Dx()-bounds.Dx())/2,
		l.ImageArea.Min.Y+(l.ImageArea.Dy()-bounds.Dy())/2,
	)
	canvas = imaging.Paste(canvas, img, pos)

	drawBorder(canvas, l.BorderBox, l.ImageArea, colors.Border)

	if marks, ok := cut.Marks(); ok {
		drawCutMarks(canvas, l.CutRegion, marks, colors.Mark)
	} else if frame, ok := cut.Frame(); ok {
		drawCutFrame(canvas, l.CutRegion, frame, colors.Mark)
	}

	band := patternBand(l)
	if text != nil && text.Content != "" {
		h := text.Height
		if h <= 0 {
			h = 13
		}
		drawText(canvas, textAnchor(l), text.Content, text.Height, colors.Mark)
		band.Max.Y -= h + h/2
	}
	if pattern != nil {
		drawTestPattern(canvas, band, *pattern, colors.Mark)
	}

	return canvas
}

// patternBand is the free area below the image, between the border box
// and the cut region, where the test pattern is drawn.
func patternBand(l layout.Layout) image.Rectangle {
	return image.Rectangle{
		Min: image.Point{X: l.ImageArea.Min.X, Y: l.BorderBox.Max.Y},
		Max: image.Point{X: l.ImageArea.Max.X, Y: l.CutRegion.Max.Y},
	}
}

// textAnchor is the bottom-left corner of the free area below the image.
func textAnchor(l layout.Layout) image.Point {
	return image.Point{X: l.ImageArea.Min.X, Y: l.CutRegion.Max.Y}
}

// drawBorder strokes the four filled rectangles between the border box
// and the image area.
func drawBorder(canvas *image.NRGBA, box, img image.Rectangle, c color.NRGBA) {
	if box == img {
		return
	}
	fillRect(canvas, image.Rect(box.Min.X, box.Min.Y, box.Max.X, img.Min.Y), c) // top
	fillRect(canvas, image.Rect(box.Min.X, img.Max.Y, box.Max.X, box.Max.Y), c) // bottom
	fillRect(canvas, image.Rect(box.Min.X, img.Min.Y, img.Min.X, img.Max.Y), c) // left
	fillRect(canvas, image.Rect(img.Max.X, img.Min.Y, box.Max.X, img.Max.Y), c) // right
}

// drawCutMarks draws two trim marks per corner, lying on the extended cut
// region edges, starting offset outside the corner.
func drawCutMarks(canvas *image.NRGBA, cut image.Rectangle, m layout.CutMarks, c color.NRGBA) {
	left := cut.Min.X
	right := cut.Max.X
	top := cut.Min.Y
	bottom := cut.Max.Y
	w := m.Width

	// vertical marks on the left and right trim lines
	for _, x := range []int{left, right} {
		fillRect(canvas, image.Rect(x-w/2, top-m.Offset-m.Length, x+w-w/2, top-m.Offset), c)
		fillRect(canvas, image.Rect(x-w/2, bottom+m.Offset, x+w-w/2, bottom+m.Offset+m.Length), c)
	}
	// horizontal marks on the top and bottom trim lines
	for _, y := range []int{top, bottom} {
		fillRect(canvas, image.Rect(left-m.Offset-m.Length, y-w/2, left-m.Offset, y+w-w/2), c)
		fillRect(canvas, image.Rect(right+m.Offset, y-w/2, right+m.Offset+m.Length, y+w-w/2), c)
	}
}

// drawCutFrame draws a continuous trim outline around the cut region.
func drawCutFrame(canvas *image.NRGBA, cut image.Rectangle, f layout.CutFrame, c color.NRGBA) {
	outer := image.Rect(
		cut.Min.X-f.Extension-f.Width,
		cut.Min.Y-f.Extension-f.Width,
		cut.Max.X+f.Extension+f.Width,
		cut.Max.Y+f.Extension+f.Width,
	)
	inner := image.Rect(
		cut.Min.X-f.Extension,
		cut.Min.Y-f.Extension,
		cut.Max.X+f.Extension,
		cut.Max.Y+f.Extension,
	)

	fillRect(canvas, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), c) // top
	fillRect(canvas, image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), c) // bottom
	fillRect(canvas, image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c) // left
	fillRect(canvas, image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), c) // right
}

// drawTestPattern fills the band with an alternating checker of squares.
func drawTestPattern(canvas *image.NRGBA, band image.Rectangle, p TestPattern, c color.NRGBA) {
	if p.SquareX <= 0 || p.SquareY <= 0 {
		return
	}
	stepX := p.SquareX + p.GapX
	stepY := p.SquareY + p.GapY

	row := 0
	for y := band.Min.Y; y+p.SquareY <= band.Max.Y; y += stepY {
		col := 0
		for x := band.Min.X; x+p.SquareX <= band.Max.X; x += stepX {
			if (row+col)%2 == 0 {
				fillRect(canvas, image.Rect(x, y, x+p.SquareX, y+p.SquareY), c)
			}
			col++
		}
		row++
	}
}

// fillRect fills a rectangle on the canvas, clipped to its bounds.
func fillRect(canvas *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(canvas.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := canvas.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			canvas.Pix[i+0] = c.R
			canvas.Pix[i+1] = c.G
			canvas.Pix[i+2] = c.B
			canvas.Pix[i+3] = c.A
			i += 4
		}
	}
}
