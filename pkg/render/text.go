package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText renders a single line of text with its bottom-left corner at
// anchor. The bitmap face is rasterized once and nearest-scaled to the
// requested glyph height so the output stays crisp at print resolution.
func drawText(canvas *image.NRGBA, anchor image.Point, text string, height int, c color.NRGBA) {
	if height <= 0 {
		height = basicfont.Face7x13.Height
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	if width <= 0 {
		return
	}

	line := image.NewNRGBA(image.Rect(0, 0, width, face.Height))
	d := font.Drawer{
		Dst:  line,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	if height != face.Height {
		scaledW := width * height / face.Height
		if scaledW < 1 {
			scaledW = 1
		}
		line = imaging.Resize(line, scaledW, height, imaging.NearestNeighbor)
	}

	pos := image.Pt(anchor.X, anchor.Y-line.Bounds().Dy())
	copyOver(canvas, line, pos)
}

// copyOver composites src over canvas at pos, honoring src alpha.
func copyOver(canvas, src *image.NRGBA, pos image.Point) {
	r := src.Bounds().Add(pos).Intersect(canvas.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X-pos.X, y-pos.Y)
		di := canvas.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			a := uint32(src.Pix[si+3])
			if a == 255 {
				copy(canvas.Pix[di:di+4], src.Pix[si:si+4])
			} else if a > 0 {
				inv := 255 - a
				canvas.Pix[di+0] = uint8((uint32(src.Pix[si+0])*a + uint32(canvas.Pix[di+0])*inv) / 255)
				canvas.Pix[di+1] = uint8((uint32(src.Pix[si+1])*a + uint32(canvas.Pix[di+1])*inv) / 255)
				canvas.Pix[di+2] = uint8((uint32(src.Pix[si+2])*a + uint32(canvas.Pix[di+2])*inv) / 255)
				canvas.Pix[di+3] = uint8(255 - (inv*(255-uint32(canvas.Pix[di+3])))/255)
			}
			si += 4
			di += 4
		}
	}
}
