package printer

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	fontSizePt = 11
	lineHeight = 15
	marginPx   = 10
)

var (
	monoOnce sync.Once
	monoFont *opentype.Font
)

// newFace returns a Go Mono face, which covers Latin-1 including ¥.
// Faces are not safe for concurrent use, so each render gets its own.
func newFace() font.Face {
	monoOnce.Do(func() {
		f, err := opentype.Parse(gomono.TTF)
		if err == nil {
			monoFont = f
		}
	})
	if monoFont == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(monoFont, &opentype.FaceOptions{
		Size:    fontSizePt,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// RasterizeImage draws the document in black monospace on a white canvas 300px wide.
func RasterizeImage(doc *Document) *image.RGBA {
	face := newFace()
	defer face.Close()

	glyphWidth := 7
	if adv, ok := face.GlyphAdvance('0'); ok {
		glyphWidth = adv.Ceil()
	}
	ascent := face.Metrics().Ascent.Ceil()

	lines := doc.Lines()
	height := 2*marginPx + len(lines)*lineHeight
	img := image.NewRGBA(image.Rect(0, 0, PrintWidthPx, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	// center the text column when the document is narrower than the canvas
	left := (PrintWidthPx - doc.Width()*glyphWidth) / 2
	if left < 0 {
		left = 0
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	for i, l := range lines {
		if l.Text == "" {
			continue
		}
		x := left + doc.Offset(l)*glyphWidth
		baseline := marginPx + i*lineHeight + ascent
		drawer.Dot = fixed.P(x, baseline)
		drawer.DrawString(l.Text)
		if l.Bold {
			drawer.Dot = fixed.P(x+1, baseline)
			drawer.DrawString(l.Text)
		}
	}

	return img
}

// RenderPNG writes the document as a PNG image.
func RenderPNG(w io.Writer, doc *Document) error {
	return png.Encode(w, RasterizeImage(doc))
}
