package printer

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"
)

// Receipt page size in millimetres.
const (
	PageWidthMM  = 80.0
	PageHeightMM = 200.0
	pageMarginMM = 4.0
)

// RenderPDF writes a single 80x200mm page holding the document as one raster image,
// scaled to the page width and shrunk further if it would overflow the page height.
func RenderPDF(w io.Writer, doc *Document) error {
	img := RasterizeImage(doc)

	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return fmt.Errorf("printer: failed to encode receipt image: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidthMM, Ht: PageHeightMM},
	})
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("receipt", opts, &raster)

	bounds := img.Bounds()
	maxW := PageWidthMM - 2*pageMarginMM
	maxH := PageHeightMM - 2*pageMarginMM
	imgW, imgH := fitImage(float64(bounds.Dx()), float64(bounds.Dy()), maxW, maxH)
	x := (PageWidthMM - imgW) / 2

	pdf.ImageOptions("receipt", x, pageMarginMM, imgW, imgH, false, opts, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("printer: failed to write pdf: %w", err)
	}
	return nil
}

// fitImage scales a px-sized image to maxW, then down again if it exceeds maxH.
func fitImage(pxW, pxH, maxW, maxH float64) (float64, float64) {
	if pxW <= 0 || pxH <= 0 {
		return maxW, 0
	}
	w := maxW
	h := w * pxH / pxW
	if h > maxH {
		h = maxH
		w = h * pxW / pxH
	}
	return w, h
}
