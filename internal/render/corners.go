package render

import (
	"image"

	"github.com/fogleman/gg"
)

// RoundCorners clips img to a rounded rectangle; the corners become fully
// transparent. A radius of zero returns img unchanged.
func RoundCorners(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	radius = min(radius, float64(min(w, h))/2)
	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), radius)
	dc.Clip()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image()
}
