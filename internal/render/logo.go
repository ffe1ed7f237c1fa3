package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// logoPadding is the white ring around the logo, as a fraction of its diameter.
const logoPadding = 0.08

// OverlayLogo center-crops logo to a square, scales it to scale × the width of
// img and pastes it as a circle on a white disc in the middle of img.
func OverlayLogo(img, logo image.Image, scale float64) image.Image {
	if logo == nil {
		return img
	}

	b := img.Bounds()
	d := int(float64(b.Dx()) * scale)
	if d < 1 {
		return img
	}
	fitted := imaging.Fill(logo, d, d, imaging.Center, imaging.Lanczos)

	dc := gg.NewContextForImage(img)
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	r := float64(d) / 2

	dc.SetColor(color.White)
	dc.DrawCircle(cx, cy, r+float64(d)*logoPadding)
	dc.Fill()

	dc.DrawCircle(cx, cy, r)
	dc.Clip()
	dc.DrawImageAnchored(fitted, int(cx), int(cy), 0.5, 0.5)
	dc.ResetClip()

	return dc.Image()
}
