package render

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/arran4/event-barcodes/internal/encoder"
)

// DrawModules paints the matrix black on white with a quiet zone. When
// RoundMarkers is set, modules inside the position markers are drawn as
// rounded squares.
func DrawModules(m *encoder.Matrix, s Style) image.Image {
	px := s.ModulePixels
	side := (m.Size + 2*s.BorderModules) * px

	dc := gg.NewContext(side, side)
	dc.SetColor(color.White)
	dc.Clear()

	dc.SetColor(color.Black)
	radius := float64(px) * s.MarkerRadius
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			if !m.Dark(row, col) {
				continue
			}
			x := float64((col + s.BorderModules) * px)
			y := float64((row + s.BorderModules) * px)
			if s.RoundMarkers && radius > 0 && IsPositionMarker(row, col, m.Size) {
				dc.DrawRoundedRectangle(x, y, float64(px), float64(px), radius)
			} else {
				dc.DrawRectangle(x, y, float64(px), float64(px))
			}
		}
	}
	dc.Fill()

	return dc.Image()
}

// Resize scales img to size×size with a Lanczos filter. A size of 0 keeps
// img as drawn, one block of ModulePixels per module.
func Resize(img image.Image, size int) image.Image {
	b := img.Bounds()
	if size <= 0 || (b.Dx() == size && b.Dy() == size) {
		return img
	}
	return imaging.Resize(img, size, size, imaging.Lanczos)
}
