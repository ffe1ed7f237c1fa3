// Package render draws a QR module matrix and decorates it with rounded
// position markers, rounded corners, a circular logo and a caption.
package render

import (
	"fmt"

	"github.com/arran4/event-barcodes/internal/domain"
)

// Style controls how a code is drawn. Sizes are in pixels unless noted.
type Style struct {
	Size          int     // final width and height of the code, 0 keeps the drawn size
	ModulePixels  int     // pixels per module before resizing
	BorderModules int     // quiet zone, in modules
	RoundMarkers  bool    // round the modules of the three position markers
	MarkerRadius  float64 // marker module radius as a fraction of ModulePixels
	CornerRadius  float64 // radius of the rounded outer corners, 0 for square
	LogoScale     float64 // logo diameter as a fraction of Size
	Caption       CaptionStyle
}

// CaptionStyle controls the text band under the code.
type CaptionStyle struct {
	Enabled           bool
	Height            int
	FontSize          float64
	SecondaryFontSize float64
	Heavy             bool // redraw the first line at 3x3 pixel offsets
}

// DefaultStyle matches the decorated student codes: 1000px, rounded markers,
// 50px corners and a 120px caption band.
func DefaultStyle() Style {
	return Style{
		Size:          1000,
		ModulePixels:  10,
		BorderModules: 4,
		RoundMarkers:  true,
		MarkerRadius:  0.3,
		CornerRadius:  50,
		LogoScale:     0.22,
		Caption: CaptionStyle{
			Enabled:           true,
			Height:            120,
			FontSize:          48,
			SecondaryFontSize: 32,
			Heavy:             true,
		},
	}
}

// Validate rejects styles that cannot be drawn.
func (s Style) Validate() error {
	var err error
	switch {
	case s.Size != 0 && s.Size < 64:
		err = fmt.Errorf("size %d is below 64px (use 0 to keep the drawn size)", s.Size)
	case s.ModulePixels < 1:
		err = fmt.Errorf("module_pixels must be positive, got %d", s.ModulePixels)
	case s.BorderModules < 0:
		err = fmt.Errorf("border_modules must not be negative, got %d", s.BorderModules)
	case s.MarkerRadius < 0 || s.MarkerRadius > 0.5:
		err = fmt.Errorf("marker_radius must be within [0, 0.5], got %g", s.MarkerRadius)
	case s.CornerRadius < 0:
		err = fmt.Errorf("corner_radius must not be negative, got %g", s.CornerRadius)
	case s.Size > 0 && s.CornerRadius > float64(s.Size)/2:
		err = fmt.Errorf("corner_radius must be within [0, %d], got %g", s.Size/2, s.CornerRadius)
	case s.LogoScale <= 0 || s.LogoScale > 0.4:
		err = fmt.Errorf("logo_scale must be within (0, 0.4], got %g", s.LogoScale)
	case s.Caption.Enabled && s.Caption.Height <= 0:
		err = fmt.Errorf("caption height must be positive, got %d", s.Caption.Height)
	case s.Caption.Enabled && (s.Caption.FontSize <= 0 || s.Caption.SecondaryFontSize <= 0):
		err = fmt.Errorf("caption font sizes must be positive")
	}
	if err != nil {
		return &domain.OpError{Op: "render.validate", Kind: domain.KindInvalidConfig, Err: err}
	}
	return nil
}
