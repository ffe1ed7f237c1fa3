package render

import (
	"fmt"
	"image"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/encoder"
)

// Renderer runs the full drawing pipeline for one style.
type Renderer struct {
	style Style
	faces *Faces
}

// NewRenderer validates style and loads the caption fonts.
func NewRenderer(style Style) (*Renderer, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	faces, err := NewFaces()
	if err != nil {
		return nil, &domain.OpError{Op: "render.fonts", Kind: domain.KindRender, Err: err}
	}
	return &Renderer{style: style, faces: faces}, nil
}

// Style returns the style the renderer draws with.
func (r *Renderer) Style() Style { return r.style }

// Compose draws m, resizes it, rounds the corners, adds logo (may be nil)
// and, if captions are enabled, the caption lines.
func (r *Renderer) Compose(m *encoder.Matrix, logo image.Image, lines []string) (image.Image, error) {
	if m == nil || m.Size == 0 {
		return nil, &domain.OpError{
			Op:   "render.compose",
			Kind: domain.KindRender,
			Err:  fmt.Errorf("%w: empty matrix", domain.ErrRender),
		}
	}

	img := DrawModules(m, r.style)
	img = Resize(img, r.style.Size)
	img = RoundCorners(img, r.style.CornerRadius)
	img = OverlayLogo(img, logo, r.style.LogoScale)

	if !r.style.Caption.Enabled {
		return img, nil
	}
	out, err := AddCaption(img, lines, r.style.Caption, r.faces)
	if err != nil {
		return nil, &domain.OpError{Op: "render.caption", Kind: domain.KindRender, Err: err}
	}
	return out, nil
}
