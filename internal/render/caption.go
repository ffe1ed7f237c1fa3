package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	maxCaptionLines = 2
	captionLineGap  = 8
	captionFill     = 0.92 // share of the width text may occupy
	minFontSize     = 8
)

type captionLine struct {
	text   string
	weight Weight
	size   float64
	height float64
}

// AddCaption extends img downward by the caption band and draws up to two
// centred lines in it. Transparent pixels of img are flattened onto white.
// With no lines img is returned unchanged.
func AddCaption(img image.Image, lines []string, cs CaptionStyle, faces *Faces) (image.Image, error) {
	if len(lines) == 0 {
		return img, nil
	}
	if len(lines) > maxCaptionLines {
		lines = lines[:maxCaptionLines]
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dc := gg.NewContext(w, h+cs.Height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)

	maxWidth := float64(w) * captionFill
	laid := make([]captionLine, 0, len(lines))
	total := 0.0
	for i, text := range lines {
		cl := captionLine{text: text, weight: Bold, size: cs.FontSize}
		if i > 0 {
			cl.weight, cl.size = Regular, cs.SecondaryFontSize
		}

		face, err := faces.Face(cl.weight, cl.size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		tw, th := dc.MeasureString(text)
		if tw > maxWidth {
			cl.size = max(minFontSize, cl.size*maxWidth/tw)
			if face, err = faces.Face(cl.weight, cl.size); err != nil {
				return nil, err
			}
			dc.SetFontFace(face)
			_, th = dc.MeasureString(text)
		}
		cl.height = th
		total += th
		laid = append(laid, cl)
	}
	total += captionLineGap * float64(len(laid)-1)

	dc.SetColor(color.Black)
	cx := float64(w) / 2
	y := float64(h) + (float64(cs.Height)-total)/2
	for i, cl := range laid {
		face, err := faces.Face(cl.weight, cl.size)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)

		cy := y + cl.height/2
		if i == 0 && cs.Heavy {
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					dc.DrawStringAnchored(cl.text, cx+float64(dx), cy+float64(dy), 0.5, 0.5)
				}
			}
		} else {
			dc.DrawStringAnchored(cl.text, cx, cy, 0.5, 0.5)
		}
		y += cl.height + captionLineGap
	}

	return dc.Image(), nil
}
