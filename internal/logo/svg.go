package logo

import (
	"fmt"
	"image"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// rasterizeSVG draws the SVG at path into a size×size RGBA, keeping the
// aspect ratio of its view box and centring it.
func rasterizeSVG(path string, size int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h := icon.ViewBox.W, icon.ViewBox.H
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}
	scale := float64(size) / max(w, h)
	tw, th := w*scale, h*scale
	icon.SetTarget((float64(size)-tw)/2, (float64(size)-th)/2, tw, th)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}
