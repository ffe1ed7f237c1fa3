// Package sheet lays generated codes out on printable A4 pages.
package sheet

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/arran4/event-barcodes/internal/domain"
	"github.com/arran4/event-barcodes/internal/render"
)

// A4 in inches.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// Item is one cell on a sheet.
type Item struct {
	Image image.Image
	Label string
	Note  string // smaller wrapped text under the label
}

// Options controls the page layout.
type Options struct {
	Columns     int
	RowsPerPage int
	Title       string
	Footer      string  // encoded as a QR code and printed at the page foot; empty for none
	DPI         float64 // 300 when zero
}

func (o Options) withDefaults() Options {
	if o.Columns < 1 {
		o.Columns = 4
	}
	if o.RowsPerPage < 1 {
		o.RowsPerPage = 5
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	return o
}

// RenderPages draws items onto as many A4 pages as needed.
func RenderPages(items []Item, opts Options) ([]image.Image, error) {
	if len(items) == 0 {
		return nil, &domain.OpError{Op: "sheet.render", Kind: domain.KindInvalidInput, Err: fmt.Errorf("nothing to lay out")}
	}
	opts = opts.withDefaults()

	faces, err := render.NewFaces()
	if err != nil {
		return nil, &domain.OpError{Op: "sheet.fonts", Kind: domain.KindRender, Err: err}
	}

	perPage := opts.Columns * opts.RowsPerPage
	pageCount := (len(items) + perPage - 1) / perPage
	pages := make([]image.Image, 0, pageCount)
	for p := 0; p < pageCount; p++ {
		end := min((p+1)*perPage, len(items))
		title := opts.Title
		if title != "" && pageCount > 1 {
			title = fmt.Sprintf("%s (%d/%d)", title, p+1, pageCount)
		}

		page, err := renderPage(items[p*perPage:end], title, opts, faces)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func renderPage(items []Item, title string, opts Options, faces *render.Faces) (image.Image, error) {
	k := opts.DPI / 300
	width := int(a4WidthInches * opts.DPI)
	height := int(a4HeightInches * opts.DPI)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(canvas)

	// Background
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	margin := 80.0 * k

	if title != "" {
		face, err := faces.Face(render.Bold, 48*k)
		if err != nil {
			return nil, err
		}
		dc.SetColor(color.Black)
		dc.SetFontFace(face)
		dc.DrawStringAnchored(title, float64(width)/2, margin/2, 0.5, 0.5)
	}

	footerSize := 0.0
	if opts.Footer != "" {
		footerSize = math.Min(float64(width)*0.18, margin*2.5)
	}

	top := margin
	bottom := float64(height) - margin - footerSize
	left := margin
	right := float64(width) - margin

	cellWidth := (right - left) / float64(opts.Columns)
	cellHeight := (bottom - top) / float64(opts.RowsPerPage)
	labelSpace := 90.0 * k

	labelFace, err := faces.Face(render.Bold, 30*k)
	if err != nil {
		return nil, err
	}
	noteFace, err := faces.Face(render.Regular, 20*k)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		col := i % opts.Columns
		row := i / opts.Columns

		x := left + float64(col)*cellWidth
		y := top + float64(row)*cellHeight
		cx := x + cellWidth/2

		// Light cell boundary
		dc.SetLineWidth(2 * k)
		dc.SetColor(color.RGBA{R: 230, G: 230, B: 230, A: 255})
		dc.DrawRectangle(x, y, cellWidth, cellHeight)
		dc.Stroke()

		// Fit the image into the cell above the label band, keeping its aspect ratio.
		imgBottom := y + 6*k
		if item.Image != nil {
			b := item.Image.Bounds()
			scale := math.Min((cellWidth-16*k)/float64(b.Dx()), (cellHeight-labelSpace-12*k)/float64(b.Dy()))
			w := int(float64(b.Dx()) * scale)
			h := int(float64(b.Dy()) * scale)
			bx := int(cx) - w/2
			by := int(y + 6*k)
			dst := image.Rect(bx, by, bx+w, by+h)
			xdraw.CatmullRom.Scale(canvas, dst, item.Image, b, xdraw.Over, nil)
			imgBottom = float64(by + h)
		}

		// Label under image
		labelY := imgBottom + 8*k
		dc.SetColor(color.Black)
		dc.SetFontFace(labelFace)
		dc.DrawStringAnchored(item.Label, cx, labelY, 0.5, 1)

		// Note under label
		if item.Note != "" {
			dc.SetFontFace(noteFace)
			dc.DrawStringWrapped(item.Note, x+6*k, labelY+36*k, 0, 0, cellWidth-12*k, 1.3, gg.AlignCenter)
		}
	}

	if opts.Footer != "" {
		if err := drawFooter(dc, opts.Footer, footerSize, margin, faces, k); err != nil {
			return nil, err
		}
	}

	return canvas, nil
}

// drawFooter puts a QR code for text above the bottom margin with the text under it.
func drawFooter(dc *gg.Context, text string, size, margin float64, faces *render.Faces, k float64) error {
	raw, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		return &domain.OpError{Op: "sheet.footer", Kind: domain.KindRender, Err: err}
	}
	px := int(size * 0.8)
	scaled, err := barcode.Scale(raw, px, px)
	if err != nil {
		return &domain.OpError{Op: "sheet.footer", Kind: domain.KindRender, Err: err}
	}

	width, height := float64(dc.Width()), float64(dc.Height())
	fbX := width/2 - float64(scaled.Bounds().Dx())/2
	fbY := height - margin - size + 10*k
	dc.DrawImage(scaled, int(fbX), int(fbY))

	face, err := faces.Face(render.Regular, 22*k)
	if err != nil {
		return err
	}
	dc.SetColor(color.Black)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, width/2, height-margin/2, 0.5, 0.5)
	return nil
}
