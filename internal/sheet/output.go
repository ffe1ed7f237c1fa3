package sheet

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/signintech/gopdf"

	"github.com/arran4/event-barcodes/internal/batch"
	"github.com/arran4/event-barcodes/internal/domain"
)

// FromManifest loads the images listed in a manifest from dir.
func FromManifest(dir string, m batch.Manifest) ([]Item, error) {
	items := make([]Item, 0, len(m.Entries))
	for _, e := range m.Entries {
		path := filepath.Join(dir, e.File)
		img, err := imaging.Open(path)
		if err != nil {
			return nil, &domain.OpError{Op: "sheet.load", Kind: domain.KindNotFound, Path: path, Err: err}
		}
		label := e.Name
		if label == "" {
			label = e.ID
		}
		items = append(items, Item{Image: img, Label: label, Note: e.Group})
	}
	return items, nil
}

// WritePNG saves each page as dir/sheet-N.png.
func WritePNG(dir string, pages []image.Image) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &domain.OpError{Op: "sheet.write_png", Kind: domain.KindIO, Path: dir, Err: err}
	}
	paths := make([]string, 0, len(pages))
	for i, page := range pages {
		path := filepath.Join(dir, fmt.Sprintf("sheet-%d.png", i+1))
		if err := imaging.Save(page, path); err != nil {
			return nil, &domain.OpError{Op: "sheet.write_png", Kind: domain.KindIO, Path: path, Err: err}
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// WritePDF writes all pages into one A4 PDF at path.
func WritePDF(path string, pages []image.Image) error {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	for i, page := range pages {
		pdf.AddPage()
		if err := pdf.ImageFrom(page, 0, 0, gopdf.PageSizeA4); err != nil {
			return &domain.OpError{Op: "sheet.write_pdf", Kind: domain.KindRender, Path: path, Err: fmt.Errorf("page %d: %w", i+1, err)}
		}
	}
	if err := pdf.WritePdf(path); err != nil {
		return &domain.OpError{Op: "sheet.write_pdf", Kind: domain.KindIO, Path: path, Err: err}
	}
	return nil
}
