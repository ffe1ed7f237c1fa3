// Package logo resolves logo keys to images in a directory. Raster formats
// are decoded with imaging (PNG, JPEG, GIF, BMP, TIFF) and SVG files are
// rasterised. Each key is loaded once per Store.
package logo

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"

	"github.com/arran4/event-barcodes/internal/domain"
)

// Extensions tried, in order, when a key has none.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".svg"}

// SVGSize is the edge length SVG logos are rasterised at.
const SVGSize = 512

// Store loads logos from Dir.
type Store struct {
	Dir   string
	cache *cache.Cache
}

// NewStore returns a store reading from dir.
func NewStore(dir string) *Store {
	return &Store{
		Dir:   dir,
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the logo for key. An empty key yields a nil image and no error.
func (s *Store) Get(key string) (image.Image, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, nil
	}
	if img, ok := s.cache.Get(key); ok {
		return img.(image.Image), nil
	}

	path, err := s.Resolve(key)
	if err != nil {
		return nil, err
	}

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err = rasterizeSVG(path, SVGSize)
	} else {
		img, err = imaging.Open(path, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "logo.decode",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}

	s.cache.Set(key, img, cache.NoExpiration)
	return img, nil
}

// Resolve maps key to an existing file in Dir. Keys are plain names; path
// separators and parent references are rejected.
func (s *Store) Resolve(key string) (string, error) {
	if key != filepath.Base(key) || key == "." || key == ".." {
		return "", &domain.OpError{
			Op:   "logo.resolve",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("logo key %q must be a plain file name", key),
		}
	}

	candidates := []string{key}
	if filepath.Ext(key) == "" {
		candidates = candidates[:0]
		for _, ext := range Extensions {
			candidates = append(candidates, key+ext)
		}
	}

	for _, name := range candidates {
		path := filepath.Join(s.Dir, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", &domain.OpError{Op: "logo.resolve", Kind: domain.KindIO, Path: path, Err: err}
		}
	}

	return "", &domain.OpError{
		Op:   "logo.resolve",
		Kind: domain.KindNotFound,
		Path: filepath.Join(s.Dir, key),
		Err:  domain.ErrNotFound,
	}
}
