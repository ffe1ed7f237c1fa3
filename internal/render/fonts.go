package render

import (
	"fmt"

	"github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Weight picks between the embedded Go fonts.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// Faces hands out font faces, parsing each embedded TTF once and creating
// each weight/size pair once.
type Faces struct {
	fonts map[Weight]*opentype.Font
	cache *cache.Cache
}

// NewFaces parses the embedded Go Regular and Go Bold fonts.
func NewFaces() (*Faces, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse goregular TTF: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse gobold TTF: %w", err)
	}

	return &Faces{
		fonts: map[Weight]*opentype.Font{Regular: regular, Bold: bold},
		cache: cache.New(cache.NoExpiration, 0),
	}, nil
}

// Face returns the face for weight at size points (72 DPI, so points equal pixels).
func (f *Faces) Face(weight Weight, size float64) (font.Face, error) {
	key := fmt.Sprintf("%d:%.2f", weight, size)
	if face, ok := f.cache.Get(key); ok {
		return face.(font.Face), nil
	}

	fnt, ok := f.fonts[weight]
	if !ok {
		return nil, fmt.Errorf("unknown font weight %d", weight)
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face (weight=%d size=%.1f): %w", weight, size, err)
	}

	f.cache.Set(key, face, cache.NoExpiration)
	return face, nil
}
