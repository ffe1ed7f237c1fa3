package encoder

import (
	"github.com/boombuler/barcode/qr"
)

// Boombuler encodes with github.com/boombuler/barcode.
type Boombuler struct{}

func (Boombuler) Name() string { return "boombuler" }

func (Boombuler) Encode(content string, level Level) (*Matrix, error) {
	code, err := qr.Encode(content, boombulerLevel(level), qr.Auto)
	if err != nil {
		return nil, encodeError("boombuler", err)
	}

	b := code.Bounds()
	m := NewMatrix(b.Dx())
	for row := 0; row < m.Size; row++ {
		for col := 0; col < m.Size; col++ {
			r, _, _, _ := code.At(b.Min.X+col, b.Min.Y+row).RGBA()
			m.Set(row, col, r < 0x8000)
		}
	}
	return m, nil
}

func boombulerLevel(l Level) qr.ErrorCorrectionLevel {
	switch l {
	case LevelM:
		return qr.M
	case LevelQ:
		return qr.Q
	case LevelH:
		return qr.H
	}
	return qr.L
}
