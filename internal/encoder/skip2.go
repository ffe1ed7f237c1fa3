package encoder

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Skip2 encodes with github.com/skip2/go-qrcode.
type Skip2 struct{}

func (Skip2) Name() string { return "skip2" }

func (Skip2) Encode(content string, level Level) (*Matrix, error) {
	code, err := qrcode.New(content, skip2Level(level))
	if err != nil {
		return nil, encodeError("skip2", err)
	}
	code.DisableBorder = true

	bitmap := code.Bitmap()
	m := NewMatrix(len(bitmap))
	for row := range bitmap {
		for col, dark := range bitmap[row] {
			m.Set(row, col, dark)
		}
	}
	return m, nil
}

func skip2Level(l Level) qrcode.RecoveryLevel {
	switch l {
	case LevelM:
		return qrcode.Medium
	case LevelQ:
		return qrcode.High
	case LevelH:
		return qrcode.Highest
	}
	return qrcode.Low
}
