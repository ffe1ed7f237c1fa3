package encoder

import (
	rscqr "rsc.io/qr"
)

// RSC encodes with rsc.io/qr.
type RSC struct{}

func (RSC) Name() string { return "rsc" }

func (RSC) Encode(content string, level Level) (*Matrix, error) {
	code, err := rscqr.Encode(content, rscLevel(level))
	if err != nil {
		return nil, encodeError("rsc", err)
	}

	m := NewMatrix(code.Size)
	for row := 0; row < code.Size; row++ {
		for col := 0; col < code.Size; col++ {
			m.Set(row, col, code.Black(col, row))
		}
	}
	return m, nil
}

func rscLevel(l Level) rscqr.Level {
	switch l {
	case LevelM:
		return rscqr.M
	case LevelQ:
		return rscqr.Q
	case LevelH:
		return rscqr.H
	}
	return rscqr.L
}
