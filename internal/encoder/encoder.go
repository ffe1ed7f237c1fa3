// Package encoder turns a string into a QR module matrix. The actual
// encoding is done by third-party libraries; each backend only adapts the
// library's output to Matrix.
package encoder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arran4/event-barcodes/internal/domain"
)

// Level is the error correction level.
type Level int

const (
	LevelL Level = iota
	LevelM
	LevelQ
	LevelH
)

func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel accepts L, M, Q or H in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L", "LOW":
		return LevelL, nil
	case "M", "MEDIUM":
		return LevelM, nil
	case "Q", "QUARTILE":
		return LevelQ, nil
	case "H", "HIGH":
		return LevelH, nil
	}
	return LevelL, &domain.OpError{
		Op:   "encoder.parse_level",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("unknown error correction level %q", s),
	}
}

// Matrix is a square grid of modules without quiet zone.
type Matrix struct {
	Size int
	dark []bool
}

// NewMatrix returns an all-light matrix of n×n modules.
func NewMatrix(n int) *Matrix {
	return &Matrix{Size: n, dark: make([]bool, n*n)}
}

// Dark reports whether the module at row, col is set. Positions outside the
// matrix are light.
func (m *Matrix) Dark(row, col int) bool {
	if row < 0 || col < 0 || row >= m.Size || col >= m.Size {
		return false
	}
	return m.dark[row*m.Size+col]
}

// Set marks the module at row, col.
func (m *Matrix) Set(row, col int, dark bool) {
	if row < 0 || col < 0 || row >= m.Size || col >= m.Size {
		return
	}
	m.dark[row*m.Size+col] = dark
}

// Encoder produces a module matrix for content.
type Encoder interface {
	Name() string
	Encode(content string, level Level) (*Matrix, error)
}

// Default is the backend used when none is configured.
const Default = "boombuler"

var backends = map[string]func() Encoder{
	"boombuler": func() Encoder { return Boombuler{} },
	"skip2":     func() Encoder { return Skip2{} },
	"rsc":       func() Encoder { return RSC{} },
}

// Names lists the registered backends.
func Names() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the named backend. An empty name selects Default.
func New(name string) (Encoder, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := backends[strings.ToLower(name)]
	if !ok {
		return nil, &domain.OpError{
			Op:   "encoder.new",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unknown encoder %q (have %s)", name, strings.Join(Names(), ", ")),
		}
	}
	return ctor(), nil
}

func encodeError(backend string, err error) error {
	return &domain.OpError{
		Op:   "encoder." + backend,
		Kind: domain.KindRender,
		Err:  err,
	}
}
