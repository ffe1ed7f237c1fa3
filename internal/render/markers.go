package render

const (
	markerSize = 7
	holeStart  = 2
	holeEnd    = 5 // exclusive
)

// IsPositionMarker reports whether module (row, col) of an n×n code belongs
// to one of the three finder patterns: the 7×7 squares at the top-left,
// top-right and bottom-left corners, excluding each square's inner 3×3 core.
func IsPositionMarker(row, col, n int) bool {
	origins := [3][2]int{
		{0, 0},
		{0, n - markerSize},
		{n - markerSize, 0},
	}
	for _, o := range origins {
		r, c := row-o[0], col-o[1]
		if r < 0 || c < 0 || r >= markerSize || c >= markerSize {
			continue
		}
		inHole := r >= holeStart && r < holeEnd && c >= holeStart && c < holeEnd
		return !inHole
	}
	return false
}
