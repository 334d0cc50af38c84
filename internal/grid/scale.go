package grid

import "math"

// Proximity scaling: dots near the current highlight swell continuously and
// decay back to normal size with grid distance.
const (
	// MaxScale is the scale factor at the highlighted cell itself.
	MaxScale = 1.5
	// MaxScaleDistance is the grid distance at which scaling decays to 1.
	MaxScaleDistance = 2.5
)

// NoHighlight marks the absence of a highlighted cell index.
const NoHighlight = -1

// ProximityScale returns the visual scale factor for the cell at
// candidateIndex given the cell at highlightIndex (NoHighlight for none).
// Distance is Chebyshev with a half-step diagonal penalty, a cheap
// approximation that weights diagonal neighbors above axis neighbors
// without a square root.
func ProximityScale(highlightIndex, candidateIndex, cellsPerRow int) float64 {
	if highlightIndex == NoHighlight {
		return 1.0
	}

	rowDiff := abs(candidateIndex/cellsPerRow - highlightIndex/cellsPerRow)
	colDiff := abs(candidateIndex%cellsPerRow - highlightIndex%cellsPerRow)

	var distance float64
	switch {
	case rowDiff == 0 && colDiff == 0:
		distance = 0
	case rowDiff == 0 || colDiff == 0:
		distance = float64(max(rowDiff, colDiff))
	default:
		distance = float64(max(rowDiff, colDiff)) + 0.5*float64(min(rowDiff, colDiff))
	}

	if distance > MaxScaleDistance {
		return 1.0
	}
	return 1.0 + (MaxScale-1.0)*(1.0-distance/MaxScaleDistance)
}

// ScaleWindow returns the inclusive row/col bounds of cells whose scale can
// differ from 1 around a highlight, so per-frame recomputation stays bounded
// regardless of year length. Rows are clamped to [0, totalRows); columns to
// [0, cellsPerRow).
func ScaleWindow(highlightIndex, cellsPerRow, totalRows int) (rowLo, rowHi, colLo, colHi int) {
	reach := int(math.Ceil(MaxScaleDistance))

	row := highlightIndex / cellsPerRow
	col := highlightIndex % cellsPerRow

	rowLo = max(row-reach, 0)
	rowHi = min(row+reach, totalRows-1)
	colLo = max(col-reach, 0)
	colHi = min(col+reach, cellsPerRow-1)
	return rowLo, rowHi, colLo, colHi
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
