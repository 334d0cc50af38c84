package grid

import "fmt"

// Mode is a density mode: one of two fixed layout configurations for the
// year grid. Compact shows a week per row with large dots for browsing the
// current period; Dense packs the whole year into small dots for overview.
type Mode int

const (
	Compact Mode = iota
	Dense
)

// Fixed layout parameters per mode, in terminal cells. Row pitch (cell size
// plus spacing) stays integral so dot rows land on whole terminal lines.
const (
	compactCellsPerRow = 7
	compactCellSize    = 1.0
	compactPreviewSize = 0.8
	compactDotSpacing  = 1.0

	denseCellsPerRow = 19
	denseCellSize    = 1.0
	densePreviewSize = 0.5
	denseDotSpacing  = 0.0
)

// HorizontalPadding is the inset on each side of the grid, shared by both
// modes so a mode switch does not shift the grid's outer edges.
const HorizontalPadding = 2.0

// CellsPerRow returns the number of day cells per grid row.
func (m Mode) CellsPerRow() int {
	if m == Dense {
		return denseCellsPerRow
	}
	return compactCellsPerRow
}

// CellSize returns the nominal dot size for the mode.
func (m Mode) CellSize() float64 {
	if m == Dense {
		return denseCellSize
	}
	return compactCellSize
}

// PreviewSize returns the drawing-preview size rendered inside a dot.
func (m Mode) PreviewSize() float64 {
	if m == Dense {
		return densePreviewSize
	}
	return compactPreviewSize
}

// DotSpacing returns the gap between adjacent dots.
func (m Mode) DotSpacing() float64 {
	if m == Dense {
		return denseDotSpacing
	}
	return compactDotSpacing
}

// AlignsWeekday reports whether the mode aligns the first day of the year
// under its weekday column. Dense mode packs rows with no leading slots.
func (m Mode) AlignsWeekday() bool {
	return m == Compact
}

func (m Mode) String() string {
	if m == Dense {
		return "dense"
	}
	return "compact"
}

// ParseMode parses a mode name as used in config files.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compact", "":
		return Compact, nil
	case "dense":
		return Dense, nil
	}
	return Compact, fmt.Errorf("unknown density mode: %q", s)
}
