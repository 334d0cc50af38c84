package grid

import "math"

// Metrics are the geometry numbers derived from a container width: the pitch
// of rows and columns and the offsets that translate pointer coordinates
// into the table's row/column space.
type Metrics struct {
	RowHeight float64
	ColWidth  float64
	StartX    float64
	OffsetX   float64
	OffsetY   float64
}

// Grid is the dense row×column lookup table mapping grid slots to DayCell
// IDs. It is built once per layout change and treated as an immutable
// snapshot by every hit test that follows.
type Grid struct {
	table    [][]string
	topo     Topology
	cellSize float64
	spacing  float64
}

// Topology returns the topology the grid was built against.
func (g *Grid) Topology() Topology {
	return g.topo
}

// Build constructs the hit-test grid and its metrics for an ordered list of
// day cells. Returns ok = false when the container width is not positive; the
// caller must keep using its previous grid until a valid width arrives. An
// empty cell list yields a valid zero-row grid, not a failure.
func Build(cells []DayCell, topo Topology, containerWidth float64, mode Mode) (*Grid, Metrics, bool) {
	if containerWidth <= 0 {
		return nil, Metrics{}, false
	}

	perRow := topo.CellsPerRow
	spacing := mode.DotSpacing()
	itemSpacing := (containerWidth - 2*HorizontalPadding - float64(perRow-1)*spacing) / float64(perRow)

	colWidth := itemSpacing + spacing
	startX := itemSpacing / 2
	m := Metrics{
		RowHeight: mode.CellSize() + spacing,
		ColWidth:  colWidth,
		StartX:    startX,
		OffsetX:   startX - colWidth/2,
		OffsetY:   0,
	}

	rows := topo.TotalRows
	if len(cells) == 0 {
		rows = 0
	}
	table := make([][]string, rows)
	for i := range table {
		table[i] = make([]string, perRow)
	}
	for i, cell := range cells {
		row, col := topo.Position(i)
		table[row][col] = cell.ID
	}

	g := &Grid{table: table, topo: topo, cellSize: mode.CellSize(), spacing: spacing}
	if len(cells) == 0 {
		g.topo.TotalRows = 0
	}
	return g, m, true
}

// CellAt resolves a pointer location to the DayCell ID under it, or "" when
// the point lands outside the grid or on a leading empty slot. The location
// is in the grid's local coordinate space, already translated past any outer
// header chrome. Never allocates; called once per pointer-move event.
func (g *Grid) CellAt(x, y float64, m Metrics) string {
	adjustedX := x - m.OffsetX
	// Dots draw centered on their nominal row position rather than
	// top-aligned, so nudge the probe down by half a cell.
	adjustedY := y - m.OffsetY + g.spacing/2 + g.cellSize/2

	row := int(math.Floor(adjustedY / m.RowHeight))
	if row < 0 {
		row = 0
	}
	col := int(math.Floor(adjustedX / m.ColWidth))
	if col < 0 {
		col = 0
	}

	if row >= g.topo.TotalRows || col >= g.topo.CellsPerRow {
		return ""
	}
	return g.table[row][col]
}

// CellCenter returns the nominal center point of the cell at an item index,
// the inverse of CellAt for occupied slots.
func (g *Grid) CellCenter(index int, m Metrics) (x, y float64) {
	row, col := g.topo.Position(index)
	x = m.OffsetX + float64(col)*m.ColWidth + m.ColWidth/2
	y = m.OffsetY + float64(row)*m.RowHeight - g.spacing/2 - g.cellSize/2 + m.RowHeight/2
	return x, y
}
