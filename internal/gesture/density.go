package gesture

import (
	"time"

	"github.com/chris-regnier/dotdiary/internal/grid"
)

// CellProvider supplies the ordered day-cell list for a year, sorted by date
// with no duplicate IDs.
type CellProvider interface {
	Cells(year int) []grid.DayCell
}

// CellProviderFunc adapts a function to the CellProvider interface.
type CellProviderFunc func(year int) []grid.DayCell

func (f CellProviderFunc) Cells(year int) []grid.DayCell {
	return f(year)
}

// ScrollHost executes scroll-to requests. The done callback must be invoked
// exactly once when the scroll (and any animation) completes; the mode
// controller sequences dependent scrolls on it rather than on a wall-clock
// delay. An empty id with AnchorTop scrolls to the top of the grid.
type ScrollHost interface {
	ScrollTo(id string, anchor Anchor, done func())
}

type scrollRequest struct {
	id     string
	anchor Anchor
}

// ModeController owns the density mode and year, and with them the hit-test
// grid: any change to mode, year, or container width invalidates the grid
// and forces a synchronous rebuild before the next hit test. It implements
// Surface for the gesture controller.
type ModeController struct {
	mode      grid.Mode
	year      int
	yearFloor int
	weekStart grid.WeekStart
	width     float64

	provider  CellProvider
	scroll    ScrollHost
	analytics Analytics
	now       func() time.Time

	ctrl *Controller

	cells   []grid.DayCell
	topo    grid.Topology
	grid    *grid.Grid
	metrics grid.Metrics

	scrolling bool
	pending   *scrollRequest
}

// ModeControllerOptions configures a ModeController.
type ModeControllerOptions struct {
	Mode      grid.Mode
	Year      int
	YearFloor int // earliest browsable year; 0 = no bound
	WeekStart grid.WeekStart
	Provider  CellProvider // nil = calendar days via grid.YearCells
	Scroll    ScrollHost   // nil = scroll requests dropped
	Analytics Analytics    // nil = no-op
	Now       func() time.Time
}

// NewModeController builds a controller holding the given mode and year.
// The grid is built lazily on the first valid container width.
func NewModeController(opts ModeControllerOptions) *ModeController {
	if opts.Provider == nil {
		opts.Provider = CellProviderFunc(grid.YearCells)
	}
	if opts.Analytics == nil {
		opts.Analytics = NopAnalytics{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Year == 0 {
		opts.Year = opts.Now().Year()
	}
	return &ModeController{
		mode:      opts.Mode,
		year:      opts.Year,
		yearFloor: opts.YearFloor,
		weekStart: opts.WeekStart,
		provider:  opts.Provider,
		scroll:    opts.Scroll,
		analytics: opts.Analytics,
		now:       opts.Now,
	}
}

// Attach wires the gesture controller whose transient state this controller
// clears on mode and year changes.
func (mc *ModeController) Attach(c *Controller) {
	mc.ctrl = c
}

// Mode returns the active density mode.
func (mc *ModeController) Mode() grid.Mode {
	return mc.mode
}

// Year returns the active year.
func (mc *ModeController) Year() int {
	return mc.year
}

// YearFloor returns the earliest browsable year (0 = unbounded).
func (mc *ModeController) YearFloor() int {
	return mc.yearFloor
}

// WeekStart returns the configured first day of the week.
func (mc *ModeController) WeekStart() grid.WeekStart {
	return mc.weekStart
}

// Topology returns the current grid topology.
func (mc *ModeController) Topology() grid.Topology {
	return mc.topo
}

// Metrics returns the current grid metrics.
func (mc *ModeController) Metrics() grid.Metrics {
	return mc.metrics
}

// Grid returns the current hit-test grid, or nil before the first valid
// build.
func (mc *ModeController) Grid() *grid.Grid {
	return mc.grid
}

// Cells returns the ordered day-cell list the grid was built from.
func (mc *ModeController) Cells() []grid.DayCell {
	return mc.cells
}

// CellAt resolves a pointer location through the current grid. If no valid
// grid exists yet it attempts one synchronous rebuild before giving up.
func (mc *ModeController) CellAt(x, y float64) string {
	if mc.grid == nil {
		mc.rebuild()
		if mc.grid == nil {
			return ""
		}
	}
	return mc.grid.CellAt(x, y, mc.metrics)
}

// SetMode switches density modes. The selection survives the switch; the
// highlight does not. The grid is rebuilt synchronously and a scroll is
// requested to keep the user's place.
func (mc *ModeController) SetMode(m grid.Mode) {
	if m == mc.mode {
		return
	}
	old := mc.mode
	mc.mode = m
	mc.analytics.ModeToggled(old, m)
	if mc.ctrl != nil {
		mc.ctrl.ClearHighlight()
	}
	mc.invalidate()
	mc.rebuild()
	mc.requestReturnScroll()
}

// SetYear switches years, clamped to the year floor. Unlike a mode switch, a
// year change clears the selection: the chosen day belongs to the old year.
func (mc *ModeController) SetYear(year int) {
	if mc.yearFloor != 0 && year < mc.yearFloor {
		year = mc.yearFloor
	}
	if year == mc.year {
		return
	}
	mc.year = year
	if mc.ctrl != nil {
		mc.ctrl.ClearHighlight()
		mc.ctrl.ClearSelection()
	}
	mc.invalidate()
	mc.rebuild()
	mc.requestReturnScroll()
}

// SetContainerWidth updates the container width from the host layout,
// rebuilding the grid. Non-positive widths are refused and the last good
// grid is retained, so transient zero-size layout passes never produce a
// garbage grid.
func (mc *ModeController) SetContainerWidth(width float64) {
	if width == mc.width {
		return
	}
	mc.width = width
	mc.rebuild()
}

// Refresh re-reads the cell list from the provider and rebuilds, for when
// the provider's data changed identity (e.g. new entries were written).
func (mc *ModeController) Refresh() {
	mc.invalidate()
	mc.rebuild()
}

func (mc *ModeController) invalidate() {
	mc.grid = nil
}

func (mc *ModeController) rebuild() {
	mc.topo = grid.LayoutYear(mc.year, mc.mode, mc.weekStart)
	mc.cells = mc.provider.Cells(mc.year)
	g, m, ok := grid.Build(mc.cells, mc.topo, mc.width, mc.mode)
	if !ok {
		// Width not valid yet: keep whatever grid we had.
		return
	}
	mc.grid = g
	mc.metrics = m
}

// requestReturnScroll issues the post-change scroll: the selection if one
// exists, today for the current real-world year, else the top of the grid.
func (mc *ModeController) requestReturnScroll() {
	if mc.ctrl != nil {
		if sel := mc.ctrl.Selection(); sel != "" {
			mc.RequestScroll(sel, AnchorCenter)
			return
		}
	}
	if mc.year == mc.now().Year() {
		mc.RequestScroll(grid.CellID(mc.now()), AnchorCenter)
		return
	}
	mc.RequestScroll("", AnchorTop)
}

// RequestScroll hands a scroll-to request to the host. Requests issued while
// one is in flight wait for its completion signal; only the latest waiter is
// kept, since each scroll supersedes the one before it.
func (mc *ModeController) RequestScroll(id string, anchor Anchor) {
	if mc.scroll == nil {
		return
	}
	if mc.scrolling {
		mc.pending = &scrollRequest{id: id, anchor: anchor}
		return
	}
	mc.scrolling = true
	mc.scroll.ScrollTo(id, anchor, mc.scrollDone)
}

func (mc *ModeController) scrollDone() {
	mc.scrolling = false
	if p := mc.pending; p != nil {
		mc.pending = nil
		mc.RequestScroll(p.id, p.anchor)
	}
}
