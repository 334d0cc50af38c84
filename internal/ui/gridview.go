package ui

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/gesture"
	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
)

// StorageProvider abstracts storage operations for the TUI.
type StorageProvider interface {
	DayCounts(year int) (map[string]int, error)
	List(opts storage.ListOptions) ([]entry.Entry, error)
}

// TUIConfig carries resolved configuration into the grid TUI.
type TUIConfig struct {
	Theme     Theme
	MaxWidth  int
	Bell      bool
	WeekStart grid.WeekStart
	Density   grid.Mode
	Year      int
	YearFloor int
	Analytics gesture.Analytics
}

const (
	headerHeight = 2 // year line + weekday labels
	footerHeight = 1
)

// Synthetic pinch scales for the zoom keys, chosen to clear the mode-switch
// thresholds in each direction.
const (
	pinchInScale  = 0.8
	pinchOutScale = 1.3
)

// scroller implements gesture.ScrollHost over the grid's visual lines. The
// terminal has no scroll animation, so requests complete synchronously; the
// done callback still fires so the mode controller's sequencing contract
// holds. Line positions are resolved against the mode controller's current
// cells: year and mode changes issue their return scroll before the view
// model rebuilds its own caches, so the scroller must not rely on those.
type scroller struct {
	mc     *gesture.ModeController
	top    int // first visible grid line
	height int // visible grid lines
}

func (s *scroller) ScrollTo(id string, anchor gesture.Anchor, done func()) {
	defer done()
	if id == "" {
		if anchor == gesture.AnchorTop {
			s.top = 0
		}
		return
	}
	line, ok := s.lineOf(id)
	if !ok {
		return
	}
	switch anchor {
	case gesture.AnchorTop:
		s.top = line
	default:
		s.top = line - s.height/2
	}
	s.clamp()
}

func (s *scroller) lineOf(id string) (int, bool) {
	g := s.mc.Grid()
	if g == nil {
		return 0, false
	}
	for idx, c := range s.mc.Cells() {
		if c.ID == id {
			_, y := g.CellCenter(idx, s.mc.Metrics())
			return int(math.Round(y)), true
		}
	}
	return 0, false
}

// totalLines is the line just past the last cell's center.
func (s *scroller) totalLines() int {
	g := s.mc.Grid()
	cells := s.mc.Cells()
	if g == nil || len(cells) == 0 {
		return 0
	}
	_, y := g.CellCenter(len(cells)-1, s.mc.Metrics())
	return int(math.Round(y)) + 1
}

func (s *scroller) scrollBy(delta int) {
	s.top += delta
	s.clamp()
}

func (s *scroller) clamp() {
	if max := s.totalLines() - s.height; s.top > max {
		s.top = max
	}
	if s.top < 0 {
		s.top = 0
	}
}

type countsLoadedMsg struct {
	year   int
	counts map[string]int
	err    error
}

type dayLoadedMsg struct {
	id      string
	date    time.Time
	entries []entry.Entry
	err     error
}

// gridModel is the Bubble Tea model for the year-grid browser.
type gridModel struct {
	store StorageProvider
	cfg   TUIConfig

	mc   *gesture.ModeController
	ctrl *gesture.Controller
	scr  *scroller

	index  map[string]int // cell ID -> item index
	counts map[string]int
	today  string

	width  int
	height int
	ready  bool
	err    error

	// Mouse adaptation: a press only becomes a scrub once the pointer
	// moves; a press released in place is a tap.
	pressed  bool
	dragging bool
	pressX   float64
	pressY   float64

	// Preview pane for the selected day
	preview     viewport.Model
	previewOpen bool
	previewDay  string
	previewDate time.Time
	previewLen  int
}

func newGridModel(store StorageProvider, cfg TUIConfig) gridModel {
	scr := &scroller{}

	var haptics gesture.Haptics
	if cfg.Bell {
		haptics = gesture.BellHaptics{W: os.Stdout}
	}

	mc := gesture.NewModeController(gesture.ModeControllerOptions{
		Mode:      cfg.Density,
		Year:      cfg.Year,
		YearFloor: cfg.YearFloor,
		WeekStart: cfg.WeekStart,
		Scroll:    scr,
		Analytics: cfg.Analytics,
	})
	scr.mc = mc

	ctrl := gesture.NewController(mc, haptics, cfg.Analytics)
	mc.Attach(ctrl)

	return gridModel{
		store:  store,
		cfg:    cfg,
		mc:     mc,
		ctrl:   ctrl,
		scr:    scr,
		index:  map[string]int{},
		counts: map[string]int{},
		today:  grid.CellID(time.Now()),
	}
}

func (m gridModel) Init() tea.Cmd {
	return m.loadCountsCmd(m.mc.Year())
}

func (m gridModel) loadCountsCmd(year int) tea.Cmd {
	return func() tea.Msg {
		counts, err := m.store.DayCounts(year)
		return countsLoadedMsg{year: year, counts: counts, err: err}
	}
}

func (m gridModel) loadDayCmd(id string, date time.Time) tea.Cmd {
	return func() tea.Msg {
		day := grid.NormalizeDate(date)
		entries, err := m.store.List(storage.ListOptions{Date: &day})
		return dayLoadedMsg{id: id, date: day, entries: entries, err: err}
	}
}

func (m gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.year == m.mc.Year() {
			m.counts = msg.counts
		}
		return m, nil

	case dayLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if msg.id != m.ctrl.Selection() {
			return m, nil // stale load, selection moved on
		}
		m.previewDay = msg.id
		m.previewDate = msg.date
		m.previewLen = len(msg.entries)
		m.previewOpen = true
		m.layout()
		m.preview.SetContent(m.renderDay(msg.entries))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.mc.SetContainerWidth(float64(m.contentWidth()))
		m.rebuildIndex()
		m.layout()
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m gridModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready {
		return m, nil
	}
	gx := float64(msg.X)
	gy := float64(msg.Y-headerHeight) + float64(m.scr.top)

	var effects []gesture.Effect
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonWheelUp {
			m.scr.scrollBy(-2)
			return m, nil
		}
		if msg.Button == tea.MouseButtonWheelDown {
			m.scr.scrollBy(2)
			return m, nil
		}
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.pressed = true
		m.dragging = false
		m.pressX, m.pressY = gx, gy

	case tea.MouseActionMotion:
		if !m.pressed {
			return m, nil
		}
		if !m.dragging {
			m.dragging = true
			effects = append(effects, m.ctrl.Handle(gesture.Press{X: m.pressX, Y: m.pressY})...)
		}
		effects = append(effects, m.ctrl.Handle(gesture.Move{X: gx, Y: gy})...)

	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		if m.dragging {
			effects = m.ctrl.Handle(gesture.Release{})
		} else {
			effects = m.ctrl.Handle(gesture.Tap{X: gx, Y: gy})
		}
		m.pressed = false
		m.dragging = false
	}

	return m.applyEffects(effects)
}

func (m gridModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "-":
		return m.applyEffects(m.pinch(pinchInScale))
	case "+", "=":
		return m.applyEffects(m.pinch(pinchOutScale))

	case "[":
		return m.changeYear(m.mc.Year() - 1)
	case "]":
		return m.changeYear(m.mc.Year() + 1)

	case "t":
		now := time.Now()
		if m.mc.Year() != now.Year() {
			return m.changeYear(now.Year())
		}
		m.mc.RequestScroll(grid.CellID(now), gesture.AnchorCenter)
		return m, nil

	case "enter":
		if sel := m.ctrl.Selection(); sel != "" {
			if idx, ok := m.index[sel]; ok {
				return m, m.loadDayCmd(sel, m.mc.Cells()[idx].Date)
			}
		}
		return m, nil

	case "esc":
		if m.previewOpen {
			m.previewOpen = false
			m.layout()
		}
		return m, nil

	case "up", "k":
		m.scr.scrollBy(-1)
		return m, nil
	case "down", "j":
		m.scr.scrollBy(1)
		return m, nil
	case "pgup":
		m.scr.scrollBy(-m.scr.height)
		return m, nil
	case "pgdown":
		m.scr.scrollBy(m.scr.height)
		return m, nil
	}

	if m.previewOpen {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pinch synthesizes a full pinch gesture for the zoom keys.
func (m gridModel) pinch(scale float64) []gesture.Effect {
	effects := m.ctrl.Handle(gesture.PinchBegin{})
	return append(effects, m.ctrl.Handle(gesture.PinchEnd{Scale: scale})...)
}

func (m gridModel) applyEffects(effects []gesture.Effect) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case gesture.ScrollTo:
			m.mc.RequestScroll(e.ID, e.Anchor)
			// A committed selection refreshes the preview pane.
			if m.previewOpen && e.ID != "" && e.ID == m.ctrl.Selection() {
				if idx, ok := m.index[e.ID]; ok {
					cmds = append(cmds, m.loadDayCmd(e.ID, m.mc.Cells()[idx].Date))
				}
			}
		case gesture.ModeSwitch:
			m.mc.SetMode(e.To)
			m.rebuildIndex()
			m.layout()
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *gridModel) changeYear(year int) (tea.Model, tea.Cmd) {
	m.mc.SetYear(year)
	m.rebuildIndex()
	m.previewOpen = false
	m.layout()
	return *m, m.loadCountsCmd(m.mc.Year())
}

// rebuildIndex refreshes the ID -> index map after any rebuild of the
// underlying grid.
func (m *gridModel) rebuildIndex() {
	cells := m.mc.Cells()
	index := make(map[string]int, len(cells))
	for i, c := range cells {
		index[c.ID] = i
	}
	m.index = index
}

func (m *gridModel) layout() {
	gridHeight := m.height - headerHeight - footerHeight
	if m.previewOpen {
		paneHeight := m.previewPaneHeight()
		gridHeight -= paneHeight
		m.preview = viewport.New(m.contentWidth()-2, paneHeight-3) // borders + title
	}
	if gridHeight < 1 {
		gridHeight = 1
	}
	m.scr.height = gridHeight
	m.scr.clamp()
}

func (m *gridModel) previewPaneHeight() int {
	h := m.height * 4 / 10
	if h < 5 {
		h = 5
	}
	return h
}

// contentWidth returns the effective content width, respecting MaxWidth.
func (m *gridModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

func (m gridModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderWeekdays())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	if m.previewOpen {
		b.WriteString(m.renderPreviewPane())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m gridModel) renderHeader() string {
	total := 0
	for _, c := range m.counts {
		total += c
	}
	label := "entries"
	if total == 1 {
		label = "entry"
	}
	return m.cfg.Theme.HeaderStyle().Render(
		fmt.Sprintf("%d · %s · %d %s", m.mc.Year(), m.mc.Mode(), total, label))
}

func (m gridModel) renderWeekdays() string {
	if !m.mc.Mode().AlignsWeekday() {
		return ""
	}
	names := []string{"S", "M", "T", "W", "T", "F", "S"}
	offset := m.mc.WeekStart().Offset()

	metrics := m.mc.Metrics()
	var b strings.Builder
	for col := 0; col < m.mc.Topology().CellsPerRow; col++ {
		x := int(math.Round(metrics.OffsetX + float64(col)*metrics.ColWidth + metrics.ColWidth/2))
		for b.Len() < x {
			b.WriteByte(' ')
		}
		b.WriteString(names[(col+offset)%7])
	}
	return m.cfg.Theme.HelpStyle().Render(b.String())
}

func (m gridModel) renderGrid() string {
	g := m.mc.Grid()
	cells := m.mc.Cells()
	lines := make([]string, m.scr.height)
	if g == nil || len(cells) == 0 {
		return strings.Join(lines, "\n") + "\n"
	}

	topo := m.mc.Topology()
	metrics := m.mc.Metrics()
	highlight := m.ctrl.Highlight()
	highlightIdx := grid.NoHighlight
	var win scaleWindow
	if idx, ok := m.index[highlight]; ok && highlight != "" {
		highlightIdx = idx
		win.active = true
		win.rowLo, win.rowHi, win.colLo, win.colHi =
			grid.ScaleWindow(highlightIdx, topo.CellsPerRow, topo.TotalRows)
	}

	for row := 0; row < topo.TotalRows; row++ {
		first := topo.Index(row, 0)
		if first < 0 {
			first = 0
		}
		if first >= len(cells) {
			break
		}
		_, y := g.CellCenter(first, metrics)
		line := int(math.Round(y)) - m.scr.top
		if line < 0 || line >= m.scr.height {
			continue
		}
		lines[line] = m.renderRow(row, topo, metrics, cells, highlightIdx, win)
	}

	return strings.Join(lines, "\n") + "\n"
}

// scaleWindow bounds the cells whose proximity scale can differ from 1, so
// the per-frame scale pass touches a fixed neighborhood of the highlight
// instead of the whole year.
type scaleWindow struct {
	active                     bool
	rowLo, rowHi, colLo, colHi int
}

func (w scaleWindow) contains(row, col int) bool {
	return w.active && row >= w.rowLo && row <= w.rowHi && col >= w.colLo && col <= w.colHi
}

func (m gridModel) renderRow(row int, topo grid.Topology, metrics grid.Metrics, cells []grid.DayCell, highlightIdx int, win scaleWindow) string {
	var b strings.Builder
	width := 0
	for col := 0; col < topo.CellsPerRow; col++ {
		idx := topo.Index(row, col)
		if idx < 0 || idx >= len(cells) {
			continue
		}
		x := int(math.Round(metrics.OffsetX + float64(col)*metrics.ColWidth + metrics.ColWidth/2))
		for width < x {
			b.WriteByte(' ')
			width++
		}
		scale := 1.0
		if win.contains(row, col) {
			scale = grid.ProximityScale(highlightIdx, idx, topo.CellsPerRow)
		}
		b.WriteString(m.renderDot(idx, cells[idx], highlightIdx, scale))
		width++
	}
	return b.String()
}

// filledGlyph picks the resting glyph for a day with entries from the mode's
// preview dot size relative to its cell.
func filledGlyph(mode grid.Mode) string {
	if mode.PreviewSize() > mode.CellSize()/2 {
		return "•"
	}
	return "∙"
}

func (m gridModel) renderDot(idx int, cell grid.DayCell, highlightIdx int, scale float64) string {
	count := m.counts[cell.ID]

	glyph := "·"
	switch {
	case scale >= 1.35:
		glyph = "●"
	case scale >= 1.1:
		glyph = "•"
	case count > 0:
		glyph = filledGlyph(m.mc.Mode())
	}

	theme := m.cfg.Theme
	var style = theme.EmptyDotStyle()
	switch {
	case idx == highlightIdx:
		style = theme.HighlightDotStyle()
	case cell.ID == m.ctrl.Selection():
		style = theme.SelectedDotStyle()
	case cell.ID == m.today && m.mc.Year() == time.Now().Year():
		style = theme.TodayDotStyle()
	case count > 0:
		style = theme.FilledDotStyle(count)
	}
	return style.Render(glyph)
}

func (m gridModel) renderPreviewPane() string {
	label := "entries"
	if m.previewLen == 1 {
		label = "entry"
	}
	title := m.cfg.Theme.HeaderStyle().Render(
		fmt.Sprintf("%s · %d %s", m.previewDate.Format("2006-01-02"), m.previewLen, label))
	pane := m.cfg.Theme.PaneStyle().Width(m.contentWidth() - 2).Render(title + "\n" + m.preview.View())
	return pane
}

func (m gridModel) renderDay(entries []entry.Entry) string {
	if len(entries) == 0 {
		return "Nothing on this day."
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s · %s\n\n", e.ID, e.CreatedAt.Local().Format("15:04"))
		b.WriteString(RenderMarkdownWithStyle(e.Content, m.contentWidth()-4, m.cfg.Theme.MarkdownStyle))
	}
	return b.String()
}

func (m gridModel) renderFooter() string {
	return m.cfg.Theme.HelpStyle().Render(
		"drag scrub · click pick · -/+ density · [ ] year · t today · enter open · esc close · q quit")
}

// RunGrid launches the year-grid TUI.
func RunGrid(store StorageProvider, cfg TUIConfig) error {
	m := newGridModel(store, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if gm, ok := final.(gridModel); ok && gm.err != nil {
		return gm.err
	}
	return nil
}
