package gesture

import (
	"testing"

	"github.com/chris-regnier/dotdiary/internal/grid"
)

// stubSurface resolves hits from a fixed function and reports a fixed mode.
type stubSurface struct {
	mode  grid.Mode
	hitFn func(x, y float64) string
}

func (s *stubSurface) CellAt(x, y float64) string { return s.hitFn(x, y) }
func (s *stubSurface) Mode() grid.Mode            { return s.mode }

// columnSurface maps x to a cell ID per unit column, for scrub tests.
func columnSurface(mode grid.Mode) *stubSurface {
	return &stubSurface{
		mode: mode,
		hitFn: func(x, y float64) string {
			if x < 0 || y < 0 {
				return ""
			}
			return cellName(int(x))
		},
	}
}

func cellName(n int) string {
	return "cell" + string(rune('a'+n%26))
}

type recordingHaptics struct {
	emitted []Haptic
}

func (r *recordingHaptics) Emit(h Haptic) { r.emitted = append(r.emitted, h) }

type recordingAnalytics struct {
	toggles [][2]grid.Mode
	scrubs  []string
}

func (r *recordingAnalytics) ModeToggled(from, to grid.Mode) {
	r.toggles = append(r.toggles, [2]grid.Mode{from, to})
}

func (r *recordingAnalytics) ScrubEnded(selected string) {
	r.scrubs = append(r.scrubs, selected)
}

func TestPressEntersScrubbing(t *testing.T) {
	haptics := &recordingHaptics{}
	c := NewController(columnSurface(grid.Compact), haptics, nil)

	effects := c.Handle(Press{X: 2, Y: 0})
	if effects != nil {
		t.Errorf("press emitted effects: %v", effects)
	}
	if c.State() != StateScrubbing {
		t.Fatalf("state = %v, want scrubbing", c.State())
	}
	if c.Highlight() != cellName(2) {
		t.Errorf("highlight = %q, want %q", c.Highlight(), cellName(2))
	}
	if len(haptics.emitted) != 1 || haptics.emitted[0] != HapticMedium {
		t.Errorf("haptics = %v, want one medium", haptics.emitted)
	}
}

func TestPressClearsSelection(t *testing.T) {
	c := NewController(columnSurface(grid.Compact), nil, nil)
	c.Handle(Tap{X: 1, Y: 0})
	if c.Selection() == "" {
		t.Fatal("tap did not select")
	}

	c.Handle(Press{X: 5, Y: 0})
	if c.Selection() != "" {
		t.Errorf("selection survived press: %q", c.Selection())
	}
}

func TestPressMissStillScrubs(t *testing.T) {
	haptics := &recordingHaptics{}
	c := NewController(columnSurface(grid.Compact), haptics, nil)

	c.Handle(Press{X: -1, Y: 0})
	if c.State() != StateScrubbing {
		t.Fatalf("state = %v, want scrubbing", c.State())
	}
	if c.Highlight() != "" {
		t.Errorf("highlight = %q, want empty", c.Highlight())
	}
	if len(haptics.emitted) != 0 {
		t.Errorf("miss emitted haptics: %v", haptics.emitted)
	}
}

func TestScrubHapticsPerDistinctCell(t *testing.T) {
	// Three moves over three different cells emit exactly three light
	// haptics; a move staying on the same cell emits none.
	haptics := &recordingHaptics{}
	c := NewController(columnSurface(grid.Compact), haptics, nil)

	c.Handle(Press{X: -1, Y: 0}) // miss: scrub with no highlight yet
	c.Handle(Move{X: 1, Y: 0})
	c.Handle(Move{X: 1.4, Y: 0}) // same cell, no haptic
	c.Handle(Move{X: 2, Y: 0})
	c.Handle(Move{X: 3, Y: 0})

	light := 0
	for _, h := range haptics.emitted {
		if h == HapticLight {
			light++
		}
	}
	if light != 3 {
		t.Errorf("light haptics = %d, want 3 (%v)", light, haptics.emitted)
	}
	if c.Highlight() != cellName(3) {
		t.Errorf("highlight = %q, want %q", c.Highlight(), cellName(3))
	}
}

func TestMoveOffGridClearsHighlight(t *testing.T) {
	haptics := &recordingHaptics{}
	c := NewController(columnSurface(grid.Compact), haptics, nil)

	c.Handle(Press{X: 1, Y: 0})
	c.Handle(Move{X: -5, Y: 0})
	if c.Highlight() != "" {
		t.Errorf("highlight = %q, want empty off grid", c.Highlight())
	}
	// Leaving the grid is not a cell change worth feedback.
	for _, h := range haptics.emitted[1:] {
		if h == HapticLight {
			t.Errorf("light haptic emitted when leaving the grid")
		}
	}
}

func TestReleaseCommitsHighlight(t *testing.T) {
	analytics := &recordingAnalytics{}
	c := NewController(columnSurface(grid.Compact), nil, analytics)

	c.Handle(Press{X: 1, Y: 0})
	c.Handle(Move{X: 4, Y: 0})
	effects := c.Handle(Release{})

	if c.State() != StateIdle {
		t.Fatalf("state = %v, want idle", c.State())
	}
	if c.Selection() != cellName(4) {
		t.Errorf("selection = %q, want %q", c.Selection(), cellName(4))
	}
	if c.Highlight() != "" {
		t.Errorf("highlight = %q, want cleared", c.Highlight())
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %v, want one scroll", effects)
	}
	scroll, ok := effects[0].(ScrollTo)
	if !ok || scroll.ID != cellName(4) || scroll.Anchor != AnchorCenter {
		t.Errorf("effect = %#v, want centered scroll to %s", effects[0], cellName(4))
	}
	if len(analytics.scrubs) != 1 || analytics.scrubs[0] != cellName(4) {
		t.Errorf("scrub analytics = %v", analytics.scrubs)
	}
}

func TestReleaseWithoutHighlight(t *testing.T) {
	analytics := &recordingAnalytics{}
	c := NewController(columnSurface(grid.Compact), nil, analytics)

	c.Handle(Press{X: -1, Y: 0})
	effects := c.Handle(Release{})
	if effects != nil {
		t.Errorf("empty release emitted effects: %v", effects)
	}
	if c.Selection() != "" {
		t.Errorf("selection = %q, want empty", c.Selection())
	}
	if len(analytics.scrubs) != 0 {
		t.Errorf("scrub analytics on empty release: %v", analytics.scrubs)
	}
}

func TestTapSelects(t *testing.T) {
	haptics := &recordingHaptics{}
	c := NewController(columnSurface(grid.Compact), haptics, nil)

	effects := c.Handle(Tap{X: 3, Y: 0})
	if c.Selection() != cellName(3) {
		t.Errorf("selection = %q, want %q", c.Selection(), cellName(3))
	}
	if c.State() != StateIdle {
		t.Errorf("state = %v, want idle", c.State())
	}
	if len(effects) != 1 {
		t.Fatalf("effects = %v, want one scroll", effects)
	}
	if len(haptics.emitted) != 1 {
		t.Errorf("haptics = %v, want one", haptics.emitted)
	}
}

func TestTapIgnoredWhileScrubbing(t *testing.T) {
	c := NewController(columnSurface(grid.Compact), nil, nil)

	c.Handle(Press{X: 1, Y: 0})
	effects := c.Handle(Tap{X: 5, Y: 0})
	if effects != nil {
		t.Errorf("tap during scrub emitted effects: %v", effects)
	}
	if c.Highlight() != cellName(1) {
		t.Errorf("highlight disturbed by tap: %q", c.Highlight())
	}
	if c.Selection() != "" {
		t.Errorf("tap during scrub selected %q", c.Selection())
	}
}

func TestTapMissIsNoop(t *testing.T) {
	c := NewController(columnSurface(grid.Compact), nil, nil)
	if effects := c.Handle(Tap{X: -1, Y: 0}); effects != nil {
		t.Errorf("missed tap emitted effects: %v", effects)
	}
	if c.Selection() != "" {
		t.Errorf("missed tap selected %q", c.Selection())
	}
}

func TestPinchCancelsScrub(t *testing.T) {
	c := NewController(columnSurface(grid.Compact), nil, nil)

	c.Handle(Press{X: 1, Y: 0})
	c.Handle(PinchBegin{})
	if c.State() != StatePinching {
		t.Fatalf("state = %v, want pinching", c.State())
	}
	if c.Highlight() != "" {
		t.Errorf("highlight survived pinch: %q", c.Highlight())
	}

	// Moves are scrub events; they no-op while pinching.
	c.Handle(Move{X: 4, Y: 0})
	if c.Highlight() != "" {
		t.Errorf("move during pinch set highlight %q", c.Highlight())
	}
}

func TestPinchEndThresholds(t *testing.T) {
	cases := []struct {
		name       string
		mode       grid.Mode
		scale      float64
		wantSwitch bool
		wantTo     grid.Mode
	}{
		{"compact pinch in", grid.Compact, 0.85, true, grid.Dense},
		{"compact within band", grid.Compact, 0.95, false, 0},
		{"compact pinch out", grid.Compact, 1.5, false, 0},
		{"dense pinch out", grid.Dense, 1.3, true, grid.Compact},
		{"dense within band", grid.Dense, 1.1, false, 0},
		{"dense pinch in", grid.Dense, 0.5, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(columnSurface(tc.mode), nil, nil)
			c.Handle(PinchBegin{})
			effects := c.Handle(PinchEnd{Scale: tc.scale})

			if c.State() != StateIdle {
				t.Fatalf("state = %v, want idle", c.State())
			}
			if !tc.wantSwitch {
				if effects != nil {
					t.Fatalf("effects = %v, want none", effects)
				}
				return
			}
			if len(effects) != 1 {
				t.Fatalf("effects = %v, want one mode switch", effects)
			}
			sw, ok := effects[0].(ModeSwitch)
			if !ok || sw.To != tc.wantTo {
				t.Errorf("effect = %#v, want switch to %v", effects[0], tc.wantTo)
			}
		})
	}
}

func TestPinchEndWhileIdleIsNoop(t *testing.T) {
	c := NewController(columnSurface(grid.Compact), nil, nil)
	if effects := c.Handle(PinchEnd{Scale: 0.5}); effects != nil {
		t.Errorf("stray pinch end emitted effects: %v", effects)
	}
}
