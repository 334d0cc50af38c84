package gesture

import "github.com/chris-regnier/dotdiary/internal/grid"

// State is the controller's current gesture mode. Exactly one is active.
type State int

const (
	StateIdle State = iota
	StateScrubbing
	StatePinching
)

func (s State) String() string {
	switch s {
	case StateScrubbing:
		return "scrubbing"
	case StatePinching:
		return "pinching"
	}
	return "idle"
}

// Pinch scale thresholds for requesting a density-mode switch.
const (
	pinchInThreshold  = 0.9 // below this in Compact: switch to Dense
	pinchOutThreshold = 1.2 // above this in Dense: switch to Compact
)

// Surface is the controller's view of the grid it gestures over: coordinate
// resolution and the current density mode. The density controller implements
// it.
type Surface interface {
	CellAt(x, y float64) string
	Mode() grid.Mode
}

// Controller is the gesture state machine. It owns highlight and selection,
// resolves pointer locations through its Surface, and emits effects for the
// host to execute. All methods run on the event-handling goroutine; the
// controller does no locking.
type Controller struct {
	surface   Surface
	haptics   Haptics
	analytics Analytics

	state     State
	highlight string
	selection string
}

// NewController builds a controller over a surface with injected sinks.
// Nil sinks default to no-ops.
func NewController(surface Surface, haptics Haptics, analytics Analytics) *Controller {
	if haptics == nil {
		haptics = NopHaptics{}
	}
	if analytics == nil {
		analytics = NopAnalytics{}
	}
	return &Controller{surface: surface, haptics: haptics, analytics: analytics}
}

// State returns the active gesture state.
func (c *Controller) State() State {
	return c.state
}

// Highlight returns the cell under the finger during a scrub, or "" when no
// scrub is in flight. Non-empty only while State() == StateScrubbing.
func (c *Controller) Highlight() string {
	return c.highlight
}

// Selection returns the committed chosen cell, or "".
func (c *Controller) Selection() string {
	return c.selection
}

// ClearHighlight drops any in-flight highlight without ending the gesture.
func (c *Controller) ClearHighlight() {
	c.highlight = ""
}

// ClearSelection drops the committed selection.
func (c *Controller) ClearSelection() {
	c.selection = ""
}

// Handle runs one event through the transition table and returns the side
// effects the host should execute, in order. Unlisted (state, event) pairs
// are no-ops returning nil.
func (c *Controller) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case Press:
		return c.handlePress(e)
	case Move:
		return c.handleMove(e)
	case Release:
		return c.handleRelease()
	case Tap:
		return c.handleTap(e)
	case PinchBegin:
		return c.handlePinchBegin()
	case PinchEnd:
		return c.handlePinchEnd(e)
	}
	return nil
}

func (c *Controller) handlePress(e Press) []Effect {
	if c.state != StateIdle {
		return nil
	}
	c.selection = ""
	if id := c.surface.CellAt(e.X, e.Y); id != "" {
		c.haptics.Emit(HapticMedium)
		c.highlight = id
	}
	c.state = StateScrubbing
	return nil
}

func (c *Controller) handleMove(e Move) []Effect {
	if c.state != StateScrubbing {
		return nil
	}
	id := c.surface.CellAt(e.X, e.Y)
	if id != c.highlight {
		if id != "" {
			c.haptics.Emit(HapticLight)
		}
		c.highlight = id
	}
	return nil
}

func (c *Controller) handleRelease() []Effect {
	if c.state != StateScrubbing {
		return nil
	}
	c.state = StateIdle
	if c.highlight == "" {
		return nil
	}
	c.selection = c.highlight
	c.highlight = ""
	c.analytics.ScrubEnded(c.selection)
	return []Effect{ScrollTo{ID: c.selection, Anchor: AnchorCenter}}
}

func (c *Controller) handleTap(e Tap) []Effect {
	// Taps are ignored entirely while a scrub or pinch is active.
	if c.state != StateIdle {
		return nil
	}
	id := c.surface.CellAt(e.X, e.Y)
	if id == "" {
		return nil
	}
	c.selection = id
	c.haptics.Emit(HapticMedium)
	return []Effect{ScrollTo{ID: id, Anchor: AnchorCenter}}
}

func (c *Controller) handlePinchBegin() []Effect {
	if c.state == StatePinching {
		return nil
	}
	// Pinch and scrub are mutually exclusive: a pinch forcibly cancels any
	// in-flight scrub and its pending drag visuals.
	c.highlight = ""
	c.state = StatePinching
	return nil
}

func (c *Controller) handlePinchEnd(e PinchEnd) []Effect {
	if c.state != StatePinching {
		return nil
	}
	c.state = StateIdle

	mode := c.surface.Mode()
	switch {
	case e.Scale < pinchInThreshold && mode == grid.Compact:
		return []Effect{ModeSwitch{To: grid.Dense}}
	case e.Scale > pinchOutThreshold && mode == grid.Dense:
		return []Effect{ModeSwitch{To: grid.Compact}}
	}
	return nil
}
