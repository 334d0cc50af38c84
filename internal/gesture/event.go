// Package gesture turns raw pointer and pinch events into highlight,
// selection, and density-mode changes. The controller is a finite state
// machine with three mutually exclusive states (idle, scrubbing, pinching);
// every event has a defined outcome from every state, and side effects are
// emitted as requests for the host to execute, never performed inline.
package gesture

import "github.com/chris-regnier/dotdiary/internal/grid"

// Event is the closed union of raw input events consumed by the controller.
// Locations are in the grid's local coordinate space.
type Event interface {
	isEvent()
}

// Press begins a scrub: a continuous press that previews cells under the
// finger until released.
type Press struct {
	X, Y float64
}

// Move updates an in-flight scrub with a new pointer location.
type Move struct {
	X, Y float64
}

// Release ends a scrub, committing the current highlight as the selection.
type Release struct{}

// Tap is a discrete press-and-release that selects a cell directly.
type Tap struct {
	X, Y float64
}

// PinchBegin starts a pinch, cancelling any in-flight scrub.
type PinchBegin struct{}

// PinchEnd completes a pinch with the final scale factor.
type PinchEnd struct {
	Scale float64
}

func (Press) isEvent()      {}
func (Move) isEvent()       {}
func (Release) isEvent()    {}
func (Tap) isEvent()        {}
func (PinchBegin) isEvent() {}
func (PinchEnd) isEvent()   {}

// Anchor says where a scroll-to request should place the target cell.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorTop
)

// Effect is the closed union of side-effect requests emitted by the
// controller. The host dispatches them; the state machine stays free of
// layout and scrolling concerns.
type Effect interface {
	isEffect()
}

// ScrollTo asks the host to scroll the cell with the given ID into view.
// An empty ID with AnchorTop means the top of the grid.
type ScrollTo struct {
	ID     string
	Anchor Anchor
}

// ModeSwitch asks the density controller to change modes.
type ModeSwitch struct {
	To grid.Mode
}

func (ScrollTo) isEffect()   {}
func (ModeSwitch) isEffect() {}
