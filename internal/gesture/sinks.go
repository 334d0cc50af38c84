package gesture

import (
	"fmt"
	"io"

	"github.com/chris-regnier/dotdiary/internal/grid"
)

// Haptic is a feedback intensity token.
type Haptic int

const (
	HapticLight Haptic = iota
	HapticMedium
)

// Haptics receives feedback requests. Implementations are fire-and-forget
// and must never block the caller.
type Haptics interface {
	Emit(h Haptic)
}

// Analytics is notified of mode toggles and completed scrub gestures.
// Fire-and-forget.
type Analytics interface {
	ModeToggled(from, to grid.Mode)
	ScrubEnded(selected string)
}

// NopHaptics discards all feedback requests.
type NopHaptics struct{}

func (NopHaptics) Emit(Haptic) {}

// NopAnalytics discards all notifications.
type NopAnalytics struct{}

func (NopAnalytics) ModeToggled(from, to grid.Mode) {}
func (NopAnalytics) ScrubEnded(selected string)     {}

// BellHaptics maps haptic tokens onto the terminal: medium rings the bell,
// light stays silent (a bell per scrubbed cell would be noise).
type BellHaptics struct {
	W io.Writer
}

func (b BellHaptics) Emit(h Haptic) {
	if h == HapticMedium && b.W != nil {
		fmt.Fprint(b.W, "\a")
	}
}

// LogAnalytics writes one line per event to W.
type LogAnalytics struct {
	W io.Writer
}

func (l LogAnalytics) ModeToggled(from, to grid.Mode) {
	if l.W != nil {
		fmt.Fprintf(l.W, "mode_toggled from=%s to=%s\n", from, to)
	}
}

func (l LogAnalytics) ScrubEnded(selected string) {
	if l.W != nil {
		fmt.Fprintf(l.W, "scrub_ended selected=%s\n", selected)
	}
}
