package widget

import (
	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
)

// handOrder fixes grab priority: the dominant hand wins when both
// qualify in the same frame.
var handOrder = [2]input.Handedness{input.Right, input.Left}

// palmGrab reports whether a hand holds a pinch with its palm within
// dist of center. Absence of a grab is a normal outcome, not an error.
func palmGrab(h *input.Hand, center mathx.Vec3, dist float64) bool {
	return h.Tracked && h.PinchActive && h.PalmPosition.Distance(center) < dist
}

// pickHand returns the first hand, in priority order, satisfying the
// predicate.
func pickHand(f *input.Frame, qualifies func(*input.Hand) bool) (input.Handedness, bool) {
	for _, hd := range handOrder {
		if qualifies(f.Hand(hd)) {
			return hd, true
		}
	}
	return input.Right, false
}
