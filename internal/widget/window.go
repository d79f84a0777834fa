// Package widget implements the spatial interaction primitives: a
// grabbable floating window and a rotary knob. Both are frame-driven
// state machines; the host calls Update exactly once per display frame
// with that frame's input snapshot.
package widget

import (
	"fmt"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
)

// GrabState is the window's interaction state. Exactly one holds at a
// time.
type GrabState int

const (
	Idle GrabState = iota
	Grabbed
	Resetting
)

func (s GrabState) String() string {
	switch s {
	case Grabbed:
		return "grabbed"
	case Resetting:
		return "resetting"
	default:
		return "idle"
	}
}

// fallbackForward stands in for the head forward direction when its
// horizontal projection degenerates (viewer looking straight up or
// down).
var fallbackForward = mathx.Vec3{Z: -1}

// WindowParams configures a Window. All fields must be positive.
type WindowParams struct {
	// GrabDistance is the palm-to-window radius within which a pinch
	// grabs the window, in meters.
	GrabDistance float64
	// ResetDelay is the idle time before the window glides back in
	// front of the viewer, in seconds.
	ResetDelay float64
	// ResetEpsilon is the distance at which a reset glide is considered
	// converged, in meters.
	ResetEpsilon float64
	// LerpSpeed is the exponential-decay rate of the glide, per second.
	LerpSpeed float64
	// ResetOffset is how far in front of the viewer the window comes to
	// rest, in meters.
	ResetOffset float64
	// Width and Height size the window quad, for drawing and layout.
	Width, Height float64
}

func DefaultWindowParams() WindowParams {
	return WindowParams{
		GrabDistance: 0.1,
		ResetDelay:   60,
		ResetEpsilon: 0.01,
		LerpSpeed:    5,
		ResetOffset:  0.5,
		Width:        0.3,
		Height:       0.2,
	}
}

func (p WindowParams) validate() error {
	fields := map[string]float64{
		"grab distance": p.GrabDistance,
		"reset delay":   p.ResetDelay,
		"reset epsilon": p.ResetEpsilon,
		"lerp speed":    p.LerpSpeed,
		"reset offset":  p.ResetOffset,
		"width":         p.Width,
		"height":        p.Height,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("window %s must be positive, got %f", name, v)
		}
	}
	return nil
}

// Window is a world-anchored panel that can be pinch-grabbed and
// dragged, and that glides back in front of the viewer after sitting
// idle.
type Window struct {
	Position    mathx.Vec3
	Orientation mathx.Quat

	params WindowParams
	state  GrabState
	hand   input.Handedness

	idleElapsed float64
	lastHand    mathx.Vec3
	target      mathx.Vec3
}

func NewWindow(position mathx.Vec3, params WindowParams) (*Window, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Window{
		Position:    position,
		Orientation: mathx.QuatIdentity(),
		params:      params,
	}, nil
}

func (w *Window) Params() WindowParams { return w.params }
func (w *Window) State() GrabState     { return w.state }

// IdleFor reports seconds since the last release. It only accumulates
// while idle.
func (w *Window) IdleFor() float64 { return w.idleElapsed }

// GrabbedBy returns the holding hand while grabbed.
func (w *Window) GrabbedBy() (input.Handedness, bool) {
	return w.hand, w.state == Grabbed
}

// Target returns the glide destination while resetting.
func (w *Window) Target() (mathx.Vec3, bool) {
	return w.target, w.state == Resetting
}

// Update advances the window one frame. Drag is delta-based: the window
// moves by the palm's motion since the previous frame, so a grab that
// starts off-center never snaps the window to the palm.
func (w *Window) Update(f *input.Frame) {
	if w.state == Grabbed {
		h := f.Hand(w.hand)
		if h.Tracked && h.PinchActive {
			w.Position = w.Position.Add(h.PalmPosition.Sub(w.lastHand))
			w.lastHand = h.PalmPosition
			return
		}
		// Tracking loss is an implicit release.
		w.state = Idle
		w.idleElapsed = 0
	}

	if hd, ok := pickHand(f, func(h *input.Hand) bool {
		return palmGrab(h, w.Position, w.params.GrabDistance)
	}); ok {
		w.state = Grabbed
		w.hand = hd
		w.lastHand = f.Hand(hd).PalmPosition
		w.idleElapsed = 0
		return
	}

	switch w.state {
	case Idle:
		w.idleElapsed += f.DT
		if w.idleElapsed >= w.params.ResetDelay {
			w.state = Resetting
			w.target = resetTarget(f.Head, w.params.ResetOffset)
		}
	case Resetting:
		w.Position = w.Position.Lerp(w.target, mathx.DampFactor(w.params.LerpSpeed, f.DT))
		if w.Position.Distance(w.target) < w.params.ResetEpsilon {
			w.state = Idle
			w.idleElapsed = 0
		}
	}
}

// resetTarget anchors the window to the viewer's horizontal gaze
// direction at the instant the idle threshold is crossed. It is
// computed once per reset episode.
func resetTarget(head input.Head, offset float64) mathx.Vec3 {
	fwd := head.Forward.Horizontal().Normalize()
	if fwd.LengthSq() == 0 {
		fwd = fallbackForward
	}
	return head.Position.Add(fwd.Scale(offset))
}
