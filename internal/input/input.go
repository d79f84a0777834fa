// Package input defines the per-frame tracking snapshot consumed by the
// interaction controllers. Controllers never reach into a live tracking
// service; the host samples hands and head once per frame and passes the
// snapshot in, so the core stays testable with synthetic frames.
package input

import "github.com/nkotova/spatialui/internal/mathx"

// Handedness selects a tracked hand. Right is the dominant hand and is
// always evaluated first when both hands qualify for a grab.
type Handedness int

const (
	Right Handedness = iota
	Left
)

func (h Handedness) String() string {
	if h == Left {
		return "left"
	}
	return "right"
}

// Hand is one hand's tracking sample for a single frame.
type Hand struct {
	Tracked       bool
	PinchActive   bool
	PinchStarted  bool
	PinchEnded    bool
	PalmPosition  mathx.Vec3
	PinchPosition mathx.Vec3
}

// Head is the viewer's head sample. Forward must be unit length.
type Head struct {
	Position mathx.Vec3
	Forward  mathx.Vec3
}

// Frame is one display frame's worth of input. DT is the frame delta in
// seconds and must be >= 0.
type Frame struct {
	Hands [2]Hand
	Head  Head
	DT    float64
}

func (f *Frame) Hand(h Handedness) *Hand {
	return &f.Hands[h]
}
