package input

import "github.com/nkotova/spatialui/internal/mathx"

// Sample is a raw per-frame hand reading before pinch edges are derived.
// The zero value is an untracked hand.
type Sample struct {
	Tracked  bool
	Pinching bool
	Palm     mathx.Vec3
	Pinch    mathx.Vec3
}

// TrackedAt builds a tracked sample with palm and pinch point colocated,
// which is accurate enough for scripted scenarios and tests.
func TrackedAt(p mathx.Vec3, pinching bool) Sample {
	return Sample{Tracked: true, Pinching: pinching, Palm: p, Pinch: p}
}

// Script assembles a frame sequence from hand samples at a fixed frame
// delta, deriving PinchStarted/PinchEnded from consecutive samples.
type Script struct {
	dt     float64
	head   Head
	frames []Frame
	prev   [2]Sample
}

func NewScript(dt float64, head Head) *Script {
	return &Script{dt: dt, head: head}
}

// Step appends one frame with the given dominant-hand sample and an
// untracked left hand.
func (s *Script) Step(right Sample) {
	s.StepBoth(right, Sample{})
}

// StepBoth appends one frame with both hand samples.
func (s *Script) StepBoth(right, left Sample) {
	var f Frame
	f.DT = s.dt
	f.Head = s.head
	f.Hands[Right] = s.derive(Right, right)
	f.Hands[Left] = s.derive(Left, left)
	s.frames = append(s.frames, f)
	s.prev[Right] = right
	s.prev[Left] = left
}

// Hold appends n identical frames.
func (s *Script) Hold(right Sample, n int) {
	for i := 0; i < n; i++ {
		s.Step(right)
	}
}

func (s *Script) derive(h Handedness, cur Sample) Hand {
	prev := s.prev[h]
	wasPinching := prev.Tracked && prev.Pinching
	isPinching := cur.Tracked && cur.Pinching
	return Hand{
		Tracked:       cur.Tracked,
		PinchActive:   isPinching,
		PinchStarted:  isPinching && !wasPinching,
		PinchEnded:    !isPinching && wasPinching,
		PalmPosition:  cur.Palm,
		PinchPosition: cur.Pinch,
	}
}

func (s *Script) Frames() []Frame {
	return s.frames
}

func (s *Script) Len() int {
	return len(s.frames)
}
