package scenario

import (
	"math"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
)

// dialPoint returns a pinch point on the knob's dial circle, pulled in
// to 80% of the radius so it stays inside the interaction volume.
func dialPoint(knobPos mathx.Vec3, radius, angle float64) mathx.Vec3 {
	return knobPos.Add(mathx.Vec3{
		X: 0.8 * radius * math.Cos(angle),
		Y: 0.8 * radius * math.Sin(angle),
	})
}

// GrabDrag pinches the window, drags it along a two-leg path and lets
// go.
func GrabDrag(lay Layout) *Scenario {
	s := input.NewScript(lay.DT, lay.Head)
	grabAt := lay.WindowPos.Add(mathx.Vec3{X: 0.05})

	s.Hold(input.Sample{}, 5)
	s.Hold(input.TrackedAt(grabAt, true), 3)

	legA := grabAt.Add(mathx.Vec3{X: 0.25, Y: 0.10})
	for i := 1; i <= 30; i++ {
		s.Step(input.TrackedAt(grabAt.Lerp(legA, float64(i)/30), true))
	}
	legB := legA.Add(mathx.Vec3{Z: -0.15})
	for i := 1; i <= 20; i++ {
		s.Step(input.TrackedAt(legA.Lerp(legB, float64(i)/20), true))
	}

	s.Hold(input.TrackedAt(legB, false), 10)

	return &Scenario{
		Name:        "grab_drag",
		Description: "pinch the window, drag it along a path, release",
		Frames:      s.Frames(),
	}
}

// IdleReturn drags the window away, releases, and waits out the idle
// delay so the window glides back in front of the viewer.
func IdleReturn(lay Layout) *Scenario {
	s := input.NewScript(lay.DT, lay.Head)
	grabAt := lay.WindowPos

	s.Hold(input.TrackedAt(grabAt, true), 2)
	away := grabAt.Add(mathx.Vec3{X: 0.4, Y: -0.2})
	for i := 1; i <= 30; i++ {
		s.Step(input.TrackedAt(grabAt.Lerp(away, float64(i)/30), true))
	}
	s.Step(input.TrackedAt(away, false))

	idleFrames := int(lay.ResetDelay/lay.DT) + 2
	s.Hold(input.Sample{}, idleFrames)

	// Glide home. Sized to the reset delay so the idle timer cannot
	// trip a second episode after convergence.
	s.Hold(input.Sample{}, idleFrames)

	return &Scenario{
		Name:        "idle_return",
		Description: "drag the window away, idle past the reset delay, glide home",
		Frames:      s.Frames(),
	}
}

// KnobSweep pinches the scripted knob and sweeps the hand a quarter
// turn around the dial.
func KnobSweep(lay Layout) *Scenario {
	s := input.NewScript(lay.DT, lay.Head)
	knobPos := lay.WindowPos.Add(lay.KnobOffset)

	s.Hold(input.Sample{}, 5)

	start := mathx.Radians(270)
	s.Hold(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, start), true), 3)
	for i := 1; i <= 60; i++ {
		a := start + mathx.Radians(90)*float64(i)/60
		s.Step(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, a), true))
	}
	s.Hold(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, start+mathx.Radians(90)), false), 5)

	return &Scenario{
		Name:        "knob_sweep",
		Description: "pinch the knob and sweep a quarter turn",
		Frames:      s.Frames(),
	}
}

// KnobWrap sweeps the hand across the 0°/360° seam.
func KnobWrap(lay Layout) *Scenario {
	s := input.NewScript(lay.DT, lay.Head)
	knobPos := lay.WindowPos.Add(lay.KnobOffset)

	s.Hold(input.Sample{}, 5)

	start := mathx.Radians(340)
	s.Hold(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, start), true), 3)
	for i := 1; i <= 60; i++ {
		a := start + mathx.Radians(80)*float64(i)/60
		s.Step(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, a), true))
	}
	s.Hold(input.TrackedAt(dialPoint(knobPos, lay.KnobRadius, start+mathx.Radians(80)), false), 5)

	return &Scenario{
		Name:        "knob_wrap",
		Description: "sweep the knob across the 0/360 degree seam",
		Frames:      s.Frames(),
	}
}

// TwoHand has both hands pinch inside the grab radius; the dominant
// hand must win and the window must follow it alone.
func TwoHand(lay Layout) *Scenario {
	s := input.NewScript(lay.DT, lay.Head)
	right := lay.WindowPos.Add(mathx.Vec3{X: 0.05})
	left := lay.WindowPos.Add(mathx.Vec3{X: -0.05})

	s.StepBoth(input.TrackedAt(right, true), input.TrackedAt(left, true))

	rightEnd := right.Add(mathx.Vec3{X: 0.2})
	leftEnd := left.Add(mathx.Vec3{X: -0.2})
	for i := 1; i <= 30; i++ {
		t := float64(i) / 30
		s.StepBoth(
			input.TrackedAt(right.Lerp(rightEnd, t), true),
			input.TrackedAt(left.Lerp(leftEnd, t), true),
		)
	}
	s.StepBoth(input.TrackedAt(rightEnd, false), input.TrackedAt(leftEnd, false))

	return &Scenario{
		Name:        "two_hand",
		Description: "both hands pinch at once; the dominant hand drags",
		Frames:      s.Frames(),
	}
}
