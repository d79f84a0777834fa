package widget

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
)

// wrapDial is the classic seam-crossing dial: -180..180 mapped onto a
// 270° sweep from 135° through 405°.
func wrapDial() KnobParams {
	return KnobParams{
		Min: -180, Max: 180,
		StartAngle: 135, EndAngle: 405,
		Radius: 0.03,
		Hand:   input.Right,
	}
}

func newTestKnob(t *testing.T, value float64, params KnobParams) *Knob {
	t.Helper()
	k, err := NewKnob(mathx.Vec3{}, mathx.QuatIdentity(), value, params)
	if err != nil {
		t.Fatalf("new knob: %v", err)
	}
	return k
}

// pinchFrame puts the dominant hand's pinch point at p.
func pinchFrame(p mathx.Vec3, started, active, ended bool) *input.Frame {
	f := &input.Frame{DT: dt}
	f.Hands[input.Right] = input.Hand{
		Tracked:       true,
		PinchActive:   active,
		PinchStarted:  started,
		PinchEnded:    ended,
		PalmPosition:  p,
		PinchPosition: p,
	}
	return f
}

// onDial returns a point on the knob's local XY circle at the given
// angle in radians.
func onDial(k *Knob, angle float64) mathx.Vec3 {
	r := k.Params().Radius
	local := mathx.Vec3{X: r * math.Cos(angle) * 0.8, Y: r * math.Sin(angle) * 0.8}
	return k.Position.Add(k.Orientation.Rotate(local))
}

func TestValueAngleMapping(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	// value 0 is the sweep midpoint: 135 + 0.5*270 = 270°.
	g.Expect(mathx.Degrees(k.ValueAngle())).To(BeNumerically("~", 270, 1e-9))

	// value -60 sits a third of the way through the sweep: 225°.
	k.Value = -60
	g.Expect(mathx.Degrees(k.ValueAngle())).To(BeNumerically("~", 225, 1e-9))
}

func TestAngleValueRoundTrip(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	for _, v := range []float64{-180, -60, 0, 90, 179} {
		k.Value = v
		g.Expect(k.angleToValue(k.ValueAngle())).To(BeNumerically("~", v, 1e-9),
			"round trip for value %f", v)
	}
}

func TestAngleWraparoundIdempotence(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	base := mathx.Radians(225)
	want := k.angleToValue(base)
	for _, turns := range []int{-3, -1, 1, 2, 5} {
		got := k.angleToValue(base + float64(turns)*2*math.Pi)
		g.Expect(got).To(BeNumerically("~", want, 1e-9), "k=%d", turns)
	}
}

func TestUnclampedMapping(t *testing.T) {
	g := NewWithT(t)
	params := KnobParams{Min: 0, Max: 10, StartAngle: 0, EndAngle: 90, Radius: 0.03}
	k := newTestKnob(t, 0, params)

	// 180° is past the end of a 90° sweep: t=2, value 20. The mapping
	// does not clamp.
	g.Expect(k.angleToValue(mathx.Radians(180))).To(BeNumerically("~", 20, 1e-9))
}

func TestGrabContinuity(t *testing.T) {
	g := NewWithT(t)

	values := []float64{-170, -60, 0, 45, 170}
	handAngles := []float64{0, math.Pi / 3, math.Pi, -math.Pi / 2, 2.9}

	for _, v0 := range values {
		for _, a := range handAngles {
			k := newTestKnob(t, v0, wrapDial())

			// Pinch lands at an arbitrary dial angle.
			p := onDial(k, a)
			k.Update(pinchFrame(p, true, true, false))
			g.Expect(k.Grabbed()).To(BeTrue())
			g.Expect(k.Value).To(BeNumerically("~", v0, 1e-9),
				"grab at angle %f must not jump value %f", a, v0)

			// Holding still keeps the value pinned too.
			k.Update(pinchFrame(p, false, true, false))
			g.Expect(k.Value).To(BeNumerically("~", v0, 1e-9),
				"still hand at angle %f must not drift value %f", a, v0)
		}
	}
}

func TestGrabTracksHandRotation(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	start := mathx.Radians(270)
	k.Update(pinchFrame(onDial(k, start), true, true, false))

	// Rotating the hand +45° around the dial advances the value by
	// 45/270 of the 360-unit range: +60.
	k.Update(pinchFrame(onDial(k, start+mathx.Radians(45)), false, true, false))
	g.Expect(k.Value).To(BeNumerically("~", 60, 1e-6))
}

func TestReleaseFreezesValue(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	start := mathx.Radians(270)
	k.Update(pinchFrame(onDial(k, start), true, true, false))
	k.Update(pinchFrame(onDial(k, start+0.3), false, true, false))
	held := k.Value

	// Unpinch, then keep moving the hand: the value must not change.
	k.Update(pinchFrame(onDial(k, start+0.6), false, false, true))
	g.Expect(k.Grabbed()).To(BeFalse())
	k.Update(pinchFrame(onDial(k, start+1.2), false, false, false))
	g.Expect(k.Value).To(Equal(held))
}

func TestGrabRequiresPinchStartInsideVolume(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	// Pinch start outside the interaction volume is ignored.
	outside := k.Position.Add(mathx.Vec3{X: k.Params().Radius * 3})
	k.Update(pinchFrame(outside, true, true, false))
	g.Expect(k.Grabbed()).To(BeFalse())

	// An ongoing pinch that merely enters the volume does not grab;
	// only the start edge counts.
	inside := onDial(k, 1)
	k.Update(pinchFrame(inside, false, true, false))
	g.Expect(k.Grabbed()).To(BeFalse())
}

func TestTrackingLossReleasesKnob(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	k.Update(pinchFrame(onDial(k, 1), true, true, false))
	g.Expect(k.Grabbed()).To(BeTrue())

	f := &input.Frame{DT: dt}
	k.Update(f)
	g.Expect(k.Grabbed()).To(BeFalse())
}

func TestRotatedKnobIsOrientationInvariant(t *testing.T) {
	g := NewWithT(t)
	params := wrapDial()
	orient := mathx.QuatFromAxisAngle(mathx.Vec3{X: 1}, math.Pi/2)
	k, err := NewKnob(mathx.Vec3{X: 0.2, Y: 1.3, Z: -0.4}, orient, -60, params)
	g.Expect(err).NotTo(HaveOccurred())

	// Grab on the (world-space) dial circle and rotate by +45°: the
	// same local-plane math applies regardless of knob orientation.
	start := k.ValueAngle()
	k.Update(pinchFrame(onDial(k, start), true, true, false))
	g.Expect(k.Grabbed()).To(BeTrue())
	g.Expect(k.Value).To(BeNumerically("~", -60, 1e-9))

	k.Update(pinchFrame(onDial(k, start+mathx.Radians(45)), false, true, false))
	g.Expect(k.Value).To(BeNumerically("~", 0, 1e-6))
}

func TestPointerPosition(t *testing.T) {
	g := NewWithT(t)
	k := newTestKnob(t, 0, wrapDial())

	// value 0 → 270°: pointer straight down the local Y axis.
	p := k.PointerPosition()
	g.Expect(p.X).To(BeNumerically("~", 0, 1e-9))
	g.Expect(p.Y).To(BeNumerically("~", -k.Params().Radius, 1e-9))
	g.Expect(p.Z).To(BeZero())
}

func TestSelectedHandOnly(t *testing.T) {
	g := NewWithT(t)
	params := wrapDial()
	params.Hand = input.Left
	k := newTestKnob(t, 0, params)

	// The dominant hand pinches the knob, but this knob listens to the
	// left hand.
	k.Update(pinchFrame(onDial(k, 1), true, true, false))
	g.Expect(k.Grabbed()).To(BeFalse())

	f := &input.Frame{DT: dt}
	p := onDial(k, 1)
	f.Hands[input.Left] = input.Hand{
		Tracked: true, PinchActive: true, PinchStarted: true,
		PalmPosition: p, PinchPosition: p,
	}
	k.Update(f)
	g.Expect(k.Grabbed()).To(BeTrue())
}

func TestKnobParamValidation(t *testing.T) {
	g := NewWithT(t)

	bad := wrapDial()
	bad.Max = bad.Min
	_, err := NewKnob(mathx.Vec3{}, mathx.QuatIdentity(), 0, bad)
	g.Expect(err).To(HaveOccurred())

	bad = wrapDial()
	bad.EndAngle = bad.StartAngle - 10
	_, err = NewKnob(mathx.Vec3{}, mathx.QuatIdentity(), 0, bad)
	g.Expect(err).To(HaveOccurred())

	bad = wrapDial()
	bad.Radius = 0
	_, err = NewKnob(mathx.Vec3{}, mathx.QuatIdentity(), 0, bad)
	g.Expect(err).To(HaveOccurred())
}
