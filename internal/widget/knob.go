package widget

import (
	"fmt"
	"math"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
)

// KnobParams configures a rotary knob. Angles are in degrees; EndAngle
// may exceed 360 to encode a dial that sweeps across the seam (e.g.
// 135..405). EndAngle > StartAngle, Max > Min and Radius > 0 are
// required.
type KnobParams struct {
	Min, Max             float64
	StartAngle, EndAngle float64
	Radius               float64
	// Hand selects which hand operates the knob.
	Hand input.Handedness
}

func DefaultKnobParams() KnobParams {
	return KnobParams{
		Min:        0,
		Max:        1,
		StartAngle: 135,
		EndAngle:   405,
		Radius:     0.03,
		Hand:       input.Right,
	}
}

func (p KnobParams) validate() error {
	if p.Max <= p.Min {
		return fmt.Errorf("knob range invalid: max %f <= min %f", p.Max, p.Min)
	}
	if p.EndAngle <= p.StartAngle {
		return fmt.Errorf("knob sweep invalid: end angle %f <= start angle %f", p.EndAngle, p.StartAngle)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("knob radius must be positive, got %f", p.Radius)
	}
	return nil
}

// Knob maps hand rotation around its local Z axis to a bounded value.
//
// The value↔angle mapping is deliberately unclamped: an angle whose
// normalized sweep fraction falls outside [0,1] yields a value outside
// [Min, Max]. Consumers that feed the value into a bounded parameter
// clamp at that boundary (see panel.Binding).
type Knob struct {
	Position    mathx.Vec3
	Orientation mathx.Quat
	Value       float64

	params     KnobParams
	grabbed    bool
	grabOffset float64 // radians, valid only while grabbed
}

func NewKnob(position mathx.Vec3, orientation mathx.Quat, value float64, params KnobParams) (*Knob, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &Knob{
		Position:    position,
		Orientation: orientation,
		Value:       value,
		params:      params,
	}, nil
}

func (k *Knob) Params() KnobParams { return k.params }
func (k *Knob) Grabbed() bool      { return k.grabbed }

// ValueAngle returns the dial angle for the current value, in radians.
func (k *Knob) ValueAngle() float64 {
	t := (k.Value - k.params.Min) / (k.params.Max - k.params.Min)
	deg := k.params.StartAngle + t*(k.params.EndAngle-k.params.StartAngle)
	return mathx.Radians(deg)
}

// angleToValue inverts ValueAngle. The angle is first wrapped into one
// full turn starting at StartAngle so any coterminal angle maps to the
// same value; the sweep fraction itself is not clamped.
func (k *Knob) angleToValue(rad float64) float64 {
	rad = mathx.NormalizeAngle(rad, mathx.Radians(k.params.StartAngle))
	t := (mathx.Degrees(rad) - k.params.StartAngle) / (k.params.EndAngle - k.params.StartAngle)
	return k.params.Min + t*(k.params.Max-k.params.Min)
}

// handAngle is the planar angle of a world-space point in the knob's
// local XY plane, independent of the knob's 3D orientation.
func (k *Knob) handAngle(p mathx.Vec3) float64 {
	local := k.Orientation.Conjugate().Rotate(p.Sub(k.Position))
	return math.Atan2(local.Y, local.X)
}

// contains tests the pinch point against the knob's interaction volume,
// an axis-aligned box of half-extent Radius in the knob's local frame.
func (k *Knob) contains(p mathx.Vec3) bool {
	local := k.Orientation.Conjugate().Rotate(p.Sub(k.Position))
	r := k.params.Radius
	return math.Abs(local.X) <= r && math.Abs(local.Y) <= r && math.Abs(local.Z) <= r
}

// PointerPosition is where the dial pointer sits in knob-local space,
// the drawable encoding of the current value.
func (k *Knob) PointerPosition() mathx.Vec3 {
	a := k.ValueAngle()
	return mathx.Vec3{
		X: k.params.Radius * math.Cos(a),
		Y: k.params.Radius * math.Sin(a),
	}
}

// Update advances the knob one frame. The angular offset captured at
// grab start keeps the value continuous: the dial follows the hand's
// subsequent rotation rather than snapping to wherever the pinch
// happened to land.
func (k *Knob) Update(f *input.Frame) {
	h := f.Hand(k.params.Hand)

	if !k.grabbed {
		if h.Tracked && h.PinchStarted && k.contains(h.PinchPosition) {
			k.grabbed = true
			k.grabOffset = k.handAngle(h.PinchPosition) - k.ValueAngle()
		}
		return
	}

	if !h.Tracked || h.PinchEnded || !h.PinchActive {
		k.grabbed = false
		return
	}

	k.Value = k.angleToValue(k.handAngle(h.PinchPosition) - k.grabOffset)
}
