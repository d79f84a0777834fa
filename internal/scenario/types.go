// Package scenario drives a panel through pre-scripted input at a fixed
// frame delta, the headless counterpart of a live render loop.
package scenario

import (
	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/widget"
)

// Record is one frame's observable panel state.
type Record struct {
	Frame      int
	T          float64
	WindowPos  mathx.Vec3
	State      widget.GrabState
	IdleFor    float64
	TargetDist float64 // distance to the reset target, 0 unless resetting
	Values     []float64
	Angles     []float64 // pointer angles in radians, one per mounted knob
}

// Metric accumulates a scalar over a run.
type Metric interface {
	Name() string
	Observe(r Record)
	Value() float64
	Reset()
}

// Observer receives every frame as it is simulated.
type Observer interface {
	OnFrame(r Record, f *input.Frame)
}

// Result is a completed run.
type Result struct {
	Scenario string
	DT       float64
	Frames   int
	Records  []Record
	Metrics  map[string]float64
}

// Scenario is a named, pre-scripted frame sequence.
type Scenario struct {
	Name        string
	Description string
	Frames      []input.Frame
}

// Layout tells scenario builders where the panel sits so scripted hands
// can reach it. Values come from the active config.
type Layout struct {
	DT           float64
	Head         input.Head
	WindowPos    mathx.Vec3
	GrabDistance float64
	ResetDelay   float64
	KnobOffset   mathx.Vec3 // window-local offset of the scripted knob
	KnobRadius   float64
}
