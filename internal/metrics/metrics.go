// Package metrics provides run-level checks over scenario records.
package metrics

import (
	"fmt"
	"math"

	"github.com/nkotova/spatialui/internal/scenario"
	"github.com/nkotova/spatialui/internal/widget"
)

// ValueJump tracks the largest frame-over-frame change of one knob's
// value. A grab that breaks continuity shows up as a spike here.
type ValueJump struct {
	knob    int
	prev    float64
	started bool
	max     float64
}

func NewValueJump(knob int) *ValueJump {
	return &ValueJump{knob: knob}
}

func (m *ValueJump) Name() string {
	return fmt.Sprintf("value_jump_k%d", m.knob)
}

func (m *ValueJump) Observe(r scenario.Record) {
	if m.knob >= len(r.Values) {
		return
	}
	v := r.Values[m.knob]
	if m.started {
		if d := math.Abs(v - m.prev); d > m.max {
			m.max = d
		}
	}
	m.prev = v
	m.started = true
}

func (m *ValueJump) Value() float64 { return m.max }

func (m *ValueJump) Reset() {
	m.prev = 0
	m.started = false
	m.max = 0
}

// ResetMonotonicity scores glide convergence: 1.0 when the distance to
// the reset target never increases frame-over-frame during a reset
// episode.
type ResetMonotonicity struct {
	prevDist   float64
	inReset    bool
	samples    int
	violations int
}

func NewResetMonotonicity() *ResetMonotonicity {
	return &ResetMonotonicity{}
}

func (m *ResetMonotonicity) Name() string { return "reset_monotonicity" }

func (m *ResetMonotonicity) Observe(r scenario.Record) {
	if r.State != widget.Resetting {
		m.inReset = false
		return
	}
	if m.inReset {
		m.samples++
		if r.TargetDist > m.prevDist {
			m.violations++
		}
	}
	m.prevDist = r.TargetDist
	m.inReset = true
}

func (m *ResetMonotonicity) Value() float64 {
	if m.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(m.violations)/float64(m.samples)
}

func (m *ResetMonotonicity) Reset() {
	m.prevDist = 0
	m.inReset = false
	m.samples = 0
	m.violations = 0
}

// GrabUptime is the fraction of frames the window spent grabbed.
type GrabUptime struct {
	grabbed int
	samples int
}

func NewGrabUptime() *GrabUptime {
	return &GrabUptime{}
}

func (m *GrabUptime) Name() string { return "grab_uptime" }

func (m *GrabUptime) Observe(r scenario.Record) {
	m.samples++
	if r.State == widget.Grabbed {
		m.grabbed++
	}
}

func (m *GrabUptime) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.grabbed) / float64(m.samples)
}

func (m *GrabUptime) Reset() {
	m.grabbed = 0
	m.samples = 0
}

// Defaults is the metric set attached to every headless run.
func Defaults(knobs int) []scenario.Metric {
	ms := []scenario.Metric{
		NewResetMonotonicity(),
		NewGrabUptime(),
	}
	for i := 0; i < knobs; i++ {
		ms = append(ms, NewValueJump(i))
	}
	return ms
}
