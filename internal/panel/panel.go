// Package panel composes the interaction primitives into a control
// panel: one grabbable window with knobs mounted in window-local space.
package panel

import (
	"fmt"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/widget"
)

// Binding names the bounded panel parameter a knob drives. A tagged
// enum rather than a label string keeps dispatch checked at compile
// time.
type Binding int

const (
	BindNone Binding = iota
	BindHue
	BindScale
	BindOpacity
)

var bindingNames = map[Binding]string{
	BindNone:    "none",
	BindHue:     "hue",
	BindScale:   "scale",
	BindOpacity: "opacity",
}

func (b Binding) String() string {
	if n, ok := bindingNames[b]; ok {
		return n
	}
	return "none"
}

// ParseBinding maps a config label to a Binding.
func ParseBinding(s string) (Binding, error) {
	for b, n := range bindingNames {
		if n == s {
			return b, nil
		}
	}
	return BindNone, fmt.Errorf("unknown binding: %q", s)
}

// Mount is a knob attached to the window at a fixed window-local offset.
type Mount struct {
	Name    string
	Knob    *widget.Knob
	Offset  mathx.Vec3
	Binding Binding
}

// Panel owns a window and its mounted knobs. Update finalizes the
// window pose before any knob runs, so knob world poses derived from
// the window are always current within the frame.
type Panel struct {
	Window *widget.Window
	mounts []Mount
}

func New(w *widget.Window) *Panel {
	return &Panel{Window: w}
}

func (p *Panel) MountKnob(name string, k *widget.Knob, offset mathx.Vec3, b Binding) {
	p.mounts = append(p.mounts, Mount{Name: name, Knob: k, Offset: offset, Binding: b})
}

func (p *Panel) Mounts() []Mount {
	return p.mounts
}

// Update advances the panel one frame: window first, then knob poses
// re-anchored from the finalized window pose, then knobs.
func (p *Panel) Update(f *input.Frame) {
	p.Window.Update(f)
	for i := range p.mounts {
		m := &p.mounts[i]
		m.Knob.Position = p.Window.Position.Add(p.Window.Orientation.Rotate(m.Offset))
		m.Knob.Orientation = p.Window.Orientation
		m.Knob.Update(f)
	}
}

// Bound returns the value of the knob driving the given binding,
// clamped to the knob's range. The raw knob value is allowed to run
// out of range (the angle mapping is unclamped); the clamp here keeps
// downstream visual parameters bounded.
func (p *Panel) Bound(b Binding) (float64, bool) {
	for i := range p.mounts {
		m := &p.mounts[i]
		if m.Binding == b {
			kp := m.Knob.Params()
			return mathx.Clamp(m.Knob.Value, kp.Min, kp.Max), true
		}
	}
	return 0, false
}
