package scenario

import (
	"fmt"
	"sort"
)

// Registry maps scenario names to builders, mirroring how models are
// looked up by name elsewhere in the CLI.
type Registry struct {
	builders map[string]func(Layout) *Scenario
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(Layout) *Scenario)}

	r.builders["grab_drag"] = GrabDrag
	r.builders["idle_return"] = IdleReturn
	r.builders["knob_sweep"] = KnobSweep
	r.builders["knob_wrap"] = KnobWrap
	r.builders["two_hand"] = TwoHand

	return r
}

func (r *Registry) Get(name string, lay Layout) (*Scenario, error) {
	fn, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s", name)
	}
	return fn(lay), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
