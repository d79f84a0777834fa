package scenario

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/panel"
)

// Runner replays a frame sequence against a panel, feeding metrics and
// observers one consistent snapshot per frame.
type Runner struct {
	panel     *panel.Panel
	metrics   []Metric
	observers []Observer
	log       *zap.Logger
}

func NewRunner(p *panel.Panel, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{panel: p, log: log}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if sc == nil || len(sc.Frames) == 0 {
		return nil, fmt.Errorf("scenario has no frames")
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Scenario: sc.Name,
		DT:       sc.Frames[0].DT,
		Records:  make([]Record, 0, len(sc.Frames)),
		Metrics:  make(map[string]float64),
	}

	prevState := r.panel.Window.State()
	t := 0.0

	for i := range sc.Frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		f := &sc.Frames[i]
		if f.DT < 0 {
			return result, fmt.Errorf("frame %d: negative delta %f", i, f.DT)
		}
		t += f.DT

		r.panel.Update(f)
		rec := r.snapshot(i, t)

		if rec.State != prevState {
			r.log.Debug("window state change",
				zap.String("from", prevState.String()),
				zap.String("to", rec.State.String()),
				zap.Int("frame", i),
				zap.Float64("t", t))
			prevState = rec.State
		}

		for _, m := range r.metrics {
			m.Observe(rec)
		}
		for _, o := range r.observers {
			o.OnFrame(rec, f)
		}

		result.Records = append(result.Records, rec)
		result.Frames++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	r.log.Info("scenario complete",
		zap.String("scenario", sc.Name),
		zap.Int("frames", result.Frames),
		zap.Float64("duration", t))

	return result, nil
}

func (r *Runner) snapshot(frame int, t float64) Record {
	w := r.panel.Window
	rec := Record{
		Frame:     frame,
		T:         t,
		WindowPos: w.Position,
		State:     w.State(),
		IdleFor:   w.IdleFor(),
	}
	if target, ok := w.Target(); ok {
		rec.TargetDist = w.Position.Distance(target)
	}
	mounts := r.panel.Mounts()
	rec.Values = make([]float64, len(mounts))
	rec.Angles = make([]float64, len(mounts))
	for i := range mounts {
		rec.Values[i] = mounts[i].Knob.Value
		rec.Angles[i] = mounts[i].Knob.ValueAngle()
	}
	return rec
}

var _ Observer = (observerFunc)(nil)

// observerFunc adapts a function to the Observer interface.
type observerFunc func(r Record, f *input.Frame)

func (fn observerFunc) OnFrame(r Record, f *input.Frame) { fn(r, f) }

// ObserverFunc wraps fn as an Observer.
func ObserverFunc(fn func(r Record, f *input.Frame)) Observer {
	return observerFunc(fn)
}
