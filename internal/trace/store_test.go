package trace

import (
	"strings"
	"testing"

	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/scenario"
	"github.com/nkotova/spatialui/internal/widget"
)

func sampleResult() *scenario.Result {
	return &scenario.Result{
		Scenario: "grab_drag",
		DT:       0.02,
		Frames:   2,
		Records: []scenario.Record{
			{
				T: 0.02, WindowPos: mathx.Vec3{Y: 1.4, Z: -0.4},
				State: widget.Grabbed, Values: []float64{0.5}, Angles: []float64{4.7},
			},
			{
				T: 0.04, WindowPos: mathx.Vec3{X: 0.1, Y: 1.4, Z: -0.4},
				State: widget.Idle, IdleFor: 0.02, Values: []float64{0.6}, Angles: []float64{4.9},
			},
		},
		Metrics: map[string]float64{"grab_uptime": 0.5},
	}
}

func TestSaveListLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	id, err := s.Save(sampleResult(), []string{"hue"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(id, "grab_drag_") {
		t.Errorf("run id should carry the scenario name, got %s", id)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Frames != 2 || runs[0].Scenario != "grab_drag" {
		t.Errorf("unexpected metadata: %+v", runs[0])
	}

	meta, err := s.Load(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Metrics["grab_uptime"] != 0.5 {
		t.Errorf("metrics should round-trip, got %+v", meta.Metrics)
	}
	if len(meta.Knobs) != 1 || meta.Knobs[0] != "hue" {
		t.Errorf("knob names should round-trip, got %+v", meta.Knobs)
	}
}

func TestLoadFramesAndColumn(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	id, err := s.Save(sampleResult(), []string{"hue"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	header, rows, err := s.LoadFrames(id)
	if err != nil {
		t.Fatalf("load frames: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if header[4] != "state" || rows[0][4] != "grabbed" {
		t.Errorf("state column should hold the state name, got %q", rows[0][4])
	}

	vals, err := Column(header, rows, "hue_value")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	if vals[0] != 0.5 || vals[1] != 0.6 {
		t.Errorf("unexpected values %v", vals)
	}

	if _, err := Column(header, rows, "bogus"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New(t.TempDir() + "/missing")
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for unknown run")
	}
}
