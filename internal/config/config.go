package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nkotova/spatialui/internal/input"
	"github.com/nkotova/spatialui/internal/mathx"
	"github.com/nkotova/spatialui/internal/panel"
	"github.com/nkotova/spatialui/internal/scenario"
	"github.com/nkotova/spatialui/internal/widget"
)

const (
	DefaultDT         = 1.0 / 72 // typical HMD refresh
	DefaultHeadHeight = 1.6
	DefaultDataDir    = ".spatialui"
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Knobs    []KnobConfig   `yaml:"knobs"`
	Scenario ScenarioConfig `yaml:"scenario"`
	DataDir  string         `yaml:"data_dir"`
}

type WindowConfig struct {
	X            float64 `yaml:"x"`
	Y            float64 `yaml:"y"`
	Z            float64 `yaml:"z"`
	GrabDistance float64 `yaml:"grab_distance"`
	ResetDelay   float64 `yaml:"reset_delay"`
	ResetEpsilon float64 `yaml:"reset_epsilon"`
	LerpSpeed    float64 `yaml:"lerp_speed"`
	ResetOffset  float64 `yaml:"reset_offset"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
}

type KnobConfig struct {
	Name       string  `yaml:"name"`
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
	StartAngle float64 `yaml:"start_angle"`
	EndAngle   float64 `yaml:"end_angle"`
	Radius     float64 `yaml:"radius"`
	Value      float64 `yaml:"value"`
	Binding    string  `yaml:"binding"`
	OffsetX    float64 `yaml:"offset_x"`
	OffsetY    float64 `yaml:"offset_y"`
	OffsetZ    float64 `yaml:"offset_z"`
	Hand       string  `yaml:"hand"`
}

type ScenarioConfig struct {
	DT         float64 `yaml:"dt"`
	HeadHeight float64 `yaml:"head_height"`
}

func DefaultConfig() *Config {
	wp := widget.DefaultWindowParams()
	return &Config{
		Window: WindowConfig{
			Y:            1.4,
			Z:            -0.4,
			GrabDistance: wp.GrabDistance,
			ResetDelay:   wp.ResetDelay,
			ResetEpsilon: wp.ResetEpsilon,
			LerpSpeed:    wp.LerpSpeed,
			ResetOffset:  wp.ResetOffset,
			Width:        wp.Width,
			Height:       wp.Height,
		},
		Knobs: []KnobConfig{
			{
				Name: "hue", Min: 0, Max: 1,
				StartAngle: 135, EndAngle: 405,
				Radius: 0.03, Value: 0.5, Binding: "hue",
				OffsetX: 0.12, OffsetY: -0.06,
				Hand: "right",
			},
		},
		Scenario: ScenarioConfig{
			DT:         DefaultDT,
			HeadHeight: DefaultHeadHeight,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate front-loads the numeric preconditions the controllers
// require, so a bad config fails at load time rather than as NaNs
// mid-frame.
func (c *Config) Validate() error {
	if c.Scenario.DT <= 0 {
		return fmt.Errorf("scenario dt must be positive, got %f", c.Scenario.DT)
	}
	if len(c.Knobs) == 0 {
		return fmt.Errorf("at least one knob is required")
	}
	if _, err := c.buildWindow(); err != nil {
		return err
	}
	for i, k := range c.Knobs {
		if _, err := k.build(); err != nil {
			return fmt.Errorf("knob %d (%s): %w", i, k.Name, err)
		}
		if _, err := panel.ParseBinding(k.Binding); err != nil {
			return fmt.Errorf("knob %d (%s): %w", i, k.Name, err)
		}
	}
	return nil
}

func (c *Config) buildWindow() (*widget.Window, error) {
	wp := widget.WindowParams{
		GrabDistance: c.Window.GrabDistance,
		ResetDelay:   c.Window.ResetDelay,
		ResetEpsilon: c.Window.ResetEpsilon,
		LerpSpeed:    c.Window.LerpSpeed,
		ResetOffset:  c.Window.ResetOffset,
		Width:        c.Window.Width,
		Height:       c.Window.Height,
	}
	return widget.NewWindow(mathx.Vec3{X: c.Window.X, Y: c.Window.Y, Z: c.Window.Z}, wp)
}

func (k KnobConfig) build() (*widget.Knob, error) {
	params := widget.KnobParams{
		Min:        k.Min,
		Max:        k.Max,
		StartAngle: k.StartAngle,
		EndAngle:   k.EndAngle,
		Radius:     k.Radius,
		Hand:       parseHand(k.Hand),
	}
	return widget.NewKnob(mathx.Vec3{}, mathx.QuatIdentity(), k.Value, params)
}

func parseHand(s string) input.Handedness {
	if s == "left" {
		return input.Left
	}
	return input.Right
}

// BuildPanel constructs the window and knobs described by the config.
// Knob world poses are placeholders until the first panel update
// re-anchors them to the window.
func (c *Config) BuildPanel() (*panel.Panel, error) {
	w, err := c.buildWindow()
	if err != nil {
		return nil, err
	}
	p := panel.New(w)

	for i, kc := range c.Knobs {
		k, err := kc.build()
		if err != nil {
			return nil, fmt.Errorf("knob %d (%s): %w", i, kc.Name, err)
		}
		b, err := panel.ParseBinding(kc.Binding)
		if err != nil {
			return nil, fmt.Errorf("knob %d (%s): %w", i, kc.Name, err)
		}
		p.MountKnob(kc.Name, k, mathx.Vec3{X: kc.OffsetX, Y: kc.OffsetY, Z: kc.OffsetZ}, b)
	}

	return p, nil
}

// Layout derives the scenario geometry from the config so scripted
// hands land where the panel actually is.
func (c *Config) Layout() scenario.Layout {
	lay := scenario.Layout{
		DT: c.Scenario.DT,
		Head: input.Head{
			Position: mathx.Vec3{Y: c.Scenario.HeadHeight},
			Forward:  mathx.Vec3{Z: -1},
		},
		WindowPos:    mathx.Vec3{X: c.Window.X, Y: c.Window.Y, Z: c.Window.Z},
		GrabDistance: c.Window.GrabDistance,
		ResetDelay:   c.Window.ResetDelay,
	}
	if len(c.Knobs) > 0 {
		k := c.Knobs[0]
		lay.KnobOffset = mathx.Vec3{X: k.OffsetX, Y: k.OffsetY, Z: k.OffsetZ}
		lay.KnobRadius = k.Radius
	}
	return lay
}
