package config

// Presets are ready-made panel configurations for the demo and the
// scenario runner.
var Presets = map[string]func() *Config{
	"default": DefaultConfig,

	// One bipolar dial sweeping across the 0/360 seam, the angle
	// wraparound stress case.
	"wraparound": func() *Config {
		cfg := DefaultConfig()
		cfg.Knobs = []KnobConfig{
			{
				Name: "dial", Min: -180, Max: 180,
				StartAngle: 135, EndAngle: 405,
				Radius: 0.03, Value: 0, Binding: "hue",
				OffsetX: 0.12, OffsetY: -0.06,
				Hand: "right",
			},
		}
		return cfg
	},

	// A fuller panel: three knobs on one window, left hand on the
	// opacity knob.
	"dense": func() *Config {
		cfg := DefaultConfig()
		cfg.Window.Width = 0.4
		cfg.Knobs = []KnobConfig{
			{
				Name: "hue", Min: 0, Max: 1,
				StartAngle: 135, EndAngle: 405,
				Radius: 0.03, Value: 0.5, Binding: "hue",
				OffsetX: 0.14, OffsetY: -0.08,
				Hand: "right",
			},
			{
				Name: "scale", Min: 0.5, Max: 2,
				StartAngle: 135, EndAngle: 405,
				Radius: 0.03, Value: 1, Binding: "scale",
				OffsetX: 0.14, OffsetY: 0,
				Hand: "right",
			},
			{
				Name: "opacity", Min: 0, Max: 1,
				StartAngle: 135, EndAngle: 405,
				Radius: 0.03, Value: 1, Binding: "opacity",
				OffsetX: 0.14, OffsetY: 0.08,
				Hand: "left",
			},
		}
		return cfg
	},

	// Short idle delay so the auto-return behavior is quick to watch
	// in the live views.
	"quick_reset": func() *Config {
		cfg := DefaultConfig()
		cfg.Window.ResetDelay = 3
		return cfg
	},
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
