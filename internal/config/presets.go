package config

import "sort"

// Presets are partial overlays applied on top of DefaultConfig.
var Presets = map[string]map[string]func(*Config){
	"quantum": {
		"default": func(c *Config) {},
		"calm": func(c *Config) {
			c.Quantum.SpawnProbability = 0.1
			c.Quantum.Dt = 0.05
		},
		"storm": func(c *Config) {
			c.Quantum.SpawnProbability = 1.0
			c.Quantum.Dt = 0.5
			c.Quantum.Anchors = 48
		},
		"legacy": func(c *Config) {
			c.Quantum.WallClock = true
		},
	},
	"images": {
		"sandplot": func(c *Config) {
			c.Images.Mode = "sandplot"
		},
		"mnist": func(c *Config) {
			c.Images.Mode = "mnist"
			c.Images.ImageSize = 28
		},
		"grid4": func(c *Config) {
			c.Images.Frames = 4
		},
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(kind, preset string) *Config {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	apply, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply overlays a preset onto an existing config.
func Apply(cfg *Config, kind, preset string) bool {
	apply, ok := Presets[kind][preset]
	if !ok {
		return false
	}
	apply(cfg)
	return true
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
