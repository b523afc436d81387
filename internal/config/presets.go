package config

import "sort"

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"wide": preset(func(c *Config) {
		c.Camera.FieldOfView = 90
		c.Camera.OrthographicSize = 8
	}),
	"telephoto": preset(func(c *Config) {
		c.Camera.FieldOfView = 20
		c.Camera.OrthographicSize = 3
		c.Camera.Far = 5000
	}),
	"slow": preset(func(c *Config) {
		c.Duration = 4.0
	}),
	"instant": preset(func(c *Config) {
		c.Duration = 0
	}),
	"from_perspective": preset(func(c *Config) {
		c.Camera.Orthographic = false
	}),
	"jittery": preset(func(c *Config) {
		c.Jitter = 0.5
		c.Seed = 42
	}),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
