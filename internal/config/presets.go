package config

import "sort"

func planets(star string, bodies ...PlanetConfig) []PlanetConfig {
	for i := range bodies {
		bodies[i].Star = star
	}
	return bodies
}

// The four worlds every scene reuses.
func family() []PlanetConfig {
	return []PlanetConfig{
		{Name: "Blue", Scale: 3, Color: "#0000ff", SemiMajorAxis: 40, Eccentricity: 0.4, Inclination: 0.02},
		{Name: "Green", Scale: 5, Color: "#00ff00", SemiMajorAxis: 50, Eccentricity: 0.5, Inclination: 0.1},
		{Name: "Orange", Scale: 4, Color: "#ffa500", SemiMajorAxis: 60, Eccentricity: 0.6, Inclination: -0.2},
		{Name: "Purple", Scale: 2, Color: "#800080", SemiMajorAxis: 70, Eccentricity: 0.7, Inclination: 0},
	}
}

func preset(name string, stars []StarConfig, pls ...[]PlanetConfig) *Config {
	cfg := defaults()
	cfg.Name = name
	cfg.Seed = 42
	cfg.Stars = stars
	for _, p := range pls {
		cfg.Planets = append(cfg.Planets, p...)
	}
	return cfg
}

var Presets = map[string]*Config{
	"binary": preset("binary",
		[]StarConfig{
			{Name: "Yellow Sun", Scale: 0.075, Position: [3]float64{-100, 0, 0}, Color: "#ffff00"},
			{Name: "Red Sun", Scale: 1, Position: [3]float64{100, 0, 0}, Color: "#ff0000"},
		},
		planets("Yellow Sun", family()...),
		planets("Red Sun", family()...),
	),
	"single": preset("single",
		[]StarConfig{{Name: "Sun", Scale: 1, Color: "#ffff00"}},
		planets("Sun", family()...),
	),
	"circular": preset("circular",
		[]StarConfig{{Name: "Sun", Scale: 1, Color: "#ffffff"}},
		planets("Sun",
			PlanetConfig{Name: "Inner", Scale: 2, Color: "#00ccff", SemiMajorAxis: 20},
			PlanetConfig{Name: "Middle", Scale: 3, Color: "#00ff88", SemiMajorAxis: 45, Inclination: 0.15},
			PlanetConfig{Name: "Outer", Scale: 4, Color: "#ff8800", SemiMajorAxis: 80, Inclination: -0.1},
		),
	),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Stars = append([]StarConfig(nil), c.Stars...)
	out.Planets = make([]PlanetConfig, len(c.Planets))
	for i, p := range c.Planets {
		if p.Phase != nil {
			v := *p.Phase
			p.Phase = &v
		}
		out.Planets[i] = p
	}
	return &out
}
