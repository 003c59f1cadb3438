package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/go-kit/log"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/system"
)

const (
	DefaultDt       = 1.0
	DefaultDuration = 3600.0
	DefaultFPS      = 60
	DefaultPreset   = "binary"
)

var ErrDuplicateStar = errors.New("config: duplicate star name")

type Config struct {
	Name        string         `yaml:"name"`
	Seed        int64          `yaml:"seed"`
	K           float64        `yaml:"k"`
	MinDistance float64        `yaml:"min_distance"`
	Dt          float64        `yaml:"dt"`
	Duration    float64        `yaml:"duration"`
	FPS         int            `yaml:"fps"`
	PathStep    float64        `yaml:"path_step"`
	Workers     int            `yaml:"workers"`
	Stars       []StarConfig   `yaml:"stars"`
	Planets     []PlanetConfig `yaml:"planets"`
}

type StarConfig struct {
	Name     string     `yaml:"name"`
	Scale    float64    `yaml:"scale"`
	Position [3]float64 `yaml:"position,flow"`
	Color    string     `yaml:"color"`
}

type PlanetConfig struct {
	Name          string   `yaml:"name"`
	Scale         float64  `yaml:"scale"`
	Color         string   `yaml:"color"`
	Star          string   `yaml:"star"` // star name or index
	SemiMajorAxis float64  `yaml:"semi_major_axis"`
	Eccentricity  float64  `yaml:"eccentricity"`
	Inclination   float64  `yaml:"inclination"`
	Phase         *float64 `yaml:"phase,omitempty"`
}

// defaults fills the scalar settings only; bodies always come from the
// file or a preset.
func defaults() *Config {
	return &Config{
		K:           orbit.DefaultK,
		MinDistance: orbit.DefaultMinDistance,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		FPS:         DefaultFPS,
		PathStep:    orbit.DefaultPathStep,
		Workers:     1,
	}
}

// DefaultConfig returns the two-star scene.
func DefaultConfig() *Config {
	return GetPreset(DefaultPreset)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := defaults()
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

// Validate checks the run settings. Body records are validated by Spec.
func (c *Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.PathStep < 0 || math.IsNaN(c.PathStep) || math.IsInf(c.PathStep, 0) {
		return fmt.Errorf("path_step must be a non-negative number, got %f", c.PathStep)
	}
	if c.PathStep != 0 && c.PathStep < orbit.MinPathStep {
		return fmt.Errorf("path_step %g is below the minimum %g", c.PathStep, orbit.MinPathStep)
	}
	if steps := c.Duration / c.Dt; steps > system.MaxRunSteps {
		return fmt.Errorf("duration/dt gives %.0f steps, more than the limit of %d", steps, system.MaxRunSteps)
	}
	return nil
}

// Spec converts the file form into a system.Spec, resolving star
// references and colors. Bad records come back as
// *system.ConfigurationError.
func (c *Config) Spec() (system.Spec, error) {
	spec := system.Spec{
		Stars:    make([]system.StarSpec, len(c.Stars)),
		Planets:  make([]system.PlanetSpec, len(c.Planets)),
		Velocity: orbit.VelocityModel{K: c.K, MinDistance: c.MinDistance},
		PathStep: c.PathStep,
		Seed:     c.Seed,
	}

	byName := make(map[string]int, len(c.Stars))
	for i, st := range c.Stars {
		if _, dup := byName[st.Name]; dup {
			return system.Spec{}, &system.ConfigurationError{Body: st.Name, Index: i, Wrapped: ErrDuplicateStar}
		}
		byName[st.Name] = i

		tint, err := parseColor(st.Color)
		if err != nil {
			return system.Spec{}, &system.ConfigurationError{Body: st.Name, Index: i, Wrapped: err}
		}
		spec.Stars[i] = system.StarSpec{
			Name:     st.Name,
			Scale:    st.Scale,
			Position: r3.Vec{X: st.Position[0], Y: st.Position[1], Z: st.Position[2]},
			Tint:     tint,
		}
	}

	for i, pl := range c.Planets {
		id := len(c.Stars) + i
		ref, err := resolveStar(pl.Star, byName, len(c.Stars))
		if err != nil {
			return system.Spec{}, &system.ConfigurationError{Body: pl.Name, Index: id, Wrapped: err}
		}
		tint, err := parseColor(pl.Color)
		if err != nil {
			return system.Spec{}, &system.ConfigurationError{Body: pl.Name, Index: id, Wrapped: err}
		}
		spec.Planets[i] = system.PlanetSpec{
			Name:  pl.Name,
			Scale: pl.Scale,
			Tint:  tint,
			Elements: orbit.Elements{
				SemiMajorAxis: pl.SemiMajorAxis,
				Eccentricity:  pl.Eccentricity,
				Inclination:   pl.Inclination,
				Reference:     ref,
			},
			Phase: pl.Phase,
		}
	}

	return spec, nil
}

// Build validates the config and constructs the system it describes.
func (c *Config) Build(logger log.Logger) (*system.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	spec, err := c.Spec()
	if err != nil {
		return nil, err
	}
	sys, err := system.New(spec, logger)
	if err != nil {
		return nil, err
	}
	sys.SetWorkers(c.Workers)
	return sys, nil
}

func resolveStar(ref string, byName map[string]int, n int) (int, error) {
	if i, ok := byName[ref]; ok {
		return i, nil
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < n {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", system.ErrUnknownStar, ref)
}

func parseColor(s string) (system.Color, error) {
	if s == "" {
		return 0xffffff, nil
	}
	return system.ParseColor(s)
}
