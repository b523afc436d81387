package config

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/projshift/internal/projection"
	"github.com/san-kum/projshift/internal/sim"
	"github.com/san-kum/projshift/internal/transition"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration  = transition.DefaultDuration
	DefaultDt        = 1.0 / 60
	DefaultFPS       = 60
	DefaultMaxFrames = 100000
)

type Config struct {
	Camera    CameraConfig `yaml:"camera"`
	Duration  float64      `yaml:"duration"`
	Dt        float64      `yaml:"dt"`
	Curve     string       `yaml:"curve"`
	FPS       int          `yaml:"fps"`
	Jitter    float64      `yaml:"jitter"`
	Seed      int64        `yaml:"seed"`
	MaxFrames int          `yaml:"max_frames"`
}

type CameraConfig struct {
	Orthographic     bool    `yaml:"orthographic"`
	FieldOfView      float64 `yaml:"field_of_view"`
	OrthographicSize float64 `yaml:"orthographic_size"`
	Aspect           float64 `yaml:"aspect"`
	Near             float64 `yaml:"near"`
	Far              float64 `yaml:"far"`
}

func DefaultConfig() *Config {
	p := projection.DefaultParams()
	return &Config{
		Camera: CameraConfig{
			Orthographic:     true,
			FieldOfView:      p.FieldOfView,
			OrthographicSize: p.OrthographicSize,
			Aspect:           p.Aspect,
			Near:             p.Near,
			Far:              p.Far,
		},
		Duration:  DefaultDuration,
		Dt:        DefaultDt,
		Curve:     transition.DefaultCurveName,
		FPS:       DefaultFPS,
		MaxFrames: DefaultMaxFrames,
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := transition.LookupCurve(c.Curve); err != nil {
		return err
	}
	if math.IsNaN(c.Duration) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("config: duration must be finite, got %g", c.Duration)
	}
	if c.Duration > 0 && !(c.Dt > 0 && !math.IsInf(c.Dt, 1)) {
		return fmt.Errorf("config: dt must be positive and finite, got %g", c.Dt)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if !(c.Jitter >= 0 && c.Jitter < 1) {
		return fmt.Errorf("config: jitter must be in [0, 1), got %g", c.Jitter)
	}
	return nil
}

func (c *Config) Params() projection.Params {
	return projection.Params{
		FieldOfView:      c.Camera.FieldOfView,
		OrthographicSize: c.Camera.OrthographicSize,
		Aspect:           c.Camera.Aspect,
		Near:             c.Camera.Near,
		Far:              c.Camera.Far,
	}
}

func (c *Config) StartMode() projection.Mode {
	if c.Camera.Orthographic {
		return projection.Orthographic
	}
	return projection.Perspective
}

func (c *Config) SimConfig() sim.Config {
	maxFrames := c.MaxFrames
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return sim.Config{
		Dt:        c.Dt,
		Duration:  c.Duration,
		MaxFrames: maxFrames,
		Jitter:    c.Jitter,
		Seed:      c.Seed,
	}
}

// NewCamera builds the camera described by the config.
func (c *Config) NewCamera() *projection.Camera {
	return projection.NewCamera(c.Params(), c.StartMode())
}

// NewTransitioner builds a camera and a transitioner driving it.
func (c *Config) NewTransitioner(opts ...transition.Option) (*transition.Transitioner, *projection.Camera, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	curve, err := transition.LookupCurve(c.Curve)
	if err != nil {
		return nil, nil, err
	}
	cam := c.NewCamera()
	opts = append([]transition.Option{
		transition.WithCurve(curve),
		transition.WithDefaultDuration(c.Duration),
	}, opts...)
	return transition.New(cam, opts...), cam, nil
}
