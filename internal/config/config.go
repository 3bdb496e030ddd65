package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/san-kum/motion/internal/curve"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDims     = 1
	DefaultFrame    = 1.0 / 60
	DefaultDuration = 5.0
)

const (
	KindSpring = "spring"
	KindDecay  = "decay"
	KindCurve  = "curve"
	KindSet    = "set"
)

// Config describes one scenario: a starting state and a chain of segments
// played back at a fixed frame interval.
type Config struct {
	Name       string        `yaml:"name"`
	Dims       int           `yaml:"dims"`
	Integrator string        `yaml:"integrator"`
	Frame      float64       `yaml:"frame"`
	Duration   float64       `yaml:"duration"`
	Initial    InitialConfig `yaml:"initial"`
	Segments   []Segment     `yaml:"segments"`
}

type InitialConfig struct {
	Value    []float64 `yaml:"value"`
	Velocity []float64 `yaml:"velocity"`
}

// Segment is one animation. The next segment starts when it completes, or
// after InterruptAfter seconds when that is positive.
type Segment struct {
	Kind           string             `yaml:"kind"`
	Target         []float64          `yaml:"target,omitempty"`
	Velocity       []float64          `yaml:"velocity,omitempty"`
	Duration       float64            `yaml:"duration,omitempty"`
	Easing         string             `yaml:"easing,omitempty"`
	Params         map[string]float64 `yaml:"params,omitempty"`
	InterruptAfter float64            `yaml:"interrupt_after,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "spring",
		Dims:       DefaultDims,
		Integrator: "rk4",
		Frame:      DefaultFrame,
		Duration:   DefaultDuration,
		Initial: InitialConfig{
			Value:    []float64{0},
			Velocity: []float64{0},
		},
		Segments: []Segment{
			{Kind: KindSpring, Target: []float64{100}},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	cfg.Segments = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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
	if c.Dims < 1 || c.Dims > 4 {
		return fmt.Errorf("dims %d: %w", c.Dims, dynamo.ErrInvalidDimension)
	}
	if c.Frame <= 0 || c.Duration <= 0 {
		return dynamo.ErrInvalidFrame
	}
	if !slices.Contains(integrators.Names(), c.Integrator) && c.Integrator != "" {
		return fmt.Errorf("%q: %w", c.Integrator, dynamo.ErrUnknownIntegrator)
	}
	if len(c.Segments) == 0 {
		return dynamo.ErrEmptyScenario
	}
	for i, seg := range c.Segments {
		if err := seg.validate(); err != nil {
			return &dynamo.ScenarioError{Segment: i, Kind: seg.Kind, Wrapped: err}
		}
	}
	return nil
}

func (s Segment) validate() error {
	switch s.Kind {
	case KindSpring, KindDecay, KindSet:
		return nil
	case KindCurve:
		_, err := curve.Lookup(s.Easing)
		return err
	default:
		return fmt.Errorf("%q: %w", s.Kind, dynamo.ErrUnknownFunction)
	}
}
