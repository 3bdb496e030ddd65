package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/motion/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dims != 1 {
		t.Errorf("expected dims 1, got %d", cfg.Dims)
	}
	if cfg.Frame <= 0 {
		t.Error("frame should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
		if cfg.Name != name {
			t.Errorf("preset %s has name %s", name, cfg.Name)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	cfg := GetPreset("wobbly")
	cfg.Segments[0].Params["tension"] = 1
	cfg.Segments[0].Target[0] = -1

	again := GetPreset("wobbly")
	if again.Segments[0].Params["tension"] != 300 || again.Segments[0].Target[0] != 100 {
		t.Error("mutating a preset copy changed the preset")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"dims too small", func(c *Config) { c.Dims = 0 }, dynamo.ErrInvalidDimension},
		{"dims too large", func(c *Config) { c.Dims = 5 }, dynamo.ErrInvalidDimension},
		{"zero frame", func(c *Config) { c.Frame = 0 }, dynamo.ErrInvalidFrame},
		{"negative duration", func(c *Config) { c.Duration = -1 }, dynamo.ErrInvalidFrame},
		{"bad integrator", func(c *Config) { c.Integrator = "verlet" }, dynamo.ErrUnknownIntegrator},
		{"no segments", func(c *Config) { c.Segments = nil }, dynamo.ErrEmptyScenario},
		{"bad kind", func(c *Config) { c.Segments[0].Kind = "gravity" }, dynamo.ErrUnknownFunction},
		{"bad easing", func(c *Config) {
			c.Segments[0] = Segment{Kind: KindCurve, Easing: "bounce"}
		}, dynamo.ErrUnknownEasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValidate_SegmentIndex(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Segments = append(cfg.Segments, Segment{Kind: "orbit"})

	var serr *dynamo.ScenarioError
	if err := cfg.Validate(); !errors.As(err, &serr) || serr.Segment != 1 {
		t.Errorf("expected ScenarioError for segment 1, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := GetPreset("interrupt")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Name != "interrupt" || loaded.Dims != 2 {
		t.Errorf("unexpected config: %+v", loaded)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(loaded.Segments))
	}
	if loaded.Segments[0].InterruptAfter != 0.1 || loaded.Segments[1].Params["drag"] != 4 {
		t.Errorf("segments not round-tripped: %+v", loaded.Segments)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	data := []byte("segments:\n  - kind: decay\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Dims != DefaultDims || cfg.Frame != DefaultFrame || cfg.Integrator != "rk4" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if len(cfg.Segments) != 1 || cfg.Segments[0].Kind != KindDecay {
		t.Errorf("segments = %+v", cfg.Segments)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("dims: 9\nsegments:\n  - kind: spring\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, dynamo.ErrInvalidDimension) {
		t.Errorf("expected ErrInvalidDimension, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
