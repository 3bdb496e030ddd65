package config

var Presets = map[string]*Config{
	"spring": {
		Name: "spring", Dims: 1, Integrator: "rk4", Frame: 1.0 / 60, Duration: 3,
		Initial:  InitialConfig{Value: []float64{0}},
		Segments: []Segment{{Kind: KindSpring, Target: []float64{100}}},
	},
	"wobbly": {
		Name: "wobbly", Dims: 1, Integrator: "rk4", Frame: 1.0 / 60, Duration: 5,
		Initial: InitialConfig{Value: []float64{0}},
		Segments: []Segment{{
			Kind: KindSpring, Target: []float64{100},
			Params: map[string]float64{"tension": 300, "damping": 6},
		}},
	},
	"spring-2d": {
		Name: "spring-2d", Dims: 2, Integrator: "rk4", Frame: 1.0 / 60, Duration: 3,
		Initial:  InitialConfig{Value: []float64{0, 0}, Velocity: []float64{0, 400}},
		Segments: []Segment{{Kind: KindSpring, Target: []float64{100, 50}}},
	},
	"fling": {
		Name: "fling", Dims: 2, Integrator: "rk4", Frame: 1.0 / 60, Duration: 4,
		Initial:  InitialConfig{Value: []float64{0, 0}, Velocity: []float64{300, -120}},
		Segments: []Segment{{Kind: KindDecay}},
	},
	"interrupt": {
		Name: "interrupt", Dims: 2, Integrator: "rk4", Frame: 1.0 / 60, Duration: 4,
		Initial: InitialConfig{Value: []float64{0, 0}},
		Segments: []Segment{
			{Kind: KindSpring, Target: []float64{100, 0}, InterruptAfter: 0.1},
			{Kind: KindDecay, Params: map[string]float64{"drag": 4}},
		},
	},
	"fade": {
		Name: "fade", Dims: 1, Integrator: "rk4", Frame: 1.0 / 60, Duration: 2,
		Initial:  InitialConfig{Value: []float64{0}},
		Segments: []Segment{{Kind: KindCurve, Target: []float64{1}, Duration: 1, Easing: "ease-in-out"}},
	},
	"chain": {
		Name: "chain", Dims: 3, Integrator: "rk4", Frame: 1.0 / 60, Duration: 6,
		Initial: InitialConfig{Value: []float64{0, 0, 0}},
		Segments: []Segment{
			{Kind: KindCurve, Target: []float64{10, 20, 30}, Duration: 0.5, Easing: "ease-out-cubic"},
			{Kind: KindSpring, Target: []float64{0, 0, 0}, Params: map[string]float64{"damping": 20}},
			{Kind: KindSet, Target: []float64{5, 5, 5}},
		},
	},
}

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
	return names
}

// Clone returns a deep copy so callers may tweak presets freely.
func (c *Config) Clone() *Config {
	out := *c
	out.Initial = InitialConfig{
		Value:    append([]float64(nil), c.Initial.Value...),
		Velocity: append([]float64(nil), c.Initial.Velocity...),
	}
	out.Segments = make([]Segment, len(c.Segments))
	for i, seg := range c.Segments {
		seg.Target = append([]float64(nil), seg.Target...)
		seg.Velocity = append([]float64(nil), seg.Velocity...)
		if seg.Params != nil {
			params := make(map[string]float64, len(seg.Params))
			for k, v := range seg.Params {
				params[k] = v
			}
			seg.Params = params
		}
		out.Segments[i] = seg
	}
	return &out
}
