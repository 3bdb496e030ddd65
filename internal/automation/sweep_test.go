package automation

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/motion/internal/config"
	"github.com/san-kum/motion/internal/dynamo"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		lo, hi float64
		n      int
		want   []float64
	}{
		{0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
		{3, 9, 1, []float64{3}},
		{1, 2, 0, nil},
	}
	for _, tt := range tests {
		got := Linspace(tt.lo, tt.hi, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("Linspace(%v, %v, %d) = %v", tt.lo, tt.hi, tt.n, got)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Linspace(%v, %v, %d)[%d] = %v, expected %v", tt.lo, tt.hi, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSweep_DampingReducesOvershoot(t *testing.T) {
	r := &Runner{Workers: 2}
	cfg := config.GetPreset("spring")
	cfg.Duration = 10
	runs, err := r.Sweep(context.Background(), cfg, "damping", []float64{4, 12, 30})
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	for i, run := range runs {
		if run.Final[0] != 100 {
			t.Errorf("run %d ended at %v", i, run.Final)
		}
		if i > 0 && run.Metrics["overshoot"] >= runs[i-1].Metrics["overshoot"] && runs[i-1].Metrics["overshoot"] > 0 {
			t.Errorf("overshoot did not shrink with damping: %v -> %v",
				runs[i-1].Metrics["overshoot"], run.Metrics["overshoot"])
		}
	}
	if runs[0].Point["damping"] != 4 {
		t.Error("results out of order")
	}
	if cfg.Segments[0].Params != nil {
		t.Error("sweep mutated the input scenario")
	}
}

func TestRunPoints_Errors(t *testing.T) {
	r := &Runner{Segment: 3}
	if _, err := r.RunPoints(context.Background(), config.GetPreset("spring"), []Point{{}}); err == nil {
		t.Error("expected out of range segment error")
	}

	r = &Runner{}
	_, err := r.Sweep(context.Background(), config.GetPreset("spring"), "drag", []float64{1})
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
