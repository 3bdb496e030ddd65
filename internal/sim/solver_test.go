package sim

import (
	"math"
	"testing"

	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/physics"
	"github.com/san-kum/motion/internal/vector"
)

func newSpringSolver() (*Solver[vector.Vec1], *physics.Spring[vector.Vec1]) {
	spring := physics.NewSpring(vector.Vec1{100})
	return NewSolver[vector.Vec1](spring, vector.Vec1{0}, vector.Vec1{0}), spring
}

func TestSolver_SpringConverges(t *testing.T) {
	s, _ := newSpringSolver()

	for elapsed := 0.0; elapsed < 5.0; elapsed += 0.016 {
		s.Advance(0.016)
	}

	if !s.Settled() {
		t.Fatalf("spring not settled: value=%.6f velocity=%.6f", s.Value()[0], s.Velocity()[0])
	}
	if s.Value() != (vector.Vec1{100}) {
		t.Errorf("expected value exactly 100, got %.12f", s.Value()[0])
	}
	if s.Velocity() != (vector.Vec1{0}) {
		t.Errorf("expected zero velocity, got %.12f", s.Velocity()[0])
	}
}

func TestSolver_WholeTicksAreNotInterpolated(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7} {
		s, spring := newSpringSolver()
		s.Advance(float64(n) * TickLength)

		if s.Accumulator() != 0 {
			t.Errorf("n=%d: accumulator = %g, want 0", n, s.Accumulator())
		}

		want := dynamo.State[vector.Vec1]{}
		for i := 0; i < n; i++ {
			want = integrators.RK4[vector.Vec1](spring, want, TickLength)
		}
		if s.Value() != want.Value || s.Velocity() != want.Velocity {
			t.Errorf("n=%d: got %v/%v, want %v", n, s.Value(), s.Velocity(), want)
		}
		if s.Value() != s.State().Value {
			t.Errorf("n=%d: visible value differs from integrated state", n)
		}
	}
}

func TestSolver_ClampsLargeElapsed(t *testing.T) {
	a, _ := newSpringSolver()
	b, _ := newSpringSolver()

	a.Advance(10 * TickLength)
	b.Advance(3.0)

	if a.Value() != b.Value() || a.Velocity() != b.Velocity() {
		t.Errorf("clamp mismatch: %v/%v vs %v/%v", a.Value(), a.Velocity(), b.Value(), b.Velocity())
	}
	if a.Accumulator() != b.Accumulator() {
		t.Errorf("accumulator mismatch: %g vs %g", a.Accumulator(), b.Accumulator())
	}
}

func TestSolver_IgnoresNegativeAndNaNElapsed(t *testing.T) {
	for _, bad := range []float64{-0.1, math.NaN(), math.Inf(-1)} {
		s, _ := newSpringSolver()
		s.Advance(0.012)
		lo, hi := s.previous.Value[0], s.State().Value[0]
		before := s.Value()

		s.Advance(bad)

		if got := s.Value()[0]; got < lo || got > hi {
			t.Errorf("elapsed %v: value %.6f left [%.6f, %.6f]", bad, got, lo, hi)
		}
		if s.Value() != before {
			t.Errorf("elapsed %v: value moved from %v to %v", bad, before, s.Value())
		}
		if math.IsNaN(s.Accumulator()) || s.Accumulator() < -TickLength {
			t.Errorf("elapsed %v: accumulator = %g", bad, s.Accumulator())
		}

		for i := 0; i < 400 && !s.Settled(); i++ {
			s.Advance(0.016)
		}
		if !s.Settled() || s.Value() != (vector.Vec1{100}) {
			t.Errorf("elapsed %v: expected settle at 100, got %v settled=%v", bad, s.Value(), s.Settled())
		}
	}
}

func TestSolver_InterpolatesBetweenTicks(t *testing.T) {
	s, spring := newSpringSolver()
	s0 := dynamo.State[vector.Vec1]{}
	s1 := integrators.RK4[vector.Vec1](spring, s0, TickLength)
	s2 := integrators.RK4[vector.Vec1](spring, s1, TickLength)

	s.Advance(0.012)
	want := s1.Interpolated(s2, 0.5)
	if math.Abs(s.Value()[0]-want.Value[0]) > 1e-12 {
		t.Errorf("value: got %.12f, expected %.12f", s.Value()[0], want.Value[0])
	}
	if math.Abs(s.Accumulator()+0.004) > 1e-12 {
		t.Errorf("accumulator: got %g, expected -0.004", s.Accumulator())
	}

	s.Advance(0.002)
	want = s1.Interpolated(s2, 0.75)
	if math.Abs(s.Value()[0]-want.Value[0]) > 1e-12 {
		t.Errorf("value after partial advance: got %.12f, expected %.12f", s.Value()[0], want.Value[0])
	}
	if s.State() != s2 {
		t.Errorf("partial advance must not integrate: %v", s.State())
	}
}

func TestSolver_SettledIsIdempotent(t *testing.T) {
	s, _ := newSpringSolver()
	for !s.Settled() {
		s.Advance(0.05)
	}
	value, velocity := s.Value(), s.Velocity()

	for _, dt := range []float64{0, 0, 0.016, 1} {
		s.Advance(dt)
		if s.Value() != value || s.Velocity() != velocity {
			t.Fatalf("settled solver moved: %v/%v", s.Value(), s.Velocity())
		}
	}
}

func TestSolver_SettlesOnConstruction(t *testing.T) {
	spring := physics.NewSpring(vector.Vec2{5, 5})
	s := NewSolver[vector.Vec2](spring, vector.Vec2{5.01, 5}, vector.Vec2{})

	if !s.Settled() {
		t.Fatal("expected immediate settlement")
	}
	if s.Value() != (vector.Vec2{5, 5}) {
		t.Errorf("expected snap to target, got %v", s.Value())
	}
}

func TestSolver_SettersWakeAndResettle(t *testing.T) {
	s, spring := newSpringSolver()
	for !s.Settled() {
		s.Advance(0.05)
	}

	s.SetValue(vector.Vec1{50})
	if s.Settled() {
		t.Fatal("SetValue away from target left solver settled")
	}
	if s.Value() != (vector.Vec1{50}) || s.State().Value != (vector.Vec1{50}) {
		t.Errorf("SetValue not applied to both states: %v %v", s.Value(), s.State().Value)
	}

	s.SetVelocity(vector.Vec1{3})
	if s.Velocity() != (vector.Vec1{3}) || s.State().Velocity != (vector.Vec1{3}) {
		t.Errorf("SetVelocity not applied: %v", s.Velocity())
	}

	s.SetVelocity(vector.Vec1{})
	s.SetValue(spring.Target)
	if !s.Settled() {
		t.Error("assigning a converged value should settle immediately")
	}
}

func TestSolver_UseKeepsMotion(t *testing.T) {
	s, _ := newSpringSolver()
	s.Advance(0.1)
	value, velocity := s.Value(), s.Velocity()

	decay := physics.NewDecay[vector.Vec1]()
	s.Use(decay)

	if s.Function() != dynamo.Function[vector.Vec1](decay) {
		t.Error("function not swapped")
	}
	if s.Value() != value || s.Velocity() != velocity {
		t.Errorf("Use changed motion: %v/%v -> %v/%v", value, velocity, s.Value(), s.Velocity())
	}

	for !s.Settled() {
		s.Advance(0.016)
	}
	if s.Velocity() != (vector.Vec1{}) {
		t.Errorf("decay settled with velocity %v", s.Velocity())
	}
	// decay stops wherever its velocity runs out; value + v/drag bounds it
	limit := value[0] + velocity[0]/decay.Drag
	if math.Abs(s.Value()[0]-limit) > 1 {
		t.Errorf("decay rest %.4f too far from %.4f", s.Value()[0], limit)
	}
}

func TestSolver_EulerIntegrator(t *testing.T) {
	rk, spring := newSpringSolver()
	eu := NewSolver[vector.Vec1](spring, vector.Vec1{0}, vector.Vec1{0})
	eu.SetIntegrator(integrators.Euler[vector.Vec1])

	rk.Advance(0.05)
	eu.Advance(0.05)
	if rk.Value() == eu.Value() {
		t.Error("integrator swap had no effect")
	}

	eu.SetIntegrator(nil)
	eu.SetValue(vector.Vec1{0})
	eu.SetVelocity(vector.Vec1{0})
	fresh, _ := newSpringSolver()
	eu.Advance(0.04)
	fresh.Advance(0.04)
	if eu.Value() != fresh.Value() {
		t.Errorf("nil integrator should restore RK4: %v vs %v", eu.Value(), fresh.Value())
	}
}
