package sim

import (
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/vector"
)

const (
	// TickLength is the fixed integration step in seconds, about 120 ticks
	// per second.
	TickLength = 0.008

	// MaxTicksPerAdvance bounds catch-up after a long pause. Elapsed time
	// beyond it is dropped.
	MaxTicksPerAdvance = 10

	// accumulator residue below this is float noise from repeated subtraction
	accumulatorEpsilon = 1e-9
)

// Solver integrates an acceleration law at a fixed tick and exposes a state
// interpolated to the exact time callers advanced it by.
//
// A Solver is not safe for concurrent use.
type Solver[V vector.Vector[V]] struct {
	fn           dynamo.Function[V]
	step         integrators.Step[V]
	previous     dynamo.State[V]
	state        dynamo.State[V]
	interpolated dynamo.State[V]
	accumulator  float64
	settled      bool
}

func NewSolver[V vector.Vector[V]](fn dynamo.Function[V], value, velocity V) *Solver[V] {
	st := dynamo.State[V]{Value: value, Velocity: velocity}
	s := &Solver[V]{
		fn:           fn,
		step:         integrators.RK4[V],
		previous:     st,
		state:        st,
		interpolated: st,
	}
	s.settleIfPossible()
	return s
}

// Advance consumes elapsed seconds of external time. Negative and NaN
// durations count as zero.
func (s *Solver[V]) Advance(elapsed float64) {
	if s.settled {
		return
	}

	if !(elapsed > 0) {
		elapsed = 0
	}
	elapsed = min(elapsed, TickLength*MaxTicksPerAdvance)
	s.accumulator += elapsed

	for s.accumulator > accumulatorEpsilon {
		s.previous = s.state
		s.state = s.step(s.fn, s.state, TickLength)
		s.accumulator -= TickLength
	}
	if s.accumulator > -accumulatorEpsilon {
		s.accumulator = 0
	}

	s.settleIfPossible()
	if s.settled {
		return
	}

	if s.accumulator == 0 {
		s.interpolated = s.state
		return
	}
	alpha := (TickLength + s.accumulator) / TickLength
	s.interpolated = s.previous.Interpolated(s.state, alpha)
}

func (s *Solver[V]) settleIfPossible() {
	if s.settled {
		return
	}
	c := s.fn.Convergence(s.state)
	if !c.Converged {
		return
	}
	s.state = dynamo.State[V]{Value: c.Value}
	s.previous = s.state
	s.interpolated = s.state
	s.accumulator = 0
	s.settled = true
}

func (s *Solver[V]) reset(st dynamo.State[V]) {
	s.previous = st
	s.state = st
	s.interpolated = st
	s.accumulator = 0
	s.settled = false
	s.settleIfPossible()
}

func (s *Solver[V]) Value() V { return s.interpolated.Value }

func (s *Solver[V]) Velocity() V { return s.interpolated.Velocity }

// State returns the last integrated state, not the interpolated one.
func (s *Solver[V]) State() dynamo.State[V] { return s.state }

func (s *Solver[V]) Settled() bool { return s.settled }

func (s *Solver[V]) Function() dynamo.Function[V] { return s.fn }

// Accumulator is the unconsumed time in seconds, within (-TickLength, 0].
func (s *Solver[V]) Accumulator() float64 { return s.accumulator }

// SetValue moves the simulation without touching its velocity.
func (s *Solver[V]) SetValue(v V) {
	s.reset(dynamo.State[V]{Value: v, Velocity: s.interpolated.Velocity})
}

func (s *Solver[V]) SetVelocity(v V) {
	s.reset(dynamo.State[V]{Value: s.interpolated.Value, Velocity: v})
}

// Use swaps the acceleration law, keeping value and velocity so motion stays
// continuous.
func (s *Solver[V]) Use(fn dynamo.Function[V]) {
	s.fn = fn
	s.reset(s.interpolated)
}

// SetIntegrator replaces the numerical method. RK4 is the default.
func (s *Solver[V]) SetIntegrator(step integrators.Step[V]) {
	if step == nil {
		step = integrators.RK4[V]
	}
	s.step = step
}
