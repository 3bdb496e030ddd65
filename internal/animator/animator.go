package animator

import (
	"github.com/san-kum/motion/internal/curve"
	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/integrators"
	"github.com/san-kum/motion/internal/notify"
	"github.com/san-kum/motion/internal/sim"
	"github.com/san-kum/motion/internal/vector"
)

type Kind int

const (
	AtRest Kind = iota
	RunningCurve
	RunningSimulation
)

func (k Kind) String() string {
	switch k {
	case AtRest:
		return "at-rest"
	case RunningCurve:
		return "curve"
	case RunningSimulation:
		return "simulation"
	default:
		return "unknown"
	}
}

// state is a closed variant: which fields are set depends on kind.
type state[V vector.Vector[V]] struct {
	kind   Kind
	value  V
	curve  *curve.Timed[V]
	solver *sim.Solver[V]
	done   *notify.Signal[bool]
}

func (s state[V]) current() V {
	switch s.kind {
	case RunningCurve:
		return s.curve.Value()
	case RunningSimulation:
		return s.solver.Value()
	default:
		return s.value
	}
}

func (s state[V]) finished() bool {
	switch s.kind {
	case RunningCurve:
		return s.curve.Finished()
	case RunningSimulation:
		return s.solver.Settled()
	default:
		return true
	}
}

type Animator[V vector.Vector[V]] struct {
	state      state[V]
	published  V
	active     bool
	changes    *notify.Signal[V]
	activity   *notify.Signal[bool]
	integrator integrators.Step[V]
}

func New[V vector.Vector[V]](value V) *Animator[V] {
	return &Animator[V]{
		state:     state[V]{kind: AtRest, value: value},
		published: value,
		changes:   notify.New[V](),
		activity:  notify.New[bool](),
	}
}

func (a *Animator[V]) Kind() Kind { return a.state.kind }

func (a *Animator[V]) IsAtRest() bool { return a.state.kind == AtRest }

func (a *Animator[V]) Value() V { return a.state.current() }

// Velocity is the simulation velocity, or zero at rest and on curves.
func (a *Animator[V]) Velocity() V {
	if a.state.kind == RunningSimulation {
		return a.state.solver.Velocity()
	}
	var zero V
	return zero
}

// Changes fires with the new value whenever the visible value changes.
func (a *Animator[V]) Changes() *notify.Signal[V] { return a.changes }

// Activity fires true when the animator leaves rest and false when it
// returns to it.
func (a *Animator[V]) Activity() *notify.Signal[bool] { return a.activity }

// Completion returns the running animation's completion signal, or nil at
// rest.
func (a *Animator[V]) Completion() *notify.Signal[bool] { return a.state.done }

// Curve returns the running curve, or nil.
func (a *Animator[V]) Curve() *curve.Timed[V] { return a.state.curve }

// Solver returns the running solver, or nil.
func (a *Animator[V]) Solver() *sim.Solver[V] { return a.state.solver }

// SetIntegrator picks the method used by simulations started afterwards.
func (a *Animator[V]) SetIntegrator(step integrators.Step[V]) { a.integrator = step }

// SetValue moves straight to rest at v, cancelling any running animation.
func (a *Animator[V]) SetValue(v V) {
	a.transition(state[V]{kind: AtRest, value: v})
}

// Cancel stops the running animation where it is.
func (a *Animator[V]) Cancel() {
	if a.state.kind == AtRest {
		return
	}
	a.transition(state[V]{kind: AtRest, value: a.Value()})
}

// Animate starts a timed curve from the current value.
func (a *Animator[V]) Animate(to V, duration float64, easing curve.Easing) *notify.Signal[bool] {
	done := notify.New[bool]()
	a.transition(state[V]{
		kind:  RunningCurve,
		curve: curve.NewTimed(a.Value(), to, duration, easing),
		done:  done,
	})
	return done
}

// Simulate runs fn from the current value and velocity. If a simulation is
// already running, fn replaces its law in place and the running animation's
// completion is returned.
func (a *Animator[V]) Simulate(fn dynamo.Function[V]) *notify.Signal[bool] {
	if a.state.kind == RunningSimulation {
		a.state.solver.Use(fn)
		done := a.state.done
		a.publish()
		return done
	}
	return a.startSimulation(fn, a.Velocity())
}

// SimulateWithVelocity is Simulate with an explicit initial velocity.
func (a *Animator[V]) SimulateWithVelocity(fn dynamo.Function[V], velocity V) *notify.Signal[bool] {
	if a.state.kind == RunningSimulation {
		a.state.solver.Use(fn)
		a.state.solver.SetVelocity(velocity)
		done := a.state.done
		a.publish()
		return done
	}
	return a.startSimulation(fn, velocity)
}

func (a *Animator[V]) startSimulation(fn dynamo.Function[V], velocity V) *notify.Signal[bool] {
	solver := sim.NewSolver(fn, a.Value(), velocity)
	if a.integrator != nil {
		solver.SetIntegrator(a.integrator)
	}
	done := notify.New[bool]()
	a.transition(state[V]{kind: RunningSimulation, solver: solver, done: done})
	return done
}

// Advance moves the running animation forward by elapsed seconds.
func (a *Animator[V]) Advance(elapsed float64) {
	st := a.state
	switch st.kind {
	case AtRest:
		return
	case RunningCurve:
		st.curve.Advance(elapsed)
	case RunningSimulation:
		st.solver.Advance(elapsed)
	}

	a.publish()
	if a.state.done != st.done {
		// an observer replaced the animation
		return
	}
	if !st.finished() {
		return
	}
	a.state = state[V]{kind: AtRest, value: st.current()}
	a.publish()
	a.updateActivity()
	st.done.Close(true)
}

func (a *Animator[V]) transition(next state[V]) {
	prev := a.state
	a.state = next
	if prev.done != nil {
		prev.done.Close(false)
	}
	a.publish()
	a.updateActivity()
}

func (a *Animator[V]) publish() {
	v := a.Value()
	if v == a.published {
		return
	}
	a.published = v
	a.changes.Send(v)
}

func (a *Animator[V]) updateActivity() {
	running := a.state.kind != AtRest
	if running == a.active {
		return
	}
	a.active = running
	a.activity.Send(running)
}
