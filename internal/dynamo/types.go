package dynamo

import (
	"fmt"

	"github.com/san-kum/motion/internal/vector"
)

type State[V vector.Vector[V]] struct {
	Value    V
	Velocity V
}

// Interpolated blends value and velocity toward to.
func (s State[V]) Interpolated(to State[V], alpha float64) State[V] {
	return State[V]{
		Value:    s.Value.Interpolated(to.Value, alpha),
		Velocity: s.Velocity.Interpolated(to.Velocity, alpha),
	}
}

func (s State[V]) String() string {
	return fmt.Sprintf("value=%v velocity=%v", vector.Components(s.Value), vector.Components(s.Velocity))
}

// Convergence is the outcome of a convergence test. When Converged is set,
// Value is where the simulation comes to rest.
type Convergence[V vector.Vector[V]] struct {
	Converged bool
	Value     V
}

func KeepRunning[V vector.Vector[V]]() Convergence[V] {
	return Convergence[V]{}
}

func Converge[V vector.Vector[V]](at V) Convergence[V] {
	return Convergence[V]{Converged: true, Value: at}
}

// Function is an acceleration law. Implementations must be free of side
// effects: the solver calls Acceleration several times per tick.
type Function[V vector.Vector[V]] interface {
	Acceleration(s State[V]) V
	Convergence(s State[V]) Convergence[V]
}

type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64) error
}

// Event marks a transition recorded during a run.
type Event struct {
	Time     float64 `json:"time"`
	Kind     string  `json:"kind"`
	Segment  int     `json:"segment"`
	Finished bool    `json:"finished"`
}

type Result struct {
	Times      []float64
	Values     [][]float64
	Velocities [][]float64
	Events     []Event
	Metrics    map[string]float64
}

func NewResult(capacity int) *Result {
	return &Result{
		Times:      make([]float64, 0, capacity),
		Values:     make([][]float64, 0, capacity),
		Velocities: make([][]float64, 0, capacity),
		Metrics:    make(map[string]float64),
	}
}

func (r *Result) Record(t float64, value, velocity []float64) {
	r.Times = append(r.Times, t)
	r.Values = append(r.Values, value)
	r.Velocities = append(r.Velocities, velocity)
}

// Component extracts one component of every recorded value.
func (r *Result) Component(i int) []float64 {
	out := make([]float64, 0, len(r.Values))
	for _, v := range r.Values {
		if i < len(v) {
			out = append(out, v[i])
		}
	}
	return out
}

func (r *Result) Final() []float64 {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[len(r.Values)-1]
}
