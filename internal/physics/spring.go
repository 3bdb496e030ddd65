package physics

import (
	"fmt"

	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/vector"
)

const (
	DefaultTension   = 120.0
	DefaultDamping   = 12.0
	DefaultThreshold = 0.1
)

type Spring[V vector.Vector[V]] struct {
	Target    V
	Tension   float64
	Damping   float64
	Threshold float64
}

func NewSpring[V vector.Vector[V]](target V) *Spring[V] {
	return &Spring[V]{
		Target:    target,
		Tension:   DefaultTension,
		Damping:   DefaultDamping,
		Threshold: DefaultThreshold,
	}
}

func (s *Spring[V]) Acceleration(st dynamo.State[V]) V {
	displacement := st.Value.Sub(s.Target)
	return displacement.Scale(-s.Tension).Sub(st.Velocity.Scale(s.Damping))
}

func (s *Spring[V]) Convergence(st dynamo.State[V]) dynamo.Convergence[V] {
	if !vector.Within(st.Velocity, s.Threshold) {
		return dynamo.KeepRunning[V]()
	}
	if !vector.Within(st.Value.Sub(s.Target), s.Threshold) {
		return dynamo.KeepRunning[V]()
	}
	return dynamo.Converge(s.Target)
}

func (s *Spring[V]) Params() map[string]float64 {
	return map[string]float64{
		"tension":   s.Tension,
		"damping":   s.Damping,
		"threshold": s.Threshold,
	}
}

func (s *Spring[V]) SetParam(name string, value float64) error {
	switch name {
	case "tension":
		s.Tension = value
	case "damping":
		s.Damping = value
	case "threshold":
		s.Threshold = value
	default:
		return fmt.Errorf("spring %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
