package physics

import (
	"fmt"

	"github.com/san-kum/motion/internal/dynamo"
	"github.com/san-kum/motion/internal/vector"
)

const DefaultDrag = 3.0

// Decay slows a moving value down. It comes to rest wherever the velocity
// drops under Threshold, so the final value depends on the whole path.
type Decay[V vector.Vector[V]] struct {
	Drag      float64
	Threshold float64
}

func NewDecay[V vector.Vector[V]]() *Decay[V] {
	return &Decay[V]{
		Drag:      DefaultDrag,
		Threshold: DefaultThreshold,
	}
}

func (d *Decay[V]) Acceleration(st dynamo.State[V]) V {
	return st.Velocity.Scale(-d.Drag)
}

func (d *Decay[V]) Convergence(st dynamo.State[V]) dynamo.Convergence[V] {
	if !vector.Within(st.Velocity, d.Threshold) {
		return dynamo.KeepRunning[V]()
	}
	return dynamo.Converge(st.Value)
}

func (d *Decay[V]) Params() map[string]float64 {
	return map[string]float64{
		"drag":      d.Drag,
		"threshold": d.Threshold,
	}
}

func (d *Decay[V]) SetParam(name string, value float64) error {
	switch name {
	case "drag":
		d.Drag = value
	case "threshold":
		d.Threshold = value
	default:
		return fmt.Errorf("decay %q: %w", name, dynamo.ErrUnknownParam)
	}
	return nil
}
